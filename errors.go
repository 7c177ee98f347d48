package cryptoath

import "errors"

// Configuration errors. They are fatal to the view they are found in and are
// always wrapped with the view or field name, use errors.Is to test them.
var (
	// ErrUnknownField is returned when a view references a field that is not in the Registry.
	ErrUnknownField = errors.New("unknown field")
	// ErrNoColumns is returned when a view ends up with no displayable column.
	ErrNoColumns = errors.New("no displayable column")
	// ErrDuplicateField is returned when a Registry declares the same field twice.
	ErrDuplicateField = errors.New("duplicate field")
	// ErrInvalidView is returned for views that are malformed (no name, duplicated name).
	ErrInvalidView = errors.New("invalid view")
)
