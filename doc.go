// Package cryptoath turns a snapshot of tracked assets into a presentation-ready
// report. It is the pure core of the `ath` command-line tool.
//
// The pipeline is:
//   - Field formatting: every raw cell is turned into a display string according
//     to the Kind of its FieldSpec (currency, ratio, date, percentage, identifier).
//     Formatting is total, bad cells degrade to "N/A" or to their raw text.
//   - Derived metric: the "percent from all-time-high" metric becomes a Bar, a
//     magnitude plus a label that drives a proportional visual indicator.
//   - Projection: a ViewSpec selects, filters and orders the fields to display.
//   - Partition: rows ranked below the cutoff are Visible, the others are Gated.
//     The viewer unlocks gated rows with a single shared secret.
//   - Assembly: every view is packed into one Document, together with the
//     freshness stamp of the snapshot.
//
// The package holds no process-wide state: configuration is an explicit Config
// given to NewAssembler, and every call to Assemble recomputes everything from
// the records it receives.
package cryptoath
