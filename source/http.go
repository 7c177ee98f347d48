package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/cryptoath"
	"go.uber.org/zap"
)

// DefaultPath is the JSON path of the rows in a Google Sheets values response.
const DefaultPath = "$.values"

// HTTP fetches a JSON document and extracts the rows at a JSON path.
type HTTP struct {
	URL    string
	Path   string       // JSON path of the rows, DefaultPath if empty.
	Client *http.Client // http.DefaultClient if nil.
	Logger *zap.Logger  // optional
}

// Records implements Source.
func (h HTTP) Records(ctx context.Context) ([]cryptoath.Record, error) {
	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	log := h.Logger
	if log == nil {
		log = zap.NewNop()
	}
	path := h.Path
	if path == "" {
		path = DefaultPath
	}

	var jobj any
	if err := jwget(ctx, client, h.URL, &jobj); err != nil {
		return nil, err
	}
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("cannot extract rows at %q: %w", path, err)
	}
	// jsonpath wraps the answer of a wildcard or a slice into a list of 1 answer.
	if jlist, ok := jval.([]any); ok && len(jlist) == 1 {
		if inner, ok := jlist[0].([]any); ok && len(inner) > 0 {
			if _, isRow := inner[0].([]any); isRow {
				jval = inner
			}
		}
	}

	records, err := decodeRows(jval)
	if err != nil {
		return nil, fmt.Errorf("invalid rows at %q: %w", path, err)
	}
	log.Info("records fetched", zap.Int("records", len(records)), zap.String("path", path))
	return records, nil
}

// jwget performs an HTTP GET request to the given address and unmarshals the
// JSON response body into the provided data structure. Numbers are kept exact.
func jwget(ctx context.Context, client *http.Client, addr string, data any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return err
	}
	dec := json.NewDecoder(&buf)
	dec.UseNumber()
	if err := dec.Decode(data); err != nil {
		return fmt.Errorf("invalid JSON from %v%v: %w", resp.Request.URL.Host, resp.Request.URL.Path, err)
	}
	return nil
}
