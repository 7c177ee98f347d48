package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/etnz/cryptoath"
	"github.com/google/go-cmp/cmp"
)

const sheetJSON = `{
  "range": "Coins!A1:D4",
  "majorDimension": "ROWS",
  "values": [
    ["Name", "Current Price (USD)", "Market Cap (USD)", "ATH Date"],
    ["Bitcoin", 65000.5, 1200000000000, "2021-11-10"],
    ["Tiny", 0.000123],
    [],
    ["Ether", "3,100", 370000000000, "2021-11-16"]
  ]
}`

// fields returns the field names and raw values of r, in order.
func fields(r cryptoath.Record) []string {
	var res []string
	for name, v := range r.Fields() {
		res = append(res, name+"="+v.String())
	}
	return res
}

func TestHTTPGrid(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(sheetJSON))
	}))
	defer srv.Close()

	records, err := HTTP{URL: srv.URL}.Records(context.Background())
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3 (empty row skipped)", len(records))
	}
	want := [][]string{
		{"Name=Bitcoin", "Current Price (USD)=65000.5", "Market Cap (USD)=1200000000000", "ATH Date=2021-11-10"},
		{"Name=Tiny", "Current Price (USD)=0.000123", "Market Cap (USD)=", "ATH Date="},
		{"Name=Ether", "Current Price (USD)=3,100", "Market Cap (USD)=370000000000", "ATH Date=2021-11-16"},
	}
	for i, r := range records {
		if diff := cmp.Diff(want[i], fields(r)); diff != "" {
			t.Errorf("record %d mismatch (-want +got):\n%s", i, diff)
		}
	}
	if v, _ := records[0].Get("Current Price (USD)"); !v.IsNumber() {
		t.Errorf("price %v is not a number", v)
	}
}

func TestHTTPObjects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"coins":[{"Name":"Bitcoin","Rank":1},{"Rank":2,"Name":"Ether"}]}}`))
	}))
	defer srv.Close()

	records, err := HTTP{URL: srv.URL, Path: "$.data.coins"}.Records(context.Background())
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	got := [][]string{fields(records[0]), fields(records[1])}
	want := [][]string{{"Name=Bitcoin", "Rank=1"}, {"Name=Ether", "Rank=2"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestHTTPErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		path   string
	}{
		{"not found", http.StatusNotFound, `{}`, ""},
		{"invalid json", http.StatusOK, `{"values": [`, ""},
		{"missing path", http.StatusOK, `{"rows": []}`, ""},
		{"not rows", http.StatusOK, `{"values": "nope"}`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()
			if _, err := (HTTP{URL: srv.URL, Path: tt.path}).Records(context.Background()); err == nil {
				t.Error("Records() expected an error")
			}
		})
	}
}

func TestSheetsURL(t *testing.T) {
	got := SheetsURL("https://example.test/v4/spreadsheets/", "abc/123", "Crypto Sheet", "secret")
	u, err := url.Parse(got)
	if err != nil {
		t.Fatalf("invalid URL %q: %v", got, err)
	}
	if want := "/v4/spreadsheets/abc%2F123/values/Crypto%20Sheet"; u.EscapedPath() != want {
		t.Errorf("path = %q, want %q", u.EscapedPath(), want)
	}
	q := u.Query()
	if q.Get("key") != "secret" || q.Get("valueRenderOption") != "UNFORMATTED_VALUE" {
		t.Errorf("query = %v", q)
	}
	if s := Sheets(nil, "id", "ws", "k"); !strings.HasPrefix(s.URL, SheetsEndpoint+"id/values/ws?") || s.Path != DefaultPath {
		t.Errorf("Sheets() = %+v", s)
	}
}

func TestDiskCache(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(sheetJSON))
	}))
	defer srv.Close()

	client := NewCachingClient(time.Hour, t.TempDir(), nil)
	src := HTTP{URL: srv.URL, Client: client}
	for range 3 {
		records, err := src.Records(context.Background())
		if err != nil {
			t.Fatalf("Records: %v", err)
		}
		if len(records) != 3 {
			t.Fatalf("got %d records from cache, want 3", len(records))
		}
	}
	if n := hits.Load(); n != 1 {
		t.Errorf("server hit %d times, want 1", n)
	}

	if c := NewCachingClient(0, "", nil); c.Transport != nil {
		t.Error("a zero ttl should disable the cache")
	}
}

func TestFile(t *testing.T) {
	dir := t.TempDir()
	jsonFile := filepath.Join(dir, "coins.json")
	csvFile := filepath.Join(dir, "coins.csv")
	txtFile := filepath.Join(dir, "coins.txt")
	os.WriteFile(jsonFile, []byte(`[{"Name":"Bitcoin","Rank":1},{"Name":"Ether","Rank":2,"ATH Date":null}]`), 0644)
	os.WriteFile(csvFile, []byte("Name,Rank,Market Cap (USD)\nBitcoin,1,1200000000000\nEther,2\n"), 0644)
	os.WriteFile(txtFile, []byte("Name"), 0644)

	records, err := File{Path: jsonFile}.Records(context.Background())
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	if diff := cmp.Diff([]string{"Name=Ether", "Rank=2", "ATH Date="}, fields(records[1])); diff != "" {
		t.Errorf("json record mismatch (-want +got):\n%s", diff)
	}

	records, err = File{Path: csvFile}.Records(context.Background())
	if err != nil {
		t.Fatalf("csv: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("csv: got %d records, want 2", len(records))
	}
	if diff := cmp.Diff([]string{"Name=Ether", "Rank=2", "Market Cap (USD)="}, fields(records[1])); diff != "" {
		t.Errorf("csv record mismatch (-want +got):\n%s", diff)
	}

	if _, err := (File{Path: txtFile}).Records(context.Background()); err == nil {
		t.Error("unsupported extension accepted")
	}
	if _, err := (File{Path: filepath.Join(dir, "missing.json")}).Records(context.Background()); err == nil {
		t.Error("missing file accepted")
	}
}
