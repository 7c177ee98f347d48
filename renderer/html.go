package renderer

import (
	"bytes"
	"fmt"
	"html/template"
	"io"

	"github.com/etnz/cryptoath"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// HTMLOptions holds the optional parts of the HTML page.
type HTMLOptions struct {
	Notes string // Markdown displayed above the tables.
	RunID string // Identifies the generation run in the page metadata.
}

var pageTemplate = template.Must(template.New("page.html").
	Funcs(template.FuncMap{"width": width}).
	ParseFS(templates, "templates/page.html"))

// page is the data of the HTML page template.
type page struct {
	*cryptoath.Document
	Gated bool // at least one row is gated
	Notes template.HTML
	RunID string
}

// HTML writes the Document as a self-contained HTML page.
//
// Gated rows are blurred and the tables cannot be sorted until the viewer
// enters the secret whose hash is doc.UnlockHash. Without a hash there is no
// way to unlock the page.
func HTML(w io.Writer, doc *cryptoath.Document, opts HTMLOptions) error {
	p := page{Document: doc, RunID: opts.RunID}
	for _, t := range doc.Tables {
		if t.Visible() < len(t.Rows) {
			p.Gated = true
			break
		}
	}
	if opts.Notes != "" {
		notes, err := markdownToHTML(opts.Notes)
		if err != nil {
			return fmt.Errorf("cannot render notes: %w", err)
		}
		p.Notes = notes
	}
	return pageTemplate.Execute(w, p)
}

var notesMarkdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// markdownToHTML converts markdown to HTML. Raw HTML in the source is not
// rendered, so the result is safe to embed.
func markdownToHTML(md string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := notesMarkdown.Convert([]byte(md), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
