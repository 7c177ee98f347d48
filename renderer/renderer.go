// Package renderer turns assembled Documents into their output formats: a
// self-contained HTML page, markdown for the terminal, and JSON.
package renderer

import (
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"strconv"
	"strings"
	"text/template"

	"github.com/etnz/cryptoath"
)

//go:embed templates
var templates embed.FS

// Markdown renders the Document as markdown, one table per view, with the tier
// of each row in the last column.
func Markdown(doc *cryptoath.Document) string {
	partials := map[string]string{
		"table": "table.md",
	}
	return renderTemplate("document", "document.md", partials, doc)
}

// viewInfo is the description of a configured view.
type viewInfo struct {
	Name, Title string
	Columns     []columnInfo
	SortBy      string
	Filter      string
	OmitAbsent  bool
}

type columnInfo struct {
	Name, Header, Kind string
}

// RenderViews renders the views and the fields they display as markdown.
func RenderViews(views []cryptoath.ViewSpec, registry cryptoath.Registry) string {
	infos := make([]viewInfo, len(views))
	for i, v := range views {
		info := viewInfo{
			Name:       v.Name,
			Title:      v.DisplayTitle(),
			SortBy:     v.SortBy,
			OmitAbsent: v.OmitAbsent,
		}
		if v.Filter != nil {
			info.Filter = v.Filter.String()
		}
		for _, name := range v.Fields {
			col := columnInfo{Name: name, Header: name, Kind: "unknown"}
			if s, ok := registry.Lookup(name); ok {
				col.Header, col.Kind = s.DisplayName(), s.Kind.String()
			}
			info.Columns = append(info.Columns, col)
		}
		infos[i] = info
	}
	return renderTemplate("views", "views.md", nil, infos)
}

// JSON writes the Document as indented JSON.
func JSON(w io.Writer, doc *cryptoath.Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

var markdownFuncs = template.FuncMap{
	"inc": func(i int) int { return i + 1 },
	// escape protects table cells from pipes and line breaks.
	"escape": func(s string) string {
		s = strings.ReplaceAll(s, "|", `\|`)
		return strings.ReplaceAll(s, "\n", " ")
	},
	"align": func(k cryptoath.Kind) string {
		switch k {
		case cryptoath.Identifier, cryptoath.DateKind:
			return ":--"
		default:
			return "--:"
		}
	},
}

// width formats the width of a bar as a percentage of its container.
func width(b *cryptoath.Bar) string {
	return strconv.FormatFloat(b.Width(100), 'f', 2, 64)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, "templates/"+mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Funcs(markdownFuncs).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, "templates/"+file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
