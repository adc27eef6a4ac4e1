package formatter

import (
	"fmt"
	"html/template"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"golang.org/x/net/html"

	"github.com/henrytill/simplenote-go/internal/simplenote"
)

type HTMLFormatter struct {
	md goldmark.Markdown
}

func NewHTMLFormatter() *HTMLFormatter {
	return &HTMLFormatter{
		md: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// FormatNote renders the note content as Markdown. Raw HTML in the note is
// omitted from the output.
func (f *HTMLFormatter) FormatNote(w io.Writer, note *simplenote.Note) error {
	if err := f.md.Convert([]byte(note.Content), w); err != nil {
		return fmt.Errorf("failed to render note %s: %w", note.Key, err)
	}
	return nil
}

const indexTemplate = `<ul class="notes">
{{- range .}}
  <li{{if .Deleted}} class="deleted"{{end}}><span class="key">{{.Key}}</span>{{if .Modify}} <span class="modify">{{.Modify}}</span>{{end}}</li>
{{- end}}
</ul>
`

const searchTemplate = `<p class="count">{{.Count}} results</p>
<dl class="results">
{{- range .Entries}}
  <dt>{{.Key}}</dt>
  <dd>{{.Snippet}}</dd>
{{- end}}
</dl>
`

var (
	indexTmpl  = template.Must(template.New("index").Parse(indexTemplate))
	searchTmpl = template.Must(template.New("search").Parse(searchTemplate))
)

type templateEntry struct {
	Key     string
	Modify  string
	Deleted bool
}

type templateHit struct {
	Key     string
	Snippet string
}

func (f *HTMLFormatter) FormatIndex(w io.Writer, entries []simplenote.IndexEntry) error {
	data := make([]templateEntry, 0, len(entries))
	for _, entry := range entries {
		data = append(data, templateEntry{
			Key:     entry.Key(),
			Modify:  entry.Modify(),
			Deleted: entry.Deleted(),
		})
	}
	return indexTmpl.Execute(w, data)
}

func (f *HTMLFormatter) FormatSearch(w io.Writer, result *simplenote.SearchResult) error {
	data := struct {
		Count   int
		Entries []templateHit
	}{
		Count:   result.TotalCount,
		Entries: make([]templateHit, 0, result.Len()),
	}
	for _, entry := range result.List() {
		data.Entries = append(data.Entries, templateHit{
			Key:     entry.Key,
			Snippet: PlainText(entry.Content),
		})
	}
	return searchTmpl.Execute(w, data)
}

func (f *HTMLFormatter) FormatKey(w io.Writer, key string) error {
	_, err := fmt.Fprintf(w, "<p class=\"key\">%s</p>\n", html.EscapeString(key))
	return err
}
