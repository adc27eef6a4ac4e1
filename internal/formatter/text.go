package formatter

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/henrytill/simplenote-go/internal/simplenote"
)

type TextFormatter struct{}

func (f *TextFormatter) FormatNote(w io.Writer, note *simplenote.Note) error {
	content := note.Content
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	_, err := io.WriteString(w, content)
	return err
}

func (f *TextFormatter) FormatIndex(w io.Writer, entries []simplenote.IndexEntry) error {
	for _, entry := range entries {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\n", entry.Key(), entry.Modify(), strconv.FormatBool(entry.Deleted())); err != nil {
			return err
		}
	}
	return nil
}

func (f *TextFormatter) FormatSearch(w io.Writer, result *simplenote.SearchResult) error {
	if _, err := fmt.Fprintf(w, "%d results\n", result.TotalCount); err != nil {
		return err
	}
	for _, entry := range result.List() {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", entry.Key, PlainText(entry.Content)); err != nil {
			return err
		}
	}
	return nil
}

func (f *TextFormatter) FormatKey(w io.Writer, key string) error {
	_, err := fmt.Fprintln(w, key)
	return err
}

// PlainText drops any markup from s, unescapes entities and collapses runs
// of whitespace into single spaces.
func PlainText(s string) string {
	var buf strings.Builder
	z := html.NewTokenizer(strings.NewReader(s))

	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(buf.String()), " ")
		case html.TextToken:
			buf.Write(z.Text())
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			buf.WriteByte(' ')
		}
	}
}
