package formatter

import (
	"encoding/json"
	"io"

	"github.com/henrytill/simplenote-go/internal/simplenote"
)

type JSONFormatter struct{}

func (f *JSONFormatter) encode(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func (f *JSONFormatter) FormatNote(w io.Writer, note *simplenote.Note) error {
	return f.encode(w, note)
}

func (f *JSONFormatter) FormatIndex(w io.Writer, entries []simplenote.IndexEntry) error {
	if entries == nil {
		entries = []simplenote.IndexEntry{}
	}
	return f.encode(w, entries)
}

func (f *JSONFormatter) FormatSearch(w io.Writer, result *simplenote.SearchResult) error {
	return f.encode(w, result)
}

func (f *JSONFormatter) FormatKey(w io.Writer, key string) error {
	return f.encode(w, map[string]string{"key": key})
}
