package formatter

import (
	"io"

	"github.com/goccy/go-yaml"
	"github.com/henrytill/simplenote-go/internal/simplenote"
)

type YAMLFormatter struct{}

func (f *YAMLFormatter) encode(w io.Writer, v any) error {
	encoder := yaml.NewEncoder(w,
		yaml.UseSingleQuote(true),
		yaml.Indent(2),
	)
	defer encoder.Close()

	return encoder.Encode(v)
}

func (f *YAMLFormatter) FormatNote(w io.Writer, note *simplenote.Note) error {
	return f.encode(w, note)
}

func (f *YAMLFormatter) FormatIndex(w io.Writer, entries []simplenote.IndexEntry) error {
	if entries == nil {
		entries = []simplenote.IndexEntry{}
	}
	return f.encode(w, entries)
}

// FormatSearch keeps ranking order by emitting the entries as a MapSlice.
func (f *YAMLFormatter) FormatSearch(w io.Writer, result *simplenote.SearchResult) error {
	results := yaml.MapSlice{}
	for _, entry := range result.List() {
		results = append(results, yaml.MapItem{Key: entry.Key, Value: entry.Content})
	}

	return f.encode(w, yaml.MapSlice{
		{Key: "count", Value: result.TotalCount},
		{Key: "results", Value: results},
	})
}

func (f *YAMLFormatter) FormatKey(w io.Writer, key string) error {
	return f.encode(w, yaml.MapSlice{{Key: "key", Value: key}})
}
