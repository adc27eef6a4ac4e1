package formatter

import (
	"io"

	"github.com/henrytill/simplenote-go/internal/simplenote"
)

// Formatter writes API results in one output format.
type Formatter interface {
	FormatNote(w io.Writer, note *simplenote.Note) error
	FormatIndex(w io.Writer, entries []simplenote.IndexEntry) error
	FormatSearch(w io.Writer, result *simplenote.SearchResult) error
	FormatKey(w io.Writer, key string) error
}
