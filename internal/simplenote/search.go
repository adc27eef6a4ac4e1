package simplenote

import (
	"encoding/json"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// SearchResult holds the outcome of a search. Entries maps note keys to content
// snippets in the ranking order the service returned them.
type SearchResult struct {
	TotalCount int
	Entries    *orderedmap.OrderedMap[string, string]
}

func NewSearchResult(total int) *SearchResult {
	return &SearchResult{
		TotalCount: total,
		Entries:    orderedmap.New[string, string](),
	}
}

// Add records a hit. A repeated key keeps its original position and takes the
// newer content.
func (r *SearchResult) Add(key, content string) {
	r.Entries.Set(key, content)
}

func (r *SearchResult) Len() int {
	return r.Entries.Len()
}

// SearchEntry is a single key/snippet pair in ranking order.
type SearchEntry struct {
	Key     string `json:"key" yaml:"key"`
	Content string `json:"content" yaml:"content"`
}

// List returns the entries in ranking order.
func (r *SearchResult) List() []SearchEntry {
	entries := make([]SearchEntry, 0, r.Entries.Len())
	for pair := r.Entries.Oldest(); pair != nil; pair = pair.Next() {
		entries = append(entries, SearchEntry{Key: pair.Key, Content: pair.Value})
	}
	return entries
}

func (r *SearchResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		TotalCount int                                    `json:"count"`
		Results    *orderedmap.OrderedMap[string, string] `json:"results"`
	}{
		TotalCount: r.TotalCount,
		Results:    r.Entries,
	})
}
