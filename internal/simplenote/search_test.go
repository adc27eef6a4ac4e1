package simplenote

import (
	"encoding/json"
	"testing"
)

func TestSearchResultKeepsFirstPosition(t *testing.T) {
	r := NewSearchResult(3)
	r.Add("a", "one")
	r.Add("b", "two")
	r.Add("a", "three")

	entries := r.List()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0] != (SearchEntry{Key: "a", Content: "three"}) {
		t.Errorf("expected a=three first, got %+v", entries[0])
	}
	if entries[1] != (SearchEntry{Key: "b", Content: "two"}) {
		t.Errorf("expected b=two second, got %+v", entries[1])
	}
}

func TestSearchResultJSON(t *testing.T) {
	r := NewSearchResult(2)
	r.Add("z", "last letter")
	r.Add("a", "first letter")

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := `{"count":2,"results":{"z":"last letter","a":"first letter"}}`
	if string(data) != expected {
		t.Errorf("expected %s, got %s", expected, data)
	}
}

func TestEmptySearchResultJSON(t *testing.T) {
	data, err := json.Marshal(NewSearchResult(0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := `{"count":0,"results":{}}`
	if string(data) != expected {
		t.Errorf("expected %s, got %s", expected, data)
	}
}
