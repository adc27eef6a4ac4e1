package simplenote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/henrytill/simplenote-go/internal/testutil"
)

func TestIndex(t *testing.T) {
	client, server := newLoggedInClient(t)
	first := server.AddNote("first")
	second := server.AddNote("second")

	entries, err := client.Index(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, first, entries[0].Key())
	assert.Equal(t, second, entries[1].Key())
	assert.False(t, entries[0].Deleted())
	assert.Equal(t, testutil.FakeDate, entries[0].Modify())

	req := server.LastRequest()
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "auth="+server.Token+"&email=user%40example.com", req.RawQuery)
}

func TestIndexPassesEntriesThrough(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"key":"a","extra":{"n":1},"tags":["x"]}]`))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))

	entries, err := client.Index(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)

	assert.Equal(t, IndexEntry{
		"key":   "a",
		"extra": map[string]any{"n": float64(1)},
		"tags":  []any{"x"},
	}, entries[0])
}

func TestIndexMalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))

	_, err := client.Index(context.Background())
	require.Error(t, err)

	var decodeErr *DecodeError
	assert.True(t, errors.As(err, &decodeErr))
	assert.NotErrorIs(t, err, ErrRequestFailed)
}

func TestGetNote(t *testing.T) {
	client, server := newLoggedInClient(t)
	key := server.AddNote("# Groceries\n\n- milk")

	note, err := client.GetNote(context.Background(), key)
	require.NoError(t, err)

	assert.Equal(t, key, note.Key)
	assert.Equal(t, "# Groceries\n\n- milk", note.Content)
	assert.False(t, note.Deleted)
	assert.Equal(t, testutil.FakeDate, note.CreateDate)
	assert.Equal(t, testutil.FakeDate, note.ModifyDate)
	assert.Equal(t, time.Date(2010, 2, 13, 2, 41, 6, 478000000, time.UTC), note.CreatedAt)
	assert.Equal(t, note.CreatedAt, note.ModifiedAt)

	req := server.LastRequest()
	assert.Equal(t, "key="+key+"&auth="+server.Token+"&email=user%40example.com&encode=base64", req.RawQuery)
}

func TestGetNoteDeletedHeader(t *testing.T) {
	tests := []struct {
		value    string
		expected bool
	}{
		{"true", true},
		{"TRUE", true},
		{"True", true},
		{"false", false},
		{"FALSE", false},
		{"yes", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.value), func(t *testing.T) {
			client, server := newLoggedInClient(t)
			key := server.AddNote("content")
			server.SetNoteHeaders(map[string]string{"note-deleted": tt.value})

			note, err := client.GetNote(context.Background(), key)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, note.Deleted)
		})
	}
}

func TestGetNoteMissingHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("aGVsbG8=\n"))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))

	note, err := client.GetNote(context.Background(), "k")
	require.NoError(t, err)

	assert.Equal(t, "hello", note.Content)
	assert.Empty(t, note.Key)
	assert.False(t, note.Deleted)
	assert.True(t, note.CreatedAt.IsZero())
	assert.True(t, note.ModifiedAt.IsZero())
}

func TestGetNoteInvalidBase64(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("!!!not base64"))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))

	_, err := client.GetNote(context.Background(), "k")

	var decodeErr *DecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, "note", decodeErr.Op)
}

func TestGetNoteNotFound(t *testing.T) {
	client, _ := newLoggedInClient(t)

	_, err := client.GetNote(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRequestFailed)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestEmptyKeyIsRejected(t *testing.T) {
	client, server := newLoggedInClient(t)
	sent := len(server.Requests())

	_, err := client.GetNote(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidKey)

	err = client.DeleteNote(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidKey)

	assert.Len(t, server.Requests(), sent)
}

func TestSaveNewNote(t *testing.T) {
	client, server := newLoggedInClient(t)

	key, err := client.SaveNote(context.Background(), "new note", "")
	require.NoError(t, err)
	assert.NotEmpty(t, key)

	stored, ok := server.Note(key)
	require.True(t, ok)
	assert.Equal(t, "new note", stored.Content)

	req := server.LastRequest()
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "note", req.Endpoint)
	assert.Equal(t, "auth="+server.Token+"&email=user%40example.com&key=", req.RawQuery)
	assert.Equal(t, "bmV3IG5vdGU=", req.Body)
}

func TestSaveExistingNote(t *testing.T) {
	client, server := newLoggedInClient(t)
	key := server.AddNote("old")

	got, err := client.SaveNote(context.Background(), "updated", key)
	require.NoError(t, err)
	assert.Equal(t, key, got)

	stored, _ := server.Note(key)
	assert.Equal(t, "updated", stored.Content)
	assert.Equal(t, "auth="+server.Token+"&email=user%40example.com&key="+key, server.LastRequest().RawQuery)
}

func TestSaveThenGetRoundTrip(t *testing.T) {
	contents := []string{
		"",
		"plain",
		"héllo wörld ✓ 日本語",
		"line one\nline two\r\n\ttabbed",
		"\x00\x01\xfe\xff raw bytes",
		"padding?=&+/",
	}

	client, _ := newLoggedInClient(t)

	for _, content := range contents {
		t.Run(fmt.Sprintf("%q", content), func(t *testing.T) {
			key, err := client.SaveNote(context.Background(), content, "")
			require.NoError(t, err)

			note, err := client.GetNote(context.Background(), key)
			require.NoError(t, err)
			assert.Equal(t, content, note.Content)
			assert.Equal(t, key, note.Key)
		})
	}
}

func TestDeleteNote(t *testing.T) {
	client, server := newLoggedInClient(t)
	key := server.AddNote("doomed")

	require.NoError(t, client.DeleteNote(context.Background(), key))

	stored, _ := server.Note(key)
	assert.True(t, stored.Deleted)

	req := server.LastRequest()
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "key="+key+"&auth="+server.Token+"&email=user%40example.com", req.RawQuery)

	note, err := client.GetNote(context.Background(), key)
	require.NoError(t, err)
	assert.True(t, note.Deleted)
}

func TestDeleteMissingNote(t *testing.T) {
	client, _ := newLoggedInClient(t)

	err := client.DeleteNote(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrRequestFailed)
}

func TestFailuresDoNotTouchSession(t *testing.T) {
	client, server := newLoggedInClient(t)
	key := server.AddNote("content")
	before := client.Session()

	for _, endpoint := range []string{"index", "note", "delete", "search"} {
		server.FailWith(endpoint, http.StatusServiceUnavailable)
	}

	ctx := context.Background()

	_, err := client.Index(ctx)
	assert.ErrorIs(t, err, ErrRequestFailed)

	_, err = client.GetNote(ctx, key)
	assert.ErrorIs(t, err, ErrRequestFailed)

	_, err = client.SaveNote(ctx, "x", key)
	assert.ErrorIs(t, err, ErrRequestFailed)

	err = client.DeleteNote(ctx, key)
	assert.ErrorIs(t, err, ErrRequestFailed)

	_, err = client.Search(ctx, "x", nil)
	assert.ErrorIs(t, err, ErrRequestFailed)

	assert.Equal(t, before, client.Session())
}

func TestUnauthenticatedCallsFail(t *testing.T) {
	server := testutil.NewFakeServer(t, testEmail, testPassword)
	client := NewClient(WithBaseURL(server.URL))

	_, err := client.Index(context.Background())

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "auth=&email=", server.LastRequest().RawQuery)
}
