package testutil

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
)

const FakeDate = "2010-02-13 02:41:06.478000"

// Request is a request observed by a FakeServer.
type Request struct {
	Method   string
	Endpoint string
	RawQuery string
	Query    url.Values
	Body     string
}

type FakeNote struct {
	Key        string
	Content    string
	CreateDate string
	ModifyDate string
	Deleted    bool
}

// FakeServer is an in-memory stand-in for the Simplenote API.
type FakeServer struct {
	*httptest.Server

	Email    string
	Password string
	Token    string

	mu         sync.Mutex
	notes      map[string]*FakeNote
	order      []string
	nextID     int
	failures   map[string]int
	searchBody *string
	headers    map[string]string
	requests   []Request
}

func NewFakeServer(t *testing.T, email, password string) *FakeServer {
	t.Helper()

	s := &FakeServer{
		Email:    email,
		Password: password,
		Token:    "token-" + strconv.Itoa(len(email)),
		notes:    make(map[string]*FakeNote),
		failures: make(map[string]int),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)

	return s
}

func (s *FakeServer) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Token = token
}

// FailWith makes every request to endpoint answer with status.
func (s *FakeServer) FailWith(endpoint string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[endpoint] = status
}

// SetSearchBody replaces the generated search response with body.
func (s *FakeServer) SetSearchBody(body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchBody = &body
}

// SetNoteHeaders overrides the note-* headers sent for every note fetch.
func (s *FakeServer) SetNoteHeaders(headers map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.headers = headers
}

func (s *FakeServer) AddNote(content string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store("", content)
}

func (s *FakeServer) Note(key string) (FakeNote, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.notes[key]
	if !ok {
		return FakeNote{}, false
	}
	return *n, true
}

func (s *FakeServer) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

func (s *FakeServer) LastRequest() Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return Request{}
	}
	return s.requests[len(s.requests)-1]
}

func (s *FakeServer) store(key, content string) string {
	if key == "" {
		s.nextID++
		key = fmt.Sprintf("agtzaW1wbGUtbm90ZXINCxIETm90ZRiJ%d", s.nextID)
	}
	n, ok := s.notes[key]
	if !ok {
		n = &FakeNote{Key: key, CreateDate: FakeDate}
		s.notes[key] = n
		s.order = append(s.order, key)
	}
	n.Content = content
	n.ModifyDate = FakeDate
	return key
}

func (s *FakeServer) handle(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	endpoint := strings.TrimPrefix(r.URL.Path, "/")

	s.mu.Lock()
	defer s.mu.Unlock()

	s.requests = append(s.requests, Request{
		Method:   r.Method,
		Endpoint: endpoint,
		RawQuery: r.URL.RawQuery,
		Query:    r.URL.Query(),
		Body:     string(body),
	})

	if status, ok := s.failures[endpoint]; ok {
		http.Error(w, "forced failure", status)
		return
	}

	if endpoint == "login" {
		s.login(w, r, string(body))
		return
	}

	query := r.URL.Query()
	if query.Get("auth") != s.Token || query.Get("email") != s.Email {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	switch {
	case endpoint == "index" && r.Method == http.MethodGet:
		s.index(w)
	case endpoint == "note" && r.Method == http.MethodGet:
		s.getNote(w, query)
	case endpoint == "note" && r.Method == http.MethodPost:
		s.saveNote(w, query, string(body))
	case endpoint == "delete" && r.Method == http.MethodGet:
		s.deleteNote(w, query)
	case endpoint == "search" && r.Method == http.MethodGet:
		s.search(w, query)
	default:
		http.NotFound(w, r)
	}
}

func (s *FakeServer) login(w http.ResponseWriter, r *http.Request, body string) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	decoded, err := base64.StdEncoding.DecodeString(body)
	if err != nil {
		http.Error(w, "bad body", http.StatusBadRequest)
		return
	}

	form, err := url.ParseQuery(string(decoded))
	if err != nil || form.Get("email") != s.Email || form.Get("password") != s.Password {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	_, _ = io.WriteString(w, s.Token)
}

func (s *FakeServer) index(w http.ResponseWriter) {
	entries := make([]map[string]any, 0, len(s.order))
	for _, key := range s.order {
		n := s.notes[key]
		entries = append(entries, map[string]any{
			"key":     n.Key,
			"modify":  n.ModifyDate,
			"deleted": n.Deleted,
		})
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(entries)
}

func (s *FakeServer) getNote(w http.ResponseWriter, query url.Values) {
	n, ok := s.notes[query.Get("key")]
	if !ok {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	h := w.Header()
	h.Set("note-key", n.Key)
	h.Set("note-createdate", n.CreateDate)
	h.Set("note-modifydate", n.ModifyDate)
	h.Set("note-deleted", strconv.FormatBool(n.Deleted))
	for name, value := range s.headers {
		h.Set(name, value)
	}

	_, _ = io.WriteString(w, base64.StdEncoding.EncodeToString([]byte(n.Content)))
}

func (s *FakeServer) saveNote(w http.ResponseWriter, query url.Values, body string) {
	content, err := base64.StdEncoding.DecodeString(body)
	if err != nil {
		http.Error(w, "bad body", http.StatusBadRequest)
		return
	}

	key := query.Get("key")
	if key != "" {
		if _, ok := s.notes[key]; !ok {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
	}

	_, _ = io.WriteString(w, s.store(key, string(content)))
}

func (s *FakeServer) deleteNote(w http.ResponseWriter, query url.Values) {
	n, ok := s.notes[query.Get("key")]
	if !ok {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	n.Deleted = true
}

func (s *FakeServer) search(w http.ResponseWriter, query url.Values) {
	w.Header().Set("Content-Type", "application/json")

	if s.searchBody != nil {
		_, _ = io.WriteString(w, *s.searchBody)
		return
	}

	term := query.Get("query")
	if unescaped, err := url.QueryUnescape(term); err == nil {
		term = unescaped
	}
	term = strings.ToLower(term)

	type hit struct {
		Key     string `json:"key"`
		Content string `json:"content"`
	}
	var hits []hit
	for _, key := range s.order {
		n := s.notes[key]
		if !n.Deleted && strings.Contains(strings.ToLower(n.Content), term) {
			hits = append(hits, hit{Key: n.Key, Content: n.Content})
		}
	}

	total := len(hits)
	offset, _ := strconv.Atoi(query.Get("offset"))
	results, _ := strconv.Atoi(query.Get("results"))
	if offset > len(hits) {
		offset = len(hits)
	}
	hits = hits[offset:]
	if results > 0 && results < len(hits) {
		hits = hits[:results]
	}
	if hits == nil {
		hits = []hit{}
	}

	var resp struct {
		Response struct {
			TotalRecords int   `json:"totalRecords"`
			Results      []hit `json:"Results"`
		} `json:"Response"`
	}
	resp.Response.TotalRecords = total
	resp.Response.Results = hits

	_ = json.NewEncoder(w).Encode(resp)
}
