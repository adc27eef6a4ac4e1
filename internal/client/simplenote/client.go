// Package simplenote is a client for the Simplenote v1 API.
//
// A Client holds the session obtained from Login and attaches it to every
// subsequent call. It is not safe for concurrent use while the session is
// being changed: Login writes the session fields without synchronization.
package simplenote

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/henrytill/simplenote-go/internal/simplenote"
)

const BaseURL = "https://simple-note.appspot.com/api"

// QueryEncoding selects how the search term is escaped before the generic
// parameter encoding is applied.
type QueryEncoding int

const (
	// DoubleEncode escapes the term once more before parameter encoding. This
	// is what the service has always received, so it is the default.
	DoubleEncode QueryEncoding = iota
	SingleEncode
)

func (e QueryEncoding) String() string {
	switch e {
	case SingleEncode:
		return "single"
	default:
		return "double"
	}
}

type Client struct {
	httpClient    *http.Client
	baseURL       string
	log           *slog.Logger
	queryEncoding QueryEncoding
	session       simplenote.Session
}

type Option func(*Client)

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets a timeout on the underlying HTTP client. Zero means no timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		hc := *c.httpClient
		hc.Timeout = timeout
		c.httpClient = &hc
	}
}

func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

func WithQueryEncoding(enc QueryEncoding) Option {
	return func(c *Client) {
		c.queryEncoding = enc
	}
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{},
		baseURL:    BaseURL,
		log:        slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Session returns a copy of the current session.
func (c *Client) Session() simplenote.Session {
	return c.session
}

type param struct {
	key   string
	value string
}

// params is an ordered parameter list. Serialization follows declaration order.
type params []param

func (p params) encode() string {
	parts := make([]string, 0, len(p))
	for _, kv := range p {
		parts = append(parts, url.QueryEscape(kv.key)+"="+url.QueryEscape(kv.value))
	}
	return strings.Join(parts, "&")
}

// authParams returns the credentials every authenticated call carries.
func authParams(s *simplenote.Session) params {
	return params{
		{"auth", s.Token},
		{"email", s.Email},
	}
}

type rawResponse struct {
	StatusCode int
	Header     map[string]string
	Body       string
}

func (r *rawResponse) header(name string) (string, bool) {
	v, ok := r.Header[strings.ToLower(name)]
	return v, ok
}

func (c *Client) methodURL(method string, query params) string {
	reqURL := c.baseURL + "/" + method
	if encoded := query.encode(); encoded != "" {
		reqURL += "?" + encoded
	}
	return reqURL
}

func (c *Client) get(ctx context.Context, method string, query params) (*rawResponse, error) {
	return c.do(ctx, http.MethodGet, method, query, nil)
}

func (c *Client) post(ctx context.Context, method, body string, query params) (*rawResponse, error) {
	return c.do(ctx, http.MethodPost, method, query, &body)
}

func (c *Client) do(ctx context.Context, httpMethod, method string, query params, body *string) (*rawResponse, error) {
	var reqBody io.Reader
	if body != nil {
		reqBody = strings.NewReader(*body)
	}

	req, err := http.NewRequestWithContext(ctx, httpMethod, c.methodURL(method, query), reqBody)
	if err != nil {
		return nil, &TransportError{Op: method, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	c.log.Debug("sending request", "method", httpMethod, "endpoint", method)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: method, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: method, Err: err}
	}

	raw := &rawResponse{
		StatusCode: resp.StatusCode,
		Header:     make(map[string]string, len(resp.Header)),
		Body:       string(data),
	}
	for name, values := range resp.Header {
		if len(values) > 0 {
			raw.Header[strings.ToLower(name)] = strings.TrimSpace(values[0])
		}
	}

	c.log.Debug("received response", "endpoint", method, "status", resp.StatusCode, "bytes", len(data))

	if raw.StatusCode != http.StatusOK {
		return nil, &APIError{Op: method, StatusCode: raw.StatusCode, Body: raw.Body}
	}

	return raw, nil
}
