package simplenote

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"golang.org/x/text/cases"

	"github.com/henrytill/simplenote-go/internal/simplenote"
)

type (
	Note       = simplenote.Note
	IndexEntry = simplenote.IndexEntry
)

func validateKey(key string) error {
	if err := validation.Validate(key, validation.Required); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	return nil
}

// Index returns the note index exactly as the service describes it.
func (c *Client) Index(ctx context.Context) ([]IndexEntry, error) {
	resp, err := c.get(ctx, "index", authParams(&c.session))
	if err != nil {
		return nil, err
	}

	var entries []IndexEntry
	if err := json.Unmarshal([]byte(resp.Body), &entries); err != nil {
		return nil, &DecodeError{Op: "index", Err: err}
	}

	return entries, nil
}

func (c *Client) GetNote(ctx context.Context, key string) (*Note, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	query := append(params{{"key", key}}, authParams(&c.session)...)
	query = append(query, param{"encode", "base64"})

	resp, err := c.get(ctx, "note", query)
	if err != nil {
		return nil, err
	}

	content, err := base64.StdEncoding.DecodeString(strings.TrimSpace(resp.Body))
	if err != nil {
		return nil, &DecodeError{Op: "note", Err: err}
	}

	note := &Note{
		Key:        c.noteHeader(resp, "note-key"),
		CreateDate: c.noteHeader(resp, "note-createdate"),
		ModifyDate: c.noteHeader(resp, "note-modifydate"),
		Deleted:    cases.Fold().String(c.noteHeader(resp, "note-deleted")) == "true",
		Content:    string(content),
	}
	note.CreatedAt = c.timestamp(note.CreateDate, "note-createdate")
	note.ModifiedAt = c.timestamp(note.ModifyDate, "note-modifydate")

	return note, nil
}

func (c *Client) noteHeader(resp *rawResponse, name string) string {
	v, ok := resp.header(name)
	if !ok {
		c.log.Warn("missing note header", "header", name)
	}
	return v
}

func (c *Client) timestamp(raw, header string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	t, ok := simplenote.ParseTimestamp(raw)
	if !ok {
		c.log.Warn("unparseable note timestamp", "header", header, "value", raw)
	}
	return t
}

// SaveNote stores content and returns its key. An empty key creates a new
// note; the key parameter is sent either way.
func (c *Client) SaveNote(ctx context.Context, content, key string) (string, error) {
	body := base64.StdEncoding.EncodeToString([]byte(content))
	query := append(authParams(&c.session), param{"key", key})

	resp, err := c.post(ctx, "note", body, query)
	if err != nil {
		return "", err
	}

	return resp.Body, nil
}

func (c *Client) DeleteNote(ctx context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	query := append(params{{"key", key}}, authParams(&c.session)...)

	_, err := c.get(ctx, "delete", query)
	return err
}
