package simplenote

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/henrytill/simplenote-go/internal/simplenote"
)

const DefaultSearchResults = 10

type SearchResult = simplenote.SearchResult

type SearchOptions struct {
	MaxResults int
	Offset     int
}

type searchResponse struct {
	Response struct {
		TotalRecords int `json:"totalRecords"`
		Results      []struct {
			Key     string `json:"key"`
			Content string `json:"content"`
		} `json:"Results"`
	} `json:"Response"`
}

// Search runs a full-text search. A nil opts returns the first
// DefaultSearchResults hits.
func (c *Client) Search(ctx context.Context, term string, opts *SearchOptions) (*SearchResult, error) {
	maxResults, offset := DefaultSearchResults, 0
	if opts != nil {
		if opts.MaxResults > 0 {
			maxResults = opts.MaxResults
		}
		if opts.Offset > 0 {
			offset = opts.Offset
		}
	}

	queryValue := term
	if c.queryEncoding == DoubleEncode {
		queryValue = url.QueryEscape(term)
	}

	query := params{
		{"query", queryValue},
		{"results", strconv.Itoa(maxResults)},
		{"offset", strconv.Itoa(offset)},
	}
	query = append(query, authParams(&c.session)...)

	resp, err := c.get(ctx, "search", query)
	if err != nil {
		return nil, err
	}

	var decoded searchResponse
	if err := json.Unmarshal([]byte(resp.Body), &decoded); err != nil {
		return nil, &DecodeError{Op: "search", Err: err}
	}

	result := simplenote.NewSearchResult(decoded.Response.TotalRecords)
	if result.TotalCount > 0 {
		for _, hit := range decoded.Response.Results {
			if hit.Key != "" {
				result.Add(hit.Key, hit.Content)
			}
		}
	}

	return result, nil
}
