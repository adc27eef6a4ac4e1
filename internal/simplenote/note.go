package simplenote

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Note is a single note as returned by the note endpoint.
//
// CreateDate and ModifyDate hold the header values exactly as the service sent
// them; CreatedAt and ModifiedAt are zero when those values could not be parsed.
type Note struct {
	Key        string    `json:"key" yaml:"key"`
	CreateDate string    `json:"createdate" yaml:"createdate"`
	ModifyDate string    `json:"modifydate" yaml:"modifydate"`
	CreatedAt  time.Time `json:"created_at" yaml:"created_at"`
	ModifiedAt time.Time `json:"modified_at" yaml:"modified_at"`
	Deleted    bool      `json:"deleted" yaml:"deleted"`
	Content    string    `json:"content" yaml:"content"`
}

var timestampLayouts = []string{
	"2006-01-02 15:04:05.999999",
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
}

// ParseTimestamp parses the date formats the service has been seen to use.
// Dates without a zone are taken as UTC.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}

	if secs, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(secs) && !math.IsInf(secs, 0) {
		whole, frac := math.Modf(secs)
		return time.Unix(int64(whole), int64(frac*1e9)).UTC(), true
	}

	return time.Time{}, false
}
