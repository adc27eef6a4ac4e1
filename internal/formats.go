package internal

import (
	"fmt"
	"strings"

	"github.com/henrytill/simplenote-go/internal/formatter"
)

// Format names an output format. It satisfies pflag.Value.
type Format struct {
	Name string
}

func (f Format) String() string { return f.Name }
func (f Format) Type() string   { return "format" }

var (
	JSON = Format{"json"}
	YAML = Format{"yaml"}
	Text = Format{"text"}
	HTML = Format{"html"}
)

var allFormats = []Format{JSON, YAML, Text, HTML}

func AllFormats() []Format {
	return append([]Format(nil), allFormats...)
}

func ParseFormat(name string) (Format, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for _, format := range allFormats {
		if format.Name == normalized {
			return format, nil
		}
	}
	return Format{}, fmt.Errorf("invalid format: %s", name)
}

func (f *Format) Set(value string) error {
	parsed, err := ParseFormat(value)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

func NewFormatter(format Format) (formatter.Formatter, error) {
	switch format {
	case JSON:
		return &formatter.JSONFormatter{}, nil
	case YAML:
		return &formatter.YAMLFormatter{}, nil
	case Text:
		return &formatter.TextFormatter{}, nil
	case HTML:
		return formatter.NewHTMLFormatter(), nil
	default:
		return nil, fmt.Errorf("no formatter available for format: %s", format.Name)
	}
}
