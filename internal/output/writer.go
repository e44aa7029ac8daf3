// Package output renders export results for the CLI.
package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jmylchreest/snipfmt/pkg/formatter"
)

// Format represents output format types.
type Format string

const (
	FormatRaw   Format = "raw"
	FormatJSON  Format = "json"
	FormatJSONL Format = "jsonl"
	FormatYAML  Format = "yaml"
)

// Formats lists the accepted --format values.
func Formats() []string {
	return []string{string(FormatRaw), string(FormatJSON), string(FormatJSONL), string(FormatYAML)}
}

// ExportRecord is one converted fragment.
type ExportRecord struct {
	Target   string              `json:"target" yaml:"target"`
	Source   string              `json:"source,omitempty" yaml:"source,omitempty"`
	Content  string              `json:"content" yaml:"content"`
	Stats    *formatter.Stats    `json:"stats,omitempty" yaml:"stats,omitempty"`
	Warnings []formatter.Warning `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Created  time.Time           `json:"created" yaml:"created"`
}

// Writer handles output serialization.
type Writer interface {
	// Write outputs a single result.
	Write(data any) error

	// WriteAll outputs multiple results.
	WriteAll(data []any) error

	// Flush ensures all data is written.
	Flush() error

	// Close releases resources.
	Close() error
}

// WriterOption configures a writer.
type WriterOption func(*writerConfig)

type writerConfig struct {
	pretty    bool
	indent    string
	separator string
}

// WithPretty enables pretty-printing.
func WithPretty(enabled bool) WriterOption {
	return func(c *writerConfig) {
		c.pretty = enabled
	}
}

// WithIndent sets the indentation string.
func WithIndent(indent string) WriterOption {
	return func(c *writerConfig) {
		c.indent = indent
	}
}

// WithSeparator sets what the raw writer puts between records.
func WithSeparator(sep string) WriterOption {
	return func(c *writerConfig) {
		c.separator = sep
	}
}

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(s))
	switch f {
	case FormatRaw, FormatJSON, FormatJSONL, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s (available: %s)", s, strings.Join(Formats(), ", "))
	}
}

// NewWriter creates a writer for the specified format.
func NewWriter(w io.Writer, format Format, opts ...WriterOption) (Writer, error) {
	cfg := &writerConfig{
		pretty:    true,
		indent:    "  ",
		separator: "\n",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	switch format {
	case FormatRaw:
		return NewRawWriter(w, cfg.separator), nil
	case FormatJSON:
		return NewJSONWriter(w, cfg.pretty, cfg.indent), nil
	case FormatJSONL:
		return NewJSONLWriter(w), nil
	case FormatYAML:
		return NewYAMLWriter(w), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// batch collects items and encodes them on Flush: a single item on its own,
// several as a list. A second Flush with nothing new buffered writes nothing.
type batch struct {
	w       io.Writer
	items   []any
	flushed bool
	encode  func(io.Writer, any) error
}

func (b *batch) Write(data any) error {
	b.items = append(b.items, data)
	return nil
}

func (b *batch) WriteAll(data []any) error {
	b.items = append(b.items, data...)
	return nil
}

func (b *batch) Flush() error {
	if b.flushed && len(b.items) == 0 {
		return nil
	}
	b.flushed = true

	var v any = b.items
	if len(b.items) == 1 {
		v = b.items[0]
	}
	if b.items == nil {
		v = []any{}
	}
	b.items = nil
	return b.encode(b.w, v)
}

func (b *batch) Close() error {
	return b.Flush()
}
