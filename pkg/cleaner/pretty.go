package cleaner

import (
	"strings"

	"github.com/yosssi/gohtml"
)

// PrettyCleaner re-indents markup with gohtml. It is an alternative to the
// tree indenter for callers that prefer gohtml's layout (two-space indent,
// one tag per line).
type PrettyCleaner struct{}

// NewPretty creates a gohtml-backed formatter.
func NewPretty() *PrettyCleaner {
	return &PrettyCleaner{}
}

// Clean formats markup. Empty input yields empty output.
func (c *PrettyCleaner) Clean(markup string) (string, error) {
	if strings.TrimSpace(markup) == "" {
		return "", nil
	}
	return gohtml.Format(markup), nil
}

// Name returns the cleaner type.
func (c *PrettyCleaner) Name() string {
	return "gohtml"
}
