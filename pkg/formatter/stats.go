package formatter

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Stats captures what a Beautify call did.
type Stats struct {
	// Size metrics
	InputBytes  int `json:"input_bytes" yaml:"input_bytes"`
	OutputBytes int `json:"output_bytes" yaml:"output_bytes"`

	// PassMatches counts replacements per sanitizer pass name.
	PassMatches map[string]int `json:"pass_matches" yaml:"pass_matches"`

	// Indentation
	Elements           int `json:"elements" yaml:"elements"`
	IndentNodesAdded   int `json:"indent_nodes_added" yaml:"indent_nodes_added"`
	IndentNodesDropped int `json:"indent_nodes_dropped" yaml:"indent_nodes_dropped"`

	// Timing
	SanitizeDuration time.Duration `json:"sanitize_duration_ns" yaml:"sanitize_duration_ns"`
	ParseDuration    time.Duration `json:"parse_duration_ns" yaml:"parse_duration_ns"`
	IndentDuration   time.Duration `json:"indent_duration_ns" yaml:"indent_duration_ns"`
	RenderDuration   time.Duration `json:"render_duration_ns" yaml:"render_duration_ns"`
	TotalDuration    time.Duration `json:"total_duration_ns" yaml:"total_duration_ns"`
}

// NewStats creates a Stats with initialized maps.
func NewStats() *Stats {
	return &Stats{
		PassMatches: make(map[string]int),
	}
}

// RecordPass records the matches of one sanitizer pass.
func (s *Stats) RecordPass(name string, matches int) {
	s.PassMatches[name] += matches
}

// TotalMatches returns the sum of all sanitizer replacements.
func (s *Stats) TotalMatches() int {
	total := 0
	for _, n := range s.PassMatches {
		total += n
	}
	return total
}

// String returns a human-readable summary.
func (s *Stats) String() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Size: %s -> %s\n",
		humanize.Bytes(uint64(s.InputBytes)), humanize.Bytes(uint64(s.OutputBytes))))

	if len(s.PassMatches) > 0 {
		names := make([]string, 0, len(s.PassMatches))
		for name := range s.PassMatches {
			names = append(names, name)
		}
		sort.Strings(names)
		parts := make([]string, len(names))
		for i, name := range names {
			parts[i] = fmt.Sprintf("%s=%d", name, s.PassMatches[name])
		}
		sb.WriteString("Sanitized: " + strings.Join(parts, ", ") + "\n")
	}

	sb.WriteString(fmt.Sprintf("Elements: %d, indent nodes: +%d -%d\n",
		s.Elements, s.IndentNodesAdded, s.IndentNodesDropped))

	sb.WriteString(fmt.Sprintf("Timing: sanitize=%v, parse=%v, indent=%v, render=%v, total=%v\n",
		s.SanitizeDuration, s.ParseDuration, s.IndentDuration, s.RenderDuration, s.TotalDuration))

	return sb.String()
}

// Warning is a non-fatal issue found while formatting.
type Warning struct {
	Phase   string `json:"phase" yaml:"phase"`
	Message string `json:"message" yaml:"message"`
	Context string `json:"context,omitempty" yaml:"context,omitempty"`
}

func (w Warning) String() string {
	if w.Context != "" {
		return fmt.Sprintf("[%s] %s (context: %s)", w.Phase, w.Message, w.Context)
	}
	return fmt.Sprintf("[%s] %s", w.Phase, w.Message)
}

// Result is the output of BeautifyWithStats.
type Result struct {
	Content  string    `json:"content" yaml:"content"`
	Stats    *Stats    `json:"stats" yaml:"stats"`
	Warnings []Warning `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// AddWarning appends a warning.
func (r *Result) AddWarning(phase, message, context string) {
	r.Warnings = append(r.Warnings, Warning{
		Phase:   phase,
		Message: message,
		Context: context,
	})
}

// HasWarnings reports whether any warning was recorded.
func (r *Result) HasWarnings() bool {
	return len(r.Warnings) > 0
}
