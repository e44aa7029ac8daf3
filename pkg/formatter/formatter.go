package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/jmylchreest/snipfmt/internal/logger"
)

// Formatter runs the sanitize, parse, reindent, serialize pipeline.
// It implements the cleaner.Cleaner interface. A Formatter holds no mutable
// state and may be shared between goroutines.
type Formatter struct {
	config *Config
	passes []*Pass
	theme  *variantRules
}

// New creates a Formatter. If config is nil, DefaultConfig() is used.
func New(config *Config) (*Formatter, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Formatter{
		config: config,
		passes: buildPasses(config),
		theme:  newVariantRules(config.Theme),
	}, nil
}

var defaultFormatter = mustDefault()

func mustDefault() *Formatter {
	f, err := New(nil)
	if err != nil {
		panic(err)
	}
	return f
}

// Default returns a Formatter using DefaultConfig.
func Default() *Formatter {
	return defaultFormatter
}

// Config returns the formatter configuration. Callers must not modify it.
func (f *Formatter) Config() *Config {
	return f.config
}

// Name returns the cleaner name for logging.
func (f *Formatter) Name() string {
	return "formatter"
}

// Clean beautifies markup at level 0.
func (f *Formatter) Clean(markup string) (string, error) {
	return f.Beautify(markup, 0)
}

// Beautify sanitizes markup, parses it as a fragment, reindents the tree
// starting at level and serializes it back. Leading and trailing whitespace of
// the result is trimmed.
func (f *Formatter) Beautify(markup string, level int) (string, error) {
	result, err := f.BeautifyWithStats(markup, level)
	if err != nil {
		return "", err
	}
	return result.Content, nil
}

// BeautifyWithStats is Beautify with detailed stats. Parse and render errors
// are returned unchanged in meaning, wrapped with the failing phase.
func (f *Formatter) BeautifyWithStats(markup string, level int) (*Result, error) {
	start := time.Now()
	result := &Result{Stats: NewStats()}
	result.Stats.InputBytes = len(markup)

	phase := time.Now()
	sanitized := strings.TrimSpace(f.sanitize(markup, result.Stats))
	result.Stats.SanitizeDuration = time.Since(phase)

	phase = time.Now()
	root, err := parseFragment(sanitized)
	result.Stats.ParseDuration = time.Since(phase)
	if err != nil {
		return nil, err
	}

	phase = time.Now()
	in := NewIndenter(f.config.IndentUnit)
	in.Reindent(root, level)
	result.Stats.IndentDuration = time.Since(phase)
	result.Stats.IndentNodesAdded = in.Inserted()
	result.Stats.IndentNodesDropped = in.Removed()

	phase = time.Now()
	doc := goquery.NewDocumentFromNode(root)
	rendered, err := doc.Html()
	result.Stats.RenderDuration = time.Since(phase)
	if err != nil {
		return nil, fmt.Errorf("rendering fragment: %w", err)
	}

	result.Stats.Elements = doc.Find("*").Length()
	if result.Stats.Elements == 0 && sanitized != "" {
		result.AddWarning("parse", "fragment contains no elements", "")
	}

	result.Content = strings.TrimSpace(rendered)
	result.Stats.OutputBytes = len(result.Content)
	result.Stats.TotalDuration = time.Since(start)

	logger.Debug("beautify complete",
		"level", level,
		"input_bytes", result.Stats.InputBytes,
		"output_bytes", result.Stats.OutputBytes,
		"elements", result.Stats.Elements,
		"duration", result.Stats.TotalDuration)

	return result, nil
}

// parseFragment parses markup the way a browser parses innerHTML of a <div>
// and returns that div holding the parsed nodes.
func parseFragment(markup string) (*html.Node, error) {
	container := &html.Node{
		Type:     html.ElementNode,
		Data:     atom.Div.String(),
		DataAtom: atom.Div,
	}
	nodes, err := html.ParseFragment(strings.NewReader(markup), container)
	if err != nil {
		return nil, fmt.Errorf("parsing fragment: %w", err)
	}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, nil
}

// Sanitize runs the default sanitizer passes.
func Sanitize(markup string) string {
	return defaultFormatter.Sanitize(markup)
}

// Beautify formats markup with the default configuration.
func Beautify(markup string, level int) (string, error) {
	return defaultFormatter.Beautify(markup, level)
}
