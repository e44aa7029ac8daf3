// Package capture acquires rendered markup fragments from live pages.
// Implement the Capturer interface to add other acquisition strategies
// (an authenticated session, a browser extension bridge, a fixture store).
package capture

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/jmylchreest/snipfmt/internal/logger"
)

// Capture modes accepted by New.
const (
	ModeStatic  = "static"
	ModeDynamic = "dynamic"
)

// Capturer abstracts how a page is loaded before a fragment is selected.
type Capturer interface {
	// Capture loads url and returns the fragment matched by opts.Selector.
	Capture(ctx context.Context, url string, opts Options) (Fragment, error)

	// Close releases any resources (browser instances, etc.).
	Close() error

	// Type returns a string identifying the capturer ("static", "dynamic").
	Type() string
}

// Options controls a single capture.
type Options struct {
	// Selector is a CSS selector for the fragment. Empty selects the body
	// contents.
	Selector string

	// All keeps every match instead of the first one, separated by newlines.
	All bool

	// Remove lists selectors deleted from inside the fragment before it is
	// returned, such as script or a visually-hidden helper.
	Remove []string

	UserAgent    string
	Timeout      time.Duration
	WaitDuration time.Duration // Additional wait after load (dynamic only)
	Headers      map[string]string
}

// Fragment is the captured markup and where it came from.
type Fragment struct {
	URL        string    `json:"url" yaml:"url"`
	Selector   string    `json:"selector,omitempty" yaml:"selector,omitempty"`
	HTML       string    `json:"html" yaml:"html"`
	Matches    int       `json:"matches" yaml:"matches"`
	StatusCode int       `json:"status_code" yaml:"status_code"`
	CapturedAt time.Time `json:"captured_at" yaml:"captured_at"`
}

// Check with errors.Is(err, capture.ErrSelectorNotFound).
var (
	// ErrSelectorNotFound indicates the selector matched nothing on the page.
	ErrSelectorNotFound = errors.New("selector matched no elements")
	// ErrEmptyFragment indicates the selection holds no markup.
	ErrEmptyFragment = errors.New("captured fragment is empty")
)

// Config holds settings shared by the capturers.
type Config struct {
	UserAgent string
	Timeout   time.Duration

	// Dynamic only
	Headless   bool
	ChromePath string // Empty searches common install locations
}

// Chrome user agent for better compatibility
const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		UserAgent: defaultUserAgent,
		Timeout:   30 * time.Second,
		Headless:  true,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.UserAgent == "" {
		c.UserAgent = d.UserAgent
	}
	if c.Timeout == 0 {
		c.Timeout = d.Timeout
	}
	return c
}

// New creates a capturer for mode.
func New(mode string, cfg Config) (Capturer, error) {
	switch mode {
	case "", ModeStatic:
		return NewStatic(cfg), nil
	case ModeDynamic:
		return NewDynamic(cfg)
	default:
		return nil, fmt.Errorf("unknown capture mode: %s (available: %s, %s)", mode, ModeStatic, ModeDynamic)
	}
}

// Select extracts the fragment matched by opts.Selector from a full page and
// reports how many elements matched. An empty selector selects the contents of
// <body>.
func Select(page string, opts Options) (string, int, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return "", 0, fmt.Errorf("parsing page: %w", err)
	}

	selector := opts.Selector
	if selector == "" {
		body := doc.Find("body").First()
		removeWithin(body, opts.Remove)
		html, err := body.Html()
		if err != nil {
			return "", 0, fmt.Errorf("rendering body: %w", err)
		}
		if strings.TrimSpace(html) == "" {
			return "", 0, ErrEmptyFragment
		}
		return html, 1, nil
	}

	sel := doc.Find(selector)
	matches := sel.Length()
	if matches == 0 {
		return "", 0, fmt.Errorf("%w: %s", ErrSelectorNotFound, selector)
	}
	if !opts.All {
		sel = sel.First()
	}
	removeWithin(sel, opts.Remove)

	parts := make([]string, 0, sel.Length())
	var renderErr error
	sel.EachWithBreak(func(_ int, s *goquery.Selection) bool {
		h, err := goquery.OuterHtml(s)
		if err != nil {
			renderErr = err
			return false
		}
		parts = append(parts, h)
		return true
	})
	if renderErr != nil {
		return "", matches, fmt.Errorf("rendering selection: %w", renderErr)
	}

	fragment := strings.Join(parts, "\n")
	if strings.TrimSpace(fragment) == "" {
		return "", matches, ErrEmptyFragment
	}
	return fragment, matches, nil
}

// removeWithin deletes descendants of sel matching any of selectors.
func removeWithin(sel *goquery.Selection, selectors []string) {
	if len(selectors) == 0 {
		return
	}
	removed := sel.Find(strings.Join(selectors, ", ")).Remove()
	logger.Debug("removed elements from fragment", "selectors", selectors, "count", removed.Length())
}

// coalesce returns the first non-empty string.
func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
