package capture

import (
	"context"
	"fmt"
	"time"

	"github.com/gocolly/colly/v2"

	"github.com/jmylchreest/snipfmt/internal/logger"
)

// StaticCapturer fetches server-rendered pages with Colly. Markup produced by
// client-side scripts is not visible to it; use DynamicCapturer for that.
type StaticCapturer struct {
	config Config
}

// NewStatic creates a new static capturer.
func NewStatic(cfg Config) *StaticCapturer {
	return &StaticCapturer{config: cfg.withDefaults()}
}

// Capture fetches targetURL and selects the fragment.
func (s *StaticCapturer) Capture(ctx context.Context, targetURL string, opts Options) (Fragment, error) {
	logger.Debug("static capture starting", "url", targetURL, "selector", opts.Selector)

	result := Fragment{
		URL:        targetURL,
		Selector:   opts.Selector,
		CapturedAt: time.Now(),
	}

	userAgent := coalesce(opts.UserAgent, s.config.UserAgent)
	c := colly.NewCollector(
		colly.UserAgent(userAgent),
		colly.StdlibContext(ctx),
		colly.AllowURLRevisit(),
	)

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = s.config.Timeout
	}
	c.SetRequestTimeout(timeout)

	if len(opts.Headers) > 0 {
		c.OnRequest(func(r *colly.Request) {
			for k, v := range opts.Headers {
				r.Headers.Set(k, v)
			}
		})
	}

	var page string
	var fetchErr error

	c.OnResponse(func(r *colly.Response) {
		result.StatusCode = r.StatusCode
		page = string(r.Body)
		logger.Debug("static capture response received",
			"status", r.StatusCode,
			"content_type", r.Headers.Get("Content-Type"),
			"body_size", len(r.Body))
	})

	c.OnError(func(r *colly.Response, err error) {
		if r != nil {
			result.StatusCode = r.StatusCode
		}
		fetchErr = fmt.Errorf("fetch error: %w", err)
		logger.Debug("static capture error", "status", result.StatusCode, "error", err)
	})

	if err := c.Visit(targetURL); err != nil {
		if fetchErr != nil {
			return result, fetchErr
		}
		return result, fmt.Errorf("failed to visit URL: %w", err)
	}
	if fetchErr != nil {
		return result, fetchErr
	}

	fragment, matches, err := Select(page, opts)
	result.Matches = matches
	if err != nil {
		return result, err
	}
	result.HTML = fragment

	logger.Debug("static capture complete", "url", targetURL, "matches", matches, "bytes", len(fragment))
	return result, nil
}

// Close releases resources.
func (s *StaticCapturer) Close() error {
	return nil
}

// Type returns the capturer type.
func (s *StaticCapturer) Type() string {
	return ModeStatic
}
