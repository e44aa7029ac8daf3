package capture

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"

	"github.com/jmylchreest/snipfmt/internal/logger"
)

// DynamicCapturer renders pages in a headless browser before selecting, so
// fragments built by client-side frameworks are captured as the user sees
// them, runtime debug attributes included.
type DynamicCapturer struct {
	config    Config
	allocCtx  context.Context
	cancelCtx context.CancelFunc
}

// NewDynamic creates a capturer backed by one browser allocator. Each Capture
// opens its own tab.
func NewDynamic(cfg Config) (*DynamicCapturer, error) {
	cfg = cfg.withDefaults()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.WindowSize(1920, 1080),
		chromedp.UserAgent(cfg.UserAgent),
	)

	chromePath := cfg.ChromePath
	if chromePath == "" {
		chromePath = FindChromePath()
	}
	if chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)

	logger.Debug("dynamic capturer created",
		"headless", cfg.Headless,
		"chrome", chromePath,
		"timeout", cfg.Timeout)

	return &DynamicCapturer{
		config:    cfg,
		allocCtx:  allocCtx,
		cancelCtx: cancel,
	}, nil
}

// Capture renders targetURL, waits for opts.Selector (or body) and selects the
// fragment from the live DOM.
func (d *DynamicCapturer) Capture(ctx context.Context, targetURL string, opts Options) (Fragment, error) {
	result := Fragment{
		URL:        targetURL,
		Selector:   opts.Selector,
		CapturedAt: time.Now(),
	}

	browserCtx, cancelBrowser := chromedp.NewContext(d.allocCtx,
		chromedp.WithLogf(func(format string, args ...any) {
			logger.Debug("chromedp", "msg", fmt.Sprintf(format, args...))
		}),
	)
	defer cancelBrowser()

	// Cancel the tab when the caller's context ends.
	stop := context.AfterFunc(ctx, cancelBrowser)
	defer stop()

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = d.config.Timeout
	}
	timeoutCtx, cancelTimeout := context.WithTimeout(browserCtx, timeout)
	defer cancelTimeout()

	var actions []chromedp.Action
	if len(opts.Headers) > 0 {
		headers := make(network.Headers, len(opts.Headers))
		for k, v := range opts.Headers {
			headers[k] = v
		}
		actions = append(actions, network.Enable(), network.SetExtraHTTPHeaders(headers))
	}
	if opts.UserAgent != "" {
		actions = append(actions, network.SetUserAgentOverride(opts.UserAgent))
	}

	wait := coalesce(opts.Selector, "body")
	var page string
	actions = append(actions,
		chromedp.Navigate(targetURL),
		// WaitVisible polls forever on hidden fragments; WaitReady does not.
		chromedp.WaitReady(wait, chromedp.ByQuery),
	)
	if opts.WaitDuration > 0 {
		actions = append(actions, chromedp.Sleep(opts.WaitDuration))
	}
	actions = append(actions, chromedp.OuterHTML("html", &page, chromedp.ByQuery))

	logger.Debug("dynamic capture starting",
		"url", targetURL,
		"selector", opts.Selector,
		"action_count", len(actions),
		"timeout", timeout)

	if err := chromedp.Run(timeoutCtx, actions...); err != nil {
		if opts.Selector != "" && errors.Is(timeoutCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			return result, fmt.Errorf("%w: %s (waited %s)", ErrSelectorNotFound, opts.Selector, timeout)
		}
		return result, fmt.Errorf("browser automation failed: %w", err)
	}

	// chromedp does not expose the navigation status code.
	result.StatusCode = 200

	fragment, matches, err := Select(page, opts)
	result.Matches = matches
	if err != nil {
		return result, err
	}
	result.HTML = fragment

	logger.Debug("dynamic capture complete", "url", targetURL, "matches", matches, "bytes", len(fragment))
	return result, nil
}

// Close shuts down the browser.
func (d *DynamicCapturer) Close() error {
	if d.cancelCtx != nil {
		d.cancelCtx()
	}
	return nil
}

// Type returns the capturer type.
func (d *DynamicCapturer) Type() string {
	return ModeDynamic
}
