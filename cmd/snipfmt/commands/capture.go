package commands

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/snipfmt/internal/logger"
	"github.com/jmylchreest/snipfmt/pkg/capture"
)

var captureCmd = &cobra.Command{
	Use:   "capture",
	Short: "Capture a fragment from a live page and export it",
	Long: `Capture loads a page, selects a fragment with a CSS selector and exports
it like the export command does.

Static mode fetches the server response; dynamic mode renders the page in
headless Chrome first, which is what client-side apps need.

Examples:
  # A server-rendered fragment
  snipfmt capture -u https://example.com -s "main .card"

  # An Angular component from a dev server, as a React component
  snipfmt capture -u http://localhost:4200 -s app-hero --dynamic -t react

  # Every matching row, with a wait for late rendering
  snipfmt capture -u http://localhost:4200/table -s "tr.row" --all --dynamic --wait 2s`,
	RunE: runCapture,
}

func init() {
	rootCmd.AddCommand(captureCmd)
	addExportFlags(captureCmd)

	flags := captureCmd.Flags()
	flags.StringP("url", "u", "", "page URL (required)")
	flags.StringP("selector", "s", "", "CSS selector of the fragment (default: body contents)")
	flags.Bool("all", false, "keep every match instead of the first")
	flags.StringSlice("remove", nil, "selectors to delete from the fragment (e.g. script,.sr-only)")
	flags.Bool("dynamic", false, "render the page in headless Chrome before selecting")
	flags.Duration("timeout", 30*time.Second, "request timeout")
	flags.Duration("wait", 0, "extra wait after load (dynamic only)")
	flags.String("user-agent", "", "override the user agent")
	flags.StringArrayP("header", "H", nil, "extra request header as 'Name: value' (can be repeated)")
	flags.String("chrome", "", "Chrome binary path (dynamic only)")
	flags.Bool("headful", false, "show the browser window (dynamic only)")
	flags.Bool("copy", false, "also copy the content of the last target to the clipboard")

	_ = captureCmd.MarkFlagRequired("url")
}

func parseHeaders(values []string) (map[string]string, error) {
	if len(values) == 0 {
		return nil, nil
	}
	headers := make(map[string]string, len(values))
	for _, v := range values {
		name, value, ok := strings.Cut(v, ":")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid header %q: want 'Name: value'", v)
		}
		headers[name] = strings.TrimSpace(value)
	}
	return headers, nil
}

func runCapture(cmd *cobra.Command, args []string) error {
	f, err := loadFormatter()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	flags := cmd.Flags()
	url, _ := flags.GetString("url")
	selector, _ := flags.GetString("selector")
	all, _ := flags.GetBool("all")
	remove, _ := flags.GetStringSlice("remove")
	dynamic, _ := flags.GetBool("dynamic")
	timeout, _ := flags.GetDuration("timeout")
	wait, _ := flags.GetDuration("wait")
	userAgent, _ := flags.GetString("user-agent")
	chromePath, _ := flags.GetString("chrome")
	headful, _ := flags.GetBool("headful")
	headerValues, _ := flags.GetStringArray("header")

	headers, err := parseHeaders(headerValues)
	if err != nil {
		return err
	}

	mode := capture.ModeStatic
	if dynamic {
		mode = capture.ModeDynamic
	}
	c, err := capture.New(mode, capture.Config{
		UserAgent:  userAgent,
		Timeout:    timeout,
		Headless:   !headful,
		ChromePath: chromePath,
	})
	if err != nil {
		return err
	}
	defer c.Close()

	logInfo("Capturing %s (%s)", url, c.Type())
	start := time.Now()
	frag, err := c.Capture(ctx, url, capture.Options{
		Selector:     selector,
		All:          all,
		Remove:       remove,
		UserAgent:    userAgent,
		Timeout:      timeout,
		WaitDuration: wait,
		Headers:      headers,
	})
	if err != nil {
		return err
	}
	logger.Debug("fragment captured",
		"url", frag.URL,
		"status", frag.StatusCode,
		"matches", frag.Matches,
		"bytes", len(frag.HTML),
		"duration", time.Since(start))
	if frag.Matches > 1 && !all {
		logInfo("Selector matched %d elements, using the first (pass --all for every match)", frag.Matches)
	}

	records, err := buildRecords(cmd, f, frag.HTML, frag.URL)
	if err != nil {
		return err
	}
	if err := writeRecords(cmd, records); err != nil {
		return err
	}

	if copyResult, _ := flags.GetBool("copy"); copyResult && len(records) > 0 {
		return copyToClipboard(records[len(records)-1].Content)
	}
	return nil
}
