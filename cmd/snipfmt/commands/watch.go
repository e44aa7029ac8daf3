package commands

import (
	"context"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.design/x/clipboard"

	"github.com/jmylchreest/snipfmt/internal/logger"
	"github.com/jmylchreest/snipfmt/pkg/syntax"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Reformat HTML whenever it is copied to the clipboard",
	Long: `Watch polls the clipboard. When it holds markup that snipfmt did not write
itself, the markup is converted and written back, ready to paste.

Copy an element's outer HTML from the browser's dev tools and paste the
cleaned version into your editor.

Examples:
  snipfmt watch
  snipfmt watch -t vue --interval 250ms
  snipfmt watch --engine gohtml`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	flags := watchCmd.Flags()
	flags.Duration("interval", 500*time.Millisecond, "clipboard poll interval")
	flags.StringP("target", "t", syntax.TargetHTML, "export target: "+strings.Join(syntax.Available(), ", "))
	flags.String("engine", engineTree, "indentation engine for the html target: tree, gohtml")
}

// clipboardIO is the part of the clipboard the watcher uses.
type clipboardIO interface {
	Read() string
	Write(text string)
}

type systemClipboard struct{}

func (systemClipboard) Read() string {
	return string(clipboard.Read(clipboard.FmtText))
}

func (systemClipboard) Write(text string) {
	clipboard.Write(clipboard.FmtText, []byte(text))
}

// clipboardWatcher rewrites clipboard markup once per change.
type clipboardWatcher struct {
	clip        clipboardIO
	convert     func(string) (string, error)
	lastWritten string
}

// looksLikeMarkup reports whether text starts with a tag.
func looksLikeMarkup(text string) bool {
	text = strings.TrimSpace(text)
	return strings.HasPrefix(text, "<") && strings.Contains(text, ">")
}

// step handles one poll and reports whether the clipboard was rewritten.
func (w *clipboardWatcher) step() (bool, error) {
	content := w.clip.Read()
	if content == w.lastWritten || !looksLikeMarkup(content) {
		return false, nil
	}

	converted, err := w.convert(content)
	if err != nil {
		// Remember it so a broken fragment is reported once.
		w.lastWritten = content
		return false, err
	}
	w.lastWritten = converted
	if converted == content {
		return false, nil
	}
	w.clip.Write(converted)
	return true, nil
}

func (w *clipboardWatcher) run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		changed, err := w.step()
		if err != nil {
			logger.Warn("could not convert clipboard contents", "error", err)
			continue
		}
		if changed {
			logInfo("Reformatted HTML in clipboard")
		}
	}
}

func runWatch(cmd *cobra.Command, args []string) error {
	f, err := loadFormatter()
	if err != nil {
		return err
	}

	interval, _ := cmd.Flags().GetDuration("interval")
	target, _ := cmd.Flags().GetString("target")
	engine, _ := cmd.Flags().GetString("engine")

	if _, err := resolveTargets([]string{target}); err != nil {
		return err
	}
	c, err := engineCleaner(f, engine)
	if err != nil {
		return err
	}
	exporter := syntax.New(f)

	convert := func(markup string) (string, error) {
		if target == syntax.TargetHTML {
			return c.Clean(markup)
		}
		return exporter.Export(target, markup)
	}

	if err := initClipboard(); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logInfo("Waiting for HTML in clipboard, press CTRL-C to stop")
	w := &clipboardWatcher{clip: systemClipboard{}, convert: convert}
	w.run(ctx, interval)
	return nil
}
