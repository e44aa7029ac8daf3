package commands

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/spf13/viper"
	"golang.design/x/clipboard"

	"github.com/jmylchreest/snipfmt/internal/logger"
)

// maxInputSize returns the --max-size limit in bytes; 0 means unlimited.
func maxInputSize() (int64, error) {
	s := strings.TrimSpace(viper.GetString("max_size"))
	if s == "" || s == "0" {
		return 0, nil
	}
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, fmt.Errorf("invalid max-size %q: %w", s, err)
	}
	return int64(n), nil
}

// readInput reads markup from the file named by the first argument, or from
// stdin when there is none or it is "-". It returns the markup and a label for
// where it came from.
func readInput(args []string, stdin io.Reader, limit int64) (string, string, error) {
	var r io.Reader = stdin
	source := "stdin"
	if len(args) > 0 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return "", "", fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		r = f
		source = args[0]
	}

	if limit > 0 {
		// One byte over the limit is enough to know it was exceeded.
		r = io.LimitReader(r, limit+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", "", fmt.Errorf("failed to read %s: %w", source, err)
	}
	if limit > 0 && int64(len(data)) > limit {
		return "", "", fmt.Errorf("%s exceeds max size of %s", source, humanize.Bytes(uint64(limit)))
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", "", fmt.Errorf("empty input from %s", source)
	}

	logger.Debug("input read", "source", source, "size", humanize.Bytes(uint64(len(data))))
	return string(data), source, nil
}

// openOutput returns the file at path, or stdout for "" and "-".
func openOutput(path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, f.Close, nil
}

var (
	clipboardOnce sync.Once
	clipboardErr  error
)

func initClipboard() error {
	clipboardOnce.Do(func() {
		clipboardErr = clipboard.Init()
	})
	if clipboardErr != nil {
		return fmt.Errorf("clipboard unavailable: %w", clipboardErr)
	}
	return nil
}

// copyToClipboard places text on the system clipboard.
func copyToClipboard(text string) error {
	if err := initClipboard(); err != nil {
		return err
	}
	clipboard.Write(clipboard.FmtText, []byte(text))
	logInfo("Copied %s to clipboard", humanize.Bytes(uint64(len(text))))
	return nil
}
