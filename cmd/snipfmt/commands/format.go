package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/snipfmt/internal/logger"
	"github.com/jmylchreest/snipfmt/pkg/cleaner"
	"github.com/jmylchreest/snipfmt/pkg/formatter"
)

// Formatting engines selectable with --engine.
const (
	engineTree   = "tree"
	engineGohtml = "gohtml"
)

var formatCmd = &cobra.Command{
	Use:   "format [file]",
	Short: "Sanitize and re-indent a markup fragment",
	Long: `Format reads a fragment from a file or stdin, strips framework artifacts
and rebuilds its indentation from the element tree.

Examples:
  # Beautify a file
  snipfmt format card.html

  # Start one level deep and use two-space indentation
  snipfmt format card.html --level 1 --spaces 2

  # Only strip artifacts, keep the layout
  pbpaste | snipfmt format --sanitize-only

  # Use gohtml's layout instead of the tree indenter
  snipfmt format card.html --engine gohtml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFormat,
}

func init() {
	rootCmd.AddCommand(formatCmd)

	flags := formatCmd.Flags()
	flags.Int("level", 0, "starting indentation level")
	flags.Bool("sanitize-only", false, "strip artifacts without re-indenting")
	flags.String("engine", engineTree, "indentation engine: tree, gohtml")
	flags.Bool("stats", false, "print formatting stats to stderr")
	flags.StringP("output", "o", "", "output file (default: stdout)")
	flags.Bool("copy", false, "also copy the result to the clipboard")
}

func runFormat(cmd *cobra.Command, args []string) error {
	f, err := loadFormatter()
	if err != nil {
		return err
	}

	limit, err := maxInputSize()
	if err != nil {
		return err
	}
	markup, source, err := readInput(args, cmd.InOrStdin(), limit)
	if err != nil {
		return err
	}

	level, _ := cmd.Flags().GetInt("level")
	sanitizeOnly, _ := cmd.Flags().GetBool("sanitize-only")
	engine, _ := cmd.Flags().GetString("engine")
	showStats, _ := cmd.Flags().GetBool("stats")

	var result string
	switch {
	case sanitizeOnly:
		result = f.Sanitize(markup)
	case engine == engineTree:
		res, err := f.BeautifyWithStats(markup, level)
		if err != nil {
			return err
		}
		result = res.Content
		for _, w := range res.Warnings {
			logger.Warn("format warning", "source", source, "warning", w.String())
		}
		if showStats {
			logInfo("%s", strings.TrimRight(res.Stats.String(), "\n"))
		}
	default:
		c, err := engineCleaner(f, engine)
		if err != nil {
			return err
		}
		if result, err = c.Clean(markup); err != nil {
			return err
		}
	}

	return emit(cmd, result)
}

// engineCleaner returns the full sanitize-and-indent pipeline for engine.
func engineCleaner(f *formatter.Formatter, engine string) (cleaner.Cleaner, error) {
	switch engine {
	case engineTree:
		return f, nil
	case engineGohtml:
		return cleaner.NewChain(f.Sanitizer(), cleaner.NewPretty()), nil
	default:
		return nil, fmt.Errorf("unknown engine: %s (available: %s, %s)", engine, engineTree, engineGohtml)
	}
}

// emit writes result to --output (or stdout) and copies it when --copy is set.
func emit(cmd *cobra.Command, result string) error {
	path, _ := cmd.Flags().GetString("output")
	w, closeFn, err := openOutput(path)
	if err != nil {
		return err
	}
	if path == "" || path == "-" {
		w = cmd.OutOrStdout()
	}
	if _, err := fmt.Fprintln(w, result); err != nil {
		closeFn()
		return err
	}
	if err := closeFn(); err != nil {
		return err
	}

	if copyResult, _ := cmd.Flags().GetBool("copy"); copyResult {
		return copyToClipboard(result)
	}
	return nil
}
