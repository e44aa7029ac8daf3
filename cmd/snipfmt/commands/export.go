package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/snipfmt/internal/logger"
	"github.com/jmylchreest/snipfmt/internal/output"
	"github.com/jmylchreest/snipfmt/pkg/formatter"
	"github.com/jmylchreest/snipfmt/pkg/syntax"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Convert a fragment to Vue, React, Markdown or plain HTML",
	Long: `Export beautifies a fragment and wraps it for one or more targets.

Targets: html, vue, react (function component), react-class, markdown.
Use -t all for every target.

Examples:
  # React function component on stdout
  snipfmt export card.html -t react

  # Vue and React as JSON records
  snipfmt export card.html -t vue,react --format json

  # All targets with stats, as YAML
  snipfmt export card.html -t all --format yaml --stats`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	addExportFlags(exportCmd)
	exportCmd.Flags().Bool("copy", false, "also copy the content of the last target to the clipboard")
}

// addExportFlags registers the flags shared by export and capture.
func addExportFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringSliceP("target", "t", []string{syntax.TargetHTML}, "export target(s): "+strings.Join(syntax.Available(), ", ")+", all")
	flags.String("format", string(output.FormatRaw), "output format: "+strings.Join(output.Formats(), ", "))
	flags.StringP("output", "o", "", "output file (default: stdout)")
	flags.Bool("stats", false, "include formatting stats in json/yaml records")
}

func runExport(cmd *cobra.Command, args []string) error {
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

	records, err := buildRecords(cmd, f, markup, source)
	if err != nil {
		return err
	}
	if err := writeRecords(cmd, records); err != nil {
		return err
	}

	if copyResult, _ := cmd.Flags().GetBool("copy"); copyResult && len(records) > 0 {
		return copyToClipboard(records[len(records)-1].Content)
	}
	return nil
}

// resolveTargets expands "all" and rejects unknown names before any work.
func resolveTargets(requested []string) ([]string, error) {
	available := syntax.Available()
	var targets []string
	for _, t := range requested {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "all" {
			return available, nil
		}
		found := false
		for _, a := range available {
			if a == t {
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: %s (available: %s, all)", syntax.ErrUnknownTarget, t, strings.Join(available, ", "))
		}
		targets = append(targets, t)
	}
	return targets, nil
}

// buildRecords exports markup to every requested target.
func buildRecords(cmd *cobra.Command, f *formatter.Formatter, markup, source string) ([]output.ExportRecord, error) {
	requested, _ := cmd.Flags().GetStringSlice("target")
	targets, err := resolveTargets(requested)
	if err != nil {
		return nil, err
	}
	withStats, _ := cmd.Flags().GetBool("stats")

	var stats *formatter.Stats
	var warnings []formatter.Warning
	if withStats {
		res, err := f.BeautifyWithStats(markup, 0)
		if err != nil {
			return nil, err
		}
		stats, warnings = res.Stats, res.Warnings
	}

	exporter := syntax.New(f)
	records := make([]output.ExportRecord, 0, len(targets))
	for _, target := range targets {
		start := time.Now()
		content, err := exporter.Export(target, markup)
		if err != nil {
			return nil, fmt.Errorf("export %s: %w", target, err)
		}
		logger.Debug("target exported", "target", target, "bytes", len(content), "duration", time.Since(start))

		records = append(records, output.ExportRecord{
			Target:   target,
			Source:   source,
			Content:  content,
			Stats:    stats,
			Warnings: warnings,
			Created:  time.Now().UTC(),
		})
	}
	return records, nil
}

// writeRecords renders records in --format to --output.
func writeRecords(cmd *cobra.Command, records []output.ExportRecord) error {
	formatStr, _ := cmd.Flags().GetString("format")
	format, err := output.ParseFormat(formatStr)
	if err != nil {
		return err
	}

	path, _ := cmd.Flags().GetString("output")
	dst, closeFn, err := openOutput(path)
	if err != nil {
		return err
	}
	defer closeFn()
	if path == "" || path == "-" {
		dst = cmd.OutOrStdout()
	}

	w, err := output.NewWriter(dst, format)
	if err != nil {
		return err
	}
	items := make([]any, len(records))
	for i, r := range records {
		items[i] = r
	}
	if err := w.WriteAll(items); err != nil {
		return err
	}
	return w.Close()
}
