package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/snipfmt/pkg/formatter"
)

var themeCmd = &cobra.Command{
	Use:   "theme [file]",
	Short: "Add or remove dark variants and swap color tokens",
	Long: `Theme edits utility classes inside class attributes.

--dark adds the dark: variant to color utilities (bg-white becomes
dark:bg-white), --light removes every dark: marker, and --replace-color
swaps one color token for another in the first class that uses it.

Examples:
  snipfmt theme card.html --dark
  snipfmt theme card.html --replace-color coolGray:slate --beautify`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTheme,
}

func init() {
	rootCmd.AddCommand(themeCmd)

	flags := themeCmd.Flags()
	flags.Bool("dark", false, "add dark variants to color utilities")
	flags.Bool("light", false, "remove dark variants")
	flags.StringSlice("replace-color", nil, "old:new color token pair (can be repeated)")
	flags.Bool("beautify", false, "beautify the result")
	flags.StringP("output", "o", "", "output file (default: stdout)")
	flags.Bool("copy", false, "also copy the result to the clipboard")

	themeCmd.MarkFlagsMutuallyExclusive("dark", "light")
}

// colorPair is one --replace-color argument.
type colorPair struct {
	from, to string
}

func parseColorPairs(values []string) ([]colorPair, error) {
	pairs := make([]colorPair, 0, len(values))
	for _, v := range values {
		from, to, ok := strings.Cut(v, ":")
		if !ok || from == "" || to == "" {
			return nil, fmt.Errorf("invalid --replace-color %q: want old:new", v)
		}
		pairs = append(pairs, colorPair{from: from, to: to})
	}
	return pairs, nil
}

// applyTheme runs the variant toggle, then each color swap, then beautifies.
func applyTheme(f *formatter.Formatter, markup string, dark, light bool, pairs []colorPair, beautify bool) (string, error) {
	switch {
	case dark:
		markup = f.ToggleThemeVariant(markup, true)
	case light:
		markup = f.ToggleThemeVariant(markup, false)
	}
	for _, p := range pairs {
		markup = formatter.ReplaceColor(markup, p.from, p.to)
	}
	if beautify {
		return f.Beautify(markup, 0)
	}
	return markup, nil
}

func runTheme(cmd *cobra.Command, args []string) error {
	f, err := loadFormatter()
	if err != nil {
		return err
	}

	dark, _ := cmd.Flags().GetBool("dark")
	light, _ := cmd.Flags().GetBool("light")
	replace, _ := cmd.Flags().GetStringSlice("replace-color")
	beautify, _ := cmd.Flags().GetBool("beautify")

	pairs, err := parseColorPairs(replace)
	if err != nil {
		return err
	}
	if !dark && !light && len(pairs) == 0 {
		return fmt.Errorf("nothing to do: pass --dark, --light or --replace-color")
	}

	limit, err := maxInputSize()
	if err != nil {
		return err
	}
	markup, _, err := readInput(args, cmd.InOrStdin(), limit)
	if err != nil {
		return err
	}

	result, err := applyTheme(f, markup, dark, light, pairs, beautify)
	if err != nil {
		return err
	}
	return emit(cmd, result)
}
