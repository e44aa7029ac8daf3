// Package commands implements the CLI commands for snipfmt.
package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/snipfmt/internal/logger"
	"github.com/jmylchreest/snipfmt/pkg/formatter"
)

var rootCmd = &cobra.Command{
	Use:   "snipfmt",
	Short: "Clean and convert markup captured from rendered components",
	Long: `Snipfmt turns markup copied out of a running Angular app into clean,
portable HTML and re-emits it as Vue, React or Markdown source.

Framework debug attributes (ng-reflect-*, _ngcontent-*), binding comments and
empty class attributes are stripped, and indentation is rebuilt from the
element tree.

Examples:
  # Beautify a saved fragment
  snipfmt format card.html

  # Export to every target as YAML
  snipfmt export card.html -t all --format yaml

  # Grab a component from a running dev server
  snipfmt capture -u http://localhost:4200 -s app-pricing-card --dynamic -t react

  # Reformat HTML whenever it lands on the clipboard
  snipfmt watch`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(logger.Options{
			Debug: viper.GetBool("debug"),
			Quiet: viper.GetBool("quiet"),
			JSON:  viper.GetBool("log_json"),
		})
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default $HOME/.snipfmt.yaml)")
	pf.Bool("debug", false, "enable debug logging")
	pf.BoolP("quiet", "q", false, "suppress progress output")
	pf.Bool("log-json", false, "write logs as JSON")

	// Formatter settings
	pf.String("preset", "default", "formatter preset: default, minimal")
	pf.Int("spaces", 0, "indent with this many spaces instead of a tab")
	pf.String("component", "", "component name used by react exports")
	pf.String("max-size", "5MB", "max input size (e.g., 500KB, 5MB, 0=unlimited)")

	_ = viper.BindPFlag("config", pf.Lookup("config"))
	_ = viper.BindPFlag("debug", pf.Lookup("debug"))
	_ = viper.BindPFlag("quiet", pf.Lookup("quiet"))
	_ = viper.BindPFlag("log_json", pf.Lookup("log-json"))
	_ = viper.BindPFlag("preset", pf.Lookup("preset"))
	_ = viper.BindPFlag("spaces", pf.Lookup("spaces"))
	_ = viper.BindPFlag("component", pf.Lookup("component"))
	_ = viper.BindPFlag("max_size", pf.Lookup("max-size"))
}

func initConfig() {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".snipfmt")
		viper.SetConfigType("yaml")
	}

	// SNIPFMT_PRESET, SNIPFMT_SPACES, SNIPFMT_MAX_SIZE, ...
	viper.SetEnvPrefix("SNIPFMT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		logger.Debug("using config file", "path", viper.ConfigFileUsed())
	}
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		logError("%v", err)
	}
	return err
}

// loadFormatter builds the formatter from the preset, the config file's
// formatter section, and the flags, in that order of precedence.
func loadFormatter() (*formatter.Formatter, error) {
	cfg, err := formatter.Preset(viper.GetString("preset"))
	if err != nil {
		return nil, err
	}

	if err := viper.UnmarshalKey("formatter", cfg); err != nil {
		return nil, fmt.Errorf("failed to read formatter config: %w", err)
	}

	if n := viper.GetInt("spaces"); n > 0 {
		cfg.IndentUnit = strings.Repeat(" ", n)
	}
	if name := viper.GetString("component"); name != "" {
		cfg.ComponentName = name
	}

	f, err := formatter.New(cfg)
	if err != nil {
		return nil, err
	}
	logger.Debug("formatter configured",
		"preset", viper.GetString("preset"),
		"indent", fmt.Sprintf("%q", cfg.IndentUnit),
		"passes", len(f.Passes()))
	return f, nil
}

// logError prints an error message to stderr.
func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}

// logInfo prints an info message to stderr (unless quiet mode).
func logInfo(format string, args ...any) {
	if !viper.GetBool("quiet") {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
