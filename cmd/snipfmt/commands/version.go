package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/snipfmt/internal/output"
	"github.com/jmylchreest/snipfmt/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		formatStr, _ := cmd.Flags().GetString("format")
		format, err := output.ParseFormat(formatStr)
		if err != nil {
			return err
		}
		if format == output.FormatRaw {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version.Full())
			return err
		}

		w, err := output.NewWriter(cmd.OutOrStdout(), format)
		if err != nil {
			return err
		}
		if err := w.Write(version.Get()); err != nil {
			return err
		}
		return w.Close()
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().String("format", string(output.FormatRaw), "output format: raw, json, jsonl, yaml")
	rootCmd.Version = version.String()
}
