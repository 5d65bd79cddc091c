// Command grok matches text against grok patterns from the command line.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "grok",
	Short: "Match text against grok patterns",
	Long: `grok expands %{NAME:alias} placeholders into regular expressions and
extracts the named fields from matching lines.

The bundled definitions (COMBINEDAPACHELOG, SYSLOGLINE, TIMESTAMP_ISO8601
and many more) are always available; -D adds definition files on top.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = newLogger(cmd.ErrOrStderr(), verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging on stderr")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
