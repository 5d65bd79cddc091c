package main

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"
)

var (
	patternsFlags  compileFlags
	patternsFilter string
)

var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "List the available definitions",
	Long: `Print every definition as "NAME body", sorted by name. The output is
itself a valid definition file.

Examples:
  grok patterns
  grok patterns --filter 'HTTPD*'
  grok patterns -D 'patterns/**/*.yaml' --filter 'APP_*'`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if patternsFilter != "" && !doublestar.ValidatePattern(patternsFilter) {
			return fmt.Errorf("invalid --filter pattern %q", patternsFilter)
		}

		g, err := buildGrok(&patternsFlags, logger)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, d := range g.Definitions() {
			if patternsFilter != "" {
				if ok, _ := doublestar.Match(patternsFilter, d.Name); !ok {
					continue
				}
			}
			if _, err := fmt.Fprintf(out, "%s %s\n", d.Name, d.Body); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	addDefinitionFlags(patternsCmd, &patternsFlags)
	patternsCmd.Flags().StringVar(&patternsFilter, "filter", "",
		"Only list names matching this glob")

	rootCmd.AddCommand(patternsCmd)
}
