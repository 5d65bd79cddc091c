package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	fieldsFlags compileFlags
	fieldsExpr  bool
)

var fieldsCmd = &cobra.Command{
	Use:   "fields PATTERN",
	Short: "List the fields a pattern produces",
	Long: `Compile PATTERN and print the names of the fields it produces, sorted,
one per line. With --expr the flattened regular expression is printed instead.

Examples:
  grok fields '%{COMBINEDAPACHELOG}' --alias-only
  grok fields '%{IP:client} %{NUMBER:bytes}' --expr`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := compilePattern(&fieldsFlags, args[0], logger)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if fieldsExpr {
			_, err = fmt.Fprintln(out, p.String())
			return err
		}
		for _, name := range p.FieldNames() {
			if _, err := fmt.Fprintln(out, name); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	addCompileFlags(fieldsCmd, &fieldsFlags)
	fieldsCmd.Flags().BoolVar(&fieldsExpr, "expr", false,
		"Print the flattened regular expression")

	rootCmd.AddCommand(fieldsCmd)
}
