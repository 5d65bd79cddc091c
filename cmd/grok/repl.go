package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/loggrok/grok/pkg/grok"
)

var replFlags compileFlags

var replCmd = &cobra.Command{
	Use:   "repl PATTERN",
	Short: "Try a pattern against lines typed interactively",
	Long: `Compile PATTERN, then read lines interactively and print the fields of
each line. Enter ":pattern NEW" to switch to another pattern; patterns already
used are kept compiled. Ctrl-D or Ctrl-C on an empty line exits.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := buildGrok(&replFlags, logger)
		if err != nil {
			return err
		}
		cache := grok.NewCache(g, 0)
		p, err := cache.Get(args[0], replFlags.aliasOnly)
		if err != nil {
			return err
		}

		rl, err := readline.NewEx(&readline.Config{
			Prompt:          "grok> ",
			InterruptPrompt: "^C",
			EOFPrompt:       "exit",
		})
		if err != nil {
			return err
		}
		defer rl.Close()

		fmt.Fprintf(rl.Stdout(), "fields: %s\n", describeFields(p))
		for {
			line, err := rl.Readline()
			if errors.Is(err, readline.ErrInterrupt) {
				if line == "" {
					return nil
				}
				continue
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return err
			}

			if next, ok := strings.CutPrefix(line, ":pattern "); ok {
				np, err := cache.Get(strings.TrimSpace(next), replFlags.aliasOnly)
				if err != nil {
					fmt.Fprintf(rl.Stdout(), "error: %v\n", err)
					continue
				}
				p = np
				fmt.Fprintf(rl.Stdout(), "fields: %s\n", describeFields(p))
				continue
			}
			fmt.Fprintln(rl.Stdout(), describeMatch(p, line))
		}
	},
}

func init() {
	addCompileFlags(replCmd, &replFlags)

	rootCmd.AddCommand(replCmd)
}

func describeFields(p *grok.Pattern) string {
	names := p.FieldNames()
	if len(names) == 0 {
		return "(none)"
	}
	for i, n := range names {
		names[i] = quoteIfNeeded(n)
	}
	return strings.Join(names, " ")
}

// describeMatch renders the result of matching one line for the REPL.
func describeMatch(p *grok.Pattern, line string) string {
	fields := p.Parse(line)
	switch {
	case fields == nil:
		return "no match"
	case len(fields) == 0:
		return "match (no fields)"
	}
	return formatData(fields)
}
