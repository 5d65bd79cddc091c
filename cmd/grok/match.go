package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sourcegraph/conc/stream"
	"github.com/spf13/cobra"

	"github.com/loggrok/grok/internal/logfinder"
	"github.com/loggrok/grok/pkg/grok"
)

var (
	// match flags
	matchFlags     compileFlags
	matchFormat    string
	matchWorkers   int
	matchFollow    bool
	matchFromStart bool
)

var matchCmd = &cobra.Command{
	Use:   "match PATTERN [FILE...]",
	Short: "Print the fields of every line matching a pattern",
	Long: `Match each input line against PATTERN and print the fields of the
lines that match. Input is read from the given files in order, or from stdin.

Records are output as JSON Lines by default, one object per matching line:
  {"line":12,"fields":{"client":"55.3.244.1","method":"GET"}}

Examples:
  # Parse an access log
  grok match '%{COMBINEDAPACHELOG}' --alias-only access.log

  # Custom pattern from stdin
  echo '55.3.244.1 GET /index.html' | grok match '%{IP:client} %{WORD:method} %{URIPATHPARAM:request}'

  # Additional definitions, human-readable output
  grok match '%{APPLINE}' -D 'patterns/*.pattern' --format pretty app.log

  # Follow a growing file
  grok match '%{SYSLOGLINE}' --alias-only --follow /var/log/syslog

  # Follow the newest file matching a glob (or set GROK_FOLLOW)
  grok match '%{APPLINE}' -D app.pattern --follow '/var/log/app/*.log'`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMatch,
}

func init() {
	addCompileFlags(matchCmd, &matchFlags)
	matchCmd.Flags().StringVarP(&matchFormat, "format", "f", "jsonl",
		"Output format: jsonl, pretty")
	matchCmd.Flags().IntVarP(&matchWorkers, "workers", "w", 1,
		"Number of lines matched in parallel (output order is preserved)")
	matchCmd.Flags().BoolVar(&matchFollow, "follow", false,
		"Keep reading FILE (or the newest file matching a glob) as it grows")
	matchCmd.Flags().BoolVar(&matchFromStart, "from-start", false,
		"With --follow, start at the beginning of FILE instead of the end")

	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, args []string) error {
	if !validFormats[matchFormat] {
		return fmt.Errorf("unknown format: %s", matchFormat)
	}
	if matchWorkers < 1 {
		return fmt.Errorf("--workers must be at least 1, got %d", matchWorkers)
	}
	var followPath string
	if matchFollow {
		if len(args) > 2 {
			return errors.New("--follow takes at most one FILE")
		}
		target := ""
		if len(args) == 2 {
			target = args[1]
		}
		path, err := logfinder.Resolve(target)
		if err != nil {
			return err
		}
		followPath = path
		logger.Debug("following", "path", followPath)
	}

	p, err := compilePattern(&matchFlags, args[0], logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan inputLine, 4*matchWorkers)
	readErr := make(chan error, 1)
	go func() {
		if matchFollow {
			readErr <- followFile(ctx, followPath, matchFromStart, lines, logger)
			return
		}
		readErr <- readInputs(ctx, args[1:], cmd.InOrStdin(), lines)
	}()

	out := cmd.OutOrStdout()
	matched, err := matchLines(ctx, p, lines, matchWorkers, func(r Record) error {
		return outputRecord(matchFormat, r, out)
	})
	cancel()
	rerr := <-readErr
	if err != nil {
		return fmt.Errorf("output error: %w", err)
	}
	if rerr != nil && !errors.Is(rerr, context.Canceled) {
		return rerr
	}

	logger.Debug("match finished", "matched", matched)
	return nil
}

// matchLines matches every line received from lines, using up to workers
// goroutines, and calls emit for each match in input order. It stops when
// lines is closed, ctx is done, or emit fails.
func matchLines(ctx context.Context, p *grok.Pattern, lines <-chan inputLine, workers int, emit func(Record) error) (int, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s := stream.New().WithMaxGoroutines(workers)

	// Only touched by stream callbacks, which never run concurrently.
	var (
		matched int
		emitErr error
	)

loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case ln, ok := <-lines:
			if !ok {
				break loop
			}
			s.Go(func() stream.Callback {
				fields := p.Parse(ln.text)
				return func() {
					if fields == nil || emitErr != nil {
						return
					}
					if err := emit(Record{File: ln.file, Line: ln.num, Fields: fields}); err != nil {
						emitErr = err
						cancel()
						return
					}
					matched++
				}
			})
		}
	}

	s.Wait()
	return matched, emitErr
}
