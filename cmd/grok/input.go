package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/nxadm/tail"

	"github.com/loggrok/grok/internal/safefile"
)

// maxLineSize bounds a single input line.
const maxLineSize = 1024 * 1024

type inputLine struct {
	file string
	num  int
	text string
}

// readInputs sends the lines of each path in order to out, then closes out.
// No paths, or "-", reads stdin. File names are attached to lines only when
// more than one input is given.
func readInputs(ctx context.Context, paths []string, stdin io.Reader, out chan<- inputLine) error {
	defer close(out)

	if len(paths) == 0 {
		paths = []string{"-"}
	}
	label := len(paths) > 1

	for i, p := range paths {
		name := ""
		if label {
			name = p
		}

		if p == "-" {
			if err := readLines(ctx, name, stdin, out); err != nil {
				return fmt.Errorf("stdin: %w", err)
			}
			continue
		}

		f, _, err := safefile.OpenRegular(p)
		if err != nil {
			return fmt.Errorf("input file %d: %w", i+1, err)
		}
		err = readLines(ctx, name, f, out)
		f.Close()
		if err != nil {
			return fmt.Errorf("input file %d: %w", i+1, err)
		}
	}
	return nil
}

func readLines(ctx context.Context, name string, r io.Reader, out chan<- inputLine) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	num := 0
	for sc.Scan() {
		num++
		ln := inputLine{file: name, num: num, text: strings.TrimRight(sc.Text(), "\r")}
		select {
		case out <- ln:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return sc.Err()
}

// followFile tails path like "tail -F", surviving rotation, until ctx is
// done. Reading starts at the end of the file unless fromStart is set.
func followFile(ctx context.Context, path string, fromStart bool, out chan<- inputLine, logger *slog.Logger) error {
	defer close(out)

	cfg := tail.Config{
		Follow:    true,
		ReOpen:    true,
		MustExist: true,
		Logger:    tail.DiscardingLogger,
	}
	if !fromStart {
		cfg.Location = &tail.SeekInfo{Offset: 0, Whence: io.SeekEnd}
	}

	t, err := tail.TailFile(path, cfg)
	if err != nil {
		return fmt.Errorf("follow: %w", err)
	}
	defer t.Cleanup()
	defer t.Stop()

	num := 0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case l, ok := <-t.Lines:
			if !ok {
				return nil
			}
			if l.Err != nil {
				logger.Warn("tail error", "error", l.Err)
				continue
			}
			num++
			select {
			case out <- inputLine{num: num, text: strings.TrimRight(l.Text, "\r")}:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}
