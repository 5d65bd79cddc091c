// Package logfinder resolves which file "grok match --follow" should tail.
package logfinder

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// EnvFollow is the environment variable naming the default follow target.
const EnvFollow = "GROK_FOLLOW"

// Sentinel errors.
var (
	ErrNoTarget   = errors.New("no file to follow")
	ErrNoLogFiles = errors.New("no log files found")
)

// Resolve returns the file to follow.
//
// Priority:
//  1. target (if non-empty)
//  2. GROK_FOLLOW environment variable
//
// A target containing glob metacharacters resolves to the newest regular
// file it matches (see FindLatest). Plain paths are returned unchanged.
func Resolve(target string) (string, error) {
	if target == "" {
		target = os.Getenv(EnvFollow)
		if target == "" {
			return "", fmt.Errorf("%w: pass a FILE or set %s", ErrNoTarget, EnvFollow)
		}
	}

	if !isGlob(target) {
		return target, nil
	}
	return FindLatest(target)
}

// logCandidate holds a log file path and its cached modification time.
// This avoids race conditions where files are deleted between stat and sort.
type logCandidate struct {
	path    string
	modTime int64
}

// FindLatest returns the most recently modified regular file matching the
// doublestar glob pattern, such as "/var/log/app/**/*.log".
//
// Returns ErrNoLogFiles if nothing matches.
func FindLatest(pattern string) (string, error) {
	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return "", fmt.Errorf("globbing log files: %w", err)
	}

	// Stat files once and cache results to avoid race conditions
	candidates := make([]logCandidate, 0, len(matches))
	for _, m := range matches {
		info, err := os.Lstat(m)
		if err != nil {
			// Deleted since the glob, or unreadable.
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}
		candidates = append(candidates, logCandidate{
			path:    m,
			modTime: info.ModTime().UnixNano(),
		})
	}

	if len(candidates) == 0 {
		return "", ErrNoLogFiles
	}

	// Newest first; ties broken by path so the choice is stable.
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].modTime != candidates[j].modTime {
			return candidates[i].modTime > candidates[j].modTime
		}
		return candidates[i].path < candidates[j].path
	})

	return candidates[0].path, nil
}

func isGlob(s string) bool {
	return strings.ContainsAny(s, "*?[{")
}
