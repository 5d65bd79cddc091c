// Package safefile provides hardened file reads for definition and input files.
package safefile

import (
	"errors"
	"io"
	"os"
)

// ErrNotRegularFile is returned when a path names something other than a
// regular file: a symlink, FIFO, device, socket or directory.
var ErrNotRegularFile = errors.New("not a regular file")

// ErrTooLarge is returned by ReadRegular when the file exceeds its size limit.
var ErrTooLarge = errors.New("file too large")

// OpenRegular opens path and verifies it is a regular file, both before
// opening (Lstat, so symlinks are rejected) and after (Stat on the open
// descriptor, so a swap between the two calls is caught).
//
// The caller must close the returned file.
func OpenRegular(path string) (*os.File, os.FileInfo, error) {
	linkInfo, err := os.Lstat(path)
	if err != nil {
		return nil, nil, err
	}
	if !linkInfo.Mode().IsRegular() {
		return nil, nil, ErrNotRegularFile
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	if !info.Mode().IsRegular() {
		f.Close()
		return nil, nil, ErrNotRegularFile
	}

	return f, info, nil
}

// ReadRegular reads a whole regular file of at most limit bytes.
// The limit is enforced both on the stat size and while reading, so a file
// that grows after the stat is still rejected.
func ReadRegular(path string, limit int64) ([]byte, error) {
	f, info, err := OpenRegular(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if info.Size() > limit {
		return nil, ErrTooLarge
	}

	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, ErrTooLarge
	}
	return data, nil
}
