// Package storage performs the filesystem work of a transfer run on top of a
// go-billy filesystem. Production runs use osfs rooted at "/"; tests chroot into
// a temporary directory and can wrap the filesystem to inject failures.
package storage

import (
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"os"
	"sort"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
)

// OpError records which operation failed on which path.
type OpError struct {
	Op   string
	Path string
	Err  error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// Kind names the type of the underlying error, e.g. "*fs.PathError".
func (e *OpError) Kind() string {
	return fmt.Sprintf("%T", e.Err)
}

// Describe renders the error the way it appears in the run report.
func Describe(err error) string {
	var opErr *OpError
	if errors.As(err, &opErr) {
		return fmt.Sprintf("An error of type %s occurred: %v", opErr.Kind(), opErr.Err)
	}
	return fmt.Sprintf("An error of type %T occurred: %v", err, err)
}

// CopyStats summarises one CopyTree call.
type CopyStats struct {
	Files int
	Dirs  int
	Bytes int64
}

// Storage wraps a billy filesystem addressed with absolute paths.
type Storage struct {
	fs billy.Filesystem
}

// New returns a Storage over fs.
func New(fs billy.Filesystem) *Storage {
	return &Storage{fs: fs}
}

// NewOS returns a Storage over the host filesystem.
func NewOS() *Storage {
	return New(osfs.New("/"))
}

// Exists reports whether path exists. Errors other than "not found" are returned.
func (s *Storage) Exists(path string) (bool, error) {
	_, err := s.fs.Lstat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, iofs.ErrNotExist):
		return false, nil
	default:
		return false, &OpError{Op: "stat", Path: path, Err: err}
	}
}

// IsFile reports whether path exists and is a regular file.
func (s *Storage) IsFile(path string) (bool, error) {
	info, err := s.fs.Stat(path)
	switch {
	case err == nil:
		return info.Mode().IsRegular(), nil
	case errors.Is(err, iofs.ErrNotExist):
		return false, nil
	default:
		return false, &OpError{Op: "stat", Path: path, Err: err}
	}
}

// ModTime returns the last modification time of path.
func (s *Storage) ModTime(path string) (time.Time, error) {
	info, err := s.fs.Stat(path)
	if err != nil {
		return time.Time{}, &OpError{Op: "stat", Path: path, Err: err}
	}
	return info.ModTime(), nil
}

// ListNames returns the sorted names of all entries in dir.
// The error wraps fs.ErrNotExist when dir is missing.
func (s *Storage) ListNames(dir string) ([]string, error) {
	infos, err := s.fs.ReadDir(dir)
	if err != nil {
		return nil, &OpError{Op: "readdir", Path: dir, Err: err}
	}
	names := make([]string, 0, len(infos))
	for _, info := range infos {
		names = append(names, info.Name())
	}
	sort.Strings(names)
	return names, nil
}

// CopyTree copies the tree at src into dst. Existing directories are merged
// and existing files are overwritten. Symlinks are followed, so dst receives
// the data they point to rather than the links themselves.
func (s *Storage) CopyTree(src, dst string) (CopyStats, error) {
	var stats CopyStats
	err := s.copyTree(src, dst, &stats)
	return stats, err
}

func (s *Storage) copyTree(src, dst string, stats *CopyStats) error {
	info, err := s.fs.Stat(src)
	if err != nil {
		return &OpError{Op: "stat", Path: src, Err: err}
	}

	if !info.IsDir() {
		n, err := s.copyFile(src, dst, info)
		if err != nil {
			return err
		}
		stats.Files++
		stats.Bytes += n
		return nil
	}

	if err := s.fs.MkdirAll(dst, info.Mode().Perm()|0o700); err != nil {
		return &OpError{Op: "mkdir", Path: dst, Err: err}
	}
	stats.Dirs++

	entries, err := s.fs.ReadDir(src)
	if err != nil {
		return &OpError{Op: "readdir", Path: src, Err: err}
	}
	for _, entry := range entries {
		name := entry.Name()
		if err := s.copyTree(s.fs.Join(src, name), s.fs.Join(dst, name), stats); err != nil {
			return err
		}
	}
	return nil
}

func (s *Storage) copyFile(src, dst string, info os.FileInfo) (int64, error) {
	in, err := s.fs.Open(src)
	if err != nil {
		return 0, &OpError{Op: "open", Path: src, Err: err}
	}
	defer in.Close()

	out, err := s.fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return 0, &OpError{Op: "create", Path: dst, Err: err}
	}
	n, err := io.Copy(out, in)
	if err != nil {
		out.Close()
		return n, &OpError{Op: "write", Path: dst, Err: err}
	}
	if err := out.Close(); err != nil {
		return n, &OpError{Op: "close", Path: dst, Err: err}
	}

	// Keep the acquisition timestamps when the filesystem allows it
	if ch, ok := s.fs.(billy.Change); ok {
		if err := ch.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
			return n, &OpError{Op: "chtimes", Path: dst, Err: err}
		}
	}
	return n, nil
}

// RemoveTree removes path and everything below it.
func (s *Storage) RemoveTree(path string) error {
	if err := util.RemoveAll(s.fs, path); err != nil {
		return &OpError{Op: "rmtree", Path: path, Err: err}
	}
	return nil
}

// RemoveDir removes path, which must be an empty directory.
func (s *Storage) RemoveDir(path string) error {
	if err := s.fs.Remove(path); err != nil {
		return &OpError{Op: "rmdir", Path: path, Err: err}
	}
	return nil
}
