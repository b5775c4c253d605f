package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// ErrNotTarget is returned by Expand for a file argument whose extension
// is not scanned.
var ErrNotTarget = errors.New("not a target file")

type FileInfo struct {
	Path string
	Size int64
}

type Scanner struct {
	extensions []string
	recursive  bool
	ignore     []string
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithRecursive makes directory arguments include files of subdirectories.
func WithRecursive(recursive bool) Option {
	return func(s *Scanner) { s.recursive = recursive }
}

// WithIgnore skips files matching any of the doublestar patterns. A pattern
// is matched against both the slash separated path and the base name.
func WithIgnore(patterns ...string) Option {
	return func(s *Scanner) { s.ignore = append(s.ignore, patterns...) }
}

func New(extensions []string, opts ...Option) *Scanner {
	s := &Scanner{extensions: extensions}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Expand resolves one command line path to the files it names, sorted by
// path. A file argument names itself; a directory names its direct target
// children, or all target descendants when recursive.
func (s *Scanner) Expand(path string) ([]FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", path, err)
	}

	if !info.IsDir() {
		if !s.IsTarget(path) {
			return nil, fmt.Errorf("%s: %w", path, ErrNotTarget)
		}
		if s.isIgnored(path) {
			return nil, nil
		}
		return []FileInfo{{Path: path, Size: info.Size()}}, nil
	}

	var files []FileInfo
	if s.recursive {
		files, err = s.walk(path)
	} else {
		files, err = s.list(path)
	}
	if err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

func (s *Scanner) list(dir string) ([]FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("error reading directory %s: %w", dir, err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if !s.IsTarget(path) || s.isIgnored(path) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("error accessing %s: %w", path, err)
		}
		files = append(files, FileInfo{Path: path, Size: info.Size()})
	}
	return files, nil
}

func (s *Scanner) walk(root string) ([]FileInfo, error) {
	var files []FileInfo
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && s.isIgnored(path) {
				return filepath.SkipDir
			}
			return nil
		}
		if !s.IsTarget(path) || s.isIgnored(path) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		files = append(files, FileInfo{Path: path, Size: info.Size()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking directory %s: %w", root, err)
	}
	return files, nil
}

// IsTarget reports whether path has one of the scanned extensions.
func (s *Scanner) IsTarget(path string) bool {
	if len(s.extensions) == 0 {
		return true
	}

	ext := filepath.Ext(path)
	for _, targetExt := range s.extensions {
		if ext == targetExt {
			return true
		}
	}
	return false
}

func (s *Scanner) isIgnored(path string) bool {
	slashed := filepath.ToSlash(path)
	base := filepath.Base(path)
	for _, pattern := range s.ignore {
		if ok, _ := doublestar.Match(pattern, slashed); ok {
			return true
		}
		if ok, _ := doublestar.Match(pattern, base); ok {
			return true
		}
	}
	return false
}
