package scanner

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/fjglira/issuebench/internal/domain"
)

// Scanner finds benchmark documents under a path.
type Scanner interface {
	Scan(root string) ([]string, error)
}

// DocumentScanner selects files by extension and skips excluded paths.
type DocumentScanner struct {
	Extensions []string
	// Excludes are doublestar patterns matched against slash-separated
	// paths relative to the scan root.
	Excludes  []string
	Recursive bool
}

// NewScanner creates a DocumentScanner for the given extensions.
func NewScanner(extensions, excludes []string, recursive bool) *DocumentScanner {
	exts := make([]string, 0, len(extensions))
	for _, e := range extensions {
		exts = append(exts, "."+strings.ToLower(strings.TrimPrefix(e, ".")))
	}
	return &DocumentScanner{Extensions: exts, Excludes: excludes, Recursive: recursive}
}

// Scan returns the sorted document paths under root. A root that is a file
// is returned as is, whatever its extension.
func (s *DocumentScanner) Scan(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, domain.NewError("parse", root, 0, "failed to scan path", err)
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if rel == "." {
				return nil
			}
			if !s.Recursive || s.excluded(rel) {
				return filepath.SkipDir
			}
			return nil
		}

		if s.excluded(rel) || !s.wanted(path) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, domain.NewError("parse", root, 0, "failed to scan directory", err)
	}

	sort.Strings(files)
	return files, nil
}

func (s *DocumentScanner) wanted(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range s.Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

func (s *DocumentScanner) excluded(rel string) bool {
	for _, pattern := range s.Excludes {
		if matched, err := doublestar.Match(pattern, rel); err == nil && matched {
			return true
		}
	}
	return false
}
