package tasks

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/karrick/godirwalk"
)

// imageExtensions are the file types picked up when a directory is expanded.
var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

// IsImagePath reports whether path has one of the recognised image extensions.
func IsImagePath(path string) bool {
	return slices.Contains(imageExtensions, strings.ToLower(filepath.Ext(path)))
}

// Collect resolves command-line paths into upload candidates.
//
// Files are taken as given. Directories are walked recursively for image files, skipping
// dot-prefixed entries; each directory's matches are sorted by path. Duplicates are dropped.
func Collect(paths []string) ([]File, error) {
	var files []File
	seen := make(map[string]bool)

	add := func(path string) error {
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		if seen[abs] {
			return nil
		}
		seen[abs] = true

		f, err := OpenFile(path)
		if err != nil {
			return err
		}
		files = append(files, f)
		return nil
	}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", p, err)
		}

		if !info.IsDir() {
			if err := add(p); err != nil {
				return nil, err
			}
			continue
		}

		found, err := findImages(p)
		if err != nil {
			return nil, err
		}
		for _, path := range found {
			if err := add(path); err != nil {
				return nil, err
			}
		}
	}

	return files, nil
}

func findImages(root string) ([]string, error) {
	var found []string
	err := godirwalk.Walk(root, &godirwalk.Options{
		Callback: func(path string, de *godirwalk.Dirent) error {
			if path != root && strings.HasPrefix(filepath.Base(path), ".") {
				if de.IsDir() {
					return godirwalk.SkipThis
				}
				return nil
			}
			if de.IsRegular() && IsImagePath(path) {
				found = append(found, path)
			}
			return nil
		},
		Unsorted: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	slices.Sort(found)
	return found, nil
}
