// Package scan enumerates candidate media files under a source directory.
package scan

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/zoidzter/photo-sorter/internal/model"
)

// DefaultExtensions covers the common photo and video formats handled by
// the pipeline. Matching is case-insensitive on the file suffix.
var DefaultExtensions = []string{
	".jpg", ".jpeg", ".png", ".tiff", ".webp", ".heic", ".mov", ".mp4",
}

// NotFoundError reports a scan root that does not exist.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return "source path not found: " + e.Path
}

// Scan walks root and returns the media files found, in filesystem
// enumeration order. The order is implementation-defined and not sorted;
// callers must not depend on it for correctness.
//
// extensions is an optional case-insensitive suffix filter; when empty,
// DefaultExtensions is used. When recursive is false only direct children
// of root are considered.
//
// Scan fails with *NotFoundError when root does not exist. Unreadable
// entries below an existing root are skipped rather than failing the scan.
func Scan(root string, extensions []string, recursive bool) ([]model.MediaFile, error) {
	if _, err := os.Stat(root); err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Path: root}
		}
		return nil, err
	}

	exts := make(map[string]bool)
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	for _, e := range extensions {
		e = strings.ToLower(e)
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		exts[e] = true
	}

	var files []model.MediaFile

	collect := func(path string, entry fs.DirEntry) {
		if entry.IsDir() {
			return
		}
		if !exts[strings.ToLower(filepath.Ext(path))] {
			return
		}
		info, err := entry.Info()
		if err != nil {
			return
		}
		files = append(files, model.MediaFile{
			Path:    path,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	if recursive {
		err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				return nil // skip unreadable entries
			}
			collect(path, entry)
			return nil
		})
		if err != nil {
			return nil, err
		}
		return files, nil
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		collect(filepath.Join(root, entry.Name()), entry)
	}
	return files, nil
}
