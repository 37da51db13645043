// Package copier copies media files into grouped destination folders with
// conflict resolution and duplicate detection.
package copier

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/zoidzter/photo-sorter/internal/fsutil"
)

// Status classifies the outcome of a copy operation.
type Status string

const (
	// StatusCopied means the file was copied under its original name.
	StatusCopied Status = "copied"

	// StatusRenamed means the file was copied under a suffixed name to
	// avoid a collision with a different same-named file.
	StatusRenamed Status = "renamed"

	// StatusSkippedIdentical means an identical file (same size and
	// content hash) already exists at the destination; nothing was copied.
	StatusSkippedIdentical Status = "skipped_identical"

	// StatusDryRun means the destination was computed but no filesystem
	// write was performed.
	StatusDryRun Status = "dryrun"
)

// CopyError reports an I/O failure while hashing or copying a file.
type CopyError struct {
	Src string
	Err error
}

func (e *CopyError) Error() string {
	return fmt.Sprintf("copy %s: %v", e.Src, e.Err)
}

func (e *CopyError) Unwrap() error {
	return e.Err
}

// Copy copies src into destDir, creating destDir (and parents) if absent.
//
// Collision policy for an existing file with the same name:
//   - identical content (size compared first, then full MD5) is not
//     copied again and classifies as StatusSkippedIdentical
//   - differing content picks the first free "{stem}_{n}{ext}" name for
//     n = 1, 2, 3, ... and classifies as StatusRenamed
//
// When dryRun is set the destination path and status are computed but no
// write happens and the status is StatusDryRun. Successful copies
// preserve the source modification time.
//
// Any I/O failure is returned as a *CopyError carrying the source path;
// callers decide whether to record it and continue.
func Copy(src, destDir string, dryRun bool) (string, Status, error) {
	if err := fsutil.EnsureDir(destDir); err != nil {
		return "", "", &CopyError{Src: src, Err: err}
	}

	base := filepath.Base(src)
	dest := filepath.Join(destDir, base)

	if info, err := os.Stat(dest); err == nil {
		srcInfo, err := os.Stat(src)
		if err != nil {
			return "", "", &CopyError{Src: src, Err: err}
		}
		if info.Size() == srcInfo.Size() {
			same, err := sameContent(src, dest)
			if err != nil {
				return "", "", &CopyError{Src: src, Err: err}
			}
			if same {
				slog.Info("skipping identical file", "src", src, "dest", dest)
				return dest, StatusSkippedIdentical, nil
			}
		}
		dest = nextFreeName(destDir, base)
	}

	if dryRun {
		slog.Info("dry run: would copy", "src", src, "dest", dest)
		return dest, StatusDryRun, nil
	}

	if err := copyPreservingTimes(src, dest); err != nil {
		return "", "", &CopyError{Src: src, Err: err}
	}

	slog.Info("copied", "src", src, "dest", dest)
	if filepath.Base(dest) != base {
		return dest, StatusRenamed, nil
	}
	return dest, StatusCopied, nil
}

// sameContent compares file contents by full MD5. Sizes are assumed to
// match already.
func sameContent(a, b string) (bool, error) {
	ha, err := fsutil.FileMD5(a)
	if err != nil {
		return false, err
	}
	hb, err := fsutil.FileMD5(b)
	if err != nil {
		return false, err
	}
	return ha == hb, nil
}

// nextFreeName returns the first "{stem}_{n}{ext}" path in destDir that
// does not exist yet.
func nextFreeName(destDir, base string) string {
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	for i := 1; ; i++ {
		candidate := filepath.Join(destDir, fmt.Sprintf("%s_%d%s", stem, i, ext))
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}

// copyPreservingTimes copies the file contents and carries over the source
// modification time.
func copyPreservingTimes(src, dest string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, srcInfo.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dest)
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	return os.Chtimes(dest, srcInfo.ModTime(), srcInfo.ModTime())
}
