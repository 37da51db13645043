package copier

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func write(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCopy_Basic(t *testing.T) {
	srcDir, destDir := t.TempDir(), filepath.Join(t.TempDir(), "group")
	src := write(t, srcDir, "a.jpg", "photo data")

	dest, status, err := Copy(src, destDir, false)
	if err != nil {
		t.Fatal(err)
	}
	if status != StatusCopied {
		t.Errorf("status = %q, want copied", status)
	}
	if filepath.Base(dest) != "a.jpg" {
		t.Errorf("dest = %q, want a.jpg in group dir", dest)
	}
	data, err := os.ReadFile(dest)
	if err != nil || string(data) != "photo data" {
		t.Errorf("dest content = %q, %v", data, err)
	}
}

func TestCopy_PreservesModTime(t *testing.T) {
	srcDir, destDir := t.TempDir(), t.TempDir()
	src := write(t, srcDir, "a.jpg", "photo data")
	mtime := time.Date(2020, 3, 14, 15, 9, 26, 0, time.Local)
	if err := os.Chtimes(src, mtime, mtime); err != nil {
		t.Fatal(err)
	}

	dest, _, err := Copy(src, destDir, false)
	if err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(dest)
	if err != nil {
		t.Fatal(err)
	}
	if !info.ModTime().Equal(mtime) {
		t.Errorf("dest mtime = %v, want %v", info.ModTime(), mtime)
	}
}

func TestCopy_Idempotent(t *testing.T) {
	srcDir, destDir := t.TempDir(), t.TempDir()
	src := write(t, srcDir, "a.jpg", "photo data")

	if _, _, err := Copy(src, destDir, false); err != nil {
		t.Fatal(err)
	}
	dest, status, err := Copy(src, destDir, false)
	if err != nil {
		t.Fatal(err)
	}
	if status != StatusSkippedIdentical {
		t.Errorf("second copy status = %q, want skipped_identical", status)
	}
	if filepath.Base(dest) != "a.jpg" {
		t.Errorf("second copy dest = %q, want original name", dest)
	}

	entries, err := os.ReadDir(destDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("destination has %d files, want 1 (no renamed duplicate)", len(entries))
	}
}

func TestCopy_CollisionRenames(t *testing.T) {
	srcA, srcB := t.TempDir(), t.TempDir()
	destDir := t.TempDir()
	a := write(t, srcA, "a.jpg", "first content")
	b := write(t, srcB, "a.jpg", "second, different content")

	destA, statusA, err := Copy(a, destDir, false)
	if err != nil {
		t.Fatal(err)
	}
	destB, statusB, err := Copy(b, destDir, false)
	if err != nil {
		t.Fatal(err)
	}

	if statusA != StatusCopied || filepath.Base(destA) != "a.jpg" {
		t.Errorf("first copy = %q/%q, want a.jpg copied", destA, statusA)
	}
	if statusB != StatusRenamed || filepath.Base(destB) != "a_1.jpg" {
		t.Errorf("second copy = %q/%q, want a_1.jpg renamed", destB, statusB)
	}
}

func TestCopy_CollisionWalksSuffixes(t *testing.T) {
	srcDir, destDir := t.TempDir(), t.TempDir()
	write(t, destDir, "a.jpg", "existing 0")
	write(t, destDir, "a_1.jpg", "existing 1")
	src := write(t, srcDir, "a.jpg", "new content")

	dest, status, err := Copy(src, destDir, false)
	if err != nil {
		t.Fatal(err)
	}
	if status != StatusRenamed || filepath.Base(dest) != "a_2.jpg" {
		t.Errorf("copy = %q/%q, want a_2.jpg renamed", dest, status)
	}
}

func TestCopy_SameSizeDifferentContent(t *testing.T) {
	srcDir, destDir := t.TempDir(), t.TempDir()
	write(t, destDir, "a.jpg", "AAAA")
	src := write(t, srcDir, "a.jpg", "BBBB")

	_, status, err := Copy(src, destDir, false)
	if err != nil {
		t.Fatal(err)
	}
	if status != StatusRenamed {
		t.Errorf("status = %q, want renamed (hash differs despite equal size)", status)
	}
}

func TestCopy_DryRun(t *testing.T) {
	srcDir := t.TempDir()
	destDir := filepath.Join(t.TempDir(), "group")
	src := write(t, srcDir, "a.jpg", "photo data")

	dest, status, err := Copy(src, destDir, true)
	if err != nil {
		t.Fatal(err)
	}
	if status != StatusDryRun {
		t.Errorf("status = %q, want dryrun", status)
	}
	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Error("dry run must not write the destination file")
	}
}

func TestCopy_MissingSource(t *testing.T) {
	_, _, err := Copy(filepath.Join(t.TempDir(), "missing.jpg"), t.TempDir(), false)
	var ce *CopyError
	if !errors.As(err, &ce) {
		t.Fatalf("error = %v, want *CopyError", err)
	}
	if ce.Src == "" {
		t.Error("CopyError should carry the source path")
	}
}
