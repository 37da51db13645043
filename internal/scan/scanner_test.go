package scan

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestScan_MissingRoot(t *testing.T) {
	_, err := Scan(filepath.Join(t.TempDir(), "nope"), nil, true)
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("Scan error = %v, want *NotFoundError", err)
	}
}

func TestScan_FiltersByExtension(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.jpg"))
	writeFile(t, filepath.Join(dir, "b.JPG"))
	writeFile(t, filepath.Join(dir, "notes.txt"))
	writeFile(t, filepath.Join(dir, "c.mp4"))

	files, err := Scan(dir, nil, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 3 {
		t.Fatalf("Scan found %d files, want 3", len(files))
	}
	for _, f := range files {
		if filepath.Base(f.Path) == "notes.txt" {
			t.Error("Scan should exclude non-media extensions")
		}
		if f.Size != 1 {
			t.Errorf("Scan should record file size, got %d", f.Size)
		}
		if f.ModTime.IsZero() {
			t.Error("Scan should record mod time")
		}
	}
}

func TestScan_CustomExtensions(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.jpg"))
	writeFile(t, filepath.Join(dir, "b.cr2"))

	files, err := Scan(dir, []string{"cr2"}, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || filepath.Base(files[0].Path) != "b.cr2" {
		t.Errorf("Scan with custom extensions = %v, want only b.cr2", files)
	}
}

func TestScan_NonRecursive(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "top.jpg"))
	writeFile(t, filepath.Join(dir, "sub", "nested.jpg"))

	files, err := Scan(dir, nil, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || filepath.Base(files[0].Path) != "top.jpg" {
		t.Errorf("non-recursive Scan = %v, want only top.jpg", files)
	}

	files, err = Scan(dir, nil, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 {
		t.Errorf("recursive Scan found %d files, want 2", len(files))
	}
}
