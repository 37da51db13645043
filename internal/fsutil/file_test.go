package fsutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"normal-file.jpg", "normal-file.jpg"},
		{"file:with:colons.jpg", "file_with_colons.jpg"},
		{"file<with>brackets.jpg", "file_with_brackets.jpg"},
		{"file/with\\slashes.jpg", "file_with_slashes.jpg"},
		{"file|with|pipes.jpg", "file_with_pipes.jpg"},
		{"file?with*wildcards.jpg", "file_with_wildcards.jpg"},
		{"file\"with\"quotes.jpg", "file_with_quotes.jpg"},
		{"trailing dots...", "trailing dots"},
		{"multiple   spaces", "multiple spaces"},
		{"trailing spaces   ", "trailing spaces"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := SanitizeFileName(tt.input)
			if got != tt.want {
				t.Errorf("SanitizeFileName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFileMD5(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(path, []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := FileMD5(path)
	if err != nil {
		t.Fatalf("FileMD5 returned error: %v", err)
	}
	// md5("hello")
	want := "5d41402abc4b2a76b9719d911017c592"
	if got != want {
		t.Errorf("FileMD5 = %q, want %q", got, want)
	}
}

func TestFileMD5_Missing(t *testing.T) {
	if _, err := FileMD5(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("FileMD5 should fail for a missing file")
	}
}
