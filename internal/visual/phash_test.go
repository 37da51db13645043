package visual

import (
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// gradientImage returns a horizontal brightness gradient. Gradients of any
// size hash to the same value, which makes resized copies easy to fake.
func gradientImage(w, h int, inverted bool) image.Image {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8(x * 255 / (w - 1))
			if inverted {
				v = 255 - v
			}
			img.Pix[y*img.Stride+x] = v
		}
	}
	return img
}

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestHashImage_ResizedCopiesMatch(t *testing.T) {
	small := HashImage(gradientImage(64, 64, false))
	large := HashImage(gradientImage(256, 256, false))
	if d := Distance(small, large); d > DefaultThreshold {
		t.Errorf("distance between resized copies = %d, want <= %d", d, DefaultThreshold)
	}
}

func TestHashImage_DistinctImagesDiffer(t *testing.T) {
	a := HashImage(gradientImage(64, 64, false))
	b := HashImage(gradientImage(64, 64, true))
	if d := Distance(a, b); d <= DefaultThreshold {
		t.Errorf("distance between opposite gradients = %d, want > %d", d, DefaultThreshold)
	}
}

func TestDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b Hash
		want int
	}{
		{"identical", 0xdeadbeef, 0xdeadbeef, 0},
		{"one bit", 0, 1, 1},
		{"all bits", 0, ^Hash(0), 64},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Distance(tt.a, tt.b); got != tt.want {
				t.Errorf("Distance(%x, %x) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestHash_StringRoundTrip(t *testing.T) {
	for _, h := range []Hash{0, 1, 0xdeadbeefcafe, ^Hash(0)} {
		s := h.String()
		if len(s) != 16 {
			t.Errorf("String(%x) = %q, want 16 hex chars", uint64(h), s)
		}
		parsed, err := ParseHash(s)
		if err != nil {
			t.Fatalf("ParseHash(%q): %v", s, err)
		}
		if parsed != h {
			t.Errorf("round trip of %x gave %x", uint64(h), uint64(parsed))
		}
	}
}

func TestParseHash_Invalid(t *testing.T) {
	if _, err := ParseHash("not-hex"); err == nil {
		t.Error("expected error for non-hex input")
	}
}

func TestHashFile_Undecodable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "note.txt")
	if err := os.WriteFile(path, []byte("not an image"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := HashFile(path); err == nil {
		t.Error("expected decode error")
	}
}

func TestCache_MtimeInvalidation(t *testing.T) {
	cache := NewCache(filepath.Join(t.TempDir(), "phash.json"))
	cache.Put("/pics/a.jpg", 1000, 0xabc)

	if h, ok := cache.Get("/pics/a.jpg", 1000); !ok || h != 0xabc {
		t.Errorf("Get = %x, %v; want abc, true", uint64(h), ok)
	}
	if _, ok := cache.Get("/pics/a.jpg", 2000); ok {
		t.Error("entry with stale mtime should be a miss")
	}
	if _, ok := cache.Get("/pics/b.jpg", 1000); ok {
		t.Error("unknown path should be a miss")
	}
}

func TestCache_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "phash.json")
	NewCache(path).Put("/pics/a.jpg", 1000, 0xdeadbeef)

	if h, ok := NewCache(path).Get("/pics/a.jpg", 1000); !ok || h != 0xdeadbeef {
		t.Errorf("reloaded Get = %x, %v; want deadbeef, true", uint64(h), ok)
	}
}

func TestCache_CorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "phash.json")
	if err := os.WriteFile(path, []byte("{broken"), 0644); err != nil {
		t.Fatal(err)
	}
	cache := NewCache(path)
	if _, ok := cache.Get("/pics/a.jpg", 1000); ok {
		t.Error("corrupt cache should behave as empty")
	}
	cache.Put("/pics/a.jpg", 1000, 1)
	if _, ok := cache.Get("/pics/a.jpg", 1000); !ok {
		t.Error("cache should accept writes after recovering")
	}
}

func TestHasher_PrefersCachedHash(t *testing.T) {
	dir := t.TempDir()
	imgPath := filepath.Join(dir, "a.png")
	writePNG(t, imgPath, gradientImage(32, 32, false))

	info, err := os.Stat(imgPath)
	if err != nil {
		t.Fatal(err)
	}

	// A planted cache entry with the current mtime must win over a fresh
	// computation.
	cache := NewCache(filepath.Join(dir, "phash.json"))
	cache.Put(imgPath, info.ModTime().UnixNano(), 0x1234)

	h, err := NewHasher(cache, 1).HashPath(imgPath)
	if err != nil {
		t.Fatal(err)
	}
	if h != 0x1234 {
		t.Errorf("HashPath = %x, want planted cache value 1234", uint64(h))
	}
}

func TestHashAll_SkipsUndecodable(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "a.png")
	writePNG(t, good, gradientImage(32, 32, false))
	bad := filepath.Join(dir, "clip.mp4")
	if err := os.WriteFile(bad, []byte("not an image"), 0644); err != nil {
		t.Fatal(err)
	}

	hasher := NewHasher(NewCache(filepath.Join(dir, "phash.json")), 2)
	hashes, err := hasher.HashAll(context.Background(), []string{good, bad})
	if err != nil {
		t.Fatal(err)
	}
	if len(hashes) != 1 {
		t.Fatalf("hashed %d files, want 1", len(hashes))
	}
	if _, ok := hashes[good]; !ok {
		t.Error("decodable file missing from result")
	}
}

func TestFindNearDuplicates(t *testing.T) {
	hashes := map[string]Hash{
		"/pics/a.jpg": 0x00,
		"/pics/b.jpg": 0x01, // 1 bit from a
		"/pics/c.jpg": ^Hash(0),
	}
	pairs := FindNearDuplicates(hashes, DefaultThreshold)
	if len(pairs) != 1 {
		t.Fatalf("pairs = %v, want exactly one", pairs)
	}
	p := pairs[0]
	if p.A != "/pics/a.jpg" || p.B != "/pics/b.jpg" || p.Distance != 1 {
		t.Errorf("pair = %+v", p)
	}
}

func TestFindNearDuplicates_Empty(t *testing.T) {
	if pairs := FindNearDuplicates(nil, DefaultThreshold); len(pairs) != 0 {
		t.Errorf("pairs = %v, want none", pairs)
	}
}
