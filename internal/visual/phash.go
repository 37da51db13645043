package visual

import (
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder registration
	_ "image/png"  // PNG decoder registration
	"math/bits"
	"os"
	"strconv"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // TIFF decoder registration
	_ "golang.org/x/image/webp" // WebP decoder registration
)

// Hash is a 64-bit difference hash of an image.
//
// The hash is computed by downscaling the image to a 9x8 grayscale grid
// and setting one bit per cell depending on whether it is brighter than
// its right neighbor. Visually similar images produce hashes with a small
// Hamming distance; identical images always produce identical hashes.
//
// Example usage:
//
//	h1, _ := visual.HashFile("a.jpg")
//	h2, _ := visual.HashFile("a_resized.jpg")
//	if visual.Distance(h1, h2) <= visual.DefaultThreshold {
//	    // near-duplicates
//	}
type Hash uint64

// DefaultThreshold is the Hamming distance at or below which two hashes
// are considered near-duplicates.
const DefaultThreshold = 8

const (
	hashWidth  = 9
	hashHeight = 8
)

// HashImage computes the difference hash of a decoded image.
func HashImage(img image.Image) Hash {
	gray := image.NewGray(image.Rect(0, 0, hashWidth, hashHeight))
	draw.CatmullRom.Scale(gray, gray.Bounds(), img, img.Bounds(), draw.Src, nil)

	var h Hash
	for y := 0; y < hashHeight; y++ {
		for x := 0; x < hashWidth-1; x++ {
			h <<= 1
			if gray.GrayAt(x, y).Y > gray.GrayAt(x+1, y).Y {
				h |= 1
			}
		}
	}
	return h
}

// HashFile decodes the image at path and returns its difference hash.
// Any registered decoder is accepted (JPEG, PNG, TIFF, WebP).
func HashFile(path string) (Hash, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return 0, fmt.Errorf("decode %s: %w", path, err)
	}
	return HashImage(img), nil
}

// Distance returns the Hamming distance between two hashes: the number of
// bit positions in which they differ, 0..64.
func Distance(a, b Hash) int {
	return bits.OnesCount64(uint64(a ^ b))
}

// String renders the hash as a fixed-width lowercase hex string, the form
// stored in the hash cache.
func (h Hash) String() string {
	return fmt.Sprintf("%016x", uint64(h))
}

// ParseHash parses the hex form produced by String.
func ParseHash(s string) (Hash, error) {
	v, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("parse hash %q: %w", s, err)
	}
	return Hash(v), nil
}
