// Package visual detects near-duplicate images with perceptual hashing.
//
// A 64-bit difference hash is computed per image and compared by Hamming
// distance; hashes are cached on disk keyed by path and modification time
// so repeated scans only hash new or changed files.
package visual
