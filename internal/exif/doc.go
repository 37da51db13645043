// Package exif extracts capture metadata (timestamp, GPS position) from
// media files.
//
// Extraction is organized as an explicit ordered chain of providers. Each
// provider returns an optional result; the chain consults the next provider
// only when the previous one reported itself unavailable for the file or
// left fields unfilled. The final provider falls back to the file
// modification time, so extraction never fails and every file ends up with
// a usable timestamp.
//
// # Basic Usage
//
//	extractor := exif.NewDefaultExtractor()
//	meta := extractor.Extract(file)
//	// meta.Timestamp is the capture time or the file mtime
//	// meta.GPS is nil when the file carries no position
package exif
