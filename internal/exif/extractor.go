package exif

import (
	"os"

	goexif "github.com/rwcarlsen/goexif/exif"

	"github.com/zoidzter/photo-sorter/internal/model"
)

// Provider is one source of capture metadata.
//
// Extract returns the fields the provider could read and ok=false when the
// provider has nothing to offer for this file (unreadable, no EXIF block,
// unsupported format). Providers never return errors; an unavailable
// result simply moves the chain on to the next provider.
type Provider interface {
	Extract(file model.MediaFile) (model.Metadata, bool)
}

// Extractor runs an ordered chain of providers, merging partial results.
//
// The chain stops early once both a timestamp and a GPS position have been
// found. Extract never fails: the final fallback is the file modification
// time captured at scan time.
type Extractor struct {
	providers []Provider
}

// NewExtractor builds an extractor from an explicit provider chain.
func NewExtractor(providers ...Provider) *Extractor {
	return &Extractor{providers: providers}
}

// NewDefaultExtractor returns the standard chain: EXIF tags first, then
// the file modification time.
func NewDefaultExtractor() *Extractor {
	return NewExtractor(ExifProvider{}, MTimeProvider{})
}

// Extract returns the best-effort metadata for file. The timestamp is
// always populated unless every provider failed, which cannot happen with
// the default chain since MTimeProvider uses the scan-time mtime.
func (e *Extractor) Extract(file model.MediaFile) model.Metadata {
	var meta model.Metadata
	for _, p := range e.providers {
		got, ok := p.Extract(file)
		if !ok {
			continue
		}
		if meta.Timestamp.IsZero() && !got.Timestamp.IsZero() {
			meta.Timestamp = got.Timestamp
		}
		if meta.GPS == nil && got.GPS != nil {
			meta.GPS = got.GPS
		}
		if !meta.Timestamp.IsZero() && meta.GPS != nil {
			break
		}
	}
	return meta
}

// ExifProvider reads the capture timestamp and GPS position from embedded
// EXIF tags.
type ExifProvider struct{}

// Extract decodes the file's EXIF block. Files without EXIF data (or in
// formats goexif cannot parse, such as videos) report unavailable.
func (ExifProvider) Extract(file model.MediaFile) (model.Metadata, bool) {
	f, err := os.Open(file.Path)
	if err != nil {
		return model.Metadata{}, false
	}
	defer f.Close()

	x, err := goexif.Decode(f)
	if err != nil {
		return model.Metadata{}, false
	}

	var meta model.Metadata
	if tm, err := x.DateTime(); err == nil {
		meta.Timestamp = tm
	}
	if lat, lon, err := x.LatLong(); err == nil {
		meta.GPS = &model.GPSCoordinate{Lat: lat, Lon: lon}
	}
	if meta.Timestamp.IsZero() && meta.GPS == nil {
		return model.Metadata{}, false
	}
	return meta, true
}

// MTimeProvider falls back to the file modification time recorded at scan
// time, so the chain always yields a usable timestamp.
type MTimeProvider struct{}

func (MTimeProvider) Extract(file model.MediaFile) (model.Metadata, bool) {
	if file.ModTime.IsZero() {
		// Scanner did not stat the file; try again now.
		info, err := os.Stat(file.Path)
		if err != nil {
			return model.Metadata{}, false
		}
		return model.Metadata{Timestamp: info.ModTime()}, true
	}
	return model.Metadata{Timestamp: file.ModTime}, true
}
