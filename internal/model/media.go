package model

import "time"

// GPSCoordinate is a decimal-degrees position extracted from media metadata.
type GPSCoordinate struct {
	Lat float64
	Lon float64
}

// MediaFile represents a discovered photo or video file.
//
// A MediaFile is immutable once discovered; its identity is the path string.
// Size and ModTime are captured at scan time so later stages do not need to
// stat the file again.
type MediaFile struct {
	// Path is the absolute path of the file.
	Path string

	// Size is the file size in bytes at scan time.
	Size int64

	// ModTime is the file modification time at scan time.
	ModTime time.Time
}

// Metadata is the best-effort capture information for a media file.
//
// Timestamp is always populated by the extractor chain (falling back to the
// file modification time); a zero Timestamp means even that fallback failed.
type Metadata struct {
	// Timestamp is the capture time, or the file mtime when no capture
	// time could be read from the file.
	Timestamp time.Time

	// GPS is the capture position, or nil when the file carries none.
	GPS *GPSCoordinate

	// Place is an optional pre-resolved place label. When set, the grouper
	// uses it directly instead of reverse geocoding GPS.
	Place string
}

// Mapping groups scanned files by their destination folder key.
//
// Files within a group keep scan order, and Keys preserves the order in
// which groups were first seen. Files is the flat ordered list of every
// scanned file regardless of group.
type Mapping struct {
	Groups map[string][]MediaFile
	Keys   []string
	Files  []MediaFile
}

// NewMapping returns an empty Mapping ready to receive files.
func NewMapping() *Mapping {
	return &Mapping{Groups: make(map[string][]MediaFile)}
}

// Add appends file to the named group, registering the group on first use,
// and records the file in the flat scan-order list.
func (m *Mapping) Add(key string, file MediaFile) {
	if _, ok := m.Groups[key]; !ok {
		m.Keys = append(m.Keys, key)
	}
	m.Groups[key] = append(m.Groups[key], file)
	m.Files = append(m.Files, file)
}

// Len returns the total number of files in the mapping.
func (m *Mapping) Len() int {
	return len(m.Files)
}
