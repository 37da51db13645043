package group

import (
	"strings"

	"github.com/zoidzter/photo-sorter/internal/fsutil"
	"github.com/zoidzter/photo-sorter/internal/geo"
	"github.com/zoidzter/photo-sorter/internal/model"
)

// Namer derives deterministic, filesystem-safe group keys from media
// metadata.
//
// The key format is "{Year}{Mon}_{PlaceToken}" with an optional
// "_{EventLabel}" suffix, e.g. "2025Dec_Dublin_EnzoBirthday". The same
// metadata and rule set always yield the same key.
type Namer struct {
	rules    *Rules
	geocoder geo.Geocoder
}

// NewNamer creates a Namer with the given immutable rules and geocoder.
// A nil geocoder behaves like geo.NopGeocoder.
func NewNamer(rules *Rules, geocoder geo.Geocoder) *Namer {
	if rules == nil {
		rules = DefaultRules()
	}
	if geocoder == nil {
		geocoder = geo.NopGeocoder{}
	}
	return &Namer{rules: rules, geocoder: geocoder}
}

// GroupName returns the destination folder key for the metadata.
//
// Geocoding and event detection failures are swallowed; the worst case is
// a "NoLocation" key with no event suffix. GroupName never fails.
func (n *Namer) GroupName(meta model.Metadata) string {
	year, mon := "unknown", "Mon"
	if !meta.Timestamp.IsZero() {
		year = meta.Timestamp.Format("2006")
		mon = meta.Timestamp.Format("Jan")
	}

	place := meta.Place
	if place == "" && meta.GPS != nil {
		if resolved, ok := n.geocoder.ReverseGeocode(meta.GPS.Lat, meta.GPS.Lon); ok {
			place = resolved
		}
	}
	if place == "" {
		place = "NoLocation"
	}

	place = fsutil.SanitizeFileName(place)
	if place == "" {
		place = "Unknown"
	}

	// First comma-separated segment is the city in
	// "City, Region, Country"-style geocoder output.
	placeToken := strings.TrimSpace(strings.SplitN(place, ",", 2)[0])
	placeToken = n.rules.applyLocationAlias(placeToken)
	compact := strings.ReplaceAll(placeToken, " ", "")
	if compact == "" {
		compact = "Unknown"
	}

	var eventLabel string
	if !meta.Timestamp.IsZero() {
		eventLabel = n.rules.matchCustomEvent(meta.Timestamp, placeToken)
		if eventLabel == "" {
			eventLabel = DetectEvent(meta.Timestamp)
		}
	}
	eventLabel = n.rules.applyEventOverride(eventLabel)

	key := year + mon + "_" + compact
	if eventLabel != "" {
		key += "_" + eventLabel
	}
	return key
}
