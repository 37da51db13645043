package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/zoidzter/photo-sorter/internal/geo"
	"github.com/zoidzter/photo-sorter/internal/visual"
)

// Settings holds all configuration options.
type Settings struct {
	// Organizing
	DestinationPath        string `json:"destination_path"`
	RulesPath              string `json:"rules_path"`
	MappingCacheTTLSeconds int    `json:"mapping_cache_ttl_seconds"`

	// Geocoding
	GeocodeEnabled   bool   `json:"geocode_enabled"`
	GeocodeUserAgent string `json:"geocode_user_agent"`
	GeocodeCachePath string `json:"geocode_cache_path"`

	// Near-duplicate detection
	PhashCachePath string `json:"phash_cache_path"`
	PhashWorkers   int    `json:"phash_workers"`
	PhashThreshold int    `json:"phash_threshold"`

	// Logging
	LogFile  string `json:"log_file"`
	LogLevel string `json:"log_level"` // debug, info, warn, error
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	homeDir, _ := os.UserHomeDir()
	return &Settings{
		DestinationPath:        filepath.Join(homeDir, "Pictures", "Sorted"),
		RulesPath:              "grouping_rules.json",
		MappingCacheTTLSeconds: 300,

		GeocodeEnabled:   true,
		GeocodeUserAgent: "photo-sorter/1.0",
		GeocodeCachePath: geo.DefaultCachePath(),

		PhashCachePath: visual.DefaultCachePath(),
		PhashWorkers:   visual.DefaultWorkers,
		PhashThreshold: visual.DefaultThreshold,

		LogFile:  "photo-sorter.log",
		LogLevel: "info",
	}
}

// MappingTTL returns the mapping cache lifetime as a duration.
func (s *Settings) MappingTTL() time.Duration {
	return time.Duration(s.MappingCacheTTLSeconds) * time.Second
}

// Geocoder builds the configured geocoder: a cached Nominatim client, or
// the no-op geocoder when geocoding is disabled.
func (s *Settings) Geocoder() geo.Geocoder {
	if !s.GeocodeEnabled {
		return geo.NopGeocoder{}
	}
	return geo.NewNominatim(geo.NewCache(s.GeocodeCachePath), s.GeocodeUserAgent)
}

// Load reads settings from a JSON file.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
