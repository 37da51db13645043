// Package config provides configuration management for photo-sorter.
//
// This package handles:
//   - Loading and saving settings from JSON files
//   - Default configuration values
//   - Logger construction (text to stderr, JSON to a log file)
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// Sorts into ~/Pictures/Sorted
//	// Geocoding enabled with a cached Nominatim client
//	// Mapping cache valid for five minutes
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/config.json")
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//
// # Saving Settings
//
//	settings.DestinationPath = "/mnt/photos/sorted"
//	err := settings.Save("/path/to/config.json")
package config
