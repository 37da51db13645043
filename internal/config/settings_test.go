package config

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/zoidzter/photo-sorter/internal/geo"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if s.MappingCacheTTLSeconds != 300 {
		t.Errorf("MappingCacheTTLSeconds = %d, want 300", s.MappingCacheTTLSeconds)
	}
	if s.MappingTTL() != 5*time.Minute {
		t.Errorf("MappingTTL = %v, want 5m", s.MappingTTL())
	}
	if !s.GeocodeEnabled {
		t.Error("geocoding should be enabled by default")
	}
	if s.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", s.LogLevel)
	}
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatal(err)
	}
	if s.MappingCacheTTLSeconds != 300 {
		t.Errorf("missing file should yield defaults, got TTL %d", s.MappingCacheTTLSeconds)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte(`{"destination_path": "/mnt/photos"}`), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if s.DestinationPath != "/mnt/photos" {
		t.Errorf("DestinationPath = %q", s.DestinationPath)
	}
	if s.MappingCacheTTLSeconds != 300 {
		t.Errorf("unset field should keep default, got %d", s.MappingCacheTTLSeconds)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte("{broken"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed settings")
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.json")

	s := DefaultSettings()
	s.DestinationPath = "/mnt/photos"
	s.GeocodeEnabled = false
	if err := s.Save(path); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.DestinationPath != "/mnt/photos" || loaded.GeocodeEnabled {
		t.Errorf("loaded = %+v", loaded)
	}
}

func TestGeocoder_DisabledIsNop(t *testing.T) {
	s := DefaultSettings()
	s.GeocodeEnabled = false
	if _, ok := s.Geocoder().(geo.NopGeocoder); !ok {
		t.Errorf("disabled geocoder = %T, want NopGeocoder", s.Geocoder())
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLogLevel(tt.in); got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSetupLoggerWithWriters(t *testing.T) {
	var stderr, file bytes.Buffer
	logger := SetupLoggerWithWriters(&stderr, &file, slog.LevelInfo)

	logger.Info("hello", "key", "value")

	if stderr.Len() == 0 {
		t.Error("stderr handler received nothing")
	}
	var entry map[string]any
	if err := json.Unmarshal(file.Bytes(), &entry); err != nil {
		t.Fatalf("file output is not JSON: %v", err)
	}
	if entry["msg"] != "hello" || entry["key"] != "value" {
		t.Errorf("file entry = %v", entry)
	}

	logger.Debug("filtered")
	if bytes.Contains(stderr.Bytes(), []byte("filtered")) {
		t.Error("debug record should be filtered at info level")
	}
}
