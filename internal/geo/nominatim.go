package geo

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"
)

const defaultBaseURL = "https://nominatim.openstreetmap.org"

// nominatimResponse is the subset of the Nominatim reverse-geocoding
// response the client cares about.
type nominatimResponse struct {
	Address struct {
		City    string `json:"city"`
		Town    string `json:"town"`
		Village string `json:"village"`
		County  string `json:"county"`
		State   string `json:"state"`
		Country string `json:"country"`
	} `json:"address"`
	DisplayName string `json:"display_name"`
}

// Nominatim reverse-geocodes coordinates via OpenStreetMap's Nominatim
// service, backed by a persistent on-disk cache.
//
// The client is configured with:
//   - 10 second timeout
//   - a custom User-Agent header (Nominatim's usage policy requires one)
//   - at least 1 second between uncached network calls
//
// Cached negative results ("") are respected so a coordinate that once
// failed to resolve does not trigger repeat lookups.
type Nominatim struct {
	httpClient *http.Client
	userAgent  string
	baseURL    string
	cache      *Cache

	mu       sync.Mutex
	lastCall time.Time
}

// NewNominatim creates a Nominatim geocoder using cache for persistence.
func NewNominatim(cache *Cache, userAgent string) *Nominatim {
	if userAgent == "" {
		userAgent = "photo-sorter"
	}
	return &Nominatim{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		userAgent:  userAgent,
		baseURL:    defaultBaseURL,
		cache:      cache,
	}
}

// CacheKey formats coordinates the way the cache stores them.
func CacheKey(lat, lon float64) string {
	return fmt.Sprintf("%.6f,%.6f", lat, lon)
}

// ReverseGeocode returns a "City, Region, Country"-style label for the
// coordinates, or ok=false when the position cannot be resolved. Network
// or decode failures are logged and reported as unresolved, never raised.
func (n *Nominatim) ReverseGeocode(lat, lon float64) (string, bool) {
	key := CacheKey(lat, lon)
	if n.cache != nil {
		if place, ok := n.cache.Get(key); ok {
			return place, place != ""
		}
	}

	n.throttle()

	place, err := n.lookup(lat, lon)
	if err != nil {
		slog.Debug("reverse geocode failed", "lat", lat, "lon", lon, "error", err)
		return "", false
	}

	if n.cache != nil {
		n.cache.Put(key, place)
	}
	return place, place != ""
}

// throttle enforces the polite >=1s gap between uncached network calls.
func (n *Nominatim) throttle() {
	n.mu.Lock()
	wait := time.Second - time.Since(n.lastCall)
	if wait < 0 {
		wait = 0
	}
	n.lastCall = time.Now().Add(wait)
	n.mu.Unlock()
	if wait > 0 {
		time.Sleep(wait)
	}
}

func (n *Nominatim) lookup(lat, lon float64) (string, error) {
	url := fmt.Sprintf("%s/reverse?lat=%f&lon=%f&format=json&addressdetails=1&accept-language=en",
		n.baseURL, lat, lon)

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", n.userAgent)

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("nominatim returned status %d", resp.StatusCode)
	}

	var result nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode nominatim response: %w", err)
	}
	return formatPlace(result), nil
}

// formatPlace assembles "City, Region, Country" from the address details,
// preferring the most specific locality name available.
func formatPlace(result nominatimResponse) string {
	addr := result.Address

	city := addr.City
	if city == "" {
		city = addr.Town
	}
	if city == "" {
		city = addr.Village
	}
	if city == "" {
		city = addr.County
	}

	var parts []string
	for _, p := range []string{city, addr.State, addr.Country} {
		if p == "" {
			continue
		}
		duplicate := false
		for _, seen := range parts {
			if seen == p {
				duplicate = true
				break
			}
		}
		if !duplicate {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return result.DisplayName
	}
	return strings.Join(parts, ", ")
}
