package geo

// Geocoder resolves a GPS position to a human-readable place label of the
// form "City, Region, Country".
//
// Implementations return ok=false when no label could be determined; the
// grouper then degrades to its "NoLocation" token. Implementations must
// never panic.
type Geocoder interface {
	ReverseGeocode(lat, lon float64) (place string, ok bool)
}

// NopGeocoder is the null implementation, selected at composition time
// when geocoding is disabled or no network access is wanted.
type NopGeocoder struct{}

func (NopGeocoder) ReverseGeocode(lat, lon float64) (string, bool) {
	return "", false
}
