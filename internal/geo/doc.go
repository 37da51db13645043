// Package geo resolves GPS coordinates to place labels.
//
// The Geocoder interface has two implementations selected at composition
// time: Nominatim, which queries OpenStreetMap's reverse-geocoding service
// behind a persistent JSON cache and a polite rate limit, and NopGeocoder,
// a null implementation for offline operation. The grouper treats an
// unresolved position as "NoLocation" rather than an error.
//
// The cache file lives in the user's home directory
// (~/.photo_sorter_geocache.json) and maps "lat,lon" keys, formatted with
// six decimal places, to place labels.
package geo
