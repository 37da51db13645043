// Package group turns media metadata into deterministic destination
// folder names.
//
// A group key has the form "{Year}{Mon}_{PlaceToken}[_{EventLabel}]",
// e.g. "2025Dec_Dublin_EnzoBirthday". The pieces are:
//
//   - Year and three-letter English month abbreviation of the capture
//     time, with literal "unknown"/"Mon" fallbacks when no timestamp
//     exists at all
//   - the city token of the (possibly geocoded) place label, sanitized
//     for folder use, aliased via configured location_aliases and
//     compacted by removing internal spaces
//   - an optional event label from user-configured custom_events (first
//     configured match wins) or the built-in calendar detector, with
//     event_overrides applied last
//
// Rules are loaded once from a JSON config file and injected as an
// immutable value; see LoadRules. Grouping never fails: unresolvable
// places degrade to "NoLocation" and event detection errors are dropped.
package group
