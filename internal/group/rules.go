package group

import (
	"encoding/json"
	"log/slog"
	"os"
	"strings"
	"time"
)

// CustomEvent is a user-configured date range that labels matching photos.
type CustomEvent struct {
	// Name is the label appended to the group key.
	Name string

	// Start and End bound the event inclusively; both are date-only.
	Start time.Time
	End   time.Time

	// Location optionally restricts the event to a place token,
	// lowercased for case-insensitive matching. Empty matches any place.
	Location string
}

// Rules holds the process-wide grouping configuration.
//
// Rules values are immutable after load and safe for concurrent use;
// construct once at startup and inject into the Namer. Reloading requires
// building a new value.
type Rules struct {
	// LocationAliases maps lowercased place tokens to replacement names.
	LocationAliases map[string]string

	// EventOverrides maps lowercased event labels to replacement labels.
	EventOverrides map[string]string

	// CustomEvents are checked in configured order; the first match wins
	// over the built-in calendar detector.
	CustomEvents []CustomEvent
}

// DefaultRules returns an empty rule set.
func DefaultRules() *Rules {
	return &Rules{
		LocationAliases: map[string]string{},
		EventOverrides:  map[string]string{},
	}
}

// rawRules mirrors the on-disk JSON shape.
type rawRules struct {
	LocationAliases map[string]string `json:"location_aliases"`
	EventOverrides  map[string]string `json:"event_overrides"`
	CustomEvents    []struct {
		Name     string `json:"name"`
		Start    string `json:"start"`
		End      string `json:"end"`
		Location string `json:"location"`
	} `json:"custom_events"`
}

// LoadRules reads grouping rules from the JSON file at path.
//
// A missing file yields the defaults; a malformed file is logged and also
// degrades to the defaults rather than failing. Entries with unparsable
// dates are skipped individually. Dates use the "YYYY-MM-DD" format and a
// missing end date collapses the range to the start day.
func LoadRules(path string) *Rules {
	rules := DefaultRules()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("grouping rules unreadable, using defaults", "path", path, "error", err)
		}
		return rules
	}

	var raw rawRules
	if err := json.Unmarshal(data, &raw); err != nil {
		slog.Warn("grouping rules malformed, using defaults", "path", path, "error", err)
		return rules
	}

	for key, value := range raw.LocationAliases {
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)
		if key != "" && value != "" {
			rules.LocationAliases[key] = value
		}
	}

	for key, value := range raw.EventOverrides {
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)
		if key != "" && value != "" {
			rules.EventOverrides[key] = value
		}
	}

	for _, item := range raw.CustomEvents {
		name := strings.TrimSpace(item.Name)
		if name == "" || item.Start == "" {
			continue
		}
		start, err := time.Parse("2006-01-02", item.Start)
		if err != nil {
			slog.Warn("skipping custom event with bad start date", "name", name, "start", item.Start)
			continue
		}
		end := start
		if item.End != "" {
			end, err = time.Parse("2006-01-02", item.End)
			if err != nil {
				slog.Warn("skipping custom event with bad end date", "name", name, "end", item.End)
				continue
			}
		}
		rules.CustomEvents = append(rules.CustomEvents, CustomEvent{
			Name:     name,
			Start:    start,
			End:      end,
			Location: strings.ToLower(strings.TrimSpace(item.Location)),
		})
	}

	return rules
}

// matchCustomEvent returns the first configured event whose inclusive date
// range contains day and whose optional place filter matches placeToken.
func (r *Rules) matchCustomEvent(day time.Time, placeToken string) string {
	day = truncateToDay(day)
	placeKey := strings.ToLower(placeToken)
	for _, ev := range r.CustomEvents {
		if day.Before(truncateToDay(ev.Start)) || day.After(truncateToDay(ev.End)) {
			continue
		}
		if ev.Location != "" && ev.Location != placeKey {
			continue
		}
		return ev.Name
	}
	return ""
}

// applyLocationAlias substitutes a configured alias for the place token.
func (r *Rules) applyLocationAlias(place string) string {
	if alias, ok := r.LocationAliases[strings.ToLower(place)]; ok {
		return alias
	}
	return place
}

// applyEventOverride substitutes a configured replacement for the label.
func (r *Rules) applyEventOverride(label string) string {
	if label == "" {
		return label
	}
	if override, ok := r.EventOverrides[strings.ToLower(label)]; ok {
		return override
	}
	return label
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
