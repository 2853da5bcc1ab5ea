package activities

import "strings"

// RawRecord is a loosely-typed record as returned by the hosted catalog
// backend. Field names and casing vary between bases, so all fallback
// lookups happen here, once, at the boundary; business logic only ever sees
// the canonical Activity shape.
type RawRecord struct {
	ID     string
	Fields map[string]any
}

// FromRecords normalizes raw catalog records into Activities. Records with
// no usable title are dropped.
func FromRecords(records []RawRecord) []Activity {
	acts := make([]Activity, 0, len(records))
	for _, rec := range records {
		title := fieldString(rec.Fields, "Name", "name", "Title", "title")
		if title == "" {
			continue
		}
		acts = append(acts, Activity{
			ID:             rec.ID,
			Title:          title,
			Setting:        parseSetting(fieldString(rec.Fields, "Setting", "setting", "Indoor/Outdoor", "indoorOutdoor", "Type", "type")),
			Tags:           fieldStrings(rec.Fields, "Tags", "tags", "Categories", "categories"),
			Cost:           fieldString(rec.Fields, "Cost", "cost", "Price", "price"),
			RainFriendly:   fieldBool(rec.Fields, "Rain OK", "RainOK", "rainOk", "Rain Friendly", "rainFriendly"),
			TidePreference: strings.ToLower(fieldString(rec.Fields, "Tide Preference", "TidePreference", "tidePreference", "Tide", "tide")),
		})
	}
	return acts
}

func parseSetting(raw string) Setting {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "indoor", "inside":
		return SettingIndoor
	case "outdoor", "outside":
		return SettingOutdoor
	case "mixed", "both", "indoor/outdoor":
		return SettingMixed
	}
	// Unclassified entries are treated as mixed so weather neither buries
	// nor over-promotes them.
	return SettingMixed
}

func fieldString(fields map[string]any, keys ...string) string {
	for _, key := range keys {
		if v, ok := fields[key]; ok {
			if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}

func fieldStrings(fields map[string]any, keys ...string) []string {
	for _, key := range keys {
		v, ok := fields[key]
		if !ok {
			continue
		}
		switch vv := v.(type) {
		case []any:
			out := make([]string, 0, len(vv))
			for _, item := range vv {
				if s, ok := item.(string); ok && s != "" {
					out = append(out, strings.ToLower(strings.TrimSpace(s)))
				}
			}
			if len(out) > 0 {
				return out
			}
		case string:
			// Some bases store tags as a comma-separated string.
			parts := strings.Split(vv, ",")
			out := make([]string, 0, len(parts))
			for _, p := range parts {
				if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
					out = append(out, p)
				}
			}
			if len(out) > 0 {
				return out
			}
		}
	}
	return nil
}

func fieldBool(fields map[string]any, keys ...string) bool {
	for _, key := range keys {
		v, ok := fields[key]
		if !ok {
			continue
		}
		switch vv := v.(type) {
		case bool:
			return vv
		case string:
			switch strings.ToLower(strings.TrimSpace(vv)) {
			case "yes", "true", "y", "1", "checked":
				return true
			}
		}
	}
	return false
}
