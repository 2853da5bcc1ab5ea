package activities

// Setting classifies where an activity takes place.
type Setting string

const (
	SettingIndoor  Setting = "indoor"
	SettingOutdoor Setting = "outdoor"
	SettingMixed   Setting = "mixed"
)

// Activity is a catalog entry, read-only from the ranker's point of view.
type Activity struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Setting      Setting  `json:"setting"`
	Tags         []string `json:"tags,omitempty"`
	Cost         string   `json:"cost,omitempty"`
	RainFriendly bool     `json:"rainFriendly,omitempty"`

	// TidePreference is "low", "high", or empty when the activity does not
	// care about tides (tidepooling wants low tide, surfing often high).
	TidePreference string `json:"tidePreference,omitempty"`
}

// HasTag reports whether the activity carries the given tag.
func (a Activity) HasTag(tag string) bool {
	for _, t := range a.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// RankedActivity is an Activity annotated with its weather fit.
type RankedActivity struct {
	Activity
	WeatherScore   int    `json:"weatherScore"`
	MatchReason    string `json:"matchReason"`
	WeatherWarning string `json:"weatherWarning,omitempty"`
}

// Tiers groups ranked activities into coarse quality buckets.
type Tiers struct {
	Perfect []RankedActivity `json:"perfect"`
	Great   []RankedActivity `json:"great"`
	Good    []RankedActivity `json:"good"`
}

// Recommendations is the full result of ranking a catalog against current
// weather: tiered lists, a flattened top-N, and aggregate observations.
type Recommendations struct {
	Tiers    Tiers            `json:"tiers"`
	TopPicks []RankedActivity `json:"topPicks"`
	Insights []string         `json:"insights"`
}
