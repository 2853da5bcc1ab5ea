package weather

// Category is a coarse, named bucket summarizing a Snapshot for display.
type Category string

const (
	CategoryPerfectSunny Category = "perfect_sunny"
	CategoryHotSunny     Category = "hot_sunny"
	CategoryCoolSunny    Category = "cool_sunny"
	CategoryPartlyCloudy Category = "partly_cloudy"
	CategoryOvercast     Category = "overcast"
	CategoryLightRain    Category = "light_rain"
	CategoryRainy        Category = "rainy"
	CategoryHeavyRain    Category = "heavy_rain"
	CategoryFoggy        Category = "foggy"
	CategoryWindy        Category = "windy"
	CategoryCold         Category = "cold"
	CategoryHot          Category = "hot"
)

// categoryInfo holds the fixed presentation attributes of each category.
type categoryInfo struct {
	label string
	emoji string
}

var categoryDisplay = map[Category]categoryInfo{
	CategoryPerfectSunny: {"Perfect & Sunny", "☀️"},
	CategoryHotSunny:     {"Hot & Sunny", "🥵"},
	CategoryCoolSunny:    {"Cool & Sunny", "🌤️"},
	CategoryPartlyCloudy: {"Partly Cloudy", "⛅"},
	CategoryOvercast:     {"Overcast", "☁️"},
	CategoryLightRain:    {"Light Rain", "🌦️"},
	CategoryRainy:        {"Rainy", "🌧️"},
	CategoryHeavyRain:    {"Heavy Rain", "⛈️"},
	CategoryFoggy:        {"Foggy", "🌫️"},
	CategoryWindy:        {"Windy", "💨"},
	CategoryCold:         {"Cold", "🥶"},
	CategoryHot:          {"Hot", "🔥"},
}

// Label returns the human-readable display name for the category.
func (c Category) Label() string {
	return categoryDisplay[c].label
}

// Emoji returns the icon key for the category.
func (c Category) Emoji() string {
	return categoryDisplay[c].emoji
}

// categoryRule pairs a predicate with the category it selects. Rules are
// evaluated in order and the first match wins.
type categoryRule struct {
	category Category
	match    func(Snapshot) bool
}

var categoryRules = []categoryRule{
	{CategoryHeavyRain, func(s Snapshot) bool { return s.PrecipIn > 0.3 }},
	{CategoryRainy, func(s Snapshot) bool { return s.PrecipIn > 0.05 }},
	{CategoryLightRain, func(s Snapshot) bool { return s.PrecipIn > 0 }},
	{CategoryFoggy, func(s Snapshot) bool { return s.VisibilityMi < 3 }},
	{CategoryWindy, func(s Snapshot) bool { return s.WindMph > 20 }},
	{CategoryCold, func(s Snapshot) bool { return s.TempF < 50 }},
	{CategoryHot, func(s Snapshot) bool { return s.TempF > 85 }},
	{CategoryPerfectSunny, func(s Snapshot) bool { return s.CloudCover < 20 && s.TempF >= 65 && s.TempF <= 80 }},
	{CategoryHotSunny, func(s Snapshot) bool { return s.CloudCover < 20 && s.TempF > 80 }},
	{CategoryCoolSunny, func(s Snapshot) bool { return s.CloudCover < 20 && s.TempF < 65 }},
	{CategoryPartlyCloudy, func(s Snapshot) bool { return s.CloudCover < 60 }},
}

// Categorize maps a snapshot to exactly one Category. It is total: snapshots
// matched by no rule fall through to overcast.
func Categorize(s Snapshot) Category {
	for _, r := range categoryRules {
		if r.match(s) {
			return r.category
		}
	}
	return CategoryOvercast
}
