package activities

import (
	"fmt"
	"math"
	"sort"

	"github.com/boredinsantacruz/guide-service/internal/weather"
)

const (
	tierPerfectMin = 80
	tierGreatMin   = 60

	// outdoorFloor excludes outdoor activities entirely (rather than listing
	// them as "good") when the weather makes them a bad suggestion.
	outdoorFloor = 30

	// indoorBaseline is the weather-neutral score for indoor activities.
	indoorBaseline = 75

	// badWeatherIndoorBonus lifts indoor activities when being outside is
	// unpleasant.
	badWeatherIndoorBonus = 10

	// rainFriendlyBonus gives back points to outdoor activities that are
	// explicitly fine in the rain (forest hikes, hot springs).
	rainFriendlyBonus = 15

	// DefaultTopPicks is the flattened top-N size when the caller does not
	// ask for a specific limit.
	DefaultTopPicks = 5
)

// Rank scores every activity against the current weather and buckets the
// results into tiers. An empty catalog yields empty tiers, not an error.
func Rank(catalog []Activity, current weather.Snapshot, topN int) Recommendations {
	if topN <= 0 {
		topN = DefaultTopPicks
	}

	outdoorScore := weather.Score(current)
	category := weather.Categorize(current)

	ranked := make([]RankedActivity, 0, len(catalog))
	for _, act := range catalog {
		score := fitScore(act, current, outdoorScore)
		if act.Setting == SettingOutdoor && score < outdoorFloor {
			continue
		}
		ranked = append(ranked, RankedActivity{
			Activity:       act,
			WeatherScore:   score,
			MatchReason:    matchReason(act, current, category),
			WeatherWarning: weatherWarning(act, current),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].WeatherScore > ranked[j].WeatherScore
	})

	rec := Recommendations{
		Insights: insights(ranked, current, category, outdoorScore),
	}
	for _, ra := range ranked {
		switch {
		case ra.WeatherScore >= tierPerfectMin:
			rec.Tiers.Perfect = append(rec.Tiers.Perfect, ra)
		case ra.WeatherScore >= tierGreatMin:
			rec.Tiers.Great = append(rec.Tiers.Great, ra)
		default:
			rec.Tiers.Good = append(rec.Tiers.Good, ra)
		}
	}

	if topN > len(ranked) {
		topN = len(ranked)
	}
	rec.TopPicks = append([]RankedActivity(nil), ranked[:topN]...)

	return rec
}

// fitScore weights the outdoor suitability score by the activity's setting.
// Indoor activities are weather-neutral; mixed ones split the difference.
func fitScore(act Activity, current weather.Snapshot, outdoorScore int) int {
	switch act.Setting {
	case SettingIndoor:
		score := indoorBaseline
		if outdoorScore < 50 {
			score += badWeatherIndoorBonus
		}
		return score
	case SettingMixed:
		return int(math.Round(float64(indoorBaseline+outdoorScore) / 2))
	default:
		score := outdoorScore
		if act.RainFriendly && current.PrecipIn > 0 {
			score += rainFriendlyBonus
		}
		if score > 100 {
			score = 100
		}
		return score
	}
}

// dominantFactor picks the single weather aspect a match reason should talk
// about, in rough order of how much each dominates the day.
func dominantFactor(current weather.Snapshot) string {
	switch {
	case current.PrecipIn > 0:
		return "rain"
	case current.WindMph > 20:
		return "wind"
	case current.TempF < 50:
		return "cold"
	case current.TempF > 85:
		return "hot"
	case current.VisibilityMi < 3:
		return "fog"
	case current.CloudCover >= 60:
		return "clouds"
	default:
		return "sun"
	}
}

func matchReason(act Activity, current weather.Snapshot, category weather.Category) string {
	factor := dominantFactor(current)

	if act.Setting == SettingIndoor {
		switch factor {
		case "rain":
			return "Rainy out there, a great day to be indoors"
		case "cold":
			return "Cold outside, cozy inside"
		case "wind", "fog":
			return fmt.Sprintf("%s weather, stay comfortable inside", category.Label())
		default:
			return "Good any day, whatever the weather"
		}
	}

	switch factor {
	case "sun":
		if act.HasTag("beach") || act.HasTag("water") {
			return fmt.Sprintf("Sunny and %.0f°F, perfect beach weather", current.TempF)
		}
		return fmt.Sprintf("Sunny and %.0f°F, ideal for getting outside", current.TempF)
	case "clouds":
		return "Overcast but dry, still a solid pick"
	case "rain":
		if act.RainFriendly {
			return "Rain in the forecast, but this one works in wet weather"
		}
		return "Doable between showers if you time it right"
	case "wind":
		return "Blustery day, better for sheltered spots"
	case "cold":
		return fmt.Sprintf("Chilly at %.0f°F, bundle up", current.TempF)
	case "hot":
		if act.HasTag("water") || act.HasTag("beach") {
			return fmt.Sprintf("Hot one at %.0f°F, great excuse to get in the water", current.TempF)
		}
		return fmt.Sprintf("Hot at %.0f°F, best in the morning or evening", current.TempF)
	case "fog":
		return "Foggy, views are limited but the mood is free"
	}
	return fmt.Sprintf("%s today", category.Label())
}

// weatherWarning attaches a caution for weather-exposed activities. Rain
// outranks wind when both apply.
func weatherWarning(act Activity, current weather.Snapshot) string {
	if act.Setting == SettingIndoor {
		return ""
	}
	if current.PrecipIn > 0.3 {
		return "Heavy rain expected, have an indoor backup"
	}
	if current.PrecipIn > 0 {
		return "Rain expected, bring an umbrella"
	}
	if current.WindMph > 20 {
		return "Strong wind today, dress in layers"
	}
	return ""
}

func insights(ranked []RankedActivity, current weather.Snapshot, category weather.Category, outdoorScore int) []string {
	var out []string

	switch {
	case outdoorScore >= tierPerfectMin:
		out = append(out, fmt.Sprintf("%s %s and %.0f°F, get outside today", category.Emoji(), category.Label(), current.TempF))
		if current.WindMph < 15 && current.PrecipIn == 0 && hasTagged(ranked, "water", "beach") {
			out = append(out, "Calm and clear, great day for water activities")
		}
	case current.PrecipIn > 0:
		out = append(out, "Rain on the radar, indoor spots lead today")
	case outdoorScore < 50:
		out = append(out, "Rough weather for outdoor plans, museums and cafes shine")
	}

	if current.TempF < 50 {
		out = append(out, "Bring a warm layer, it stays cold all day")
	}

	return out
}

func hasTagged(ranked []RankedActivity, tags ...string) bool {
	for _, ra := range ranked {
		for _, tag := range tags {
			if ra.HasTag(tag) {
				return true
			}
		}
	}
	return false
}
