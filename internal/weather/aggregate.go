package weather

import "sort"

// MergeForecasts combines per-day snapshots from multiple providers into one
// forecast. Numeric fields are averaged per day; the condition is selected by
// majority (first seen wins a tie); LastUpdated keeps the newest timestamp.
// Days reported by only some providers are still included, so a provider
// failure narrows confidence rather than dropping coverage.
func MergeForecasts(forecasts []Forecast) Forecast {
	byDay := make(map[string][]Snapshot)
	for _, f := range forecasts {
		for _, snap := range f {
			byDay[snap.Date] = append(byDay[snap.Date], snap)
		}
	}
	if len(byDay) == 0 {
		return nil
	}

	dates := make([]string, 0, len(byDay))
	for date := range byDay {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	merged := make(Forecast, 0, len(dates))
	for _, date := range dates {
		merged = append(merged, mergeDay(date, byDay[date]))
	}
	return merged
}

func mergeDay(date string, snaps []Snapshot) Snapshot {
	out := Snapshot{Date: date}

	var (
		probSum   float64
		probCount int
	)
	conditionCounts := make(map[string]int)
	conditionOrder := make([]string, 0, len(snaps))

	for _, s := range snaps {
		out.TempF += s.TempF
		out.PrecipIn += s.PrecipIn
		out.WindMph += s.WindMph
		out.CloudCover += s.CloudCover
		out.VisibilityMi += s.VisibilityMi

		if s.PrecipProb != nil {
			probSum += *s.PrecipProb
			probCount++
		}
		if _, seen := conditionCounts[s.Condition]; !seen {
			conditionOrder = append(conditionOrder, s.Condition)
		}
		conditionCounts[s.Condition]++
		if s.LastUpdated.After(out.LastUpdated) {
			out.LastUpdated = s.LastUpdated
		}
	}

	n := float64(len(snaps))
	out.TempF /= n
	out.PrecipIn /= n
	out.WindMph /= n
	out.CloudCover /= n
	out.VisibilityMi /= n

	if probCount > 0 {
		prob := probSum / float64(probCount)
		out.PrecipProb = &prob
	}

	bestCount := 0
	for _, cond := range conditionOrder {
		if conditionCounts[cond] > bestCount {
			bestCount = conditionCounts[cond]
			out.Condition = cond
		}
	}
	return out
}
