package weather

import (
	"fmt"
	"sort"
	"strings"
)

// HighlightTier describes how enthusiastically a best day is promoted.
type HighlightTier string

const (
	TierPerfect HighlightTier = "perfect"
	TierGreat   HighlightTier = "great"
	TierBestBet HighlightTier = "best_bet"
)

// minHighlightScore is the floor below which no day is promoted; a week of
// mediocre weather gets no banner at all.
const minHighlightScore = 40

// BestDay is the single highest-scoring day of a forecast window.
type BestDay struct {
	Date     string        `json:"date"`
	Score    int           `json:"score"`
	Category Category      `json:"category"`
	Tier     HighlightTier `json:"tier"`
	Message  string        `json:"message"`
}

// SelectBestDay scores every day of the forecast and returns the top one,
// or ok=false when the forecast is empty or no day clears the highlight
// floor. Ties keep the earlier forecast day (stable sort).
func SelectBestDay(forecast Forecast) (BestDay, bool) {
	if len(forecast) == 0 {
		return BestDay{}, false
	}

	type scoredDay struct {
		snap  Snapshot
		score int
	}

	days := make([]scoredDay, 0, len(forecast))
	for _, snap := range forecast {
		days = append(days, scoredDay{snap: snap, score: Score(snap)})
	}
	sort.SliceStable(days, func(i, j int) bool {
		return days[i].score > days[j].score
	})

	top := days[0]
	if top.score < minHighlightScore {
		return BestDay{}, false
	}

	category := Categorize(top.snap)
	tier := highlightTier(top.score)

	return BestDay{
		Date:     top.snap.Date,
		Score:    top.score,
		Category: category,
		Tier:     tier,
		Message:  highlightMessage(top.snap, category, tier),
	}, true
}

func highlightTier(score int) HighlightTier {
	switch {
	case score >= 80:
		return TierPerfect
	case score >= 65:
		return TierGreat
	}
	return TierBestBet
}

func highlightMessage(snap Snapshot, category Category, tier HighlightTier) string {
	day := dayName(snap)
	conditions := strings.ToLower(category.Label())

	switch tier {
	case TierPerfect:
		return fmt.Sprintf("%s looks perfect: %s and %.0f°F", day, conditions, snap.TempF)
	case TierGreat:
		return fmt.Sprintf("%s is shaping up great: %s and %.0f°F", day, conditions, snap.TempF)
	}
	return fmt.Sprintf("%s is your best bet this week (%s)", day, conditions)
}

// dayName returns the weekday for a snapshot, falling back to the raw date
// string when the date does not parse.
func dayName(snap Snapshot) string {
	day := snap.Day()
	if day.IsZero() {
		return snap.Date
	}
	return day.Weekday().String()
}
