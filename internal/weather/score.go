package weather

import "math"

// baseScore is the starting point before any penalty or bonus is applied.
const baseScore = 100

// scoreTerm is one independent additive term of the outdoor suitability
// score. Terms never inspect each other, so their order does not matter;
// keeping them in a table lets each weight be tested on its own.
type scoreTerm struct {
	name  string
	delta func(Snapshot) float64
}

var scoreTerms = []scoreTerm{
	{
		name: "temperature band",
		delta: func(s Snapshot) float64 {
			switch {
			case s.TempF < 50:
				return -30
			case s.TempF < 60:
				return -15
			case s.TempF > 90:
				return -20
			}
			return 0
		},
	},
	{
		name: "ideal temperature bonus",
		delta: func(s Snapshot) float64 {
			if s.TempF >= 65 && s.TempF <= 75 {
				return 10
			}
			return 0
		},
	},
	{
		name: "precipitation amount",
		delta: func(s Snapshot) float64 {
			return -s.PrecipIn * 100
		},
	},
	{
		name: "precipitation probability",
		delta: func(s Snapshot) float64 {
			if s.PrecipProb == nil {
				return 0
			}
			return -*s.PrecipProb * 0.2
		},
	},
	{
		name: "wind",
		delta: func(s Snapshot) float64 {
			switch {
			case s.WindMph > 20:
				return -20
			case s.WindMph > 15:
				return -10
			}
			return 0
		},
	},
	{
		name: "cloud cover",
		delta: func(s Snapshot) float64 {
			return -s.CloudCover * 0.15
		},
	},
	{
		name: "visibility",
		delta: func(s Snapshot) float64 {
			switch {
			case s.VisibilityMi < 3:
				return -20
			case s.VisibilityMi < 5:
				return -10
			}
			return 0
		},
	},
}

// Score computes the 0-100 outdoor suitability score for a snapshot.
// The result is the clamped, rounded sum of all score terms over a base of
// 100. Inputs are taken as-is; NaN fields produce a meaningless result.
func Score(s Snapshot) int {
	total := float64(baseScore)
	for _, term := range scoreTerms {
		total += term.delta(s)
	}
	return clampScore(math.Round(total))
}

func clampScore(v float64) int {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	}
	return int(v)
}
