package weather

import (
	"fmt"
	"time"
)

// Location represents the place the guide covers. Lat/Lon are required by
// forecast providers; City is used for display and optional geocoding.
type Location struct {
	City string  `json:"city"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// Key returns a canonical string key for indexing this location in stores.
func (l Location) Key() string {
	return fmt.Sprintf("%s:%.4f,%.4f", l.City, l.Lat, l.Lon)
}

// Snapshot is a normalized single-day weather reading. Producers are
// responsible for keeping the numeric fields within their natural bounds
// (precip >= 0, cloud cover in [0,100], and so on); the scoring functions
// do not re-validate them.
type Snapshot struct {
	// Date is the calendar day the snapshot describes, formatted YYYY-MM-DD.
	Date string `json:"date"`

	TempF        float64 `json:"tempF"`
	PrecipIn     float64 `json:"precipIn"`
	WindMph      float64 `json:"windMph"`
	CloudCover   float64 `json:"cloudCover"`
	VisibilityMi float64 `json:"visibilityMi"`

	// PrecipProb is the 0-100 chance of precipitation; nil when the
	// provider does not report one.
	PrecipProb *float64 `json:"precipProbability,omitempty"`

	// Condition is the provider's coarse condition code ("clear", "rain", ...).
	Condition string `json:"condition"`

	LastUpdated time.Time `json:"lastUpdated"`
}

// Day parses the snapshot date. The zero time is returned for malformed dates.
func (s Snapshot) Day() time.Time {
	t, err := time.Parse("2006-01-02", s.Date)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Forecast is an ordered multi-day sequence of snapshots, one per day,
// ascending by date.
type Forecast []Snapshot
