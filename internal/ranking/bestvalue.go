package ranking

import (
	"math"

	"github.com/dharmasatrya/triotrip/internal/models"
)

// DurationWeight converts minutes of travel into currency units for the
// composite "best" score.
const DurationWeight = 0.2

// Duration returns the flight's total minutes, or +Inf when unknown.
func Duration(r models.ResultCandidate) float64 {
	if r.Flight.DurationMinutes <= 0 {
		return math.Inf(1)
	}
	return float64(r.Flight.DurationMinutes)
}

// BestValue scores a result as display_total + 0.2 × duration.
// Lower score = better value; unknown durations score +Inf.
func BestValue(r models.ResultCandidate) float64 {
	return r.DisplayTotal + DurationWeight*Duration(r)
}
