package game

import (
	"sort"

	"github.com/padraicbc/playcall/models"
)

// History is the stats view of a set of predictions.
type History struct {
	Predictions []models.Prediction `json:"predictions"`
	TotalPoints int                 `json:"totalPoints"`
	Count       int                 `json:"count"`
}

// NewHistory sorts a copy of records newest first. Records with equal
// timestamps keep their insertion order.
func NewHistory(records []models.Prediction) History {
	sorted := make([]models.Prediction, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time().After(sorted[j].Time())
	})

	return History{
		Predictions: sorted,
		TotalPoints: TotalPoints(records),
		Count:       len(records),
	}
}

// Empty reports whether there is nothing to show yet.
func (h History) Empty() bool { return h.Count == 0 }

// TotalPoints sums the stored points of records.
func TotalPoints(records []models.Prediction) int {
	total := 0
	for _, p := range records {
		total += p.Points
	}
	return total
}
