package models

import (
	"fmt"
	"time"
)

// TimestampLayout matches the ISO-8601 form browsers produce (UTC, milliseconds).
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Prediction is a single locked-in call. The JSON shape is the stored format
// and must not change.
type Prediction struct {
	PlayType  PlayType `json:"playType"`
	Result    Outcome  `json:"result"`
	Points    int      `json:"points"`
	Quarter   int      `json:"quarter"`
	Timestamp string   `json:"timestamp"`
	ID        string   `json:"id"`
}

// NewPrediction scores pt and result and stamps the record with at.
// The id is quarter-timestamp and is not unique for two calls in the same
// quarter and millisecond.
func NewPrediction(pt PlayType, result Outcome, quarter int, at time.Time) Prediction {
	ts := FormatTimestamp(at)
	return Prediction{
		PlayType:  pt,
		Result:    result,
		Points:    PointsForPlayType(pt) + PointsForOutcome(result),
		Quarter:   quarter,
		Timestamp: ts,
		ID:        fmt.Sprintf("%d-%s", quarter, ts),
	}
}

// FormatTimestamp renders t in TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// Time parses the record timestamp. Unparseable values yield the zero time.
func (p Prediction) Time() time.Time {
	t, err := time.Parse(time.RFC3339Nano, p.Timestamp)
	if err != nil {
		return time.Time{}
	}
	return t
}
