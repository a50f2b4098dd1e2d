package models

// PlayType is the category of play the user calls.
type PlayType string

// Outcome is the predicted result of the play.
type Outcome string

const (
	Pass      PlayType = "Pass"
	Run       PlayType = "Run"
	FieldGoal PlayType = "Field Goal"
)

const (
	Success   Outcome = "Success"
	Fail      Outcome = "Fail"
	Touchdown Outcome = "Touchdown"
)

// Option is one selectable entry of the scoring table.
type Option struct {
	Value  string `json:"value"`
	Label  string `json:"label"`
	Points int    `json:"points"`
}

var playTypes = []Option{
	{Value: string(Pass), Label: "🏈 Pass", Points: 1},
	{Value: string(Run), Label: "🏃 Run", Points: 1},
	{Value: string(FieldGoal), Label: "🎯 Field Goal", Points: 3},
}

var outcomes = []Option{
	{Value: string(Success), Label: "✅ Success", Points: 2},
	{Value: string(Fail), Label: "❌ Fail", Points: 0},
	{Value: string(Touchdown), Label: "🔥 Touchdown", Points: 5},
}

// PlayTypes returns the play type options in display order.
func PlayTypes() []Option { return append([]Option(nil), playTypes...) }

// Outcomes returns the outcome options in display order.
func Outcomes() []Option { return append([]Option(nil), outcomes...) }

// PointsForPlayType returns the table value for pt, 0 when pt is empty or unknown.
func PointsForPlayType(pt PlayType) int {
	return lookup(playTypes, string(pt))
}

// PointsForOutcome returns the table value for o, 0 when o is empty or unknown.
func PointsForOutcome(o Outcome) int {
	return lookup(outcomes, string(o))
}

// ParsePlayType reports whether s names a known play type.
func ParsePlayType(s string) (PlayType, bool) {
	if !known(playTypes, s) {
		return "", false
	}
	return PlayType(s), true
}

// ParseOutcome reports whether s names a known outcome.
func ParseOutcome(s string) (Outcome, bool) {
	if !known(outcomes, s) {
		return "", false
	}
	return Outcome(s), true
}

func lookup(opts []Option, v string) int {
	for _, o := range opts {
		if o.Value == v {
			return o.Points
		}
	}
	return 0
}

func known(opts []Option, v string) bool {
	for _, o := range opts {
		if o.Value == v {
			return true
		}
	}
	return false
}
