package game

import (
	"context"
	"errors"
	"time"

	"github.com/padraicbc/playcall/models"
	"github.com/padraicbc/playcall/store"
)

// ErrIncomplete is returned by Submit when a selection is missing.
var ErrIncomplete = errors.New("play type and result are both required")

// FormState is the derived stage of the prediction form.
type FormState int

const (
	Empty FormState = iota
	PlayTypeChosen
	ResultChosen
	BothChosen
)

func (s FormState) String() string {
	switch s {
	case PlayTypeChosen:
		return "play_type_chosen"
	case ResultChosen:
		return "result_chosen"
	case BothChosen:
		return "both_chosen"
	}
	return "empty"
}

// Selection is the serializable content of the form.
type Selection struct {
	PlayType models.PlayType `json:"playType"`
	Result   models.Outcome  `json:"result"`
}

// State reports which fields are set.
func (s Selection) State() FormState {
	switch {
	case s.PlayType != "" && s.Result != "":
		return BothChosen
	case s.PlayType != "":
		return PlayTypeChosen
	case s.Result != "":
		return ResultChosen
	}
	return Empty
}

// PotentialPoints is what the current selection would score. Unset fields count 0.
func (s Selection) PotentialPoints() int {
	return models.PointsForPlayType(s.PlayType) + models.PointsForOutcome(s.Result)
}

// Form captures the two selections and turns them into a stored prediction.
type Form struct {
	sel      Selection
	store    store.Store
	onSubmit func(models.Prediction)
	now      func() time.Time
}

// NewForm returns an empty form. onSubmit receives every built record, even
// when persisting it failed.
func NewForm(st store.Store, onSubmit func(models.Prediction), now func() time.Time) *Form {
	if now == nil {
		now = time.Now
	}
	if onSubmit == nil {
		onSubmit = func(models.Prediction) {}
	}
	return &Form{store: st, onSubmit: onSubmit, now: now}
}

// Selection returns the current selection.
func (f *Form) Selection() Selection { return f.sel }

// SelectPlayType sets the play type; "" clears it.
func (f *Form) SelectPlayType(pt models.PlayType) int {
	f.sel.PlayType = pt
	return f.sel.PotentialPoints()
}

// SelectResult sets the result; "" clears it.
func (f *Form) SelectResult(r models.Outcome) int {
	f.sel.Result = r
	return f.sel.PotentialPoints()
}

// Reset clears both selections.
func (f *Form) Reset() { f.sel = Selection{} }

// Submit builds a record for quarter, appends it to the store, hands it to the
// submit callback and clears the form. An incomplete form is left untouched.
// A store error is returned after the record has been delivered.
func (f *Form) Submit(ctx context.Context, quarter int) (models.Prediction, error) {
	if f.sel.State() != BothChosen {
		return models.Prediction{}, ErrIncomplete
	}

	p := models.NewPrediction(f.sel.PlayType, f.sel.Result, quarter, f.now())
	err := f.store.Append(ctx, p)
	f.onSubmit(p)
	f.Reset()
	return p, err
}
