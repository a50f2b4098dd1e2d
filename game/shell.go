package game

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/padraicbc/playcall/logger"
	"github.com/padraicbc/playcall/models"
	"github.com/padraicbc/playcall/store"
)

// ViewMode selects which screen is shown.
type ViewMode string

const (
	ViewEntry   ViewMode = "entry"
	ViewHistory ViewMode = "history"
)

// DefaultAckDuration is how long a submit acknowledgement stays on screen.
const DefaultAckDuration = 2 * time.Second

// State is a serializable snapshot of the whole app.
type State struct {
	Quarter         int                 `json:"quarter"`
	View            ViewMode            `json:"view"`
	Selection       Selection           `json:"selection"`
	FormState       string              `json:"formState"`
	PotentialPoints int                 `json:"potentialPoints"`
	TotalPoints     int                 `json:"totalPoints"`
	Records         []models.Prediction `json:"records"`
}

// Options configures a Shell. Zero values pick sensible defaults.
type Options struct {
	Now         func() time.Time
	AckDuration time.Duration
	Notifier    Notifier
	Log         *zap.Logger
}

// Shell owns the session: current quarter, current view and the in-memory
// records. Every method runs to completion under one lock, so concurrent
// callers see the same ordering a single event loop would give.
type Shell struct {
	mu       sync.Mutex
	quarter  int
	view     ViewMode
	records  []models.Prediction
	form     *Form
	notifier Notifier
	ack      time.Duration
	log      *zap.Logger
}

// NewShell loads the stored predictions once and starts at quarter 1 on the
// entry screen. The store is not read again.
func NewShell(ctx context.Context, st store.Store, opts Options) *Shell {
	if opts.AckDuration <= 0 {
		opts.AckDuration = DefaultAckDuration
	}
	if opts.Notifier == nil {
		opts.Notifier = NotifierFunc(func(Notification) {})
	}
	opts.Log = logger.Component(opts.Log, "game")

	s := &Shell{
		quarter:  1,
		view:     ViewEntry,
		records:  st.Load(ctx),
		notifier: opts.Notifier,
		ack:      opts.AckDuration,
		log:      opts.Log,
	}
	s.form = NewForm(st, s.onPredictionSubmitted, opts.Now)
	s.log.Info("session started", zap.Int("records", len(s.records)))
	return s
}

// Quarter returns the current quarter.
func (s *Shell) Quarter() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quarter
}

// AdvanceQuarter moves to the next quarter, wrapping 4 back to 1.
func (s *Shell) AdvanceQuarter() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quarter = s.quarter%4 + 1
	return s.quarter
}

// View returns the current screen.
func (s *Shell) View() ViewMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// ToggleView flips between the entry and history screens.
func (s *Shell) ToggleView() ViewMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.view == ViewHistory {
		s.view = ViewEntry
	} else {
		s.view = ViewHistory
	}
	return s.view
}

// SelectPlayType updates the form and returns the potential points.
func (s *Shell) SelectPlayType(pt models.PlayType) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form.SelectPlayType(pt)
}

// SelectResult updates the form and returns the potential points.
func (s *Shell) SelectResult(r models.Outcome) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form.SelectResult(r)
}

// Submit locks in the current selection for the current quarter.
// ErrIncomplete means nothing happened. An error wrapping store.ErrUnavailable
// means the record is kept for this session only.
func (s *Shell) Submit(ctx context.Context) (models.Prediction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitLocked(ctx)
}

// SubmitSelection locks in sel for the current quarter as one transition.
// An incomplete sel returns ErrIncomplete and leaves the form as it was.
func (s *Shell) SubmitSelection(ctx context.Context, sel Selection) (models.Prediction, error) {
	if sel.State() != BothChosen {
		return models.Prediction{}, ErrIncomplete
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.form.SelectPlayType(sel.PlayType)
	s.form.SelectResult(sel.Result)
	return s.submitLocked(ctx)
}

func (s *Shell) submitLocked(ctx context.Context) (models.Prediction, error) {
	p, err := s.form.Submit(ctx, s.quarter)
	if err == nil || errors.Is(err, ErrIncomplete) {
		return p, err
	}

	s.log.Warn("prediction not persisted", zap.String("id", p.ID), zap.Error(err))
	if errors.Is(err, store.ErrUnavailable) {
		s.notifier.Notify(newNotification(KindWarning, "Storage unavailable, prediction kept for this session", s.ack))
	}
	return p, err
}

// onPredictionSubmitted runs with s.mu held, from inside Form.Submit.
func (s *Shell) onPredictionSubmitted(p models.Prediction) {
	s.records = append(s.records, p)
	s.log.Info("prediction submitted",
		zap.String("id", p.ID),
		zap.String("play_type", string(p.PlayType)),
		zap.String("result", string(p.Result)),
		zap.Int("points", p.Points),
	)
	s.notifier.Notify(newNotification(KindPoints, fmt.Sprintf("+%d points! 🎯", p.Points), s.ack))
}

// Records returns a copy of the in-memory records in insertion order.
func (s *Shell) Records() []models.Prediction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Prediction{}, s.records...)
}

// History derives the stats view from the in-memory records.
func (s *Shell) History() History {
	return NewHistory(s.Records())
}

// Snapshot returns the current state for rendering.
func (s *Shell) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	sel := s.form.Selection()
	return State{
		Quarter:         s.quarter,
		View:            s.view,
		Selection:       sel,
		FormState:       sel.State().String(),
		PotentialPoints: sel.PotentialPoints(),
		TotalPoints:     TotalPoints(s.records),
		Records:         append([]models.Prediction{}, s.records...),
	}
}
