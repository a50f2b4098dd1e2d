// Package store persists predictions as a JSON array in a single durable
// key-value slot. The slot can live in a file, PostgreSQL, MySQL, Redis or
// process memory; the stored value is the same in every case.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/padraicbc/playcall/logger"
	"github.com/padraicbc/playcall/models"
)

// ErrUnavailable marks a failed read or write of the durable slot.
var ErrUnavailable = errors.New("persistence unavailable")

// Slot is one durable key-value cell.
type Slot interface {
	// Get returns the value under key and whether it exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Store is the capability the game needs from persistence.
type Store interface {
	Load(ctx context.Context) []models.Prediction
	Append(ctx context.Context, p models.Prediction) error
}

// PredictionStore implements Store on top of a Slot.
type PredictionStore struct {
	slot Slot
	key  string
	log  *zap.Logger
}

// New returns a PredictionStore keeping its array under key in slot.
func New(slot Slot, key string, log *zap.Logger) *PredictionStore {
	return &PredictionStore{slot: slot, key: key, log: logger.Component(log, "store")}
}

// Load returns the stored predictions in insertion order. Missing, unreadable
// or malformed data yields an empty slice.
func (s *PredictionStore) Load(ctx context.Context) []models.Prediction {
	preds, err := s.read(ctx)
	if err != nil {
		s.log.Warn("load predictions", zap.String("key", s.key), zap.Error(err))
		return []models.Prediction{}
	}
	return preds
}

// Append adds p to the end of the stored array and writes the whole array back.
// Identical records are not merged. A failed read is returned without writing
// so existing data is never clobbered; malformed data is replaced.
func (s *PredictionStore) Append(ctx context.Context, p models.Prediction) error {
	preds, err := s.read(ctx)
	if err != nil {
		if !errors.Is(err, errMalformed) {
			return fmt.Errorf("append prediction %s: %w", p.ID, err)
		}
		s.log.Warn("replacing malformed predictions", zap.String("key", s.key), zap.Error(err))
		preds = []models.Prediction{}
	}

	b, err := json.Marshal(append(preds, p))
	if err != nil {
		return fmt.Errorf("encode predictions: %w", err)
	}
	if err := s.slot.Set(ctx, s.key, b); err != nil {
		return fmt.Errorf("append prediction %s: %w: %w", p.ID, ErrUnavailable, err)
	}
	return nil
}

var errMalformed = errors.New("malformed predictions")

func (s *PredictionStore) read(ctx context.Context) ([]models.Prediction, error) {
	raw, ok, err := s.slot.Get(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if !ok || len(raw) == 0 {
		return []models.Prediction{}, nil
	}

	var preds []models.Prediction
	if err := json.Unmarshal(raw, &preds); err != nil {
		return nil, fmt.Errorf("%w: %w", errMalformed, err)
	}
	if preds == nil {
		preds = []models.Prediction{}
	}
	return preds, nil
}
