package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"

	"github.com/padraicbc/playcall/models"
)

// SQLSlot keeps values in the kv_slots table of a PostgreSQL or MySQL database.
type SQLSlot struct {
	db *bun.DB
}

// NewSQLSlot wraps db. The kv_slots table must exist (see db.CreateTables).
func NewSQLSlot(db *bun.DB) *SQLSlot {
	return &SQLSlot{db: db}
}

func (s *SQLSlot) Get(ctx context.Context, key string) ([]byte, bool, error) {
	row := new(models.Slot)
	err := s.db.NewSelect().Model(row).
		Where("slot_key = ?", key).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return []byte(row.Value), true, nil
}

func (s *SQLSlot) Set(ctx context.Context, key string, value []byte) error {
	row := &models.Slot{Key: key, Value: string(value)}
	q := s.db.NewInsert().Model(row)
	if s.db.Dialect().Name() == dialect.MySQL {
		q = q.On("DUPLICATE KEY UPDATE").Set("slot_value = VALUES(slot_value)")
	} else {
		q = q.On("CONFLICT (slot_key) DO UPDATE").
			Set("slot_value = EXCLUDED.slot_value").
			Returning("NULL")
	}
	_, err := q.Exec(ctx)
	return err
}
