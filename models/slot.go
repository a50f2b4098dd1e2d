package models

import "github.com/uptrace/bun"

// Slot is a single key-value row used by the SQL-backed stores.
type Slot struct {
	bun.BaseModel `bun:"table:kv_slots,alias:kv"`

	Key   string `bun:"slot_key,pk,type:varchar(191)" json:"key"`
	Value string `bun:"slot_value,notnull,type:text" json:"value"`
}
