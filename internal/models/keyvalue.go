package models

import "time"

// KeyValue backs the per-user draft store. One row per key, whole value
// overwritten on every write.
type KeyValue struct {
	Key       string    `gorm:"primary_key"`
	Value     []byte    `gorm:"type:jsonb"`
	UpdatedAt time.Time
}
