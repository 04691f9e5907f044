package models

import (
	"time"
)

// Slot is one durable key-value entry. The whole session collection lives in
// a single slot as a JSON array.
type Slot struct {
	Key       string    `gorm:"column:slot_key;primarykey" json:"key"`
	Value     string    `gorm:"not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
