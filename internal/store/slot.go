package store

import (
	"context"
	"errors"
)

// DefaultKey is the slot key the session collection is stored under
const DefaultKey = "studyLogs"

// ErrSlotEmpty is returned by Slot.Get when nothing is stored under the key
var ErrSlotEmpty = errors.New("slot is empty")

// Slot is a durable key-value location holding one serialized blob per key.
// Implementations live in internal/db (sqlite) and internal/storage/redis.
type Slot interface {
	// Get returns the stored value or ErrSlotEmpty
	Get(ctx context.Context, key string) ([]byte, error)
	// Put overwrites the value stored under key
	Put(ctx context.Context, key string, value []byte) error
}
