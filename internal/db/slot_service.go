package db

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/balkashynov/studylog/internal/models"
	"github.com/balkashynov/studylog/internal/store"
)

// SlotStore keeps durable slots in the sqlite "slots" table
type SlotStore struct {
	db *gorm.DB
}

// NewSlotStore wraps an opened database
func NewSlotStore(db *gorm.DB) *SlotStore {
	return &SlotStore{db: db}
}

// Get returns the value stored under key, or store.ErrSlotEmpty
func (s *SlotStore) Get(ctx context.Context, key string) ([]byte, error) {
	var slot models.Slot
	err := s.db.WithContext(ctx).Where("slot_key = ?", key).First(&slot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, store.ErrSlotEmpty
	}
	if err != nil {
		return nil, err
	}
	return []byte(slot.Value), nil
}

// Put overwrites the value stored under key
func (s *SlotStore) Put(ctx context.Context, key string, value []byte) error {
	slot := models.Slot{
		Key:       key,
		Value:     string(value),
		UpdatedAt: time.Now(),
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slot_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&slot).Error
}
