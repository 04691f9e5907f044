package redis

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"

	"github.com/balkashynov/studylog/internal/config"
	"github.com/balkashynov/studylog/internal/store"
)

func setupTestSlot(t *testing.T) (*Slot, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)

	slot, err := Open(config.RedisConfig{
		Addr:    mr.Addr(),
		Timeout: "3s",
	})
	if err != nil {
		t.Fatalf("Failed to open Redis slot: %v", err)
	}
	t.Cleanup(func() { _ = slot.Close() })

	return slot, mr
}

func TestSlotGetMissing(t *testing.T) {
	slot, _ := setupTestSlot(t)

	_, err := slot.Get(context.Background(), "studyLogs")
	if !errors.Is(err, store.ErrSlotEmpty) {
		t.Fatalf("expected ErrSlotEmpty, got %v", err)
	}
}

func TestSlotPutGet(t *testing.T) {
	slot, mr := setupTestSlot(t)
	ctx := context.Background()

	if err := slot.Put(ctx, "studyLogs", []byte(`[]`)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := slot.Put(ctx, "studyLogs", []byte(`[{"id":"a"}]`)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := slot.Get(ctx, "studyLogs")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != `[{"id":"a"}]` {
		t.Errorf("Expected overwritten value, got %s", got)
	}

	raw, err := mr.Get("studylog:studyLogs")
	if err != nil {
		t.Fatalf("miniredis get: %v", err)
	}
	if raw != `[{"id":"a"}]` {
		t.Errorf("Expected namespaced key in redis, got %q", raw)
	}
	if ttl := mr.TTL("studylog:studyLogs"); ttl != 0 {
		t.Errorf("Expected no expiry, got %v", ttl)
	}
}

func TestOpenFailsWithoutServer(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	addr := mr.Addr()
	mr.Close()

	if _, err := Open(config.RedisConfig{Addr: addr, Timeout: "200ms"}); err == nil {
		t.Fatalf("Expected connection error")
	}
}

func TestStoreWriteFailureIsNonFatal(t *testing.T) {
	slot, mr := setupTestSlot(t)

	s := store.New(slot, store.WithLogger(zerolog.Nop()))
	mr.SetError("READONLY You can't write against a read only replica.")

	session, err := s.Add(store.NewSession{Subject: "Math", Duration: 30})
	if err != nil {
		t.Fatalf("Add should not fail on a write error: %v", err)
	}
	if _, ok := s.Get(session.ID); !ok {
		t.Fatalf("Expected in-memory session after failed write")
	}

	mr.SetError("")
	if err := s.Persist(); err != nil {
		t.Fatalf("Persist after recovery: %v", err)
	}

	reloaded := store.New(slot, store.WithLogger(zerolog.Nop()))
	if reloaded.Len() != 1 {
		t.Fatalf("Expected 1 session after recovery, got %d", reloaded.Len())
	}
}
