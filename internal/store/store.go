package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/balkashynov/studylog/internal/clock"
	"github.com/balkashynov/studylog/internal/models"
)

// NewSession holds the raw values of an add request
type NewSession struct {
	Subject  string
	Duration int
	TimeUnit models.TimeUnit // empty means minutes
	Date     models.Date     // zero means the day the session is recorded
	Notes    string
}

// Store owns the canonical, newest-first session collection and writes it
// through to a Slot after every mutation. It is not safe for concurrent use.
type Store struct {
	slot     Slot
	key      string
	sessions []models.StudySession

	newID  func() string
	clock  clock.Clock
	logger zerolog.Logger
}

// Option configures a Store
type Option func(*Store)

// WithKey overrides the slot key
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

// WithIDGenerator overrides uuid-based ids
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// WithClock sets the clock used for creation timestamps and default dates
func WithClock(c clock.Clock) Option {
	return func(s *Store) { s.clock = c }
}

// WithLogger sets the logger for persistence diagnostics
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// New creates a store on top of slot and loads the persisted collection
func New(slot Slot, opts ...Option) *Store {
	s := &Store{
		slot:   slot,
		key:    DefaultKey,
		newID:  uuid.NewString,
		clock:  clock.RealClock{},
		logger: log.Logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With().Str("component", "store").Str("key", s.key).Logger()

	s.Load()
	return s
}

// Add validates the input, prepends a new session and persists.
// On a validation failure the collection is left untouched.
func (s *Store) Add(in NewSession) (models.StudySession, error) {
	subject := strings.TrimSpace(in.Subject)
	if subject == "" {
		return models.StudySession{}, &ValidationError{Field: "subject", Reason: "subject is required"}
	}
	unit := in.TimeUnit
	if unit == "" {
		unit = models.UnitMinutes
	}
	if err := checkDuration("duration", in.Duration, unit); err != nil {
		return models.StudySession{}, err
	}
	if !unit.Valid() {
		return models.StudySession{}, &ValidationError{Field: "timeUnit", Reason: fmt.Sprintf("unknown time unit %q", in.TimeUnit)}
	}

	now := s.clock.Now()
	date := in.Date
	if date.IsZero() {
		date = models.DateOf(now)
	}

	session := models.StudySession{
		ID:        s.uniqueID(),
		Subject:   subject,
		Duration:  in.Duration,
		TimeUnit:  unit,
		Date:      date,
		Notes:     strings.TrimSpace(in.Notes),
		CreatedAt: now.UTC().Truncate(time.Millisecond),
	}

	s.sessions = append([]models.StudySession{session}, s.sessions...)
	_ = s.Persist()

	s.logger.Debug().Str("id", session.ID).Str("subject", session.Subject).Msg("session added")
	return session, nil
}

// uniqueID draws ids until one is unused in the collection
func (s *Store) uniqueID() string {
	for {
		id := s.newID()
		if _, exists := s.Get(id); !exists && id != "" {
			return id
		}
	}
}

// Remove deletes the session with id. Removing an unknown id is a no-op.
func (s *Store) Remove(id string) bool {
	for i, session := range s.sessions {
		if session.ID != id {
			continue
		}
		next := make([]models.StudySession, 0, len(s.sessions)-1)
		next = append(next, s.sessions[:i]...)
		next = append(next, s.sessions[i+1:]...)
		s.sessions = next
		_ = s.Persist()

		s.logger.Debug().Str("id", id).Msg("session removed")
		return true
	}
	return false
}

// Clear drops every session and persists the empty collection
func (s *Store) Clear() {
	s.sessions = []models.StudySession{}
	_ = s.Persist()
	s.logger.Debug().Msg("collection cleared")
}

// ReplaceAll swaps in a whole collection after validating every record.
// Subjects and notes are trimmed the same way Add trims them.
func (s *Store) ReplaceAll(sessions []models.StudySession) error {
	sessions = normalizeAll(sessions)
	if err := validateAll(sessions); err != nil {
		return err
	}
	s.sessions = sessions
	_ = s.Persist()
	return nil
}

// All returns a copy of the collection, newest first
func (s *Store) All() []models.StudySession {
	out := make([]models.StudySession, len(s.sessions))
	copy(out, s.sessions)
	return out
}

// Get looks up a session by exact id
func (s *Store) Get(id string) (models.StudySession, bool) {
	for _, session := range s.sessions {
		if session.ID == id {
			return session, true
		}
	}
	return models.StudySession{}, false
}

// Len returns the number of sessions
func (s *Store) Len() int {
	return len(s.sessions)
}

// Persist writes the whole collection to the slot. Failures are logged and
// returned; the in-memory collection stays authoritative either way.
func (s *Store) Persist() error {
	data, err := json.Marshal(s.sessions)
	if err != nil {
		perr := &PersistenceError{Op: "encode", Key: s.key, Err: err}
		s.logger.Error().Err(err).Str("op", perr.Op).Msg("Failed to persist sessions")
		return perr
	}

	if err := s.slot.Put(context.Background(), s.key, data); err != nil {
		perr := &PersistenceError{Op: "write", Key: s.key, Err: err}
		s.logger.Error().Err(err).Str("op", perr.Op).Msg("Failed to persist sessions")
		return perr
	}
	return nil
}

// Load replaces the in-memory collection with the slot contents. Missing or
// malformed data yields an empty collection.
func (s *Store) Load() []models.StudySession {
	s.sessions = s.read()
	return s.All()
}

func (s *Store) read() []models.StudySession {
	data, err := s.slot.Get(context.Background(), s.key)
	if errors.Is(err, ErrSlotEmpty) {
		return []models.StudySession{}
	}
	if err != nil {
		s.logger.Warn().Err(err).Str("op", "read").Msg("Could not read sessions, starting empty")
		return []models.StudySession{}
	}

	var sessions []models.StudySession
	if err := json.Unmarshal(data, &sessions); err != nil {
		s.logger.Warn().Err(err).Str("op", "decode").Msg("Discarding malformed session data")
		return []models.StudySession{}
	}
	sessions = normalizeAll(sessions)
	if err := validateAll(sessions); err != nil {
		s.logger.Warn().Err(err).Str("op", "decode").Msg("Discarding invalid session data")
		return []models.StudySession{}
	}
	return sessions
}

// validateAll checks the invariants of a full collection
func validateAll(sessions []models.StudySession) error {
	seen := make(map[string]bool, len(sessions))
	for i, session := range sessions {
		field := func(name string) string { return fmt.Sprintf("sessions[%d].%s", i, name) }

		if session.ID == "" {
			return &ValidationError{Field: field("id"), Reason: "id is required"}
		}
		if seen[session.ID] {
			return &ValidationError{Field: field("id"), Reason: fmt.Sprintf("duplicate id %q", session.ID)}
		}
		seen[session.ID] = true

		if strings.TrimSpace(session.Subject) == "" {
			return &ValidationError{Field: field("subject"), Reason: "subject is required"}
		}
		if !session.TimeUnit.Valid() {
			return &ValidationError{Field: field("timeUnit"), Reason: fmt.Sprintf("unknown time unit %q", session.TimeUnit)}
		}
		if err := checkDuration(field("duration"), session.Duration, session.TimeUnit); err != nil {
			return err
		}
		if session.Date.IsZero() {
			return &ValidationError{Field: field("date"), Reason: "date is required"}
		}
	}
	return nil
}

// maxHours keeps hours-to-minutes conversion from overflowing int
const maxHours = math.MaxInt / 60

// checkDuration rejects non-positive durations and hours that cannot be
// expressed in minutes
func checkDuration(field string, amount int, unit models.TimeUnit) *ValidationError {
	if amount <= 0 {
		return &ValidationError{Field: field, Reason: "duration must be greater than zero"}
	}
	if unit == models.UnitHours && amount > maxHours {
		return &ValidationError{Field: field, Reason: fmt.Sprintf("duration must be at most %d hours", maxHours)}
	}
	return nil
}

// normalizeAll returns a copy with subjects and notes trimmed
func normalizeAll(sessions []models.StudySession) []models.StudySession {
	out := make([]models.StudySession, len(sessions))
	for i, session := range sessions {
		session.Subject = strings.TrimSpace(session.Subject)
		session.Notes = strings.TrimSpace(session.Notes)
		out[i] = session
	}
	return out
}
