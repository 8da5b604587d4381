package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/zenfit/internal/keyvalue"
	"github.com/2beens/zenfit/internal/telemetry/tracing"
	"github.com/2beens/zenfit/internal/workout"
)

// StorageKey is the key-value slot holding the whole session store,
// serialized as a date -> sessions mapping.
const StorageKey = "zenfit_sessions"

var ErrSessionExists = errors.New("session with this id already exists")

// Store owns the mapping from calendar date to the workout sessions
// recorded that day, in insertion order. A date key exists only while it
// has at least one session. Every mutation is written through to the
// backing key-value store in full.
type Store struct {
	kv keyvalue.Store

	mutex    sync.RWMutex
	days     map[string][]workout.Session
	dateByID map[string]string
}

func NewStore(ctx context.Context, kv keyvalue.Store) (*Store, error) {
	store := &Store{
		kv:       kv,
		days:     make(map[string][]workout.Session),
		dateByID: make(map[string]string),
	}

	value, err := kv.Get(ctx, StorageKey)
	if err != nil {
		if errors.Is(err, keyvalue.ErrKeyNotFound) {
			log.Debugf("session store: no persisted state, starting empty")
			return store, nil
		}
		return nil, fmt.Errorf("load sessions: %w", err)
	}

	if err := json.Unmarshal(value, &store.days); err != nil {
		// corrupt persisted state: start empty rather than refuse to boot
		log.Warnf("session store: malformed persisted state, starting empty: %s", err)
		store.days = make(map[string][]workout.Session)
		return store, nil
	}

	for date, daySessions := range store.days {
		for _, s := range daySessions {
			store.dateByID[s.ID] = date
		}
	}

	log.Debugf("session store: loaded %d days", len(store.days))
	return store, nil
}

func (s *Store) Add(ctx context.Context, session workout.Session) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "sessions.store.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("session.date", session.Date))

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, ok := s.dateByID[session.ID]; ok {
		return fmt.Errorf("%w: %s", ErrSessionExists, session.ID)
	}

	s.days[session.Date] = append(s.days[session.Date], session)
	s.dateByID[session.ID] = session.Date

	if err := s.persist(ctx); err != nil {
		// roll back, memory must never drift ahead of the backing store
		daySessions := s.days[session.Date][:len(s.days[session.Date])-1]
		if len(daySessions) == 0 {
			delete(s.days, session.Date)
		} else {
			s.days[session.Date] = daySessions
		}
		delete(s.dateByID, session.ID)
		return err
	}
	return nil
}

// Delete removes the session with the given id from the given date.
// Unknown date or id is a no-op. When the last session of a date is
// removed, the date key is dropped entirely.
func (s *Store) Delete(ctx context.Context, date, sessionID string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "sessions.store.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("session.date", date))

	s.mutex.Lock()
	defer s.mutex.Unlock()

	daySessions, ok := s.days[date]
	if !ok {
		return nil
	}

	remaining := make([]workout.Session, 0, len(daySessions))
	for _, session := range daySessions {
		if session.ID != sessionID {
			remaining = append(remaining, session)
		}
	}
	if len(remaining) == len(daySessions) {
		return nil
	}

	if len(remaining) == 0 {
		delete(s.days, date)
	} else {
		s.days[date] = remaining
	}
	delete(s.dateByID, sessionID)

	if err := s.persist(ctx); err != nil {
		s.days[date] = daySessions
		s.dateByID[sessionID] = date
		return err
	}
	return nil
}

// List returns the sessions recorded on the given date, in insertion
// order. Empty slice when the date has no sessions.
func (s *Store) List(_ context.Context, date string) []workout.Session {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	daySessions := make([]workout.Session, len(s.days[date]))
	copy(daySessions, s.days[date])
	return daySessions
}

// ListAll returns every session across all dates, sorted ascending by
// date; sessions sharing a date keep their insertion order.
func (s *Store) ListAll(_ context.Context) []workout.Session {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	dates := make([]string, 0, len(s.days))
	for date := range s.days {
		dates = append(dates, date)
	}
	// YYYY-MM-DD sorts chronologically as plain strings
	sort.Strings(dates)

	var all []workout.Session
	for _, date := range dates {
		all = append(all, s.days[date]...)
	}
	return all
}

// persist rewrites the whole store to the backing key-value slot.
// Callers must hold the write lock.
func (s *Store) persist(ctx context.Context) error {
	value, err := json.Marshal(s.days)
	if err != nil {
		return fmt.Errorf("marshal sessions: %w", err)
	}
	if err := s.kv.Set(ctx, StorageKey, value); err != nil {
		return fmt.Errorf("persist sessions: %w", err)
	}
	return nil
}
