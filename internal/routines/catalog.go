package routines

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/zenfit/internal/keyvalue"
	"github.com/2beens/zenfit/internal/telemetry/tracing"
	"github.com/2beens/zenfit/internal/workout"
)

// StorageKey is the key-value slot holding the routine catalog,
// serialized as a plain array.
const StorageKey = "zenfit_routines"

var (
	ErrRoutineExists   = errors.New("routine with this id already exists")
	ErrRoutineNotFound = errors.New("routine not found")
)

// Catalog owns the list of named, reusable workout templates, in
// insertion order, unique by id. Mutations are written through to the
// backing key-value store in full.
type Catalog struct {
	kv keyvalue.Store

	mutex    sync.RWMutex
	routines []workout.Routine
}

func NewCatalog(ctx context.Context, kv keyvalue.Store) (*Catalog, error) {
	catalog := &Catalog{
		kv: kv,
	}

	value, err := kv.Get(ctx, StorageKey)
	if err != nil {
		if errors.Is(err, keyvalue.ErrKeyNotFound) {
			log.Debugf("routine catalog: no persisted state, starting empty")
			return catalog, nil
		}
		return nil, fmt.Errorf("load routines: %w", err)
	}

	if err := json.Unmarshal(value, &catalog.routines); err != nil {
		log.Warnf("routine catalog: malformed persisted state, starting empty: %s", err)
		catalog.routines = nil
		return catalog, nil
	}

	log.Debugf("routine catalog: loaded %d routines", len(catalog.routines))
	return catalog, nil
}

func (c *Catalog) Add(ctx context.Context, routine workout.Routine) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "routines.catalog.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("routine.name", routine.Name))

	c.mutex.Lock()
	defer c.mutex.Unlock()

	for _, existing := range c.routines {
		if existing.ID == routine.ID {
			return fmt.Errorf("%w: %s", ErrRoutineExists, routine.ID)
		}
	}

	c.routines = append(c.routines, routine)
	if err := c.persist(ctx); err != nil {
		// roll back, memory must never drift ahead of the backing store
		c.routines = c.routines[:len(c.routines)-1]
		return err
	}
	return nil
}

// Delete removes the routine with the given id; unknown ids are a no-op.
func (c *Catalog) Delete(ctx context.Context, routineID string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "routines.catalog.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	c.mutex.Lock()
	defer c.mutex.Unlock()

	remaining := make([]workout.Routine, 0, len(c.routines))
	for _, routine := range c.routines {
		if routine.ID != routineID {
			remaining = append(remaining, routine)
		}
	}
	if len(remaining) == len(c.routines) {
		return nil
	}

	previous := c.routines
	c.routines = remaining
	if err := c.persist(ctx); err != nil {
		c.routines = previous
		return err
	}
	return nil
}

func (c *Catalog) List(_ context.Context) []workout.Routine {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	routines := make([]workout.Routine, len(c.routines))
	copy(routines, c.routines)
	return routines
}

// Materialize returns a deep, independently owned copy of the routine's
// activity payload, suitable for pre-filling a new session draft. The
// copy shares no identity with the routine: later edits to the session
// never reach back into the template, and vice versa.
func (c *Catalog) Materialize(_ context.Context, routineID string) (*workout.Draft, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	for _, routine := range c.routines {
		if routine.ID == routineID {
			draft := routine.MaterializeDraft()
			return &draft, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrRoutineNotFound, routineID)
}

// persist rewrites the whole catalog to the backing key-value slot.
// Callers must hold the write lock.
func (c *Catalog) persist(ctx context.Context) error {
	routines := c.routines
	if routines == nil {
		routines = []workout.Routine{}
	}
	value, err := json.Marshal(routines)
	if err != nil {
		return fmt.Errorf("marshal routines: %w", err)
	}
	if err := c.kv.Set(ctx, StorageKey, value); err != nil {
		return fmt.Errorf("persist routines: %w", err)
	}
	return nil
}
