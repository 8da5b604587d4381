package workout

import (
	"errors"
	"math"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrNoExercises      = errors.New("gym activity needs at least one exercise")
	ErrNoSets           = errors.New("exercise needs at least one set")
	ErrEmptyName        = errors.New("name cannot be empty")
	ErrNegativeValue    = errors.New("value cannot be negative")
	ErrInvalidIntervals = errors.New("invalid interval parameters")
)

// ActivityType discriminates the session/routine payload:
// exactly one of running/gym is set, matching the type.
type ActivityType string

const (
	ActivityRunning ActivityType = "running"
	ActivityGym     ActivityType = "gym"
)

func (at ActivityType) String() string {
	return string(at)
}

func (at ActivityType) IsValid() bool {
	switch at {
	case ActivityRunning, ActivityGym:
		return true
	default:
		return false
	}
}

type IntervalType string

const (
	IntervalDistance IntervalType = "distance"
	IntervalTime     IntervalType = "time"
)

func (it IntervalType) IsValid() bool {
	return it == IntervalDistance || it == IntervalTime
}

type Set struct {
	ID     string  `json:"id"`
	Reps   int     `json:"reps"`
	Weight float64 `json:"weight"`
}

func NewSet() Set {
	return Set{ID: uuid.NewString()}
}

type Exercise struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Sets []Set  `json:"sets"`
}

// NewExercise creates an exercise with a single default (zero-valued) set.
func NewExercise(name string) Exercise {
	return Exercise{
		ID:   uuid.NewString(),
		Name: name,
		Sets: []Set{NewSet()},
	}
}

// AddSet appends a fresh zero-valued set.
func (e *Exercise) AddSet() {
	e.Sets = append(e.Sets, NewSet())
}

// RemoveSet removes the set with the given id. An exercise always keeps
// at least one set: removing the last one leaves a fresh zero-valued set
// behind instead of an empty list.
func (e *Exercise) RemoveSet(setID string) {
	remaining := make([]Set, 0, len(e.Sets))
	for _, s := range e.Sets {
		if s.ID != setID {
			remaining = append(remaining, s)
		}
	}
	if len(remaining) == 0 {
		remaining = []Set{NewSet()}
	}
	e.Sets = remaining
}

// Volume is the sum of reps x weight over all sets,
// used as a training load proxy.
func (e Exercise) Volume() float64 {
	var total float64
	for _, s := range e.Sets {
		total += float64(s.Reps) * s.Weight
	}
	return total
}

type GymActivity struct {
	Exercises []Exercise `json:"exercises"`
}

func (g GymActivity) Validate() error {
	if len(g.Exercises) == 0 {
		return ErrNoExercises
	}
	for _, ex := range g.Exercises {
		if strings.TrimSpace(ex.Name) == "" {
			return ErrEmptyName
		}
		if len(ex.Sets) == 0 {
			return ErrNoSets
		}
		for _, s := range ex.Sets {
			if s.Reps < 0 || s.Weight < 0 {
				return ErrNegativeValue
			}
		}
	}
	return nil
}

// Clone returns a deep, independently owned copy of the activity, with
// fresh ids for all nested exercises and sets. Used when a routine is
// materialized into a session draft, so that later edits to the session
// never touch the routine template.
func (g GymActivity) Clone() GymActivity {
	clone := GymActivity{
		Exercises: make([]Exercise, 0, len(g.Exercises)),
	}
	for _, ex := range g.Exercises {
		exClone := Exercise{
			ID:   uuid.NewString(),
			Name: ex.Name,
			Sets: make([]Set, 0, len(ex.Sets)),
		}
		for _, s := range ex.Sets {
			exClone.Sets = append(exClone.Sets, Set{
				ID:     uuid.NewString(),
				Reps:   s.Reps,
				Weight: s.Weight,
			})
		}
		clone.Exercises = append(clone.Exercises, exClone)
	}
	return clone
}

type RunningActivity struct {
	IsInterval    bool         `json:"isInterval,omitempty"`
	IntervalCount int          `json:"intervalCount,omitempty"`
	IntervalValue float64      `json:"intervalValue,omitempty"`
	IntervalType  IntervalType `json:"intervalType,omitempty"`
	Description   string       `json:"description"`
	// Distance in km
	Distance    float64 `json:"distance"`
	TimeMinutes int     `json:"timeMinutes"`
}

func (r RunningActivity) Validate() error {
	if r.Distance < 0 || r.TimeMinutes < 0 {
		return ErrNegativeValue
	}
	if r.IsInterval {
		if r.IntervalCount < 1 || r.IntervalValue < 0 || !r.IntervalType.IsValid() {
			return ErrInvalidIntervals
		}
	}
	return nil
}

// DeriveTotals recomputes the derived total for an interval run:
// count x value gives either the distance (rounded to 2 decimals) or the
// time (rounded to the nearest minute), depending on the interval type.
// The other total stays whatever the user entered. For non-interval runs
// nothing changes - in particular, toggling intervals off keeps the last
// derived totals as plain user-editable values instead of resetting them.
func (r RunningActivity) DeriveTotals() RunningActivity {
	if !r.IsInterval {
		return r
	}
	total := float64(r.IntervalCount) * r.IntervalValue
	switch r.IntervalType {
	case IntervalDistance:
		r.Distance = math.Round(total*100) / 100
	case IntervalTime:
		r.TimeMinutes = int(math.Round(total))
	}
	return r
}

// Clone returns a copy of the activity. Running activities hold no nested
// identities, so a value copy is enough; the method exists to mirror
// GymActivity.Clone on the materialization path.
func (r RunningActivity) Clone() RunningActivity {
	return r
}
