package workout

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const DateLayout = "2006-01-02"

var (
	ErrInvalidDate    = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidType    = errors.New("invalid activity type")
	ErrInvalidPayload = errors.New("session payload must match its type")
)

// Session is one recorded workout on a specific calendar date.
// Exactly one of Running/Gym is set, matching Type.
type Session struct {
	ID      string           `json:"id"`
	Date    string           `json:"date"`
	Type    ActivityType     `json:"type"`
	Running *RunningActivity `json:"running,omitempty"`
	Gym     *GymActivity     `json:"gym,omitempty"`
	Notes   string           `json:"notes,omitempty"`
}

func NewRunningSession(date string, running RunningActivity, notes string) (Session, error) {
	s := Session{
		ID:      uuid.NewString(),
		Date:    date,
		Type:    ActivityRunning,
		Running: &running,
		Notes:   notes,
	}
	if err := s.Validate(); err != nil {
		return Session{}, err
	}
	return s, nil
}

func NewGymSession(date string, gym GymActivity, notes string) (Session, error) {
	s := Session{
		ID:    uuid.NewString(),
		Date:  date,
		Type:  ActivityGym,
		Gym:   &gym,
		Notes: notes,
	}
	if err := s.Validate(); err != nil {
		return Session{}, err
	}
	return s, nil
}

func (s Session) Validate() error {
	if _, err := time.Parse(DateLayout, s.Date); err != nil {
		return ErrInvalidDate
	}
	if !s.Type.IsValid() {
		return ErrInvalidType
	}
	return validatePayload(s.Type, s.Running, s.Gym)
}

// Routine is a named, reusable workout template, not tied to any date.
// It shares the exactly-one-of payload invariant with Session, but lives
// an independent lifecycle: deleting a routine never affects sessions
// previously created from it.
type Routine struct {
	ID      string           `json:"id"`
	Name    string           `json:"name"`
	Type    ActivityType     `json:"type"`
	Running *RunningActivity `json:"running,omitempty"`
	Gym     *GymActivity     `json:"gym,omitempty"`
}

func NewRunningRoutine(name string, running RunningActivity) (Routine, error) {
	r := Routine{
		ID:      uuid.NewString(),
		Name:    name,
		Type:    ActivityRunning,
		Running: &running,
	}
	if err := r.Validate(); err != nil {
		return Routine{}, err
	}
	return r, nil
}

func NewGymRoutine(name string, gym GymActivity) (Routine, error) {
	r := Routine{
		ID:   uuid.NewString(),
		Name: name,
		Type: ActivityGym,
		Gym:  &gym,
	}
	if err := r.Validate(); err != nil {
		return Routine{}, err
	}
	return r, nil
}

func (r Routine) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrEmptyName
	}
	if !r.Type.IsValid() {
		return ErrInvalidType
	}
	return validatePayload(r.Type, r.Running, r.Gym)
}

// Draft is a detached activity payload, ready to pre-fill a new session
// form. Produced by materializing a routine.
type Draft struct {
	Type    ActivityType     `json:"type"`
	Running *RunningActivity `json:"running,omitempty"`
	Gym     *GymActivity     `json:"gym,omitempty"`
}

// MaterializeDraft deep-copies the routine payload into a draft with no
// shared identity with the originals.
func (r Routine) MaterializeDraft() Draft {
	draft := Draft{Type: r.Type}
	switch r.Type {
	case ActivityRunning:
		running := r.Running.Clone()
		draft.Running = &running
	case ActivityGym:
		gym := r.Gym.Clone()
		draft.Gym = &gym
	}
	return draft
}

func validatePayload(at ActivityType, running *RunningActivity, gym *GymActivity) error {
	switch at {
	case ActivityRunning:
		if running == nil || gym != nil {
			return ErrInvalidPayload
		}
		return running.Validate()
	case ActivityGym:
		if gym == nil || running != nil {
			return ErrInvalidPayload
		}
		return gym.Validate()
	default:
		return fmt.Errorf("%w: %s", ErrInvalidType, at)
	}
}
