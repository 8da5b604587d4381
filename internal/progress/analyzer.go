package progress

import (
	"context"
	"sort"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/zenfit/internal/telemetry/tracing"
	"github.com/2beens/zenfit/internal/workout"
)

//go:generate mockgen -source=$GOFILE -destination=analyzer_mocks_test.go -package=progress_test

type sessionsLister interface {
	ListAll(ctx context.Context) []workout.Session
}

// ExerciseVolume is the total volume (reps x weight summed over all
// sets) lifted for one exercise name across the input sessions.
type ExerciseVolume struct {
	Name   string  `json:"name"`
	Volume float64 `json:"volume"`
}

// RunningPoint is one running session reduced to its chart values.
type RunningPoint struct {
	Date        string  `json:"date"`
	Distance    float64 `json:"distance"`
	TimeMinutes int     `json:"timeMinutes"`
}

type Summary struct {
	Total   int `json:"total"`
	Gym     int `json:"gym"`
	Running int `json:"running"`
}

// Analyzer computes derived aggregates from the session store. All
// computation is on-demand from current store state; nothing is cached.
type Analyzer struct {
	store sessionsLister
}

func NewAnalyzer(store sessionsLister) *Analyzer {
	return &Analyzer{
		store: store,
	}
}

func (a *Analyzer) RunningSeries(ctx context.Context, windowDays int) []RunningPoint {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.progress.runningSeries")
	defer span.End()
	span.SetAttributes(attribute.Int("window_days", windowDays))

	sessions := FilterByRecency(a.store.ListAll(ctx), windowDays)
	return RunningSeries(sessions)
}

func (a *Analyzer) ExerciseVolumes(ctx context.Context, windowDays, top int) []ExerciseVolume {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.progress.exerciseVolumes")
	defer span.End()
	span.SetAttributes(attribute.Int("window_days", windowDays))

	sessions := FilterByRecency(a.store.ListAll(ctx), windowDays)
	volumes := ExerciseVolumes(sessions)
	if top > 0 && len(volumes) > top {
		volumes = volumes[:top]
	}
	return volumes
}

func (a *Analyzer) Summary(ctx context.Context) Summary {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.progress.summary")
	defer span.End()

	var summary Summary
	for _, session := range a.store.ListAll(ctx) {
		summary.Total++
		switch session.Type {
		case workout.ActivityGym:
			summary.Gym++
		case workout.ActivityRunning:
			summary.Running++
		}
	}
	return summary
}

// FilterByRecency keeps sessions dated within the last windowDays
// calendar days, inclusive: a session dated exactly windowDays ago is
// kept, one day further back is dropped. The reference point is the
// wall clock at call time.
func FilterByRecency(sessions []workout.Session, windowDays int) []workout.Session {
	if windowDays <= 0 {
		return nil
	}

	// anchor on the local calendar date; session dates parse as UTC
	// midnights, so truncating the absolute instant would shift the
	// window by a day whenever local and UTC dates disagree
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	cutoff := today.AddDate(0, 0, -windowDays)

	var recent []workout.Session
	for _, session := range sessions {
		date, err := time.Parse(workout.DateLayout, session.Date)
		if err != nil {
			// a session with an unparsable date never entered through
			// validation, skip it instead of guessing
			continue
		}
		if !date.Before(cutoff) {
			recent = append(recent, session)
		}
	}
	return recent
}

// ExerciseVolumes sums volumes of same-named exercises across all gym
// sessions in the input. Entries come back sorted descending by total
// volume, ties broken by first-encountered order.
func ExerciseVolumes(sessions []workout.Session) []ExerciseVolume {
	volumeByName := make(map[string]float64)
	var order []string

	for _, session := range sessions {
		if session.Type != workout.ActivityGym || session.Gym == nil {
			continue
		}
		for _, exercise := range session.Gym.Exercises {
			if _, seen := volumeByName[exercise.Name]; !seen {
				order = append(order, exercise.Name)
			}
			volumeByName[exercise.Name] += exercise.Volume()
		}
	}

	volumes := make([]ExerciseVolume, 0, len(order))
	for _, name := range order {
		volumes = append(volumes, ExerciseVolume{
			Name:   name,
			Volume: volumeByName[name],
		})
	}

	// stable sort keeps first-encountered order between equal volumes
	sort.SliceStable(volumes, func(i, j int) bool {
		return volumes[i].Volume > volumes[j].Volume
	})
	return volumes
}

// RunningSeries maps running sessions to chart points, preserving the
// input order. Callers pass already-chronological input.
func RunningSeries(sessions []workout.Session) []RunningPoint {
	var series []RunningPoint
	for _, session := range sessions {
		if session.Type != workout.ActivityRunning || session.Running == nil {
			continue
		}
		series = append(series, RunningPoint{
			Date:        session.Date,
			Distance:    session.Running.Distance,
			TimeMinutes: session.Running.TimeMinutes,
		})
	}
	return series
}
