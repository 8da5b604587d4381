package workout_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/zenfit/internal/workout"
)

func TestRunningActivity_DeriveTotals_DistanceIntervals(t *testing.T) {
	running := workout.RunningActivity{
		IsInterval:    true,
		IntervalCount: 8,
		IntervalValue: 0.4,
		IntervalType:  workout.IntervalDistance,
		TimeMinutes:   25,
	}

	derived := running.DeriveTotals()
	assert.Equal(t, 3.2, derived.Distance)
	// time total is not derived for distance intervals
	assert.Equal(t, 25, derived.TimeMinutes)
}

func TestRunningActivity_DeriveTotals_TimeIntervals(t *testing.T) {
	running := workout.RunningActivity{
		IsInterval:    true,
		IntervalCount: 5,
		IntervalValue: 2,
		IntervalType:  workout.IntervalTime,
		Distance:      4.5,
	}

	derived := running.DeriveTotals()
	assert.Equal(t, 10, derived.TimeMinutes)
	assert.Equal(t, 4.5, derived.Distance)
}

func TestRunningActivity_DeriveTotals_RoundsToNearest(t *testing.T) {
	running := workout.RunningActivity{
		IsInterval:    true,
		IntervalCount: 3,
		IntervalValue: 0.333,
		IntervalType:  workout.IntervalDistance,
	}
	assert.Equal(t, 1.0, running.DeriveTotals().Distance)

	running.IntervalType = workout.IntervalTime
	running.IntervalValue = 2.5
	assert.Equal(t, 8, running.DeriveTotals().TimeMinutes)
}

func TestRunningActivity_DeriveTotals_NonInterval(t *testing.T) {
	running := workout.RunningActivity{
		Distance:    7.77,
		TimeMinutes: 42,
	}

	// toggling intervals off freezes the previously derived totals
	derived := running.DeriveTotals()
	assert.Equal(t, running, derived)
}

func TestRunningActivity_Validate(t *testing.T) {
	valid := workout.RunningActivity{
		IsInterval:    true,
		IntervalCount: 4,
		IntervalValue: 1,
		IntervalType:  workout.IntervalDistance,
	}
	require.NoError(t, valid.Validate())

	noCount := valid
	noCount.IntervalCount = 0
	assert.ErrorIs(t, noCount.Validate(), workout.ErrInvalidIntervals)

	badType := valid
	badType.IntervalType = "laps"
	assert.ErrorIs(t, badType.Validate(), workout.ErrInvalidIntervals)

	negative := workout.RunningActivity{Distance: -1}
	assert.ErrorIs(t, negative.Validate(), workout.ErrNegativeValue)
}

func TestExercise_RemoveSet_AlwaysKeepsOneSet(t *testing.T) {
	ex := workout.NewExercise("Press Banca")
	require.Len(t, ex.Sets, 1)

	onlySet := ex.Sets[0]
	ex.Sets[0].Reps = 10
	ex.Sets[0].Weight = 50

	ex.RemoveSet(onlySet.ID)

	// removing the last set leaves a fresh zero-valued one behind
	require.Len(t, ex.Sets, 1)
	assert.NotEqual(t, onlySet.ID, ex.Sets[0].ID)
	assert.Zero(t, ex.Sets[0].Reps)
	assert.Zero(t, ex.Sets[0].Weight)
}

func TestExercise_RemoveSet(t *testing.T) {
	ex := workout.NewExercise("Sentadillas")
	ex.AddSet()
	ex.AddSet()
	require.Len(t, ex.Sets, 3)

	removed := ex.Sets[1]
	ex.RemoveSet(removed.ID)

	require.Len(t, ex.Sets, 2)
	for _, s := range ex.Sets {
		assert.NotEqual(t, removed.ID, s.ID)
	}

	// unknown set id is a no-op
	ex.RemoveSet("no-such-set")
	assert.Len(t, ex.Sets, 2)
}

func TestExercise_Volume(t *testing.T) {
	ex := workout.Exercise{
		Name: "Press Banca",
		Sets: []workout.Set{
			{Reps: 10, Weight: 50},
			{Reps: 8, Weight: 55},
		},
	}
	assert.Equal(t, 940.0, ex.Volume())

	assert.Zero(t, workout.NewExercise("Dominadas").Volume())
}

func TestGymActivity_Validate(t *testing.T) {
	require.ErrorIs(t, workout.GymActivity{}.Validate(), workout.ErrNoExercises)

	gym := workout.GymActivity{
		Exercises: []workout.Exercise{workout.NewExercise("  ")},
	}
	assert.ErrorIs(t, gym.Validate(), workout.ErrEmptyName)

	gym = workout.GymActivity{
		Exercises: []workout.Exercise{
			{
				ID:   "ex1",
				Name: "Remo",
				Sets: []workout.Set{{ID: "s1", Reps: -1}},
			},
		},
	}
	assert.ErrorIs(t, gym.Validate(), workout.ErrNegativeValue)

	// an exercise always carries at least one set, even a zero-valued
	// one; a set-less payload never comes from the editing flows
	gym = workout.GymActivity{
		Exercises: []workout.Exercise{
			{ID: "ex1", Name: "Press Banca", Sets: nil},
		},
	}
	assert.ErrorIs(t, gym.Validate(), workout.ErrNoSets)
}

func TestGymActivity_Clone(t *testing.T) {
	gym := workout.GymActivity{
		Exercises: []workout.Exercise{
			{
				ID:   "ex1",
				Name: "Peso Muerto",
				Sets: []workout.Set{
					{ID: "s1", Reps: 5, Weight: 100},
					{ID: "s2", Reps: 5, Weight: 105},
				},
			},
		},
	}

	clone := gym.Clone()
	require.Len(t, clone.Exercises, 1)
	require.Len(t, clone.Exercises[0].Sets, 2)

	// same content, fresh identities
	assert.Equal(t, "Peso Muerto", clone.Exercises[0].Name)
	assert.NotEqual(t, "ex1", clone.Exercises[0].ID)
	assert.NotEqual(t, "s1", clone.Exercises[0].Sets[0].ID)
	assert.Equal(t, 5, clone.Exercises[0].Sets[0].Reps)
	assert.Equal(t, 100.0, clone.Exercises[0].Sets[0].Weight)

	// edits on the clone never reach the original
	clone.Exercises[0].Sets[0].Weight = 50
	assert.Equal(t, 100.0, gym.Exercises[0].Sets[0].Weight)
}
