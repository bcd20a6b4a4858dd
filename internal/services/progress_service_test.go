package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JoeAtk/GymPT/internal/domain"
)

func TestEstimate1RM(t *testing.T) {
	svc := NewProgressService()

	t.Run("epley formula", func(t *testing.T) {
		w := 100.0
		// 100 * (1 + 5/30) = 116.67 -> 117
		assert.Equal(t, 117, svc.Estimate1RM(&w, 5))
	})

	t.Run("single rep is the weight itself", func(t *testing.T) {
		w := 90.0
		assert.Equal(t, 93, svc.Estimate1RM(&w, 1))
	})

	t.Run("missing weight estimates zero", func(t *testing.T) {
		assert.Zero(t, svc.Estimate1RM(nil, 8))
	})

	t.Run("non-positive weight estimates zero", func(t *testing.T) {
		w := 0.0
		assert.Zero(t, svc.Estimate1RM(&w, 8))
	})
}

func TestExerciseSeries(t *testing.T) {
	svc := NewProgressService()
	w80, w85 := 80.0, 85.0

	lifts := []domain.LiftEntry{
		{Name: "Bench Press", Sets: 3, Reps: 8, Weight: &w85, Timestamp: 200},
		{Name: "Squat", Sets: 5, Reps: 5, Weight: &w80, Timestamp: 150},
		{Name: "Bench Press", Sets: 3, Reps: 8, Weight: &w80, Timestamp: 100},
	}

	series := svc.ExerciseSeries(lifts)

	require.Len(t, series, 2)
	require.Len(t, series["Bench Press"], 2)

	// Chronological despite input order.
	assert.Equal(t, int64(100), series["Bench Press"][0].Timestamp)
	assert.Equal(t, int64(200), series["Bench Press"][1].Timestamp)
	assert.Less(t, series["Bench Press"][0].Est1RM, series["Bench Press"][1].Est1RM)
}

func TestRelativeSeries(t *testing.T) {
	svc := NewProgressService()

	t.Run("empty series", func(t *testing.T) {
		assert.Nil(t, svc.RelativeSeries(nil))
	})

	t.Run("normalized to first non-zero sample", func(t *testing.T) {
		series := []ProgressPoint{
			{Timestamp: 1, Est1RM: 0},
			{Timestamp: 2, Est1RM: 100},
			{Timestamp: 3, Est1RM: 110},
		}

		rel := svc.RelativeSeries(series)

		require.Len(t, rel, 3)
		assert.Equal(t, 0, rel[0].Pct)
		assert.Equal(t, 100, rel[1].Pct)
		assert.Equal(t, 110, rel[2].Pct)
	})

	t.Run("all-zero series stays at zero percent", func(t *testing.T) {
		rel := svc.RelativeSeries([]ProgressPoint{{Timestamp: 1}, {Timestamp: 2}})
		for _, p := range rel {
			assert.Zero(t, p.Pct)
		}
	})
}
