package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JoeAtk/GymPT/internal/domain"
)

type fakeWorkoutStore struct {
	lifts     []domain.LiftEntry
	split     domain.Split
	hasSplit  bool
	watchers  []func(domain.Split)
	unwatched int
}

func (f *fakeWorkoutStore) Lifts(_ context.Context) []domain.LiftEntry { return f.lifts }

func (f *fakeWorkoutStore) AddLift(_ context.Context, entry domain.LiftEntry) error {
	f.lifts = append(f.lifts, entry)
	return nil
}

func (f *fakeWorkoutStore) LatestSplit(_ context.Context) (domain.Split, bool) {
	return f.split, f.hasSplit
}

func (f *fakeWorkoutStore) WatchLatestSplit(fn func(domain.Split)) func() {
	f.watchers = append(f.watchers, fn)
	return func() { f.unwatched++ }
}

func newTestWorkoutService(store *fakeWorkoutStore) *WorkoutService {
	return NewWorkoutService(store, newTestSplitService(), nil)
}

func TestPredictedSplit(t *testing.T) {
	ctx := context.Background()

	t.Run("stored override wins", func(t *testing.T) {
		store := &fakeWorkoutStore{
			split:    domain.SplitPull,
			hasSplit: true,
			lifts:    []domain.LiftEntry{liftAt("squat", daysAgoMillis(1))},
		}
		svc := newTestWorkoutService(store)

		assert.Equal(t, domain.SplitPull, svc.PredictedSplit(ctx))
	})

	t.Run("no override falls back to the rotation", func(t *testing.T) {
		store := &fakeWorkoutStore{
			lifts: []domain.LiftEntry{liftAt("squat", daysAgoMillis(1))},
		}
		svc := newTestWorkoutService(store)

		assert.Equal(t, domain.SplitPush, svc.PredictedSplit(ctx))
	})

	t.Run("empty everything is full body", func(t *testing.T) {
		svc := newTestWorkoutService(&fakeWorkoutStore{})
		assert.Equal(t, domain.SplitFullBody, svc.PredictedSplit(ctx))
	})
}

func TestWorkoutService_SaveLift(t *testing.T) {
	ctx := context.Background()
	store := &fakeWorkoutStore{}
	svc := newTestWorkoutService(store)

	entry := liftAt("bench press", daysAgoMillis(0))
	require.NoError(t, svc.SaveLift(ctx, entry))
	require.Len(t, store.lifts, 1)
	assert.Equal(t, "bench press", store.lifts[0].Name)
}

func TestWorkoutService_WatchSplit(t *testing.T) {
	store := &fakeWorkoutStore{}
	svc := newTestWorkoutService(store)

	unwatch := svc.WatchSplit(func(domain.Split) {})
	require.Len(t, store.watchers, 1)

	unwatch()
	assert.Equal(t, 1, store.unwatched)
}
