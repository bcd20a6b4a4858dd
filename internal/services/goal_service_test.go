package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JoeAtk/GymPT/internal/domain"
)

type fakeGoalStore struct {
	goal *domain.Goal
}

func (f *fakeGoalStore) Goal(_ context.Context) *domain.Goal { return f.goal }

func (f *fakeGoalStore) SetGoal(_ context.Context, goal domain.Goal) error {
	f.goal = &goal
	return nil
}

type fakeGoalAI struct {
	display string
	err     error
}

func (f *fakeGoalAI) RewriteGoal(_ context.Context, _ string) (string, error) {
	return f.display, f.err
}

func TestGoalService(t *testing.T) {
	ctx := context.Background()

	t.Run("no goal yet", func(t *testing.T) {
		svc := NewGoalService(&fakeGoalStore{}, nil, testErrHandler())
		assert.Nil(t, svc.Goal(ctx))
	})

	t.Run("missing display text is backfilled and persisted", func(t *testing.T) {
		store := &fakeGoalStore{goal: &domain.Goal{Text: "bench 2 plates", Timestamp: 1}}
		svc := NewGoalService(store, &fakeGoalAI{display: "Bench press 100 kg"}, testErrHandler())

		goal := svc.Goal(ctx)

		require.NotNil(t, goal)
		assert.Equal(t, "Bench press 100 kg", goal.DisplayText)
		assert.Equal(t, "Bench press 100 kg", store.goal.DisplayText)
	})

	t.Run("rewrite failure still returns the goal", func(t *testing.T) {
		store := &fakeGoalStore{goal: &domain.Goal{Text: "bench 2 plates", Timestamp: 1}}
		svc := NewGoalService(store, &fakeGoalAI{err: errors.New("timeout")}, testErrHandler())

		goal := svc.Goal(ctx)

		require.NotNil(t, goal)
		assert.Equal(t, "bench 2 plates", goal.Text)
		assert.Empty(t, goal.DisplayText)
	})

	t.Run("existing display text is left alone", func(t *testing.T) {
		store := &fakeGoalStore{goal: &domain.Goal{Text: "raw", DisplayText: "Polished", Timestamp: 1}}
		svc := NewGoalService(store, &fakeGoalAI{display: "Other"}, testErrHandler())

		goal := svc.Goal(ctx)
		assert.Equal(t, "Polished", goal.DisplayText)
	})

	t.Run("SetGoal stamps a fresh timestamp and drops display text", func(t *testing.T) {
		store := &fakeGoalStore{goal: &domain.Goal{Text: "old", DisplayText: "Old", Timestamp: 1}}
		svc := NewGoalService(store, nil, testErrHandler())

		require.NoError(t, svc.SetGoal(ctx, "new goal"))

		assert.Equal(t, "new goal", store.goal.Text)
		assert.Empty(t, store.goal.DisplayText)
		assert.Greater(t, store.goal.Timestamp, int64(1))
	})
}
