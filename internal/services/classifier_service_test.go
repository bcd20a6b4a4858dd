package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JoeAtk/GymPT/internal/domain"
	apperrors "github.com/JoeAtk/GymPT/internal/errors"
)

func testErrHandler() *apperrors.Handler {
	return apperrors.NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

type fakeCategoryStore struct {
	categories map[string]domain.Split
	saved      map[string]domain.Split
	saveErr    error
}

func newFakeCategoryStore() *fakeCategoryStore {
	return &fakeCategoryStore{
		categories: make(map[string]domain.Split),
		saved:      make(map[string]domain.Split),
	}
}

// Lookups are case-insensitive, like the real repository.
func (f *fakeCategoryStore) ExerciseCategory(_ context.Context, name string) (domain.Split, bool) {
	split, ok := f.categories[strings.ToLower(name)]
	return split, ok
}

func (f *fakeCategoryStore) SetExerciseCategory(_ context.Context, name string, split domain.Split) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved[strings.ToLower(name)] = split
	return nil
}

type fakeSplitAI struct {
	answer domain.Split
	err    error
	calls  int
}

func (f *fakeSplitAI) ClassifySplit(_ context.Context, _ string) (domain.Split, error) {
	f.calls++
	return f.answer, f.err
}

func TestClassifyByKeywords(t *testing.T) {
	cases := []struct {
		name string
		want domain.Split
	}{
		{"Squat", domain.SplitLeg},
		{"leg press", domain.SplitLeg},
		{"Leg Extension", domain.SplitLeg},
		{"walking lunge", domain.SplitLeg},
		{"Romanian Deadlift", domain.SplitLeg},
		{"RDL", domain.SplitLeg},
		{"calf raises", domain.SplitLeg},
		{"Bench Press", domain.SplitPush},
		{"BENCH PRESS", domain.SplitPush},
		{"overhead press", domain.SplitPush},
		{"incline bench", domain.SplitPush},
		{"tricep pushdown", domain.SplitPush},
		{"chest fly", domain.SplitPush},
		{"dips", domain.SplitPush},
		{"Deadlift", domain.SplitPull},
		{"barbell row", domain.SplitPull},
		{"Pull Up", domain.SplitPull},
		{"chin-up", domain.SplitPull},
		{"bicep curl", domain.SplitPull},
		{"lat pulldown", domain.SplitPull},
		{"yoga", domain.SplitUnknown},
		{"", domain.SplitUnknown},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, classifyByKeywords(tc.name))
		})
	}
}

func TestClassifierService_Classify(t *testing.T) {
	ctx := context.Background()

	t.Run("override beats keywords", func(t *testing.T) {
		store := newFakeCategoryStore()
		store.categories["bench press"] = domain.SplitPull
		svc := NewClassifierService(store, nil, testErrHandler())

		assert.Equal(t, domain.SplitPull, svc.Classify(ctx, "Bench Press"))
	})

	t.Run("unknown override falls through to keywords", func(t *testing.T) {
		store := newFakeCategoryStore()
		store.categories["bench press"] = domain.SplitUnknown
		svc := NewClassifierService(store, nil, testErrHandler())

		assert.Equal(t, domain.SplitPush, svc.Classify(ctx, "Bench Press"))
	})

	t.Run("no store still classifies", func(t *testing.T) {
		svc := NewClassifierService(nil, nil, testErrHandler())
		assert.Equal(t, domain.SplitLeg, svc.Classify(ctx, "front squat"))
	})
}

func TestClassifierService_ClassifyWithAI(t *testing.T) {
	ctx := context.Background()

	t.Run("keyword hit skips the AI", func(t *testing.T) {
		store := newFakeCategoryStore()
		ai := &fakeSplitAI{answer: domain.SplitPull}
		svc := NewClassifierService(store, ai, testErrHandler())

		got := svc.ClassifyWithAI(ctx, "bench press")

		assert.Equal(t, domain.SplitPush, got)
		assert.Zero(t, ai.calls)
	})

	t.Run("known AI answer is written through", func(t *testing.T) {
		store := newFakeCategoryStore()
		ai := &fakeSplitAI{answer: domain.SplitLeg}
		svc := NewClassifierService(store, ai, testErrHandler())

		got := svc.ClassifyWithAI(ctx, "bulgarian split work")

		require.Equal(t, domain.SplitLeg, got)
		assert.Equal(t, domain.SplitLeg, store.saved["bulgarian split work"])
	})

	t.Run("AI failure stays unknown and persists nothing", func(t *testing.T) {
		store := newFakeCategoryStore()
		ai := &fakeSplitAI{err: errors.New("timeout")}
		svc := NewClassifierService(store, ai, testErrHandler())

		got := svc.ClassifyWithAI(ctx, "zumba session")

		assert.Equal(t, domain.SplitUnknown, got)
		assert.Empty(t, store.saved)
	})

	t.Run("unknown AI answer persists nothing", func(t *testing.T) {
		store := newFakeCategoryStore()
		ai := &fakeSplitAI{answer: domain.SplitUnknown}
		svc := NewClassifierService(store, ai, testErrHandler())

		got := svc.ClassifyWithAI(ctx, "zumba session")

		assert.Equal(t, domain.SplitUnknown, got)
		assert.Empty(t, store.saved)
	})

	t.Run("nil AI stays unknown", func(t *testing.T) {
		store := newFakeCategoryStore()
		svc := NewClassifierService(store, nil, testErrHandler())

		assert.Equal(t, domain.SplitUnknown, svc.ClassifyWithAI(ctx, "zumba session"))
	})

	t.Run("no store still returns the AI answer", func(t *testing.T) {
		ai := &fakeSplitAI{answer: domain.SplitPull}
		svc := NewClassifierService(nil, ai, testErrHandler())

		assert.Equal(t, domain.SplitPull, svc.ClassifyWithAI(ctx, "zumba session"))
	})
}
