package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JoeAtk/GymPT/internal/domain"
	"github.com/JoeAtk/GymPT/internal/utils"
)

type fakeRagStore struct {
	goal    *domain.Goal
	lifts   []domain.LiftEntry
	foodLog []domain.FoodEntry
	profile *domain.UserProfile
	targets *domain.NutritionTargets
}

func (f *fakeRagStore) Goal(_ context.Context) *domain.Goal                { return f.goal }
func (f *fakeRagStore) Lifts(_ context.Context) []domain.LiftEntry         { return f.lifts }
func (f *fakeRagStore) FoodLog(_ context.Context) []domain.FoodEntry       { return f.foodLog }
func (f *fakeRagStore) Profile(_ context.Context) *domain.UserProfile      { return f.profile }
func (f *fakeRagStore) Targets(_ context.Context) *domain.NutritionTargets { return f.targets }

func newTestContextService(store *fakeRagStore) *ContextService {
	classifier := NewClassifierService(nil, nil, testErrHandler())
	return NewContextService(store, NewSplitService(classifier), NewNutritionService())
}

func TestBuildContext(t *testing.T) {
	ctx := context.Background()

	t.Run("empty store still yields a complete bundle", func(t *testing.T) {
		svc := newTestContextService(&fakeRagStore{})

		got := svc.BuildContext(ctx, "what should I train today?")

		assert.Contains(t, got, "USER GOAL: none set")
		assert.Contains(t, got, "RECENT TRAINING (last 9 days):")
		assert.Contains(t, got, "No food logged today.")
		assert.Contains(t, got, "USER QUERY: what should I train today?")
		assert.Contains(t, got, "--- END OF CONTEXT ---")
		assert.Contains(t, got, "<APP_CONTROL>")
	})

	t.Run("goal line includes the set date", func(t *testing.T) {
		ts := utils.NowMillis()
		svc := newTestContextService(&fakeRagStore{
			goal: &domain.Goal{Text: "bench 100kg", Timestamp: ts},
		})

		got := svc.BuildContext(ctx, "hi")
		assert.Contains(t, got, "USER GOAL: bench 100kg (set "+utils.DayKey(ts)+")")
	})

	t.Run("timeline has one line per day", func(t *testing.T) {
		svc := newTestContextService(&fakeRagStore{})
		got := svc.BuildContext(ctx, "hi")

		start := strings.Index(got, "RECENT TRAINING")
		end := strings.Index(got, "TODAY'S NUTRITION")
		require.Greater(t, end, start)

		section := got[start:end]
		assert.Equal(t, RecentDaysWindow, strings.Count(section, "rest"))
	})

	t.Run("food keyword triggers nutrition details", func(t *testing.T) {
		svc := newTestContextService(&fakeRagStore{})
		got := svc.BuildContext(ctx, "how much protein did I get?")

		assert.Contains(t, got, "NUTRITION DETAILS:")
		assert.Contains(t, got, "Profile: not set")
		assert.Contains(t, got, "always log it as a food entry")
	})

	t.Run("no food keyword omits nutrition details", func(t *testing.T) {
		svc := newTestContextService(&fakeRagStore{})
		got := svc.BuildContext(ctx, "how was my training this week?")

		assert.NotContains(t, got, "NUTRITION DETAILS:")
	})

	t.Run("mentioned exercise gets a history section", func(t *testing.T) {
		w80, w85 := 80.0, 85.0
		svc := newTestContextService(&fakeRagStore{
			lifts: []domain.LiftEntry{
				{Name: "Bench Press", Sets: 3, Reps: 8, Weight: &w80, Timestamp: daysAgoMillis(3)},
				{Name: "Bench Press", Sets: 3, Reps: 8, Weight: &w85, Timestamp: daysAgoMillis(1)},
				{Name: "Squat", Sets: 5, Reps: 5, Weight: &w80, Timestamp: daysAgoMillis(2)},
			},
		})

		got := svc.BuildContext(ctx, "is my bench press improving?")

		assert.Contains(t, got, "EXERCISE HISTORY: Bench Press")
		assert.Contains(t, got, "Sessions logged: 2")
		assert.Contains(t, got, "Best: ")
		assert.NotContains(t, got, "EXERCISE HISTORY: Squat")
	})

	t.Run("today's nutrition collapses past five entries", func(t *testing.T) {
		now := utils.NowMillis()
		var log []domain.FoodEntry
		for i := 0; i < 6; i++ {
			log = append(log, domain.FoodEntry{Name: "meal", Calories: 100, Timestamp: now})
		}
		svc := newTestContextService(&fakeRagStore{foodLog: log})

		got := svc.BuildContext(ctx, "hi")
		assert.Contains(t, got, "6 entries logged today.")
	})

	t.Run("targets record wins over profile targets", func(t *testing.T) {
		svc := newTestContextService(&fakeRagStore{
			profile: &domain.UserProfile{DailyCaloriesTarget: fptr(2000)},
			targets: &domain.NutritionTargets{Calories: fptr(2600)},
		})

		got := svc.BuildContext(ctx, "what should I eat?")
		assert.Contains(t, got, "Daily targets: calories 2600 kcal")
		assert.NotContains(t, got, "calories 2000")
	})

	t.Run("query text is passed through verbatim", func(t *testing.T) {
		svc := newTestContextService(&fakeRagStore{})
		query := "Some <weird> “query” with markup & emoji 💪"
		got := svc.BuildContext(ctx, query)
		assert.Contains(t, got, "USER QUERY: "+query)
	})
}

func TestHasFoodKeyword(t *testing.T) {
	assert.True(t, hasFoodKeyword("what did I EAT yesterday"))
	assert.True(t, hasFoodKeyword("enough protein?"))
	assert.False(t, hasFoodKeyword("how heavy should I squat"))
}

func TestNum(t *testing.T) {
	assert.Equal(t, "80", num(80))
	assert.Equal(t, "82.5", num(82.5))
	assert.Equal(t, "0", num(0))
}
