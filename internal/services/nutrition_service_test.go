package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JoeAtk/GymPT/internal/domain"
	"github.com/JoeAtk/GymPT/internal/utils"
)

func fptr(v float64) *float64 { return &v }

func TestDailyTotals(t *testing.T) {
	svc := NewNutritionService()

	t.Run("window shape with empty log", func(t *testing.T) {
		days := svc.DailyTotals(nil, 7)
		require.Len(t, days, 7)

		today := utils.StartOfDay(time.Now())
		assert.True(t, days[len(days)-1].Date.Equal(today))
		for _, d := range days {
			assert.Zero(t, d.Totals.Calories)
			assert.Empty(t, d.Entries)
		}
	})

	t.Run("missing macros contribute zero", func(t *testing.T) {
		now := utils.NowMillis()
		log := []domain.FoodEntry{
			{Name: "chicken", Calories: 100, ProteinGrams: fptr(10), Timestamp: now},
			{Name: "apple", Calories: 50, Timestamp: now},
		}

		days := svc.DailyTotals(log, 1)
		require.Len(t, days, 1)

		assert.Equal(t, 150.0, days[0].Totals.Calories)
		assert.Equal(t, 10.0, days[0].Totals.Protein)
		assert.Zero(t, days[0].Totals.Carbs)
		assert.Len(t, days[0].Entries, 2)
	})

	t.Run("entries bucket by local day", func(t *testing.T) {
		now := utils.NowMillis()
		yesterday := time.Now().AddDate(0, 0, -1).UnixMilli()
		log := []domain.FoodEntry{
			{Name: "today meal", Calories: 400, Timestamp: now},
			{Name: "yesterday meal", Calories: 300, Timestamp: yesterday},
		}

		days := svc.DailyTotals(log, 2)
		require.Len(t, days, 2)

		assert.Equal(t, 300.0, days[0].Totals.Calories)
		assert.Equal(t, 400.0, days[1].Totals.Calories)
	})

	t.Run("entries outside the window are dropped", func(t *testing.T) {
		old := time.Now().AddDate(0, 0, -30).UnixMilli()
		log := []domain.FoodEntry{{Name: "ancient", Calories: 999, Timestamp: old}}

		days := svc.DailyTotals(log, 7)
		for _, d := range days {
			assert.Zero(t, d.Totals.Calories)
		}
	})
}
