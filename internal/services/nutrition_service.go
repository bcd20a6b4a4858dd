package services

import (
	"time"

	"github.com/JoeAtk/GymPT/internal/domain"
	"github.com/JoeAtk/GymPT/internal/utils"
)

// NutritionService buckets the food log by local calendar day.
type NutritionService struct{}

// NewNutritionService creates the aggregator.
func NewNutritionService() *NutritionService {
	return &NutritionService{}
}

// DailyTotals covers the most recent windowSize calendar days ending today,
// oldest first. Absent macro fields contribute zero to the sums; the food log
// is never mutated.
func (s *NutritionService) DailyTotals(foodLog []domain.FoodEntry, windowSize int) []domain.DayTotals {
	byDay := make(map[string][]domain.FoodEntry)
	for _, e := range foodLog {
		day := utils.DayKey(e.Timestamp)
		byDay[day] = append(byDay[day], e)
	}

	today := utils.StartOfDay(time.Now())
	days := make([]domain.DayTotals, 0, windowSize)
	for i := windowSize - 1; i >= 0; i-- {
		date := today.AddDate(0, 0, -i)
		entries := byDay[date.Format("2006-01-02")]

		var totals domain.MacroTotals
		for _, e := range entries {
			totals.Calories += e.Calories
			totals.Protein += deref(e.ProteinGrams)
			totals.Carbs += deref(e.CarbsGrams)
			totals.Fats += deref(e.FatsGrams)
			totals.Fiber += deref(e.FiberGrams)
		}
		days = append(days, domain.DayTotals{Date: date, Entries: entries, Totals: totals})
	}
	return days
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
