package services

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/JoeAtk/GymPT/internal/domain"
	"github.com/JoeAtk/GymPT/internal/utils"
)

// nutritionDetailWindow is how many days the NUTRITION DETAILS log covers.
const nutritionDetailWindow = 7

// foodKeywords trigger the NUTRITION DETAILS branch when any of them appears
// in the user query (case-insensitive substring).
var foodKeywords = []string{
	"food", "eat", "eating", "ate", "meal", "calorie", "calories",
	"protein", "carb", "carbs", "fat", "fats", "fiber", "nutrition",
	"diet", "macro", "macros", "breakfast", "lunch", "dinner", "snack",
	"hungry",
}

// ragStore is the slice of the repository the assembler reads. Reads degrade
// to absent rather than failing.
type ragStore interface {
	Goal(ctx context.Context) *domain.Goal
	Lifts(ctx context.Context) []domain.LiftEntry
	FoodLog(ctx context.Context) []domain.FoodEntry
	Profile(ctx context.Context) *domain.UserProfile
	Targets(ctx context.Context) *domain.NutritionTargets
}

// ContextService assembles the natural-language context bundle sent upstream
// with every chat query.
type ContextService struct {
	store     ragStore
	splits    *SplitService
	nutrition *NutritionService
}

// NewContextService creates the assembler.
func NewContextService(store ragStore, splits *SplitService, nutrition *NutritionService) *ContextService {
	return &ContextService{store: store, splits: splits, nutrition: nutrition}
}

// BuildContext composes the full prompt for a user query: goal, training
// timeline, today's nutrition, conditional exercise and nutrition detail
// sections, the query itself, and the control-protocol instructions. The
// assembled text has no length guard.
func (s *ContextService) BuildContext(ctx context.Context, userQuery string) string {
	var (
		goal    *domain.Goal
		lifts   []domain.LiftEntry
		foodLog []domain.FoodEntry
		profile *domain.UserProfile
	)

	// The four reads are independent; all must land before assembly starts.
	var wg sync.WaitGroup
	wg.Add(4)
	go func() { defer wg.Done(); goal = s.store.Goal(ctx) }()
	go func() { defer wg.Done(); lifts = s.store.Lifts(ctx) }()
	go func() { defer wg.Done(); foodLog = s.store.FoodLog(ctx) }()
	go func() { defer wg.Done(); profile = s.store.Profile(ctx) }()
	wg.Wait()

	var b strings.Builder
	b.WriteString("You are GymPT, a personal fitness assistant. Use the context below to answer the user's question.\n\n")

	s.writeGoal(&b, goal)
	s.writeTimeline(ctx, &b, lifts)
	s.writeTodayNutrition(&b, foodLog)
	s.writeExerciseHistory(&b, userQuery, lifts)

	wantsNutrition := hasFoodKeyword(userQuery)
	if wantsNutrition {
		s.writeNutritionDetails(ctx, &b, profile, foodLog)
	}

	b.WriteString("--- END OF CONTEXT ---\n\n")
	b.WriteString("USER QUERY: ")
	b.WriteString(userQuery)
	b.WriteString("\n")

	if wantsNutrition {
		b.WriteString("\nWhenever the user mentions eating or drinking something, always log it as a food entry in the control block, even if they do not ask you to.\n")
	}

	b.WriteString("\n")
	b.WriteString(protocolInstructions)
	return b.String()
}

func (s *ContextService) writeGoal(b *strings.Builder, goal *domain.Goal) {
	if goal == nil || goal.Text == "" {
		b.WriteString("USER GOAL: none set\n\n")
		return
	}
	fmt.Fprintf(b, "USER GOAL: %s (set %s)\n\n", goal.Text, utils.DayKey(goal.Timestamp))
}

func (s *ContextService) writeTimeline(ctx context.Context, b *strings.Builder, lifts []domain.LiftEntry) {
	fmt.Fprintf(b, "RECENT TRAINING (last %d days):\n", RecentDaysWindow)
	for _, day := range s.splits.RecentDays(ctx, lifts, RecentDaysWindow) {
		fmt.Fprintf(b, "%s (%s): %s\n", day.Date.Format("2006-01-02"), day.Date.Format("Mon"), day.Split.Display())
	}
	b.WriteString("\n")
}

func (s *ContextService) writeTodayNutrition(b *strings.Builder, foodLog []domain.FoodEntry) {
	b.WriteString("TODAY'S NUTRITION:\n")

	days := s.nutrition.DailyTotals(foodLog, 1)
	today := days[len(days)-1]
	if len(today.Entries) == 0 {
		b.WriteString("No food logged today.\n\n")
		return
	}

	t := today.Totals
	fmt.Fprintf(b, "Total: %s kcal, %sg protein, %sg carbs, %sg fats, %sg fiber\n",
		num(t.Calories), num(t.Protein), num(t.Carbs), num(t.Fats), num(t.Fiber))

	if len(today.Entries) > 5 {
		fmt.Fprintf(b, "%d entries logged today.\n", len(today.Entries))
	} else {
		for _, e := range today.Entries {
			b.WriteString(foodEntryLine(e))
		}
	}
	b.WriteString("\n")
}

// writeExerciseHistory emits stats for every distinct logged exercise whose
// name appears verbatim (case-insensitive) in the query.
func (s *ContextService) writeExerciseHistory(b *strings.Builder, userQuery string, lifts []domain.LiftEntry) {
	query := strings.ToLower(userQuery)

	seen := make(map[string]bool)
	for _, l := range lifts {
		key := strings.ToLower(l.Name)
		if seen[key] || !strings.Contains(query, key) {
			continue
		}
		seen[key] = true

		var entries []domain.LiftEntry
		for _, e := range lifts {
			if strings.EqualFold(e.Name, l.Name) {
				entries = append(entries, e)
			}
		}

		// Best session by weight*reps; a tie keeps the earlier maximum.
		best := entries[0]
		bestScore := liftScore(entries[0])
		latest := entries[0]
		for _, e := range entries[1:] {
			if score := liftScore(e); score > bestScore {
				best, bestScore = e, score
			}
			if e.Timestamp > latest.Timestamp {
				latest = e
			}
		}

		fmt.Fprintf(b, "EXERCISE HISTORY: %s\n", l.Name)
		fmt.Fprintf(b, "Sessions logged: %d\n", len(entries))
		fmt.Fprintf(b, "Most recent: %s\n", liftLine(latest))
		fmt.Fprintf(b, "Best: %s (score %s)\n", liftLine(best), num(bestScore))

		recent := make([]domain.LiftEntry, len(entries))
		copy(recent, entries)
		sort.Slice(recent, func(i, j int) bool { return recent[i].Timestamp > recent[j].Timestamp })
		if len(recent) > 5 {
			recent = recent[:5]
		}
		b.WriteString("Recent sessions:\n")
		for _, e := range recent {
			fmt.Fprintf(b, "- %s\n", liftLine(e))
		}
		b.WriteString("\n")
	}
}

func (s *ContextService) writeNutritionDetails(ctx context.Context, b *strings.Builder, profile *domain.UserProfile, foodLog []domain.FoodEntry) {
	b.WriteString("NUTRITION DETAILS:\n")

	if profile == nil {
		b.WriteString("Profile: not set\n")
	} else {
		var parts []string
		if profile.WeightKg != nil {
			parts = append(parts, fmt.Sprintf("weight %s kg", num(*profile.WeightKg)))
		}
		if profile.HeightCm != nil {
			parts = append(parts, fmt.Sprintf("height %s cm", num(*profile.HeightCm)))
		}
		if profile.Age != nil {
			parts = append(parts, fmt.Sprintf("age %d", *profile.Age))
		}
		if profile.Gender != "" {
			parts = append(parts, "gender "+profile.Gender)
		}
		if profile.Build != "" {
			parts = append(parts, "build "+profile.Build)
		}
		if profile.ActivityLevel != "" {
			parts = append(parts, "activity "+profile.ActivityLevel)
		}
		if len(parts) == 0 {
			b.WriteString("Profile: not set\n")
		} else {
			fmt.Fprintf(b, "Profile: %s\n", strings.Join(parts, ", "))
		}
	}

	targets := s.store.Targets(ctx)
	calTarget, proteinTarget := writeTargetsLine(b, profile, targets)

	fmt.Fprintf(b, "Last %d days:\n", nutritionDetailWindow)
	for _, day := range s.nutrition.DailyTotals(foodLog, nutritionDetailWindow) {
		line := fmt.Sprintf("- %s: %s kcal", day.Date.Format("2006-01-02"), num(day.Totals.Calories))
		if calTarget > 0 {
			line += fmt.Sprintf(" (%d%% of target)", pct(day.Totals.Calories, calTarget))
		}
		line += fmt.Sprintf(", %sg protein", num(day.Totals.Protein))
		if proteinTarget > 0 {
			line += fmt.Sprintf(" (%d%% of target)", pct(day.Totals.Protein, proteinTarget))
		}
		line += fmt.Sprintf(", %sg carbs, %sg fats, %sg fiber",
			num(day.Totals.Carbs), num(day.Totals.Fats), num(day.Totals.Fiber))
		b.WriteString(line + "\n")
	}
	b.WriteString("\n")
}

// writeTargetsLine emits the daily targets that are set, preferring the
// dedicated targets record over the profile's target fields, and returns the
// calorie and protein targets used for percentage lines.
func writeTargetsLine(b *strings.Builder, profile *domain.UserProfile, targets *domain.NutritionTargets) (calories, protein float64) {
	var parts []string
	add := func(label string, v *float64, unit string) float64 {
		if v == nil {
			return 0
		}
		parts = append(parts, fmt.Sprintf("%s %s%s", label, num(*v), unit))
		return *v
	}

	if targets != nil {
		calories = add("calories", targets.Calories, " kcal")
		protein = add("protein", targets.Protein, "g")
		add("carbs", targets.Carbs, "g")
		add("fats", targets.Fats, "g")
		add("fiber", targets.Fiber, "g")
	}
	if profile != nil {
		if calories == 0 {
			calories = add("calories", profile.DailyCaloriesTarget, " kcal")
		}
		if protein == 0 {
			protein = add("protein", profile.DailyProteinTarget, "g")
		}
	}

	if len(parts) > 0 {
		fmt.Fprintf(b, "Daily targets: %s\n", strings.Join(parts, ", "))
	}
	return calories, protein
}

func hasFoodKeyword(query string) bool {
	q := strings.ToLower(query)
	for _, kw := range foodKeywords {
		if strings.Contains(q, kw) {
			return true
		}
	}
	return false
}

func liftScore(e domain.LiftEntry) float64 {
	if e.Weight == nil {
		return 0
	}
	return *e.Weight * float64(e.Reps)
}

func liftLine(e domain.LiftEntry) string {
	weight := "bodyweight"
	if e.Weight != nil {
		weight = num(*e.Weight)
	}
	return fmt.Sprintf("%s: %dx%d @ %s", utils.DayKey(e.Timestamp), e.Sets, e.Reps, weight)
}

func foodEntryLine(e domain.FoodEntry) string {
	line := fmt.Sprintf("- %s: %s kcal", e.Name, num(e.Calories))
	if e.ProteinGrams != nil {
		line += fmt.Sprintf(", %sg protein", num(*e.ProteinGrams))
	}
	if e.CarbsGrams != nil {
		line += fmt.Sprintf(", %sg carbs", num(*e.CarbsGrams))
	}
	if e.FatsGrams != nil {
		line += fmt.Sprintf(", %sg fats", num(*e.FatsGrams))
	}
	if e.FiberGrams != nil {
		line += fmt.Sprintf(", %sg fiber", num(*e.FiberGrams))
	}
	return line + "\n"
}

// pct rounds a fraction of target to the nearest whole percent.
func pct(value, target float64) int {
	return int(value/target*100 + 0.5)
}

// num renders a float without trailing zeros.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
