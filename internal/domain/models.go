package domain

import (
	"strings"
	"time"
)

// Split is a training-day category.
type Split string

const (
	SplitLeg      Split = "leg"
	SplitPush     Split = "push"
	SplitPull     Split = "pull"
	SplitFullBody Split = "full body"
	SplitUnknown  Split = "unknown"

	// SplitRest is only produced by the recent-days timeline, never by the
	// classifier.
	SplitRest Split = "rest"
)

// NormalizeSplit maps the storage/display form "legs" and any casing onto the
// canonical singular form used everywhere inside the app.
func NormalizeSplit(s string) Split {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "leg", "legs":
		return SplitLeg
	case "push":
		return SplitPush
	case "pull":
		return SplitPull
	case "full body", "full-body", "fullbody":
		return SplitFullBody
	case "rest":
		return SplitRest
	default:
		return SplitUnknown
	}
}

// Display returns the human-facing form ("legs" instead of "leg").
func (s Split) Display() string {
	if s == SplitLeg {
		return "legs"
	}
	return string(s)
}

// Chat message roles.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// ChatMessage is one entry of the persisted chat history.
type ChatMessage struct {
	Role      string `json:"role"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
}

// LiftEntry is a single logged lift. Entries are append-only and immutable;
// ordering by timestamp is established by consumers, not by storage.
type LiftEntry struct {
	Name string `json:"name"`
	Sets int    `json:"sets"`
	Reps int    `json:"reps"`
	// Weight may be negative for assisted movements.
	Weight    *float64 `json:"weight,omitempty"`
	Timestamp int64    `json:"timestamp"`
}

// FoodEntry is a single logged meal or food item. Missing macro fields mean
// "not tracked", not zero.
type FoodEntry struct {
	Name         string   `json:"name"`
	Calories     float64  `json:"calories"`
	ProteinGrams *float64 `json:"proteinGrams,omitempty"`
	CarbsGrams   *float64 `json:"carbsGrams,omitempty"`
	FatsGrams    *float64 `json:"fatsGrams,omitempty"`
	FiberGrams   *float64 `json:"fiberGrams,omitempty"`
	Timestamp    int64    `json:"timestamp"`
}

// Goal is the single user goal. Text is used verbatim for machine context;
// DisplayText is a human-facing rewrite, backfilled lazily when absent.
type Goal struct {
	Text        string `json:"text"`
	DisplayText string `json:"displayText,omitempty"`
	Timestamp   int64  `json:"timestamp"`
}

// UserProfile is the singleton profile record, fully overwritten on every
// write. All fields are optional.
type UserProfile struct {
	WeightKg            *float64 `json:"weightKg,omitempty"`
	HeightCm            *float64 `json:"heightCm,omitempty"`
	Age                 *int     `json:"age,omitempty"`
	Gender              string   `json:"gender,omitempty"`
	Build               string   `json:"build,omitempty"`
	ActivityLevel       string   `json:"activityLevel,omitempty"`
	DailyCaloriesTarget *float64 `json:"dailyCaloriesTarget,omitempty"`
	DailyProteinTarget  *float64 `json:"dailyProteinTarget,omitempty"`
	DailyCarbsTarget    *float64 `json:"dailyCarbsTarget,omitempty"`
	DailyFatsTarget     *float64 `json:"dailyFatsTarget,omitempty"`
	UpdatedAt           int64    `json:"updatedAt"`
}

// NutritionTargets are the singleton daily macro targets, overwritten
// wholesale.
type NutritionTargets struct {
	Calories *float64 `json:"calories,omitempty"`
	Protein  *float64 `json:"protein,omitempty"`
	Carbs    *float64 `json:"carbs,omitempty"`
	Fats     *float64 `json:"fats,omitempty"`
	Fiber    *float64 `json:"fiber,omitempty"`
}

// ControlBlock is the parsed <APP_CONTROL> payload of a model response. It is
// a set of instructions applied to persistent state and then discarded.
type ControlBlock struct {
	Change ControlChange `json:"change"`
	Store  ControlStore  `json:"store"`
}

// ControlChange carries state-change assertions. Boolean fields default to
// false and the split field to null.
type ControlChange struct {
	Split           *string `json:"split"`
	FoodTracked     bool    `json:"food_tracked"`
	GraphsDisplayed bool    `json:"graphs_displayed"`
}

// ControlStore carries entities the model asks the client to persist.
type ControlStore struct {
	Lifts   []LiftEntry       `json:"lifts,omitempty"`
	Goal    *ControlGoal      `json:"goal,omitempty"`
	Food    []FoodEntry       `json:"food,omitempty"`
	Targets *NutritionTargets `json:"targets,omitempty"`
}

// ControlGoal is the goal payload inside a control block.
type ControlGoal struct {
	Text string `json:"text"`
}

// TimelineDay is one slot of the recent-training timeline.
type TimelineDay struct {
	Date  time.Time
	Split Split
}

// DayTotals aggregates one calendar day of the food log.
type DayTotals struct {
	Date    time.Time
	Entries []FoodEntry
	Totals  MacroTotals
}

// MacroTotals are plain sums over a day's entries; absent macro fields
// contribute zero.
type MacroTotals struct {
	Calories float64
	Protein  float64
	Carbs    float64
	Fats     float64
	Fiber    float64
}
