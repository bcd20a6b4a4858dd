package services

import (
	"math"
	"sort"

	"github.com/JoeAtk/GymPT/internal/domain"
)

// ProgressPoint is one estimated-1RM sample of an exercise's history.
type ProgressPoint struct {
	Timestamp int64
	Est1RM    int
}

// RelativePoint adds strength relative to the first non-zero sample.
type RelativePoint struct {
	Timestamp int64
	Est1RM    int
	Pct       int
}

// DefaultSplits maps each split to illustrative exercises; the user's logged
// lifts populate the actual history.
var DefaultSplits = map[string][]string{
	"push": {"Bench Press", "Overhead Press", "Incline Bench"},
	"pull": {"Deadlift", "Barbell Row", "Pull Up"},
	"legs": {"Squat", "Romanian Deadlift", "Leg Press"},
}

// ProgressService derives strength-progress series from the lift history.
type ProgressService struct{}

// NewProgressService creates the progress calculator.
func NewProgressService() *ProgressService {
	return &ProgressService{}
}

// Estimate1RM estimates a one-rep max using the Epley formula, rounded to the
// nearest unit. Missing or non-positive weights estimate to zero.
func (s *ProgressService) Estimate1RM(weight *float64, reps int) int {
	if weight == nil || *weight <= 0 {
		return 0
	}
	return int(math.Round(*weight * (1 + float64(reps)/30)))
}

// ExerciseSeries groups lifts by exercise name into chronological 1RM series.
func (s *ProgressService) ExerciseSeries(lifts []domain.LiftEntry) map[string][]ProgressPoint {
	series := make(map[string][]ProgressPoint)
	for _, l := range lifts {
		series[l.Name] = append(series[l.Name], ProgressPoint{
			Timestamp: l.Timestamp,
			Est1RM:    s.Estimate1RM(l.Weight, l.Reps),
		})
	}
	for name := range series {
		pts := series[name]
		sort.Slice(pts, func(i, j int) bool { return pts[i].Timestamp < pts[j].Timestamp })
	}
	return series
}

// RelativeSeries normalizes a series to percent of its first non-zero sample.
func (s *ProgressService) RelativeSeries(series []ProgressPoint) []RelativePoint {
	if len(series) == 0 {
		return nil
	}

	var first int
	for _, p := range series {
		if p.Est1RM > 0 {
			first = p.Est1RM
			break
		}
	}

	out := make([]RelativePoint, 0, len(series))
	for _, p := range series {
		pct := 0
		if first > 0 {
			pct = int(math.Round(float64(p.Est1RM) / float64(first) * 100))
		}
		out = append(out, RelativePoint{Timestamp: p.Timestamp, Est1RM: p.Est1RM, Pct: pct})
	}
	return out
}
