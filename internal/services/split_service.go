package services

import (
	"context"
	"time"

	"github.com/JoeAtk/GymPT/internal/domain"
	"github.com/JoeAtk/GymPT/internal/utils"
)

// RecentDaysWindow is the timeline length shown in the chat context.
const RecentDaysWindow = 9

// SplitService derives training-split recommendations from the lift history.
type SplitService struct {
	classifier *ClassifierService
}

// NewSplitService creates a predictor over the given classifier.
func NewSplitService(classifier *ClassifierService) *SplitService {
	return &SplitService{classifier: classifier}
}

// SessionSplit tallies the classified categories of a session's entries and
// returns the majority. Ties go to the category encountered first in entry
// order. Empty sessions and unknown-dominated sessions are unknown.
func (s *SplitService) SessionSplit(ctx context.Context, entries []domain.LiftEntry) domain.Split {
	counts := make(map[domain.Split]int)
	var order []domain.Split
	for _, e := range entries {
		split := s.classifier.Classify(ctx, e.Name)
		if counts[split] == 0 {
			order = append(order, split)
		}
		counts[split]++
	}
	if len(order) == 0 {
		return domain.SplitUnknown
	}

	top := order[0]
	for _, split := range order[1:] {
		if counts[split] > counts[top] {
			top = split
		}
	}
	if top == domain.SplitUnknown {
		return domain.SplitUnknown
	}
	return top
}

// NextSplit predicts the next training day from the whole lift history using
// a fixed leg -> push -> pull -> leg rotation over the latest session's
// category. No history, or a session that didn't settle into a known
// category, recommends full body.
func (s *SplitService) NextSplit(ctx context.Context, lifts []domain.LiftEntry) domain.Split {
	if len(lifts) == 0 {
		return domain.SplitFullBody
	}

	byDay := make(map[string][]domain.LiftEntry)
	var lastDay string
	for _, l := range lifts {
		day := utils.DayKey(l.Timestamp)
		byDay[day] = append(byDay[day], l)
		if day > lastDay {
			lastDay = day
		}
	}

	switch s.SessionSplit(ctx, byDay[lastDay]) {
	case domain.SplitLeg:
		return domain.SplitPush
	case domain.SplitPush:
		return domain.SplitPull
	case domain.SplitPull:
		return domain.SplitLeg
	default:
		return domain.SplitFullBody
	}
}

// RecentDays returns the last windowSize local calendar days ending today,
// oldest first, each annotated with the day's session category or rest.
// Recomputed fully on every call.
func (s *SplitService) RecentDays(ctx context.Context, lifts []domain.LiftEntry, windowSize int) []domain.TimelineDay {
	byDay := make(map[string][]domain.LiftEntry)
	for _, l := range lifts {
		day := utils.DayKey(l.Timestamp)
		byDay[day] = append(byDay[day], l)
	}

	today := utils.StartOfDay(time.Now())
	days := make([]domain.TimelineDay, 0, windowSize)
	for i := windowSize - 1; i >= 0; i-- {
		date := today.AddDate(0, 0, -i)
		entries := byDay[date.Format("2006-01-02")]

		split := domain.SplitRest
		if len(entries) > 0 {
			split = s.SessionSplit(ctx, entries)
		}
		days = append(days, domain.TimelineDay{Date: date, Split: split})
	}
	return days
}
