package services

import (
	"context"

	"github.com/JoeAtk/GymPT/internal/domain"
)

type workoutStore interface {
	Lifts(ctx context.Context) []domain.LiftEntry
	AddLift(ctx context.Context, entry domain.LiftEntry) error
	LatestSplit(ctx context.Context) (domain.Split, bool)
	WatchLatestSplit(fn func(domain.Split)) func()
}

type liftParserAI interface {
	ParseLiftEntry(ctx context.Context, freeText string) (domain.LiftEntry, error)
}

// WorkoutService is the lift-log facade the bot surface talks to.
type WorkoutService struct {
	store  workoutStore
	splits *SplitService
	ai     liftParserAI
}

// NewWorkoutService wires the lift log, the predictor and the free-text
// parser.
func NewWorkoutService(store workoutStore, splits *SplitService, ai liftParserAI) *WorkoutService {
	return &WorkoutService{store: store, splits: splits, ai: ai}
}

// PredictedSplit prefers the persisted override (model-asserted or
// user-confirmed) and falls back to the rotation over the lift history.
func (s *WorkoutService) PredictedSplit(ctx context.Context) domain.Split {
	if split, ok := s.store.LatestSplit(ctx); ok {
		return split
	}
	return s.splits.NextSplit(ctx, s.store.Lifts(ctx))
}

// ParseLift extracts a structured entry from free text via the AI parser.
func (s *WorkoutService) ParseLift(ctx context.Context, freeText string) (domain.LiftEntry, error) {
	return s.ai.ParseLiftEntry(ctx, freeText)
}

// SaveLift appends one entry to the lift log.
func (s *WorkoutService) SaveLift(ctx context.Context, entry domain.LiftEntry) error {
	return s.store.AddLift(ctx, entry)
}

// Lifts returns the whole lift log.
func (s *WorkoutService) Lifts(ctx context.Context) []domain.LiftEntry {
	return s.store.Lifts(ctx)
}

// RecentDays returns the standard recent-training timeline.
func (s *WorkoutService) RecentDays(ctx context.Context) []domain.TimelineDay {
	return s.splits.RecentDays(ctx, s.store.Lifts(ctx), RecentDaysWindow)
}

// WatchSplit registers a callback for split-override changes and returns the
// unregister func.
func (s *WorkoutService) WatchSplit(fn func(domain.Split)) func() {
	return s.store.WatchLatestSplit(fn)
}
