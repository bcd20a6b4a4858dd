package interfaces

import (
	"context"

	"github.com/JoeAtk/GymPT/internal/domain"
	"github.com/JoeAtk/GymPT/internal/services"
)

// ChatServiceInterface defines the contract for the chat loop
type ChatServiceInterface interface {
	Send(ctx context.Context, text string) string
	DisplayHistory(ctx context.Context) []domain.ChatMessage
	ClearHistory(ctx context.Context) error
}

// GoalServiceInterface defines the contract for goal operations
type GoalServiceInterface interface {
	Goal(ctx context.Context) *domain.Goal
	SetGoal(ctx context.Context, text string) error
}

// WorkoutServiceInterface defines the contract for lift-log operations
type WorkoutServiceInterface interface {
	PredictedSplit(ctx context.Context) domain.Split
	ParseLift(ctx context.Context, freeText string) (domain.LiftEntry, error)
	SaveLift(ctx context.Context, entry domain.LiftEntry) error
	Lifts(ctx context.Context) []domain.LiftEntry
	RecentDays(ctx context.Context) []domain.TimelineDay
	WatchSplit(fn func(domain.Split)) func()
}

// ProgressServiceInterface defines the contract for strength-progress series
type ProgressServiceInterface interface {
	ExerciseSeries(lifts []domain.LiftEntry) map[string][]services.ProgressPoint
	RelativeSeries(series []services.ProgressPoint) []services.RelativePoint
}
