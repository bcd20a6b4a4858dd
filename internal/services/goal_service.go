package services

import (
	"context"

	"github.com/JoeAtk/GymPT/internal/domain"
	apperrors "github.com/JoeAtk/GymPT/internal/errors"
	"github.com/JoeAtk/GymPT/internal/utils"
)

type goalStore interface {
	Goal(ctx context.Context) *domain.Goal
	SetGoal(ctx context.Context, goal domain.Goal) error
}

type goalAI interface {
	RewriteGoal(ctx context.Context, goalText string) (string, error)
}

// GoalService reads and writes the singleton goal, lazily backfilling the
// human-facing display text when a generation capability is available.
type GoalService struct {
	store goalStore
	ai    goalAI
	errs  *apperrors.Handler
}

// NewGoalService creates the goal service. ai may be nil.
func NewGoalService(store goalStore, ai goalAI, errs *apperrors.Handler) *GoalService {
	return &GoalService{store: store, ai: ai, errs: errs}
}

// Goal returns the stored goal. A goal without display text gets one
// generated and persisted best-effort; the goal is returned either way.
func (s *GoalService) Goal(ctx context.Context) *domain.Goal {
	goal := s.store.Goal(ctx)
	if goal == nil || goal.DisplayText != "" || s.ai == nil {
		return goal
	}

	display, err := s.ai.RewriteGoal(ctx, goal.Text)
	if err != nil || display == "" {
		if err != nil {
			s.errs.Handle(ctx, err)
		}
		return goal
	}

	goal.DisplayText = display
	if err := s.store.SetGoal(ctx, *goal); err != nil {
		s.errs.Handle(ctx, err)
	}
	return goal
}

// SetGoal overwrites the goal with new text and a fresh timestamp. Any
// previously generated display text is discarded.
func (s *GoalService) SetGoal(ctx context.Context, text string) error {
	return s.store.SetGoal(ctx, domain.Goal{Text: text, Timestamp: utils.NowMillis()})
}
