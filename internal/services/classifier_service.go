package services

import (
	"context"
	"strings"

	"github.com/JoeAtk/GymPT/internal/domain"
	apperrors "github.com/JoeAtk/GymPT/internal/errors"
)

// Keyword families, checked in order. First match wins, so "leg press" and
// "leg curl" land in legs before the push/pull families see them. Deadlifts
// classify as pull; Romanian deadlifts stay in legs via "rdl"/"romanian".
var (
	legKeywords = []string{
		"squat", "leg press", "leg extension", "leg curl", "lunge",
		"hamstring", "glute", "calf", "rdl", "romanian",
	}
	pushKeywords = []string{
		"bench", "press", "overhead", "push", "chest", "tricep",
		"shoulder", "dip", "fly", "flye", "pec",
	}
	pullKeywords = []string{
		"row", "pull", "deadlift", "chin", "bicep", "lat", "back", "curl",
	}
)

// categoryStore is the persisted override map the classifier consults first.
type categoryStore interface {
	ExerciseCategory(ctx context.Context, name string) (domain.Split, bool)
	SetExerciseCategory(ctx context.Context, name string, split domain.Split) error
}

// splitAI is the optional AI fallback for names no rule matches.
type splitAI interface {
	ClassifySplit(ctx context.Context, exerciseName string) (domain.Split, error)
}

// ClassifierService maps exercise names to training categories.
type ClassifierService struct {
	store categoryStore
	ai    splitAI
	errs  *apperrors.Handler
}

// NewClassifierService creates a classifier. ai may be nil, in which case
// unmatched names stay unknown.
func NewClassifierService(store categoryStore, ai splitAI, errs *apperrors.Handler) *ClassifierService {
	return &ClassifierService{store: store, ai: ai, errs: errs}
}

// Classify resolves an exercise name without touching the AI: the persisted
// override map first, then the keyword families. Never mutates state.
func (s *ClassifierService) Classify(ctx context.Context, name string) domain.Split {
	if s.store != nil {
		if split, ok := s.store.ExerciseCategory(ctx, name); ok && split != domain.SplitUnknown {
			return split
		}
	}
	return classifyByKeywords(name)
}

// ClassifyWithAI resolves like Classify, then falls back to a single-word AI
// categorization for names that remain unknown. A known answer is written
// through to the override map; failures and out-of-vocabulary answers leave
// no trace.
func (s *ClassifierService) ClassifyWithAI(ctx context.Context, name string) domain.Split {
	if split := s.Classify(ctx, name); split != domain.SplitUnknown {
		return split
	}
	if s.ai == nil {
		return domain.SplitUnknown
	}

	split, err := s.ai.ClassifySplit(ctx, name)
	if err != nil {
		s.errs.Handle(ctx, apperrors.NewClassificationError(err, name))
		return domain.SplitUnknown
	}
	if split == domain.SplitUnknown {
		return domain.SplitUnknown
	}

	if s.store != nil {
		if err := s.store.SetExerciseCategory(ctx, name, split); err != nil {
			s.errs.Handle(ctx, err)
		}
	}
	return split
}

func classifyByKeywords(name string) domain.Split {
	n := strings.ToLower(name)
	for _, kw := range legKeywords {
		if strings.Contains(n, kw) {
			return domain.SplitLeg
		}
	}
	for _, kw := range pushKeywords {
		if strings.Contains(n, kw) {
			return domain.SplitPush
		}
	}
	for _, kw := range pullKeywords {
		if strings.Contains(n, kw) {
			return domain.SplitPull
		}
	}
	return domain.SplitUnknown
}
