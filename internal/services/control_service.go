package services

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/JoeAtk/GymPT/internal/domain"
	apperrors "github.com/JoeAtk/GymPT/internal/errors"
	"github.com/JoeAtk/GymPT/internal/utils"
)

// Control block markers. The model prefixes its reply with
// <APP_CONTROL>{...}</APP_CONTROL>; everything after is the display text.
const (
	controlOpen  = "<APP_CONTROL>"
	controlClose = "</APP_CONTROL>"
)

// ExtractControl splits a model response into its control block and display
// reply. When the markers are absent or misordered the text passes through
// untouched. When the markers match, the span is always stripped from the
// reply; a JSON parse failure only costs the directives, never the reply.
func ExtractControl(text string) (*domain.ControlBlock, string) {
	open := strings.Index(text, controlOpen)
	if open == -1 {
		return nil, text
	}
	end := strings.Index(text[open+len(controlOpen):], controlClose)
	if end == -1 {
		return nil, text
	}
	end += open + len(controlOpen)

	inner := strings.TrimSpace(text[open+len(controlOpen) : end])
	reply := strings.TrimSpace(text[:open] + text[end+len(controlClose):])

	var block domain.ControlBlock
	if err := json.Unmarshal([]byte(inner), &block); err != nil {
		return nil, reply
	}
	return &block, reply
}

// StripControl returns only the display reply, for rendering stored history.
func StripControl(text string) string {
	_, reply := ExtractControl(text)
	if reply == "" {
		return text
	}
	return reply
}

// controlStore is the slice of the repository the codec writes through.
type controlStore interface {
	SetLatestSplit(ctx context.Context, split domain.Split) error
	AddLift(ctx context.Context, entry domain.LiftEntry) error
	SetGoal(ctx context.Context, goal domain.Goal) error
	AddFoodEntry(ctx context.Context, entry domain.FoodEntry) error
	SetTargets(ctx context.Context, targets domain.NutritionTargets) error
}

// ControlService applies parsed control directives to persistent state.
type ControlService struct {
	store controlStore
	errs  *apperrors.Handler
}

// NewControlService creates the codec's apply side.
func NewControlService(store controlStore, errs *apperrors.Handler) *ControlService {
	return &ControlService{store: store, errs: errs}
}

// Apply runs every directive of a control block. Directives are independent:
// a failed one is logged and the rest still run. Persistence failures never
// block the chat reply.
func (s *ControlService) Apply(ctx context.Context, block *domain.ControlBlock) {
	if block == nil {
		return
	}

	if split := block.Change.Split; split != nil && *split != "" {
		// Values outside the split vocabulary must not shadow the rotation.
		if normalized := domain.NormalizeSplit(*split); normalized != domain.SplitUnknown {
			if err := s.store.SetLatestSplit(ctx, normalized); err != nil {
				s.errs.Handle(ctx, err)
			}
		}
	}

	for _, l := range block.Store.Lifts {
		if l.Timestamp == 0 {
			l.Timestamp = utils.NowMillis()
		}
		if err := s.store.AddLift(ctx, l); err != nil {
			s.errs.Handle(ctx, err)
		}
	}

	if block.Store.Goal != nil && block.Store.Goal.Text != "" {
		goal := domain.Goal{Text: block.Store.Goal.Text, Timestamp: utils.NowMillis()}
		if err := s.store.SetGoal(ctx, goal); err != nil {
			s.errs.Handle(ctx, err)
		}
	}

	for _, f := range block.Store.Food {
		if f.Timestamp == 0 {
			f.Timestamp = utils.NowMillis()
		}
		if err := s.store.AddFoodEntry(ctx, f); err != nil {
			s.errs.Handle(ctx, err)
		}
	}

	if block.Store.Targets != nil {
		if err := s.store.SetTargets(ctx, *block.Store.Targets); err != nil {
			s.errs.Handle(ctx, err)
		}
	}
}
