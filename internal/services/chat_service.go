package services

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/JoeAtk/GymPT/internal/domain"
	apperrors "github.com/JoeAtk/GymPT/internal/errors"
	"github.com/JoeAtk/GymPT/internal/utils"
)

type chatStore interface {
	History(ctx context.Context) []domain.ChatMessage
	AppendMessage(ctx context.Context, msg domain.ChatMessage) error
	ClearHistory(ctx context.Context) error
}

type chatAI interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ChatService runs the chat loop: build context, call the model once, apply
// control directives, persist the exchange. Generation failures become
// in-line model messages; storage failures never block the reply.
type ChatService struct {
	store      chatStore
	assembler  *ContextService
	control    *ControlService
	ai         chatAI
	errs       *apperrors.Handler
	generation atomic.Int64
}

// NewChatService wires the chat loop.
func NewChatService(store chatStore, assembler *ContextService, control *ControlService, ai chatAI, errs *apperrors.Handler) *ChatService {
	return &ChatService{
		store:     store,
		assembler: assembler,
		control:   control,
		ai:        ai,
		errs:      errs,
	}
}

// Send processes one user message and returns the text to display. The
// returned string is always shown to the user, failure or not.
func (s *ChatService) Send(ctx context.Context, text string) string {
	// Each send bumps the generation token; a completion that lands after a
	// newer send was issued is stale and must not touch persistent state.
	token := s.generation.Add(1)

	s.append(ctx, domain.RoleUser, text)

	prompt := s.assembler.BuildContext(ctx, text)
	raw, err := s.ai.Generate(ctx, prompt)
	if err != nil {
		s.errs.Handle(ctx, err)
		failure := failureText(err)
		s.append(ctx, domain.RoleModel, failure)
		return failure
	}

	block, reply := ExtractControl(raw)
	if block == nil && reply != raw {
		// Markers matched but the interior did not parse; the reply is shown
		// without any directives applied.
		s.errs.Handle(ctx, apperrors.NewControlParseError(fmt.Errorf("unparseable control block")))
	}
	if s.generation.Load() == token {
		s.control.Apply(ctx, block)
	}

	// History keeps the raw response; markers are stripped on display.
	s.append(ctx, domain.RoleModel, raw)

	if reply == "" {
		reply = raw
	}
	return reply
}

// DisplayHistory returns the chat history with control blocks stripped from
// model messages.
func (s *ChatService) DisplayHistory(ctx context.Context) []domain.ChatMessage {
	history := s.store.History(ctx)
	out := make([]domain.ChatMessage, 0, len(history))
	for _, msg := range history {
		if msg.Role == domain.RoleModel {
			msg.Text = StripControl(msg.Text)
		}
		out = append(out, msg)
	}
	return out
}

// ClearHistory wipes the persisted chat log.
func (s *ChatService) ClearHistory(ctx context.Context) error {
	return s.store.ClearHistory(ctx)
}

func (s *ChatService) append(ctx context.Context, role, text string) {
	msg := domain.ChatMessage{Role: role, Text: text, Timestamp: utils.NowMillis()}
	if err := s.store.AppendMessage(ctx, msg); err != nil {
		s.errs.Handle(ctx, err)
	}
}

// failureText turns a generation failure into the in-line message the user
// sees in place of a reply.
func failureText(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case apperrors.ErrorTypeNetwork:
			return "Sorry, I could not reach the model. Please try again."
		case apperrors.ErrorTypeAPI:
			if appErr.Internal != nil {
				return fmt.Sprintf("Model request failed: %v", appErr.Internal)
			}
			return "Model request failed."
		}
	}
	return fmt.Sprintf("Something went wrong: %v", err)
}
