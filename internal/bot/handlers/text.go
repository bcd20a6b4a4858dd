package handlers

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/JoeAtk/GymPT/internal/bot/menus"
	"github.com/JoeAtk/GymPT/internal/bot/state"
	"github.com/JoeAtk/GymPT/internal/logger"
)

// TextHandler handles text messages
type TextHandler struct {
	api          *tgbotapi.BotAPI
	deps         Dependencies
	stateManager state.StateManager
}

// NewTextHandler creates a new text handler
func NewTextHandler(api *tgbotapi.BotAPI, deps Dependencies, stateManager state.StateManager) *TextHandler {
	return &TextHandler{
		api:          api,
		deps:         deps,
		stateManager: stateManager,
	}
}

// Handle processes a text message
func (h *TextHandler) Handle(ctx context.Context, message *tgbotapi.Message, userID int64) error {
	userState := h.stateManager.GetUserState(userID)

	switch userState {
	case state.WaitingForGoal:
		return h.handleGoalInput(ctx, message, userID)
	default:
		return h.handleChat(ctx, message)
	}
}

// handleGoalInput saves the message text as the new goal
func (h *TextHandler) handleGoalInput(ctx context.Context, message *tgbotapi.Message, userID int64) error {
	if err := h.deps.GoalSvc.SetGoal(ctx, message.Text); err != nil {
		msg := tgbotapi.NewMessage(message.Chat.ID, "Could not save the goal. Please try again.")
		_, sendErr := h.api.Send(msg)
		return sendErr
	}

	h.stateManager.SetUserState(userID, state.None)

	msg := tgbotapi.NewMessage(message.Chat.ID, "🎯 Goal saved.")
	if _, err := h.api.Send(msg); err != nil {
		return err
	}
	return menus.SendMainMenu(h.api, message.Chat.ID)
}

// handleChat routes free text through the assistant
func (h *TextHandler) handleChat(ctx context.Context, message *tgbotapi.Message) error {
	typing := tgbotapi.NewChatAction(message.Chat.ID, tgbotapi.ChatTyping)
	if _, err := h.api.Request(typing); err != nil {
		logger.Warnf("Failed to send typing action: %v", err)
	}

	reply := h.deps.ChatSvc.Send(ctx, message.Text)

	msg := tgbotapi.NewMessage(message.Chat.ID, reply)
	msg.ParseMode = "Markdown"
	if _, err := h.api.Send(msg); err != nil {
		// Model output is not always valid Telegram markdown
		logger.Warnf("Markdown send failed, retrying as plain text: %v", err)
		plain := tgbotapi.NewMessage(message.Chat.ID, reply)
		_, err = h.api.Send(plain)
		return err
	}
	return nil
}
