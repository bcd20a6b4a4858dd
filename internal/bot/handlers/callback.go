package handlers

import (
	"context"
	"encoding/json"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/JoeAtk/GymPT/internal/bot/menus"
	"github.com/JoeAtk/GymPT/internal/bot/state"
	"github.com/JoeAtk/GymPT/internal/domain"
	"github.com/JoeAtk/GymPT/internal/logger"
)

// CallbackHandler handles callback query messages
type CallbackHandler struct {
	api          *tgbotapi.BotAPI
	deps         Dependencies
	stateManager state.StateManager
}

// NewCallbackHandler creates a new callback handler
func NewCallbackHandler(api *tgbotapi.BotAPI, deps Dependencies, stateManager state.StateManager) *CallbackHandler {
	return &CallbackHandler{
		api:          api,
		deps:         deps,
		stateManager: stateManager,
	}
}

// Handle processes a callback query
func (h *CallbackHandler) Handle(ctx context.Context, query *tgbotapi.CallbackQuery, userID int64) error {
	// Answer the callback query first
	callback := tgbotapi.NewCallback(query.ID, "")
	if _, err := h.api.Request(callback); err != nil {
		return err
	}

	chatID := query.Message.Chat.ID

	switch query.Data {
	case "main_menu":
		h.stateManager.SetUserState(userID, state.None)
		return menus.SendMainMenu(h.api, chatID)
	case "today":
		return sendTodayWorkout(ctx, h.api, h.deps, chatID)
	case "progress":
		return sendProgressOverview(ctx, h.api, h.deps, chatID)
	case "goal":
		return sendGoalView(ctx, h.api, h.deps, h.stateManager, chatID, userID)
	case "clear_chat":
		return clearChat(ctx, h.api, h.deps, chatID)
	case "confirm_lift":
		return h.handleConfirmLift(ctx, chatID, userID)
	case "cancel_lift":
		return h.handleCancelLift(chatID, userID)
	default:
		return h.handleUnknownCallback(chatID)
	}
}

// handleConfirmLift saves the previewed lift entry
func (h *CallbackHandler) handleConfirmLift(ctx context.Context, chatID, userID int64) error {
	data, ok := h.stateManager.GetTempData(userID, state.TempPendingLift)
	if !ok {
		msg := tgbotapi.NewMessage(chatID, "Nothing to save. Use /log to record a lift.")
		_, err := h.api.Send(msg)
		return err
	}

	var entry domain.LiftEntry
	if err := json.Unmarshal([]byte(data), &entry); err != nil {
		logger.Errorf("Failed to decode pending lift: %v", err)
		h.stateManager.ClearTempData(userID)
		msg := tgbotapi.NewMessage(chatID, "Something went wrong. Please log the lift again.")
		_, sendErr := h.api.Send(msg)
		return sendErr
	}

	if err := h.deps.WorkoutSvc.SaveLift(ctx, entry); err != nil {
		logger.Errorf("Failed to save lift: %v", err)
		msg := tgbotapi.NewMessage(chatID, "Could not save the lift. Please try again.")
		_, sendErr := h.api.Send(msg)
		return sendErr
	}

	h.stateManager.ClearTempData(userID)

	msg := tgbotapi.NewMessage(chatID, "✅ Saved: "+formatLift(entry))
	_, err := h.api.Send(msg)
	return err
}

// handleCancelLift discards the previewed lift entry
func (h *CallbackHandler) handleCancelLift(chatID, userID int64) error {
	h.stateManager.ClearTempData(userID)
	msg := tgbotapi.NewMessage(chatID, "Discarded.")
	_, err := h.api.Send(msg)
	return err
}

// handleUnknownCallback handles unknown callbacks
func (h *CallbackHandler) handleUnknownCallback(chatID int64) error {
	msg := tgbotapi.NewMessage(chatID, "Unknown action. Use /start to open the menu.")
	_, err := h.api.Send(msg)
	return err
}
