package handlers

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/JoeAtk/GymPT/internal/bot/menus"
	"github.com/JoeAtk/GymPT/internal/bot/state"
	"github.com/JoeAtk/GymPT/internal/domain"
	"github.com/JoeAtk/GymPT/internal/logger"
)

// CommandHandler handles bot commands
type CommandHandler struct {
	api          *tgbotapi.BotAPI
	deps         Dependencies
	stateManager state.StateManager
}

// NewCommandHandler creates a new command handler
func NewCommandHandler(api *tgbotapi.BotAPI, deps Dependencies, stateManager state.StateManager) *CommandHandler {
	return &CommandHandler{
		api:          api,
		deps:         deps,
		stateManager: stateManager,
	}
}

// Handle processes a command message
func (h *CommandHandler) Handle(ctx context.Context, message *tgbotapi.Message, userID int64) error {
	logger.Infof("Handling command %s from user %d", message.Command(), userID)

	switch message.Command() {
	case "start":
		h.stateManager.SetUserState(userID, state.None)
		return menus.SendMainMenu(h.api, message.Chat.ID)
	case "help":
		return h.handleHelp(message.Chat.ID)
	case "today":
		return sendTodayWorkout(ctx, h.api, h.deps, message.Chat.ID)
	case "goal":
		return h.handleGoal(ctx, message, userID)
	case "log":
		return h.handleLog(ctx, message, userID)
	case "progress":
		return h.handleProgress(ctx, message)
	case "history":
		return h.handleHistory(ctx, message.Chat.ID)
	case "clear":
		return clearChat(ctx, h.api, h.deps, message.Chat.ID)
	default:
		return h.handleUnknownCommand(message.Chat.ID)
	}
}

// handleHelp handles the /help command
func (h *CommandHandler) handleHelp(chatID int64) error {
	text := `Available commands:
/start - Show the main menu
/today - Predicted split and a workout plan
/log <text> - Log a lift from free text, e.g. /log bench 3x8 at 80kg
/goal <text> - Set your goal, or /goal to view it
/progress - Strength progress overview
/progress <exercise> - Progress for one exercise
/history - Recent chat messages
/clear - Clear chat history
/help - Show this message

Anything else you type goes straight to the assistant. Mention food you ate and it gets logged automatically.`

	msg := tgbotapi.NewMessage(chatID, text)
	_, err := h.api.Send(msg)
	return err
}

// handleGoal shows the current goal or sets a new one from the command arguments
func (h *CommandHandler) handleGoal(ctx context.Context, message *tgbotapi.Message, userID int64) error {
	args := strings.TrimSpace(message.CommandArguments())
	if args != "" {
		if err := h.deps.GoalSvc.SetGoal(ctx, args); err != nil {
			msg := tgbotapi.NewMessage(message.Chat.ID, "Could not save the goal. Please try again.")
			_, sendErr := h.api.Send(msg)
			return sendErr
		}
		msg := tgbotapi.NewMessage(message.Chat.ID, "🎯 Goal saved.")
		_, err := h.api.Send(msg)
		return err
	}
	return sendGoalView(ctx, h.api, h.deps, h.stateManager, message.Chat.ID, userID)
}

// handleLog parses a lift description and asks for confirmation before saving
func (h *CommandHandler) handleLog(ctx context.Context, message *tgbotapi.Message, userID int64) error {
	args := strings.TrimSpace(message.CommandArguments())
	if args == "" {
		msg := tgbotapi.NewMessage(message.Chat.ID, "Describe the lift after the command, e.g. /log bench press 3x8 at 80kg")
		_, err := h.api.Send(msg)
		return err
	}
	return sendLiftPreview(ctx, h.api, h.deps, h.stateManager, message.Chat.ID, userID, args)
}

// handleProgress shows the overview or, with an argument, one exercise's series
func (h *CommandHandler) handleProgress(ctx context.Context, message *tgbotapi.Message) error {
	args := strings.TrimSpace(message.CommandArguments())
	if args == "" {
		return sendProgressOverview(ctx, h.api, h.deps, message.Chat.ID)
	}
	return sendExerciseProgress(ctx, h.api, h.deps, message.Chat.ID, args)
}

// handleHistory shows the recent chat transcript
func (h *CommandHandler) handleHistory(ctx context.Context, chatID int64) error {
	history := h.deps.ChatSvc.DisplayHistory(ctx)
	if len(history) == 0 {
		msg := tgbotapi.NewMessage(chatID, "No chat history yet.")
		_, err := h.api.Send(msg)
		return err
	}

	const maxShown = 10
	if len(history) > maxShown {
		history = history[len(history)-maxShown:]
	}

	var b strings.Builder
	for _, m := range history {
		who := "You"
		if m.Role == domain.RoleModel {
			who = "GymPT"
		}
		b.WriteString(who)
		b.WriteString(": ")
		b.WriteString(m.Text)
		b.WriteString("\n\n")
	}

	msg := tgbotapi.NewMessage(chatID, strings.TrimSpace(b.String()))
	_, err := h.api.Send(msg)
	return err
}

// handleUnknownCommand handles unknown commands
func (h *CommandHandler) handleUnknownCommand(chatID int64) error {
	msg := tgbotapi.NewMessage(chatID, "Unknown command. Use /help to see available commands.")
	_, err := h.api.Send(msg)
	return err
}
