package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/JoeAtk/GymPT/internal/bot/keyboards"
	"github.com/JoeAtk/GymPT/internal/bot/menus"
	"github.com/JoeAtk/GymPT/internal/bot/state"
	"github.com/JoeAtk/GymPT/internal/domain"
	"github.com/JoeAtk/GymPT/internal/logger"
	"github.com/JoeAtk/GymPT/internal/utils"
)

// Helpers shared by the command and callback handlers.

func sendTodayWorkout(ctx context.Context, api *tgbotapi.BotAPI, deps Dependencies, chatID int64) error {
	split := deps.WorkoutSvc.PredictedSplit(ctx)
	return menus.SendWorkoutPlan(api, chatID, split)
}

func sendGoalView(ctx context.Context, api *tgbotapi.BotAPI, deps Dependencies, stateManager state.StateManager, chatID, userID int64) error {
	goal := deps.GoalSvc.Goal(ctx)

	var text string
	if goal == nil {
		text = "🎯 No goal set yet. Send me your goal as a message."
	} else {
		display := goal.DisplayText
		if display == "" {
			display = goal.Text
		}
		text = fmt.Sprintf("🎯 Current goal: %s\n\nSend a message to replace it, or /start to go back.", display)
	}

	stateManager.SetUserState(userID, state.WaitingForGoal)

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboards.BackToMenu()
	_, err := api.Send(msg)
	return err
}

func sendLiftPreview(ctx context.Context, api *tgbotapi.BotAPI, deps Dependencies, stateManager state.StateManager, chatID, userID int64, freeText string) error {
	entry, err := deps.WorkoutSvc.ParseLift(ctx, freeText)
	if err != nil {
		logger.Errorf("Failed to parse lift: %v", err)
		msg := tgbotapi.NewMessage(chatID, "Could not parse that lift. Please try again.")
		_, sendErr := api.Send(msg)
		return sendErr
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	stateManager.SetTempData(userID, state.TempPendingLift, string(data))

	msg := tgbotapi.NewMessage(chatID, "Save this lift?\n\n"+formatLift(entry))
	msg.ReplyMarkup = keyboards.ConfirmLift()
	_, err = api.Send(msg)
	return err
}

func sendProgressOverview(ctx context.Context, api *tgbotapi.BotAPI, deps Dependencies, chatID int64) error {
	lifts := deps.WorkoutSvc.Lifts(ctx)
	series := deps.ProgressSvc.ExerciseSeries(lifts)
	if len(series) == 0 {
		msg := tgbotapi.NewMessage(chatID, "No lifts logged yet. Use /log to record one.")
		msg.ReplyMarkup = keyboards.BackToMenu()
		_, err := api.Send(msg)
		return err
	}

	names := make([]string, 0, len(series))
	for name := range series {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("📈 Strength progress (est. 1RM vs first logged):\n\n")
	for _, name := range names {
		rel := deps.ProgressSvc.RelativeSeries(series[name])
		latest := rel[len(rel)-1]
		fmt.Fprintf(&b, "%s: %d (%d%%), %d sessions\n", name, latest.Est1RM, latest.Pct, len(rel))
	}
	b.WriteString("\nUse /progress <exercise> for the full series.")

	msg := tgbotapi.NewMessage(chatID, b.String())
	msg.ReplyMarkup = keyboards.BackToMenu()
	_, err := api.Send(msg)
	return err
}

func sendExerciseProgress(ctx context.Context, api *tgbotapi.BotAPI, deps Dependencies, chatID int64, exercise string) error {
	lifts := deps.WorkoutSvc.Lifts(ctx)
	series := deps.ProgressSvc.ExerciseSeries(lifts)

	query := strings.ToLower(strings.TrimSpace(exercise))
	var matched string
	for name := range series {
		if strings.Contains(strings.ToLower(name), query) {
			matched = name
			break
		}
	}
	if matched == "" {
		msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("No logged lifts match %q.", exercise))
		_, err := api.Send(msg)
		return err
	}

	rel := deps.ProgressSvc.RelativeSeries(series[matched])

	var b strings.Builder
	fmt.Fprintf(&b, "📈 %s\n\n", matched)
	for _, p := range rel {
		fmt.Fprintf(&b, "%s: est. 1RM %d (%d%%)\n", utils.FromMillis(p.Timestamp).Format("Jan 2"), p.Est1RM, p.Pct)
	}

	msg := tgbotapi.NewMessage(chatID, b.String())
	msg.ReplyMarkup = keyboards.BackToMenu()
	_, err := api.Send(msg)
	return err
}

func clearChat(ctx context.Context, api *tgbotapi.BotAPI, deps Dependencies, chatID int64) error {
	text := "🧹 Chat history cleared."
	if err := deps.ChatSvc.ClearHistory(ctx); err != nil {
		logger.Errorf("Failed to clear chat history: %v", err)
		text = "Could not clear chat history. Please try again."
	}
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := api.Send(msg)
	return err
}

func formatLift(entry domain.LiftEntry) string {
	weight := "bodyweight"
	if entry.Weight != nil {
		weight = strconv.FormatFloat(*entry.Weight, 'f', -1, 64)
	}
	return fmt.Sprintf("%s: %d x %d @ %s", entry.Name, entry.Sets, entry.Reps, weight)
}
