package menus

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/JoeAtk/GymPT/internal/bot/keyboards"
	"github.com/JoeAtk/GymPT/internal/domain"
)

// SendMainMenu sends the main menu to a chat
func SendMainMenu(api *tgbotapi.BotAPI, chatID int64) error {
	text := `🤖 *GymPT* - your personal training and nutrition assistant

💬 Just type to chat: ask about your training, your goal, or what to eat. I can log lifts and meals you mention.

🏋️ Commands:
/today - predicted split and a workout plan
/log - log a lift from free text
/goal - view or set your goal
/progress - strength progress per exercise

Pick an action:`

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	msg.ReplyMarkup = keyboards.MainMenu()
	_, err := api.Send(msg)
	return err
}

// workoutPlan is a canned session template for one split.
type workoutPlan struct {
	Title       string
	Warmup      string
	Main        []string
	Accessories []string
	Finisher    string
}

func planForSplit(split domain.Split) workoutPlan {
	switch split {
	case domain.SplitPush:
		return workoutPlan{
			Title:       "Push - Strength",
			Warmup:      "5 min rower + band shoulder mobility",
			Main:        []string{"Bench Press - 4 x 6", "Overhead Press - 3 x 8", "Incline DB Press - 3 x 10"},
			Accessories: []string{"Lateral Raises - 3 x 12", "Triceps Pushdown - 3 x 12", "Face Pulls - 3 x 15"},
			Finisher:    "Farmer's Carry - 3 x 40m",
		}
	case domain.SplitPull:
		return workoutPlan{
			Title:       "Pull - Strength",
			Warmup:      "5 min rower + band shoulder mobility",
			Main:        []string{"Pull-ups - 4 x 6", "Barbell Row - 4 x 6", "Romanian Deadlift - 3 x 8"},
			Accessories: []string{"Seated Row - 3 x 12", "Biceps Curl - 3 x 12", "Face Pulls - 3 x 15"},
			Finisher:    "Suitcase Carry - 3 x 40m",
		}
	case domain.SplitLeg:
		return workoutPlan{
			Title:       "Legs - Strength",
			Warmup:      "5 min bike + hip mobility",
			Main:        []string{"Back Squat - 4 x 6", "Leg Press - 3 x 10", "Romanian Deadlift - 3 x 8"},
			Accessories: []string{"Leg Extension - 3 x 12", "Leg Curl - 3 x 12", "Calf Raises - 3 x 15"},
			Finisher:    "Sled Push - 5 x 20m",
		}
	case domain.SplitFullBody:
		return workoutPlan{
			Title:       "Full Body - Strength",
			Warmup:      "5 min rower + dynamic mobility",
			Main:        []string{"Squat - 3 x 5", "Bench Press - 3 x 5", "Barbell Row - 3 x 5"},
			Accessories: []string{"Split Squat - 3 x 10", "Pull-ups - 3 x 6", "Plank - 3 x 45s"},
			Finisher:    "Farmer's Carry - 3 x 40m",
		}
	default:
		return workoutPlan{
			Title:       "Upper Body - Strength",
			Warmup:      "5 min rower + band shoulder mobility",
			Main:        []string{"Bench Press - 4 x 6", "Pull-ups - 4 x 6", "Overhead Press - 3 x 8"},
			Accessories: []string{"Incline DB Press - 3 x 10", "Seated Row - 3 x 12", "Face Pulls - 3 x 15"},
			Finisher:    "Farmer's Carry - 3 x 40m",
		}
	}
}

// SendWorkoutPlan sends the predicted split and its session template.
func SendWorkoutPlan(api *tgbotapi.BotAPI, chatID int64, split domain.Split) error {
	plan := planForSplit(split)

	var b strings.Builder
	fmt.Fprintf(&b, "Predicted today: *%s*\n\n", split.Display())
	fmt.Fprintf(&b, "*%s*\n\n", plan.Title)
	fmt.Fprintf(&b, "Warm-up: %s\n\n", plan.Warmup)
	b.WriteString("*Main lifts*\n")
	for _, item := range plan.Main {
		fmt.Fprintf(&b, "• %s\n", item)
	}
	b.WriteString("\n*Accessories*\n")
	for _, item := range plan.Accessories {
		fmt.Fprintf(&b, "• %s\n", item)
	}
	fmt.Fprintf(&b, "\nFinisher: %s\n\nUse /log to record a lift.", plan.Finisher)

	msg := tgbotapi.NewMessage(chatID, b.String())
	msg.ParseMode = "Markdown"
	msg.ReplyMarkup = keyboards.BackToMenu()
	_, err := api.Send(msg)
	return err
}
