package keyboards

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// MainMenu creates the main menu keyboard
func MainMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🏋️ Today's workout", "today"),
			tgbotapi.NewInlineKeyboardButtonData("📈 Progress", "progress"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎯 Goal", "goal"),
			tgbotapi.NewInlineKeyboardButtonData("🧹 Clear chat", "clear_chat"),
		),
	)
}

// ConfirmLift creates the parsed-lift preview keyboard
func ConfirmLift() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Save", "confirm_lift"),
			tgbotapi.NewInlineKeyboardButtonData("✖️ Discard", "cancel_lift"),
		),
	)
}

// BackToMenu creates a single back button
func BackToMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀️ Main menu", "main_menu"),
		),
	)
}
