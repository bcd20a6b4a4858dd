package bot

import (
	"context"
	"fmt"
	"sync/atomic"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/JoeAtk/GymPT/internal/bot/handlers"
	"github.com/JoeAtk/GymPT/internal/bot/state"
	"github.com/JoeAtk/GymPT/internal/domain"
	"github.com/JoeAtk/GymPT/internal/logger"
)

// Bot runs the long-polling loop and routes updates to the handlers.
type Bot struct {
	api           *tgbotapi.BotAPI
	updateHandler *handlers.UpdateHandler
	lastChatID    atomic.Int64
	unwatchSplit  func()
}

// NewBot creates the bot and registers the split-change notifier.
func NewBot(
	token string,
	allowedUserID int64,
	deps handlers.Dependencies,
	stateManager state.StateManager,
) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	logger.Infof("Bot authorized on account %s", api.Self.UserName)

	b := &Bot{
		api:           api,
		updateHandler: handlers.NewUpdateHandler(api, allowedUserID, deps, stateManager),
	}

	// The assistant can change the training split mid-conversation via a
	// control directive; tell the user when that happens.
	b.unwatchSplit = deps.WorkoutSvc.WatchSplit(func(split domain.Split) {
		chatID := b.lastChatID.Load()
		if chatID == 0 {
			return
		}
		msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("🔄 Training split updated: %s", split.Display()))
		if _, err := b.api.Send(msg); err != nil {
			logger.Warnf("Failed to send split-change notification: %v", err)
		}
	})

	return b, nil
}

// Start runs the update loop until the context is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	logger.Info("Bot is now listening for updates...")

	for {
		select {
		case <-ctx.Done():
			logger.Info("Bot is shutting down...")
			b.Stop()
			return ctx.Err()
		case update := <-updates:
			b.rememberChat(update)
			if err := b.updateHandler.Handle(ctx, update); err != nil {
				logger.Errorf("Error handling update: %v", err)
			}
		}
	}
}

// Stop unregisters the split watcher and stops polling.
func (b *Bot) Stop() {
	if b.unwatchSplit != nil {
		b.unwatchSplit()
	}
	b.api.StopReceivingUpdates()
}

func (b *Bot) rememberChat(update tgbotapi.Update) {
	if update.Message != nil {
		b.lastChatID.Store(update.Message.Chat.ID)
	} else if update.CallbackQuery != nil && update.CallbackQuery.Message != nil {
		b.lastChatID.Store(update.CallbackQuery.Message.Chat.ID)
	}
}
