package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/JoeAtk/GymPT/internal/bot"
	"github.com/JoeAtk/GymPT/internal/bot/handlers"
	"github.com/JoeAtk/GymPT/internal/bot/state"
	"github.com/JoeAtk/GymPT/internal/config"
	apperrors "github.com/JoeAtk/GymPT/internal/errors"
	"github.com/JoeAtk/GymPT/internal/logger"
	"github.com/JoeAtk/GymPT/internal/repository"
	"github.com/JoeAtk/GymPT/internal/services"
	"github.com/JoeAtk/GymPT/internal/storage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logger.Warn("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.InitWithConfig(logger.Config{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	}); err != nil {
		logger.Fatalf("Failed to init logger: %v", err)
	}
	logger.Info("Starting GymPT bot...")

	kv, err := storage.Open(cfg)
	if err != nil {
		logger.Fatalf("Failed to open storage: %v", err)
	}
	defer kv.Close()
	logger.Infof("Storage backend ready: %s", cfg.StorageBackend)

	errHandler := apperrors.NewHandler(logger.GetLogger())
	repo := repository.New(kv, errHandler)

	aiService, err := services.NewAIService(cfg)
	if err != nil {
		logger.Fatalf("Failed to init AI provider: %v", err)
	}
	classifier := services.NewClassifierService(repo, aiService, errHandler)
	splitSvc := services.NewSplitService(classifier)
	nutritionSvc := services.NewNutritionService()
	contextSvc := services.NewContextService(repo, splitSvc, nutritionSvc)
	controlSvc := services.NewControlService(repo, errHandler)
	chatSvc := services.NewChatService(repo, contextSvc, controlSvc, aiService, errHandler)
	goalSvc := services.NewGoalService(repo, aiService, errHandler)
	workoutSvc := services.NewWorkoutService(repo, splitSvc, aiService)
	progressSvc := services.NewProgressService()
	logger.Info("Services initialized successfully")

	var stateManager state.StateManager
	if cfg.StorageBackend == config.StorageRedis {
		redisManager, err := state.NewRedisManager(cfg.Redis.Host, cfg.Redis.Port)
		if err != nil {
			logger.Fatalf("Failed to init Redis state manager: %v", err)
		}
		defer redisManager.Close()
		stateManager = redisManager
	} else {
		stateManager = state.NewManager()
	}

	deps := handlers.Dependencies{
		ChatSvc:     chatSvc,
		GoalSvc:     goalSvc,
		WorkoutSvc:  workoutSvc,
		ProgressSvc: progressSvc,
	}

	telegramBot, err := bot.NewBot(cfg.TelegramToken, cfg.AllowedUserID, deps, stateManager)
	if err != nil {
		logger.Fatalf("Failed to create bot: %v", err)
	}
	logger.Info("Bot initialized successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Infof("Received signal %s, shutting down...", sig)
		cancel()
	}()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := telegramBot.Start(ctx); err != nil && ctx.Err() == nil {
			logger.Errorf("Bot stopped with error: %v", err)
			cancel()
		}
	}()

	logger.Info("Bot is running. Press Ctrl+C to stop.")
	wg.Wait()
}
