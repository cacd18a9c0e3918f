package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"translator/internal/config"
	"translator/internal/domain"
	"translator/internal/handler"
	"translator/internal/repository"
	"translator/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err == nil {
		err = cfg.ValidateBot()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// The bot has no terminal UI, so it logs to stderr unless LOG_FILE says otherwise
	if os.Getenv("LOG_FILE") == "" {
		cfg.LogFile = ""
	}
	logger, err := cfg.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting translator bot", zap.String("storage", cfg.Storage))

	repo, closeRepo, err := repository.Open(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to open repository", zap.Error(err))
	}
	defer closeRepo()

	// Initialize services
	authService := service.NewAuthService(cfg.BotPassword)
	vocab := service.NewVocabularyService(repo, logger, cfg.StoreOptions()...)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := vocab.Open(ctx, cfg.BotVocabulary); err != nil {
		if domain.Classify(err) != domain.ErrFileReadingFailed {
			logger.Fatal("Failed to open vocabulary", zap.Error(err))
		}
		logger.Info("Starting with an empty vocabulary", zap.String("name", cfg.BotVocabulary))
	}

	// Initialize Telegram bot
	bot, err := tele.NewBot(tele.Settings{
		Token:  cfg.BotToken,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	logger.Info("Telegram bot initialized")

	h := handler.NewHandler(bot, authService, vocab, cfg.BotVocabulary, logger)
	h.RegisterHandlers()

	logger.Info("Handlers registered")

	// Start autosave job in background
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		service.RunAutosave(ctx, cfg.AutosaveInterval, h.Flush, logger)
	}()

	// Start bot in background
	go func() {
		logger.Info("Bot started successfully")
		bot.Start()
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	logger.Info("Shutdown signal received, stopping bot...")

	// Graceful shutdown: stop polling, then let autosave flush once more
	bot.Stop()
	cancel()
	wg.Wait()

	logger.Info("Bot stopped gracefully")
}
