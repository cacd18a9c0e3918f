package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"translator/internal/cli"
	"translator/internal/config"
	"translator/internal/report"
	"translator/internal/repository"
	"translator/internal/service"

	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	fileName := flag.String("file", "", "vocabulary to open at startup, without extension")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := cfg.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting translator",
		zap.String("storage", cfg.Storage),
		zap.Int("max_entries", cfg.MaxEntries),
		zap.Int("max_translations", cfg.MaxTranslations),
	)

	repo, closeRepo, err := repository.Open(cfg, logger)
	if err != nil {
		logger.Error("Failed to open repository", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Failed to open %s storage: %v\n", cfg.Storage, err)
		os.Exit(1)
	}
	defer closeRepo()

	vocab := service.NewVocabularyService(repo, logger, cfg.StoreOptions()...)
	reporter := report.New(os.Stdout)

	ctx := context.Background()

	if *fileName != "" {
		if err := vocab.Open(ctx, *fileName); err != nil {
			reporter.Report(err)
		} else {
			reporter.Success(fmt.Sprintf("Loaded %d entries.", vocab.Count()))
		}
	}

	var browse cli.BrowseFunc
	if cli.IsInteractive(os.Stdin, os.Stdout) {
		browse = cli.NewBrowser(os.Stdin, os.Stdout, reporter.RenderEntry).Browse
	}

	session := cli.NewSession(vocab, cli.NewPrompter(os.Stdin, os.Stdout), reporter, browse, logger)
	if err := session.Run(ctx); err != nil {
		logger.Error("Session ended with error", zap.Error(err))
	}

	logger.Info("Translator stopped", zap.Bool("unsaved_changes", vocab.IsDirty()))
}
