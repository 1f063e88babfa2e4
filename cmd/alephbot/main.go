// Package main contains the entrypoint for the AlephBot Discord bot.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alephbot/alephbot/internal/bot"
	"github.com/alephbot/alephbot/internal/bot/handlers"
	"github.com/alephbot/alephbot/internal/bot/tasks"
	"github.com/alephbot/alephbot/internal/config"
	"github.com/alephbot/alephbot/internal/database"
	"github.com/alephbot/alephbot/internal/deepl"
	"github.com/alephbot/alephbot/internal/dicta"
	"github.com/alephbot/alephbot/internal/discord"
	"github.com/alephbot/alephbot/internal/logger"
	"github.com/alephbot/alephbot/internal/nakdan"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := run(ctx)
	stop()
	os.Exit(exitCode)
}

// run initializes all components, starts the bot, and returns the process
// exit code. Configuration problems (missing credentials included) are
// fatal here; everything after startup is handled per invocation.
func run(ctx context.Context) int {
	configPath := flag.String("config", "./config.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load configuration", "path", *configPath, "error", err)
		return 1
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	log.Info("logger initialized", "level", cfg.Log.Level, "format", cfg.Log.Format)

	db, err := database.NewDB(cfg.Database.Path)
	if err != nil {
		log.Error("failed to open database", "path", cfg.Database.Path, "error", err)
		return 1
	}
	defer database.CloseDB(db)
	store := database.NewStore(db, log)

	nakdanClient := nakdan.NewClient(nakdan.Config{
		BaseURL:      cfg.Nakdan.BaseURL,
		MorphBaseURL: cfg.Nakdan.MorphBaseURL,
		APIKey:       cfg.Nakdan.APIKey,
		Genre:        cfg.Nakdan.Genre,
		Timeout:      cfg.Nakdan.Timeout,
	}, log)

	translator := dicta.NewClient(dicta.Config{
		WSURL:   cfg.Dicta.WSURL,
		Timeout: cfg.Dicta.Timeout,
	}, log)

	var deeplClient *deepl.Client
	if cfg.DeepL.AuthKey != "" {
		deeplClient = deepl.NewClient(cfg.DeepL.AuthKey, cfg.DeepL.Timeout, log)
	}

	hDeps := handlers.HandlerDeps{
		Logger:     log,
		Config:     cfg,
		Nakdan:     nakdanClient,
		Translator: translator,
		Store:      store,
	}
	registry := handlers.RegisterAllCommands(hDeps)
	dispatcher := handlers.NewDispatcher(hDeps, registry)

	session, err := discord.New(cfg.Discord.Token, cfg.Discord.GuildID, log, handlers.Definitions(registry))
	if err != nil {
		log.Error("failed to create discord session", "error", err)
		return 1
	}
	session.OnInteraction(dispatcher.HandleInteraction)

	tDeps := tasks.TaskDeps{
		Logger: log,
		Config: cfg,
		Store:  store,
		DeepL:  deeplClient,
	}
	scheduler, err := bot.NewScheduler(log, tasks.RegisterAllTasks(tDeps))
	if err != nil {
		log.Error("failed to create scheduler", "error", err)
		return 1
	}

	app := bot.New(log, session, scheduler)

	log.Info("starting bot")
	if err := app.Run(ctx); err != nil {
		log.Error("bot stopped due to error", "error", err)
		return 1
	}

	log.Info("bot stopped gracefully")
	return 0
}
