// Package main contains the entrypoint for the GroupWarden Telegram bot.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbot "github.com/go-telegram/bot"

	"github.com/groupwarden/groupwarden/internal/bot"
	"github.com/groupwarden/groupwarden/internal/bot/handlers"
	"github.com/groupwarden/groupwarden/internal/bot/tasks"
	"github.com/groupwarden/groupwarden/internal/config"
	"github.com/groupwarden/groupwarden/internal/database"
	"github.com/groupwarden/groupwarden/internal/logger"
	"github.com/groupwarden/groupwarden/internal/moderation"
	"github.com/groupwarden/groupwarden/internal/state"
	"github.com/groupwarden/groupwarden/internal/telegram"

	_ "modernc.org/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := run(ctx)
	stop()
	os.Exit(exitCode)
}

// run wires all components together, starts the bot, and returns the process
// exit code.
func run(ctx context.Context) int {
	configPath := flag.String("config", "./config.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "path", *configPath, "error", err)
		return 1
	}

	log := logger.NewLogger(cfg.Log.Level, cfg.Log.JSON)
	slog.SetDefault(log)
	log.Info("Logger initialized", "level", cfg.Log.Level, "json", cfg.Log.JSON)

	db, err := database.NewDB(cfg.Database.Path)
	if err != nil {
		log.Error("Failed to connect to database", "path", cfg.Database.Path, "error", err)
		return 1
	}
	defer database.CloseDB(db)
	store := database.NewStore(db, log)

	// The default handler has to exist before the bot instance, but its state
	// and scheduler dependencies need the bot's transport client. The shared
	// deps struct is completed below, before any update is processed.
	hDeps := handlers.HandlerDeps{
		Logger: log,
		Config: cfg,
	}

	botOpts := []tgbot.Option{
		tgbot.WithMiddlewares(logger.Middleware(log)),
		tgbot.WithDefaultHandler(handlers.NewModerationHandler(&hDeps)),
		tgbot.WithAllowedUpdates(tgbot.AllowedUpdates{
			"message", "edited_message", "my_chat_member",
		}),
	}
	tg, err := telegram.NewTelegramBot(cfg.Telegram.Token, log, botOpts...)
	if err != nil {
		log.Error("Failed to create Telegram bot", "error", err)
		return 1
	}

	cfg.Telegram.BotInfo, err = tg.GetMe(ctx)
	if err != nil {
		log.Error("Failed to get bot info", "error", err)
		return 1
	}
	log.Info("Retrieved bot info",
		"bot_id", cfg.Telegram.BotInfo.ID, "bot_username", cfg.Telegram.BotInfo.Username)

	client := telegram.NewClient(tg, log)

	manager := state.NewManager(log, store, client, cfg.Telegram.OwnerID, state.GroupConfig{
		DeleteDelay: cfg.Moderation.DefaultDeleteDelay,
		AutoDelete:  cfg.Moderation.AutoDeleteDefault,
	})
	if err := manager.Load(ctx); err != nil {
		log.Error("Failed to load bot state", "error", err)
		return 1
	}

	deletions := moderation.NewScheduler(log, manager, client)
	broadcaster := moderation.NewBroadcaster(log, client)

	hDeps.State = manager
	hDeps.Scheduler = deletions
	hDeps.Broadcaster = broadcaster
	hDeps.Deleter = client
	hDeps.Chats = client

	cmdHandlers := handlers.RegisterAllCommands(hDeps)
	if err := telegram.RegisterHandlers(tg, log, cmdHandlers); err != nil {
		log.Error("Failed to register Telegram handlers", "error", err)
		return 1
	}

	tDeps := tasks.TaskDeps{
		Logger: log,
		Store:  store,
		Config: cfg,
	}
	sched, err := bot.NewScheduler(log, &cfg.Scheduler, tasks.RegisterAllTasks(tDeps))
	if err != nil {
		log.Error("Failed to create scheduler", "error", err)
		return 1
	}

	app := bot.NewBot(log, cfg, tg, sched, deletions)

	log.Info("Starting bot...")
	runErr := app.Run(ctx)

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		log.Error("Bot stopped due to error", "error", runErr)
		time.Sleep(time.Second)
		return 1
	}

	log.Info("Bot stopped gracefully.")
	time.Sleep(time.Second)
	return 0
}
