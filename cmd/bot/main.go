package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/rauanseidaly/habittrackerbot/internal/bot"
	"github.com/rauanseidaly/habittrackerbot/internal/config"
	"github.com/rauanseidaly/habittrackerbot/internal/db"
	"github.com/rauanseidaly/habittrackerbot/internal/repo"
	"github.com/rauanseidaly/habittrackerbot/internal/tracker"
)

func main() {
	cfg := config.MustLoad()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var store repo.UserStore
	if cfg.DatabaseURL != "" {
		pool, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("postgres connect", "err", err)
			os.Exit(1)
		}
		defer pool.Close()

		if err := db.ApplyMigrations(ctx, pool, "./migrations"); err != nil {
			logger.Error("migrations", "err", err)
			os.Exit(1)
		}
		store = repo.NewPostgres(pool)
		logger.Info("storage ready", "backend", "postgres")
	} else {
		s, err := repo.OpenSQLite(filepath.Join(cfg.DataDir, "habits.db"))
		if err != nil {
			logger.Error("sqlite open", "err", err)
			os.Exit(1)
		}
		defer s.Close()
		store = s
		logger.Info("storage ready", "backend", "sqlite", "dir", cfg.DataDir)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Error("load timezone", "tz", cfg.Timezone, "err", err)
		os.Exit(1)
	}

	botAPI, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		logger.Error("bot init", "err", err)
		os.Exit(1)
	}
	botAPI.Debug = false

	clock := tracker.NewClock(loc)
	h := bot.NewHandler(botAPI, logger, store, tracker.NewLedger(store, clock), tracker.NewQuery(store))

	// Graceful shutdown
	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
		<-ch
		cancel()
	}()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := botAPI.GetUpdatesChan(u)

	logger.Info("habit bot started", "username", botAPI.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			logger.Info("shutdown")
			return
		case upd := <-updates:
			go h.HandleUpdate(ctx, upd)
		}
	}
}
