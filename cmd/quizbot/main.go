package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/letsssgooo/aiQuizBot/internal/bot"
	"github.com/letsssgooo/aiQuizBot/internal/client"
	"github.com/letsssgooo/aiQuizBot/internal/config"
	"github.com/letsssgooo/aiQuizBot/internal/events/fetcher"
	"github.com/letsssgooo/aiQuizBot/internal/events/sender"
	"github.com/letsssgooo/aiQuizBot/internal/lib/slogcustom"
	"github.com/letsssgooo/aiQuizBot/internal/llm"
	"github.com/letsssgooo/aiQuizBot/internal/quiz"
	"github.com/letsssgooo/aiQuizBot/internal/status"
	"github.com/letsssgooo/aiQuizBot/internal/storage"
	"github.com/letsssgooo/aiQuizBot/internal/storage/redis"
)

func main() {
	flagConfig := pflag.String("config", "", "path to YAML config file")
	flagToken := pflag.String("token", "", "token of telegram bot")
	flagMode := pflag.String("mode", "", "quiz presentation mode: poll or buttons")
	flagBotUsername := pflag.String("bot-username", "", "username of the telegram bot")
	pflag.Parse()

	cfg, err := config.Load(*flagConfig)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if pflag.CommandLine.Changed("token") {
		cfg.Telegram.Token = *flagToken
	}
	if pflag.CommandLine.Changed("mode") {
		cfg.Quiz.Mode = strings.ToLower(strings.TrimSpace(*flagMode))
	}

	log := setupLogger(os.Stdout, cfg.Log)
	slog.SetDefault(log)

	if err = cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = run(ctx, cfg, *flagBotUsername); err != nil {
		slog.Error("quiz bot failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, botUsername string) error {
	slog.Info("starting quiz bot...", "mode", cfg.Quiz.Mode, "model", cfg.Gemini.Model)

	completer, err := llm.NewGeminiCompleter(ctx, llm.GeminiConfig{
		APIKey: cfg.Gemini.APIKey,
		Model:  cfg.Gemini.Model,
	})
	if err != nil {
		return err
	}

	temperature := cfg.Gemini.Temperature
	requester := llm.NewRequester(completer, llm.RequesterConfig{
		Prompt:      llm.BuildPrompt(cfg.Quiz.Topic),
		Temperature: &temperature,
		MaxAttempts: cfg.Quiz.MaxRetries,
		BaseDelay:   cfg.Quiz.RetryBaseDelay,
	})

	store, closeStore, err := setupSessionStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	quizzes := quiz.NewService(requester, quiz.NewFormatter(quiz.Mode(cfg.Quiz.Mode), store))
	resolver := quiz.NewResolver(store)

	tg := client.NewHTTPClient(cfg.Telegram.Token)
	b := bot.NewBot(
		fetcher.NewTelegramFetcher(tg),
		sender.NewSender(tg),
		quizzes,
		resolver,
		bot.Options{
			PollTimeout: cfg.Telegram.PollTimeout,
			Workers:     cfg.Quiz.Workers,
			Username:    botUsername,
		},
	)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return b.Run(ctx)
	})

	if cfg.Periodic.ChatID != 0 {
		g.Go(func() error {
			return b.RunScheduled(ctx, cfg.Periodic.ChatID, cfg.Periodic.Interval)
		})
	}

	if cfg.Status.Addr != "" {
		srv := status.NewServer(cfg.Status.Addr, quizzes)
		g.Go(func() error {
			return srv.Run(ctx)
		})
	}

	return g.Wait()
}

// setupSessionStore выбирает Redis, если задан адрес, иначе хранилище в памяти.
func setupSessionStore(ctx context.Context, cfg *config.Config) (quiz.SessionStore, func(), error) {
	if cfg.Redis.Addr == "" {
		slog.Info("using in-memory session store", "ttl", cfg.Session.TTL, "capacity", cfg.Session.Capacity)
		return storage.NewMemorySessionStore(cfg.Session.Capacity, cfg.Session.TTL), func() {}, nil
	}

	store, err := redis.NewSessionStore(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		TTL:      cfg.Session.TTL,
	})
	if err != nil {
		return nil, nil, err
	}

	slog.Info("using redis session store", "addr", cfg.Redis.Addr, "ttl", cfg.Session.TTL)

	return store, func() {
		if err := store.Close(); err != nil {
			slog.Warn("failed to close redis", "err", err)
		}
	}, nil
}

func setupLogger(out io.Writer, cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}

	if cfg.Format == "text" {
		return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
	}

	return slog.New(slogcustom.NewCustomHandler(out, level))
}
