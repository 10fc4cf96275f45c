package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"food-assistant/config"
	"food-assistant/internal/application"
	"food-assistant/internal/domain"
	"food-assistant/internal/infra/audio"
	"food-assistant/internal/infra/local"
	"food-assistant/internal/infra/openai"
	"food-assistant/internal/infra/telegram"
	"food-assistant/internal/infra/tts"
	"food-assistant/internal/metrics"
	"food-assistant/internal/order"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("loading config", "error", err)
		os.Exit(1)
	}

	logger := setupLogger(cfg.Log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutting down")
		cancel()
	}()

	m := metrics.New(prometheus.DefaultRegisterer)
	if cfg.Metrics.Enabled {
		go serveMetrics(cfg.Metrics.Addr, logger)
	}

	catalog := buildCatalog(cfg.Menu)
	store := order.NewStore()

	var stt application.SpeechToText
	if cfg.OpenAI.APIKey != "" {
		recognizer := openai.NewWhisperClient(cfg.OpenAI.APIKey, cfg.OpenAI.Language)
		stt = audio.NewTranscriber(recognizer, m, logger)
	} else {
		stt = &application.NoopSTT{}
	}

	chat := openai.NewChatClient(cfg.OpenAI.APIKey, cfg.OpenAI.ChatModel)
	agent := application.NewAgent(chat, stt, store, catalog, m, logger)

	logger.Info("starting food assistant",
		"transport", cfg.Transport,
		"dishes", len(catalog),
	)

	switch cfg.Transport {
	case "local":
		err = local.New(cfg.Local.Dir, cfg.Local.UserID, agent, logger).Run(ctx)
	default:
		var speaker telegram.Speaker
		if cfg.TTS.Enabled {
			speaker = tts.NewClient(cfg.TTS.Language)
		}
		var bot *telegram.Bot
		bot, err = telegram.New(cfg.Telegram.Token, agent, speaker, logger)
		if err == nil {
			err = bot.Run(ctx)
		}
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("assistant error", "error", err)
		os.Exit(1)
	}
}

func buildCatalog(menu []config.MenuItem) []domain.Dish {
	if len(menu) == 0 {
		return domain.DefaultCatalog()
	}
	catalog := make([]domain.Dish, len(menu))
	for i, item := range menu {
		catalog[i] = domain.Dish{
			Name:        item.Name,
			Ingredients: item.Ingredients,
			Price:       item.Price,
		}
	}
	return catalog
}

func serveMetrics(addr string, logger *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}
	logger.Info("metrics server starting", "addr", addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("metrics server error", "error", err)
	}
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
