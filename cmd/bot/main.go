package main

import (
	"context"
	"exam_template_backend/internal/app"
	"exam_template_backend/internal/config"
	"exam_template_backend/internal/telegram"
	"exam_template_backend/pkg/logger"
	"log"
	"os/signal"
	"strings"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if strings.TrimSpace(cfg.Telegram.BotToken) == "" {
		log.Fatal("telegram bot token is empty: set TELEGRAM_BOT_TOKEN")
	}

	_, rdb, services := app.Bootstrap(cfg)
	defer logger.Log.Sync()
	if rdb != nil {
		defer rdb.Close()
	}

	bot, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
	if err != nil {
		logger.Log.Fatal("Failed to create telegram bot", zap.Error(err))
	}
	bot.Debug = cfg.Server.Mode == "debug"

	r := &telegram.Router{
		Bot:       bot,
		Templates: services.Template,
		Extract:   services.Extract,
		Timeout:   cfg.AI.Timeout(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Log.Info("Telegram bot polling", zap.String("account", bot.Self.UserName))
	telegram.RunPolling(ctx, bot, r.HandleUpdate)
}
