package commands

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nexachart/internal/features/publish"
	storage "nexachart/internal/infra/fs"
	logging "nexachart/internal/infra/log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var publishCmd = &cobra.Command{
	Use:   "publish <series-file>",
	Short: "Render a series file and post the chart to the configured Telegram chat",
	Args:  cobra.ExactArgs(1),
	RunE:  runPublish,
}

func runPublish(cmd *cobra.Command, args []string) error {
	publisher, err := newPublisher()
	if err != nil {
		return err
	}

	data, err := storage.LoadSeries(args[0])
	if err != nil {
		return err
	}
	surface, _, err := attachSurface(cfg, data)
	if err != nil {
		return err
	}
	defer surface.Detach()

	path := outputPath(cfg)
	if err := saveChart(surface, path); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return publisher.PublishChart(ctx, path, publish.Caption(cfg.Chart.Label, data))
}

func newPublisher() (*publish.Publisher, error) {
	if err := cfg.ValidateTelegram(); err != nil {
		return nil, err
	}

	timeout := time.Duration(cfg.Telegram.RequestTimeout) * time.Second
	bot, err := tgbotapi.NewBotAPIWithClient(cfg.Telegram.BotToken, tgbotapi.APIEndpoint, &http.Client{Timeout: timeout})
	if err != nil {
		logging.LogError("Failed to create Telegram bot", zap.Error(err))
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}
	logging.LogInfo("Telegram bot authorized", zap.String("username", bot.Self.UserName))

	return publish.NewPublisher(bot, publish.Settings{
		ChatID:        cfg.Telegram.ChatID,
		RatePerSecond: cfg.Telegram.RatePerSecond,
		MaxRetries:    cfg.Telegram.MaxRetries,
		Timeout:       timeout,
	}), nil
}
