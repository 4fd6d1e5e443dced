package publish

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"nexachart/internal/features/chart"
	"nexachart/internal/features/format"
	"nexachart/internal/infra/log"
	"nexachart/internal/infra/retry"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var ErrNoChart = errors.New("chart file does not exist")

// Sender is the part of *tgbotapi.BotAPI the publisher uses.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Settings struct {
	ChatID        int64
	RatePerSecond float64
	MaxRetries    int
	Timeout       time.Duration
}

// Publisher posts rendered charts to a Telegram chat. Sends are rate limited,
// retried on 429/5xx and guarded by a circuit breaker so a dead API does not
// stall a watch loop.
type Publisher struct {
	sender  Sender
	chatID  int64
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
	retry   retry.Options
	timeout time.Duration
}

func NewPublisher(sender Sender, s Settings) *Publisher {
	if s.RatePerSecond <= 0 {
		s.RatePerSecond = 1
	}
	if s.Timeout <= 0 {
		s.Timeout = 30 * time.Second
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "TelegramPublish",
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.LogWarn("Circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})

	return &Publisher{
		sender:  sender,
		chatID:  s.ChatID,
		limiter: rate.NewLimiter(rate.Limit(s.RatePerSecond), 1),
		breaker: breaker,
		retry: retry.Options{
			MaxRetries: s.MaxRetries,
			BaseDelay:  500 * time.Millisecond,
			MaxDelay:   30 * time.Second,
		},
		timeout: s.Timeout,
	}
}

// PublishChart sends the PNG at chartPath with caption. If the photo cannot
// be sent the caption goes out as a plain message so the update is not lost.
func (p *Publisher) PublishChart(ctx context.Context, chartPath, caption string) error {
	if _, err := os.Stat(chartPath); err != nil {
		log.LogError("Chart file does not exist", zap.String("chartPath", chartPath), zap.Error(err))
		return fmt.Errorf("%w: %s", ErrNoChart, chartPath)
	}

	photo := tgbotapi.NewPhoto(p.chatID, tgbotapi.FilePath(chartPath))
	photo.Caption = caption
	photo.ParseMode = tgbotapi.ModeHTML

	start := time.Now()
	err := p.send(ctx, photo)
	if err == nil {
		log.LogSuccess("Chart published",
			zap.Int64("chatID", p.chatID),
			zap.String("chartPath", chartPath),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()))
		return nil
	}

	log.LogError("Failed to send chart photo", zap.Error(err))
	if ctx.Err() != nil || errors.Is(err, gobreaker.ErrOpenState) {
		return err
	}

	msg := tgbotapi.NewMessage(p.chatID, caption)
	msg.ParseMode = tgbotapi.ModeHTML
	if fallbackErr := p.send(ctx, msg); fallbackErr != nil {
		log.LogError("Failed to send caption fallback", zap.Error(fallbackErr))
	}
	return fmt.Errorf("failed to publish chart: %w", err)
}

func (p *Publisher) send(ctx context.Context, c tgbotapi.Chattable) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	return retry.Do(ctx, p.retry, func() error {
		if err := p.limiter.Wait(ctx); err != nil {
			return err
		}
		_, err := p.breaker.Execute(func() (interface{}, error) {
			return p.sender.Send(c)
		})
		return err
	})
}

// Caption summarizes a series for the photo caption: last value, change over
// the range and the date span.
func Caption(label string, data chart.Series) string {
	if label == "" {
		label = "Chart"
	}
	if len(data) == 0 {
		return fmt.Sprintf("<b>%s</b>\nNo data", escapeHTML(label))
	}

	first, last := data[0], data[len(data)-1]
	var b strings.Builder
	fmt.Fprintf(&b, "<b>%s</b>\n", escapeHTML(label))
	fmt.Fprintf(&b, "Last: %s", format.Compact(last.Value))
	if first.Value != 0 && len(data) > 1 {
		change := (last.Value - first.Value) / first.Value * 100
		sign := ""
		if change > 0 {
			sign = "+"
		}
		fmt.Fprintf(&b, " (%s%s)", sign, format.Percent(change, 2))
	}
	fmt.Fprintf(&b, "\n%s to %s, %d points", format.Date(first.Timestamp), format.Date(last.Timestamp), len(data))
	return b.String()
}

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escapeHTML(s string) string { return htmlEscaper.Replace(s) }
