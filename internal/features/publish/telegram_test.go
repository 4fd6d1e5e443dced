package publish

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"nexachart/internal/features/chart"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	mu   sync.Mutex
	sent []tgbotapi.Chattable
	errs []error // consumed in order, nil when exhausted
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, c)
	if len(f.errs) == 0 {
		return tgbotapi.Message{MessageID: len(f.sent)}, nil
	}
	err := f.errs[0]
	f.errs = f.errs[1:]
	return tgbotapi.Message{}, err
}

func chartFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chart.png")
	require.NoError(t, os.WriteFile(path, []byte("png"), 0644))
	return path
}

func settings() Settings {
	return Settings{ChatID: 42, RatePerSecond: 1000, MaxRetries: 2, Timeout: 5 * time.Second}
}

func TestPublishChartSendsPhoto(t *testing.T) {
	sender := &fakeSender{}
	p := NewPublisher(sender, settings())

	require.NoError(t, p.PublishChart(context.Background(), chartFile(t), "<b>TVL</b>"))
	require.Len(t, sender.sent, 1)

	photo, ok := sender.sent[0].(tgbotapi.PhotoConfig)
	require.True(t, ok)
	assert.Equal(t, int64(42), photo.ChatID)
	assert.Equal(t, "<b>TVL</b>", photo.Caption)
	assert.Equal(t, tgbotapi.ModeHTML, photo.ParseMode)
}

func TestPublishChartRetriesServerErrors(t *testing.T) {
	sender := &fakeSender{errs: []error{&tgbotapi.Error{Code: 502, Message: "Bad Gateway"}}}
	p := NewPublisher(sender, settings())
	p.retry.BaseDelay = time.Millisecond
	p.retry.MaxDelay = time.Millisecond

	require.NoError(t, p.PublishChart(context.Background(), chartFile(t), "caption"))
	assert.Len(t, sender.sent, 2)
}

func TestPublishChartFallsBackToMessage(t *testing.T) {
	sender := &fakeSender{errs: []error{&tgbotapi.Error{Code: 400, Message: "PHOTO_INVALID_DIMENSIONS"}}}
	p := NewPublisher(sender, settings())

	err := p.PublishChart(context.Background(), chartFile(t), "caption")
	require.Error(t, err)
	require.Len(t, sender.sent, 2)

	msg, ok := sender.sent[1].(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Equal(t, "caption", msg.Text)
}

func TestPublishChartMissingFile(t *testing.T) {
	sender := &fakeSender{}
	p := NewPublisher(sender, settings())

	err := p.PublishChart(context.Background(), filepath.Join(t.TempDir(), "nope.png"), "caption")
	assert.ErrorIs(t, err, ErrNoChart)
	assert.Empty(t, sender.sent)
}

func TestCaption(t *testing.T) {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	data := chart.Series{
		{Timestamp: day, Value: 1000},
		{Timestamp: day.AddDate(0, 0, 1), Value: 1500},
	}

	got := Caption("TVL <USD>", data)
	assert.Equal(t, "<b>TVL &lt;USD&gt;</b>\nLast: 1.5K (+50.00%)\n2024-01-01 to 2024-01-02, 2 points", got)

	assert.Equal(t, "<b>Chart</b>\nNo data", Caption("", nil))
}
