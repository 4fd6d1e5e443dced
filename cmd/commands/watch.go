package commands

// Re-renders the chart whenever the series file changes.
// Watches the parent directory so editors that replace the file by rename
// are still picked up; bursts of events are debounced into one render.

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	"nexachart/internal/features/chart"
	"nexachart/internal/features/publish"
	"nexachart/internal/infra/config"
	storage "nexachart/internal/infra/fs"
	logging "nexachart/internal/infra/log"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var watchPublish bool

var watchCmd = &cobra.Command{
	Use:   "watch <series-file>",
	Short: "Re-render (and optionally publish) the chart whenever the series file changes",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchPublish, "publish", false, "Publish every re-render to Telegram")
}

func runWatch(cmd *cobra.Command, args []string) error {
	var publisher *publish.Publisher
	if watchPublish {
		var err error
		if publisher, err = newPublisher(); err != nil {
			return err
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	w, err := newChartWatcher(cfg, args[0], publisher)
	if err != nil {
		return err
	}
	defer w.close()

	return w.run(ctx, time.Duration(cfg.App.WatchDebounceMs)*time.Millisecond)
}

// chartWatcher keeps one attached surface across reloads so every change
// goes through Surface.Update.
type chartWatcher struct {
	cfg       *config.Config
	path      string
	out       string
	publisher *publish.Publisher
	fsw       *fsnotify.Watcher
	surface   *chart.Surface

	attaches atomic.Int32
	points   atomic.Int32 // series length of the last saved chart
}

func newChartWatcher(c *config.Config, seriesPath string, publisher *publish.Publisher) (*chartWatcher, error) {
	abs, err := filepath.Abs(seriesPath)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed creating file watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	return &chartWatcher{
		cfg:       c,
		path:      abs,
		out:       outputPath(c),
		publisher: publisher,
		fsw:       fsw,
	}, nil
}

// run renders once, then re-renders after every debounced change until ctx
// is done.
func (w *chartWatcher) run(ctx context.Context, debounce time.Duration) error {
	w.render(ctx)
	logging.LogSuccess("Watching series file", zap.String("path", w.path))

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			logging.LogInfo("Shutdown signal received, stopping watcher")
			return nil

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			logging.LogDebug("Series file event", zap.String("op", ev.Op.String()))
			timer.Reset(debounce)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			logging.LogWarn("File watcher error", zap.Error(err))

		case <-timer.C:
			w.render(ctx)
		}
	}
}

func (w *chartWatcher) render(ctx context.Context) {
	if err := storage.WaitForFile(ctx, w.path, 2*time.Second); err != nil {
		logging.LogWarn("Series file not ready", zap.String("path", w.path), zap.Error(err))
		return
	}
	data, err := storage.LoadSeries(w.path)
	if err != nil {
		logging.LogError("Failed to load series", zap.String("path", w.path), zap.Error(err))
		return
	}

	if w.surface == nil {
		surface, _, err := attachSurface(w.cfg, data)
		if err != nil {
			logging.LogError("Failed to create chart", zap.Error(err))
			return
		}
		w.surface = surface
		w.attaches.Add(1)
	} else if err := w.surface.Update(data, w.cfg.Chart.Options); err != nil {
		return
	}

	if err := saveChart(w.surface, w.out); err != nil {
		return
	}
	w.points.Store(int32(len(data)))

	if w.publisher != nil {
		caption := publish.Caption(w.cfg.Chart.Label, data)
		if err := w.publisher.PublishChart(ctx, w.out, caption); err != nil {
			logging.LogError("Failed to publish chart", zap.Error(err))
		}
	}
}

func (w *chartWatcher) close() {
	w.fsw.Close()
	if w.surface != nil {
		w.surface.Detach()
	}
}
