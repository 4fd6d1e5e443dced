package commands

import (
	"fmt"
	"path/filepath"

	"nexachart/internal/features/chart"
	"nexachart/internal/infra/config"
	storage "nexachart/internal/infra/fs"
	logging "nexachart/internal/infra/log"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var renderCmd = &cobra.Command{
	Use:   "render <series-file>",
	Short: "Render a series file (.json or .csv) to PNG",
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

func runRender(cmd *cobra.Command, args []string) error {
	data, err := storage.LoadSeries(args[0])
	if err != nil {
		logging.LogError("Failed to load series", zap.String("path", args[0]), zap.Error(err))
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
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

// attachSurface builds a surface from config and attaches it to an
// in-memory host sized like the configured container.
func attachSurface(c *config.Config, data chart.Series) (*chart.Surface, *chart.MemoryHost, error) {
	surface, err := chart.NewSurface(data, c.Chart.Options,
		chart.WithFontPath(c.Chart.FontPath),
		chart.WithBaseCache(c.Chart.BaseCacheMin),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create chart: %w", err)
	}

	host := chart.NewMemoryHost(c.Chart.Width, c.Chart.DevicePixelRatio)
	if err := surface.Attach(host); err != nil {
		return nil, nil, fmt.Errorf("failed to attach chart: %w", err)
	}
	return surface, host, nil
}

func outputPath(c *config.Config) string {
	return filepath.Join(c.Output.Dir, c.Output.File)
}

func saveChart(surface *chart.Surface, path string) error {
	size, err := storage.SavePNG(surface.Snapshot(), path)
	if err != nil {
		logging.LogError("Failed to save chart", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("failed to save chart: %w", err)
	}
	logging.LogSuccess("Chart saved",
		zap.String("path", path),
		zap.Int64("size_bytes", size),
		zap.String("kind", string(surface.Options().Kind)))
	return nil
}
