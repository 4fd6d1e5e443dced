package config

// Layered configuration for the chart CLI.
// Precedence (lowest to highest): defaults, config.yaml, .env, environment, flags.

import (
	"errors"
	"fmt"
	"strings"

	"nexachart/internal/features/chart"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Chart    ChartConfig    `mapstructure:"chart"`
	Output   OutputConfig   `mapstructure:"output"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	App      AppConfig      `mapstructure:"app"`
}

// ChartConfig carries the display options plus the host settings a
// headless render needs (container width and pixel ratio).
type ChartConfig struct {
	chart.Options `mapstructure:",squash"`

	Width            float64 `mapstructure:"width"`
	DevicePixelRatio float64 `mapstructure:"device_pixel_ratio"`
	FontPath         string  `mapstructure:"font_path"`
	BaseCacheMin     int     `mapstructure:"base_cache_min"` // 0 disables base-frame memoization
}

type OutputConfig struct {
	Dir  string `mapstructure:"dir"`
	File string `mapstructure:"file"`
}

type TelegramConfig struct {
	BotToken       string  `mapstructure:"bot_token"`
	ChatID         int64   `mapstructure:"chat_id"`
	RatePerSecond  float64 `mapstructure:"rate_per_second"`
	MaxRetries     int     `mapstructure:"max_retries"`
	RequestTimeout int     `mapstructure:"request_timeout"` // seconds
}

type AppConfig struct {
	LogDir          string `mapstructure:"log_dir"`
	LogLevel        string `mapstructure:"log_level"`
	WatchDebounceMs int    `mapstructure:"watch_debounce_ms"`
}

// Load reads the layered configuration. flags may be nil; when given, every
// flag whose name matches a config key (e.g. "chart.kind") overrides it.
func Load(flags *pflag.FlagSet) (*Config, error) {
	godotenv.Load(".env")

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("etc")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config.yaml: %w", err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setupEnvAliases(v)

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("failed to bind flags: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setupEnvAliases(v *viper.Viper) {
	v.BindEnv("chart.kind", "CHART_KIND")
	v.BindEnv("chart.height", "CHART_HEIGHT")
	v.BindEnv("chart.width", "CHART_WIDTH")
	v.BindEnv("chart.device_pixel_ratio", "CHART_DPR")
	v.BindEnv("chart.stroke_color", "CHART_STROKE_COLOR")
	v.BindEnv("chart.fill_color", "CHART_FILL_COLOR")
	v.BindEnv("chart.background", "CHART_BACKGROUND")
	v.BindEnv("chart.label", "CHART_LABEL")
	v.BindEnv("chart.font_path", "CHART_FONT_PATH")

	v.BindEnv("output.dir", "CHART_OUTPUT_DIR")

	v.BindEnv("telegram.bot_token", "TELEGRAM_BOT_TOKEN")
	v.BindEnv("telegram.chat_id", "TELEGRAM_CHAT_ID")

	v.BindEnv("app.log_dir", "CHART_LOG_DIR")
	v.BindEnv("app.log_level", "CHART_LOG_LEVEL")
}

func setDefaults(v *viper.Viper) {
	d := chart.DefaultOptions()

	// Chart
	v.SetDefault("chart.kind", string(d.Kind))
	v.SetDefault("chart.height", d.Height)
	v.SetDefault("chart.stroke_color", d.StrokeColor)
	v.SetDefault("chart.fill_color", d.FillColor)
	v.SetDefault("chart.background", "#ffffff") // PNG viewers show transparency as black
	v.SetDefault("chart.show_grid", d.ShowGrid)
	v.SetDefault("chart.show_tooltip", d.ShowTooltip)
	v.SetDefault("chart.label", "")
	v.SetDefault("chart.width", 600.0)
	v.SetDefault("chart.device_pixel_ratio", 2.0)
	v.SetDefault("chart.font_path", chart.FontAuto)
	v.SetDefault("chart.base_cache_min", 500)

	// Output
	v.SetDefault("output.dir", "etc/charts")
	v.SetDefault("output.file", "chart.png")

	// Telegram
	v.SetDefault("telegram.bot_token", "")
	v.SetDefault("telegram.chat_id", 0)
	v.SetDefault("telegram.rate_per_second", 1.0)
	v.SetDefault("telegram.max_retries", 3)
	v.SetDefault("telegram.request_timeout", 30)

	// App
	v.SetDefault("app.log_dir", "logs")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.watch_debounce_ms", 200)
}

// RegisterFlags declares the flags Load knows how to bind. Flag names match
// config keys so viper can bind them directly.
func RegisterFlags(fs *pflag.FlagSet) {
	d := chart.DefaultOptions()

	fs.String("chart.kind", string(d.Kind), "Chart kind: line or bar (env: CHART_KIND)")
	fs.Float64("chart.height", d.Height, "Chart height in logical pixels (env: CHART_HEIGHT)")
	fs.Float64("chart.width", 600, "Container width in logical pixels (env: CHART_WIDTH)")
	fs.Float64("chart.device_pixel_ratio", 2, "Device pixel ratio (env: CHART_DPR)")
	fs.String("chart.stroke_color", d.StrokeColor, "Line, marker and bar colour (env: CHART_STROKE_COLOR)")
	fs.String("chart.fill_color", d.FillColor, "Area fill colour (env: CHART_FILL_COLOR)")
	fs.String("chart.background", "#ffffff", "Background colour, empty for transparent (env: CHART_BACKGROUND)")
	fs.Bool("chart.show_grid", d.ShowGrid, "Draw gridlines and tick labels")
	fs.Bool("chart.show_tooltip", d.ShowTooltip, "Enable the hover tooltip")
	fs.String("chart.label", "", "Chart title (env: CHART_LABEL)")
	fs.String("chart.font_path", chart.FontAuto, "TrueType font path, \"auto\" to search, empty for the built-in face (env: CHART_FONT_PATH)")
	fs.Int("chart.base_cache_min", 500, "Series length from which hover reuses a cached base frame, 0 to disable")

	fs.String("output.dir", "etc/charts", "Output directory (env: CHART_OUTPUT_DIR)")
	fs.String("output.file", "chart.png", "Output file name")

	fs.String("app.log_dir", "logs", "Log directory (env: CHART_LOG_DIR)")
	fs.String("app.log_level", "info", "File log level: debug, info, warn, error (env: CHART_LOG_LEVEL)")
}

func validateConfig(cfg *Config) error {
	opts, err := cfg.Chart.Options.Normalize()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	cfg.Chart.Options = opts

	if cfg.Chart.Width < 0 {
		return fmt.Errorf("%w: chart.width must not be negative", ErrInvalidConfig)
	}
	if cfg.Chart.DevicePixelRatio <= 0 {
		cfg.Chart.DevicePixelRatio = 1
	}
	if cfg.Output.File == "" {
		return fmt.Errorf("%w: output.file is required", ErrInvalidConfig)
	}
	return nil
}

// ValidateTelegram checks the settings needed by the publish command.
func (c *Config) ValidateTelegram() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("%w: telegram.bot_token is required", ErrInvalidConfig)
	}
	if c.Telegram.ChatID == 0 {
		return fmt.Errorf("%w: telegram.chat_id is required", ErrInvalidConfig)
	}
	return nil
}
