// Package config loads pdfloader settings from an optional YAML file, a .env file
// and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/thywilljoshua/pdfloader/internal/ai"
	"github.com/thywilljoshua/pdfloader/internal/loader"
	"github.com/thywilljoshua/pdfloader/internal/overlay"
	"github.com/thywilljoshua/pdfloader/internal/pages"
	"github.com/thywilljoshua/pdfloader/internal/render"
)

var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	Loader  LoaderConfig  `yaml:"loader"`
	Gemini  GeminiConfig  `yaml:"gemini"`
	Print   PrintConfig   `yaml:"print"`
	Render  RenderConfig  `yaml:"render"`
	Logging LoggingConfig `yaml:"logging"`
}

type LoaderConfig struct {
	Method          string   `yaml:"method"`   // plain or layout
	Strategy        string   `yaml:"strategy"` // fast or hi_res
	Mode            string   `yaml:"mode"`     // elements, paged or single
	PartitionViaAPI bool     `yaml:"partition_via_api"`
	PostProcessors  []string `yaml:"post_processors"`
}

type GeminiConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

type PrintConfig struct {
	// Pages is a page number, a list of page numbers or an expression such as "1,3-5".
	Pages        any      `yaml:"pages"`
	StartPage    *int     `yaml:"start_page"`
	EndPage      *int     `yaml:"end_page"`
	ShowMetadata bool     `yaml:"show_metadata"`
	IgnoreKeys   []string `yaml:"ignore_metadata_keys"`
}

type RenderConfig struct {
	DPI       float64 `yaml:"dpi"`
	LineWidth float64 `yaml:"line_width"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // console or json
}

// Load reads the YAML file at path, when given, over the defaults, then applies
// .env and environment overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	_ = godotenv.Load() // a missing .env is fine
	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func DefaultConfig() *Config {
	return &Config{
		Loader: LoaderConfig{
			Method:   string(loader.MethodLayout),
			Strategy: string(loader.StrategyFast),
			Mode:     string(loader.ModeElements),
		},
		Gemini: GeminiConfig{
			Model: ai.DefaultModel,
		},
		Render: RenderConfig{
			DPI:       render.DefaultDPI,
			LineWidth: overlay.DefaultLineWidth,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("GOOGLE_API_KEY"); v != "" {
		cfg.Gemini.APIKey = v
	}
	if v := os.Getenv("GEMINI_MODEL"); v != "" {
		cfg.Gemini.Model = v
	}
	if v := os.Getenv("PDFLOADER_METHOD"); v != "" {
		cfg.Loader.Method = v
	}
	if v := os.Getenv("PDFLOADER_STRATEGY"); v != "" {
		cfg.Loader.Strategy = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}

func (c *Config) Validate() error {
	switch loader.Method(c.Loader.Method) {
	case loader.MethodPlain, loader.MethodLayout:
	default:
		return fmt.Errorf("%w: loader method %q", ErrInvalid, c.Loader.Method)
	}
	switch loader.Strategy(c.Loader.Strategy) {
	case loader.StrategyFast, loader.StrategyHiRes:
	default:
		return fmt.Errorf("%w: loader strategy %q", ErrInvalid, c.Loader.Strategy)
	}
	switch loader.Mode(c.Loader.Mode) {
	case loader.ModeElements, loader.ModePaged, loader.ModeSingle:
	default:
		return fmt.Errorf("%w: loader mode %q", ErrInvalid, c.Loader.Mode)
	}
	if _, err := loader.PostProcessorsByName(c.Loader.PostProcessors); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.Render.DPI < 36 || c.Render.DPI > 600 {
		return fmt.Errorf("%w: render dpi must be between 36 and 600, got %g", ErrInvalid, c.Render.DPI)
	}
	if c.Render.LineWidth <= 0 {
		return fmt.Errorf("%w: render line_width must be positive", ErrInvalid)
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(c.Logging.Level)); err != nil {
		return fmt.Errorf("%w: log level %q", ErrInvalid, c.Logging.Level)
	}
	if c.Logging.Format != "console" && c.Logging.Format != "json" {
		return fmt.Errorf("%w: log format %q", ErrInvalid, c.Logging.Format)
	}
	return nil
}

// Selection returns the configured page selection. A string is parsed as a page
// expression; anything else goes through pages.FromValue.
func (p PrintConfig) Selection() (pages.Selection, error) {
	if s, ok := p.Pages.(string); ok {
		return pages.Parse(s)
	}
	return pages.FromValue(p.Pages, p.StartPage, p.EndPage)
}
