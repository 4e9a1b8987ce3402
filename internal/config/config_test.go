package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thywilljoshua/pdfloader/internal/pages"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "pdfloader.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func clearEnv(t *testing.T) {
	for _, k := range []string{"GOOGLE_API_KEY", "GEMINI_MODEL", "PDFLOADER_METHOD", "PDFLOADER_STRATEGY", "LOG_LEVEL", "LOG_FORMAT"} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	p := writeConfig(t, `
loader:
  method: plain
  post_processors: [whitespace, unicode]
print:
  pages: [1, 10, 4]
  show_metadata: true
render:
  dpi: 200
logging:
  format: json
`)
	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "plain", cfg.Loader.Method)
	assert.Equal(t, "fast", cfg.Loader.Strategy)
	assert.Equal(t, []string{"whitespace", "unicode"}, cfg.Loader.PostProcessors)
	assert.True(t, cfg.Print.ShowMetadata)
	assert.Equal(t, 200.0, cfg.Render.DPI)
	assert.Equal(t, "json", cfg.Logging.Format)

	sel, err := cfg.Print.Selection()
	require.NoError(t, err)
	got, err := pages.Resolve(sel)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 4, 10}, got)
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("PDFLOADER_STRATEGY", "hi_res")
	t.Setenv("GOOGLE_API_KEY", "secret")
	t.Setenv("LOG_LEVEL", "debug")
	p := writeConfig(t, "loader:\n  strategy: fast\n")
	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "hi_res", cfg.Loader.Strategy)
	assert.Equal(t, "secret", cfg.Gemini.APIKey)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeConfig(t, "loader: [not, a, map]"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "loader:\n  method: ocr\n"))
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "strategy", mutate: func(c *Config) { c.Loader.Strategy = "auto" }},
		{name: "mode", mutate: func(c *Config) { c.Loader.Mode = "chunks" }},
		{name: "post processor", mutate: func(c *Config) { c.Loader.PostProcessors = []string{"ocr"} }},
		{name: "dpi low", mutate: func(c *Config) { c.Render.DPI = 10 }},
		{name: "dpi high", mutate: func(c *Config) { c.Render.DPI = 1200 }},
		{name: "line width", mutate: func(c *Config) { c.Render.LineWidth = 0 }},
		{name: "log level", mutate: func(c *Config) { c.Logging.Level = "loud" }},
		{name: "log format", mutate: func(c *Config) { c.Logging.Format = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			require.NoError(t, cfg.Validate())
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}

func TestPrintSelection(t *testing.T) {
	start, end := 2, 4
	tests := []struct {
		name string
		cfg  PrintConfig
		want []int
		err  error
	}{
		{name: "single", cfg: PrintConfig{Pages: 3}, want: []int{3}},
		{name: "expression", cfg: PrintConfig{Pages: "1,3-5"}, want: []int{1, 3, 4, 5}},
		{name: "range", cfg: PrintConfig{StartPage: &start, EndPage: &end}, want: []int{2, 3, 4}},
		{name: "missing", cfg: PrintConfig{StartPage: &start}, err: pages.ErrMissingSelection},
		{name: "bad type", cfg: PrintConfig{Pages: map[string]any{"a": 1}}, err: pages.ErrInvalidSelectionType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel, err := tt.cfg.Selection()
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			got, err := pages.Resolve(sel)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
