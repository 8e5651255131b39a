package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"file_tools/pdf"
	"file_tools/watermark"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"CONFIG_FILE", "PORT", "MAX_FILE_SIZE", "LOG_LEVEL", "REMOVE_BG_URL", "REMOVE_BG_API_KEY"} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := loadConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultPort, cfg.API.Port)
	assert.Equal(t, int64(DefaultMaxFileSize), cfg.API.MaxFileSize)
	assert.Equal(t, logrus.InfoLevel, cfg.LogLevel)
	assert.Equal(t, watermark.DefaultOptions(), cfg.API.Watermark)
	assert.Empty(t, cfg.Fonts)
	assert.Empty(t, cfg.RemoveBGKey)
}

func TestLoadConfigFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
server:
  port: "9000"
  max_file_size: 1048576
  preview_ttl: 2m
log_level: warn
watermark:
  text: Draft
  opacity: 0.3
fonts:
  monospace: /fonts/mono.ttf
remove_bg:
  api_key: secret
`)

	cfg, err := loadConfig([]string{"--config", path})
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.API.Port)
	assert.Equal(t, int64(1<<20), cfg.API.MaxFileSize)
	assert.Equal(t, 2*time.Minute, cfg.API.PreviewTTL)
	assert.Equal(t, logrus.WarnLevel, cfg.LogLevel)
	assert.Equal(t, "Draft", cfg.API.Watermark.Text)
	assert.Equal(t, 0.3, cfg.API.Watermark.Opacity)
	// fields missing from the file keep their defaults
	assert.Equal(t, 48.0, cfg.API.Watermark.FontSize)
	assert.Equal(t, "/fonts/mono.ttf", cfg.Fonts[watermark.Monospace])
	assert.Equal(t, "secret", cfg.RemoveBGKey)
}

func TestLoadConfigPrecedence(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "server:\n  port: \"9000\"\nlog_level: warn\n")
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "9100")
	t.Setenv("LOG_LEVEL", "error")

	cfg, err := loadConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, "9100", cfg.API.Port)
	assert.Equal(t, logrus.ErrorLevel, cfg.LogLevel)

	cfg, err = loadConfig([]string{"-p", "9200", "--log-level", "debug"})
	require.NoError(t, err)
	assert.Equal(t, "9200", cfg.API.Port)
	assert.Equal(t, logrus.DebugLevel, cfg.LogLevel)
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		env  map[string]string
		file string
	}{
		{name: "bad log level", args: []string{"--log-level", "loud"}},
		{name: "missing file", args: []string{"--config", "/nonexistent/config.yaml"}},
		{name: "unknown flag", args: []string{"--verbose"}},
		{name: "negative max size", env: map[string]string{"MAX_FILE_SIZE": "-1"}},
		{name: "unknown font family", file: "fonts:\n  fantasy: /fonts/x.ttf\n"},
		{name: "invalid watermark defaults", file: "watermark:\n  opacity: 3\n"},
		{name: "malformed yaml", file: "server: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			args := tt.args
			if tt.file != "" {
				args = append(args, "--config", writeConfig(t, tt.file))
			}
			_, err := loadConfig(args)
			assert.Error(t, err)
		})
	}
}

func TestLoadConfigHelp(t *testing.T) {
	clearEnv(t)
	_, err := loadConfig([]string{"--help"})
	assert.ErrorIs(t, err, pflag.ErrHelp)
}

func TestHealth(t *testing.T) {
	clearEnv(t)
	gin.SetMode(gin.TestMode)
	cfg, err := loadConfig(nil)
	require.NoError(t, err)

	log, _ := test.NewNullLogger()
	noPDF := func([]byte) (pdf.Document, error) { return nil, errors.New("no renderer") }
	r := newRouter(cfg, nil, noPDF, nil, log)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "file_tools", body["service"])
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
