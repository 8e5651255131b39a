package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"file_tools/api"
	"file_tools/watermark"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// fileConfig is the optional YAML configuration file.
type fileConfig struct {
	Server struct {
		Port        string        `yaml:"port"`
		MaxFileSize int64         `yaml:"max_file_size"`
		PreviewTTL  time.Duration `yaml:"preview_ttl"`
	} `yaml:"server"`
	LogLevel  string            `yaml:"log_level"`
	Watermark watermark.Options `yaml:"watermark"`
	// Fonts maps a font family (sans-serif, serif, monospace) to a TTF/OTF file.
	Fonts    map[string]string `yaml:"fonts"`
	RemoveBG struct {
		URL    string `yaml:"url"`
		APIKey string `yaml:"api_key"`
	} `yaml:"remove_bg"`
}

// appConfig is the resolved configuration. Precedence: flag > env > file >
// default.
type appConfig struct {
	API         api.Config
	LogLevel    logrus.Level
	Fonts       map[watermark.FontFamily]string
	RemoveBGURL string
	RemoveBGKey string
}

func loadConfig(args []string) (*appConfig, error) {
	fs := pflag.NewFlagSet("file_tools", pflag.ContinueOnError)
	configPath := fs.StringP("config", "c", "", "YAML configuration file (env CONFIG_FILE)")
	port := fs.StringP("port", "p", "", "listen port (env PORT)")
	level := fs.String("log-level", "", "log level: debug, info, warn, error (env LOG_LEVEL)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	fc := fileConfig{Watermark: watermark.DefaultOptions()}
	path := getEnv("CONFIG_FILE", "")
	if *configPath != "" {
		path = *configPath
	}
	if path != "" {
		if err := readConfigFile(path, &fc); err != nil {
			return nil, err
		}
	}

	cfg := &appConfig{
		API: api.Config{
			Port:        getEnv("PORT", orDefault(fc.Server.Port, DefaultPort)),
			MaxFileSize: getEnvInt64("MAX_FILE_SIZE", orDefault(fc.Server.MaxFileSize, DefaultMaxFileSize)),
			PreviewTTL:  orDefault(fc.Server.PreviewTTL, api.DefaultPreviewTTL),
			Watermark:   fc.Watermark,
		},
		RemoveBGURL: getEnv("REMOVE_BG_URL", fc.RemoveBG.URL),
		RemoveBGKey: getEnv("REMOVE_BG_API_KEY", fc.RemoveBG.APIKey),
		Fonts:       make(map[watermark.FontFamily]string, len(fc.Fonts)),
	}
	if *port != "" {
		cfg.API.Port = *port
	}
	if cfg.API.MaxFileSize <= 0 {
		return nil, fmt.Errorf("max file size must be positive, got %d", cfg.API.MaxFileSize)
	}

	levelName := getEnv("LOG_LEVEL", orDefault(fc.LogLevel, DefaultLogLevel))
	if *level != "" {
		levelName = *level
	}
	lvl, err := logrus.ParseLevel(levelName)
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = lvl

	for name, path := range fc.Fonts {
		family, err := watermark.ParseFontFamily(name)
		if err != nil {
			return nil, fmt.Errorf("fonts: %w", err)
		}
		cfg.Fonts[family] = path
	}

	// text defaults must be valid on their own; image defaults need a logo
	if kind, _ := watermark.ParseKind(cfg.API.Watermark.Kind); kind == watermark.KindText {
		if _, _, err := cfg.API.Watermark.Build(nil); err != nil {
			return nil, fmt.Errorf("watermark defaults: %w", err)
		}
	}
	return cfg, nil
}

func readConfigFile(path string, fc *fileConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, fc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func orDefault[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
