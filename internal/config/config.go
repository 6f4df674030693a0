package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config は試着 CLI の環境変数ベースの設定です。
type Config struct {
	// Gemini 接続
	APIKey         string        `env:"GEMINI_API_KEY"`
	LegacyAPIKey   string        `env:"API_KEY"` // GEMINI_API_KEY が空のときに使う
	Model          string        `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash-image-preview"`
	Seed           int64         `env:"TRYON_SEED" envDefault:"42"`
	RequestTimeout time.Duration `env:"TRYON_REQUEST_TIMEOUT" envDefault:"120s"`

	// 再試行
	MaxAttempts int           `env:"TRYON_MAX_ATTEMPTS" envDefault:"4"`
	BaseDelay   time.Duration `env:"TRYON_BASE_DELAY" envDefault:"1s"`

	// 入力画像の取得
	FetchTimeout       time.Duration `env:"TRYON_FETCH_TIMEOUT" envDefault:"30s"`
	MaxImageBytes      int64         `env:"TRYON_MAX_IMAGE_BYTES" envDefault:"20971520"`
	GCSCredentialsFile string        `env:"TRYON_GCS_CREDENTIALS_FILE"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load は環境変数を Config に読み込みます。
// API キーが無いことはここではエラーにせず、サービス構築時に Configuration エラーとして報告します。
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("環境変数の解析に失敗しました: %w", err)
	}

	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	if cfg.APIKey == "" {
		cfg.APIKey = strings.TrimSpace(cfg.LegacyAPIKey)
	}
	cfg.Model = strings.TrimSpace(cfg.Model)

	if cfg.MaxAttempts <= 0 {
		return nil, fmt.Errorf("TRYON_MAX_ATTEMPTS は正の値で指定してください: %d", cfg.MaxAttempts)
	}
	if cfg.BaseDelay <= 0 {
		return nil, fmt.Errorf("TRYON_BASE_DELAY は正の値で指定してください: %s", cfg.BaseDelay)
	}
	if _, err := cfg.SlogLevel(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SlogLevel は LogLevel を slog.Level に変換します。
func (c *Config) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo, fmt.Errorf("LOG_LEVEL が不正です %q: %w", c.LogLevel, err)
	}
	return lvl, nil
}
