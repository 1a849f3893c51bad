package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config carries everything the process reads from the environment.
type Config struct {
	BotToken      string
	Port          string
	BaseURL       string // public URL for webhook registration, optional
	Timezone      *time.Location
	RetentionDays int // 0 keeps every day bucket
	LogLevel      string
}

// Load reads .env when present, then the environment. The bot token is
// the only hard requirement.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		BotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		Port:     os.Getenv("PORT"),
		BaseURL:  os.Getenv("BASE_URL"),
		LogLevel: os.Getenv("LOG_LEVEL"),
	}
	if cfg.BotToken == "" {
		return Config{}, fmt.Errorf("TELEGRAM_BOT_TOKEN is not set")
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	cfg.Timezone = time.Local
	if name := os.Getenv("BOT_TIMEZONE"); name != "" {
		loc, err := time.LoadLocation(name)
		if err != nil {
			return Config{}, fmt.Errorf("invalid BOT_TIMEZONE %q: %w", name, err)
		}
		cfg.Timezone = loc
	}

	if v := os.Getenv("RETENTION_DAYS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return Config{}, fmt.Errorf("invalid RETENTION_DAYS %q", v)
		}
		cfg.RetentionDays = n
	}

	return cfg, nil
}
