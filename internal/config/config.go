package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig   `yaml:"server"`
	Mongo     MongoConfig    `yaml:"mongo"`
	Telegram  TelegramConfig `yaml:"telegram"`
	Sheets    SheetsConfig   `yaml:"sheets"`
	Poller    PollerConfig   `yaml:"poller"`
	Admins    AdminConfig    `yaml:"admins"`
	Log       LogConfig      `yaml:"log"`
	WorkHours string         `yaml:"workHours"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type MongoConfig struct {
	URI            string        `yaml:"uri"`
	Database       string        `yaml:"database"`
	ConnectTimeout time.Duration `yaml:"connectTimeout"`
}

type TelegramConfig struct {
	AdminToken  string `yaml:"adminToken"`
	ClientToken string `yaml:"clientToken"`
}

type SheetsConfig struct {
	WebhookURL string        `yaml:"webhookUrl"`
	Timeout    time.Duration `yaml:"timeout"`
}

type PollerConfig struct {
	Interval      time.Duration `yaml:"interval"`
	ShutdownGrace time.Duration `yaml:"shutdownGrace"`
}

type AdminConfig struct {
	IDs []int64 `yaml:"ids"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

func Load() (*Config, error) {
	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", 8080)
	viper.SetDefault("MONGODB_URI", "mongodb://localhost:27017")
	viper.SetDefault("MONGODB_DATABASE", "samsariya")
	viper.SetDefault("MONGODB_CONNECT_TIMEOUT", "10s")
	viper.SetDefault("BOT_TOKEN", "")
	viper.SetDefault("CLIENT_BOT_TOKEN", "")
	viper.SetDefault("ADMIN_IDS", "")
	viper.SetDefault("SHEETS_WEBHOOK_URL", "")
	viper.SetDefault("SHEETS_TIMEOUT", "15s")
	viper.SetDefault("POLL_INTERVAL", "10s")
	viper.SetDefault("POLLER_SHUTDOWN_GRACE", "2s")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("WORK_HOURS", "09:00-21:00")

	connectTimeout, err := time.ParseDuration(viper.GetString("MONGODB_CONNECT_TIMEOUT"))
	if err != nil {
		return nil, err
	}
	sheetsTimeout, err := time.ParseDuration(viper.GetString("SHEETS_TIMEOUT"))
	if err != nil {
		return nil, err
	}
	pollInterval, err := time.ParseDuration(viper.GetString("POLL_INTERVAL"))
	if err != nil {
		return nil, err
	}
	shutdownGrace, err := time.ParseDuration(viper.GetString("POLLER_SHUTDOWN_GRACE"))
	if err != nil {
		return nil, err
	}
	adminIDs, err := ParseAdminIDs(viper.GetString("ADMIN_IDS"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: viper.GetInt("SERVER_PORT"),
		},
		Mongo: MongoConfig{
			URI:            viper.GetString("MONGODB_URI"),
			Database:       viper.GetString("MONGODB_DATABASE"),
			ConnectTimeout: connectTimeout,
		},
		Telegram: TelegramConfig{
			AdminToken:  viper.GetString("BOT_TOKEN"),
			ClientToken: viper.GetString("CLIENT_BOT_TOKEN"),
		},
		Sheets: SheetsConfig{
			WebhookURL: viper.GetString("SHEETS_WEBHOOK_URL"),
			Timeout:    sheetsTimeout,
		},
		Poller: PollerConfig{
			Interval:      pollInterval,
			ShutdownGrace: shutdownGrace,
		},
		Admins: AdminConfig{
			IDs: adminIDs,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		WorkHours: viper.GetString("WORK_HOURS"),
	}

	return cfg, nil
}

// ParseAdminIDs parses the comma-separated ADMIN_IDS value.
func ParseAdminIDs(raw string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing admin id %q: %w", part, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
