package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	BotToken     string        `envconfig:"DISCORD_TOKEN" required:"true"`
	DBPath       string        `envconfig:"DB_PATH" default:"./data/timebot.db"`
	RoleName     string        `envconfig:"BIRTHDAY_ROLE" default:"Birthday guy"`
	ChannelID    string        `envconfig:"BIRTHDAY_CHANNEL_ID" required:"true"`
	TickInterval time.Duration `envconfig:"TICK_INTERVAL" default:"1m"` // must stay well under 24h
	LogLevel     string        `envconfig:"LOG_LEVEL" default:"info"`   // debug|info|warn|error
	HTTPAddr     string        `envconfig:"HTTP_ADDR" default:":8080"`  // healthz
}

// Load reads environment variables into Config.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
