package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/omarshaarawi/leaguesim/internal/season"
	"github.com/robfig/cron/v3"
)

type Config struct {
	League      League
	TelegramBot TelegramBot
	Scheduler   Scheduler
	Server      Server
}

type League struct {
	PlayerPoolPath string `envconfig:"PLAYER_POOL_PATH" required:"true"`
	WeeklyFeedPath string `envconfig:"WEEKLY_FEED_PATH" required:"true"`
	RulesPath      string `envconfig:"RULES_PATH"`
	Size           int    `envconfig:"LEAGUE_SIZE" default:"10"`
	HumanTeam      string `envconfig:"HUMAN_TEAM"`
	Seed           int64  `envconfig:"SEED" default:"0"`
}

// TelegramBot is optional; without a token the simulation runs once and
// prints its reports.
type TelegramBot struct {
	Token  string `envconfig:"TELEGRAM_TOKEN"`
	ChatID int64  `envconfig:"CHAT_ID"`
}

type Scheduler struct {
	SimulationCron string `envconfig:"SIMULATION_CRON" default:"0 8 * * 2"`
	Timezone       string `envconfig:"TIMEZONE" default:"America/Chicago"`
}

type Server struct {
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":80"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

func New() (*Config, error) {
	var c Config
	err := envconfig.Process("", &c)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if err := season.ValidateLeagueSize(c.League.Size); err != nil {
		return fmt.Errorf("invalid LEAGUE_SIZE: %w", err)
	}
	if _, err := cron.ParseStandard(c.Scheduler.SimulationCron); err != nil {
		return fmt.Errorf("invalid SIMULATION_CRON %q: %w", c.Scheduler.SimulationCron, err)
	}
	if _, err := time.LoadLocation(c.Scheduler.Timezone); err != nil {
		return fmt.Errorf("invalid TIMEZONE %q: %w", c.Scheduler.Timezone, err)
	}
	if c.TelegramBot.Token != "" && c.TelegramBot.ChatID == 0 {
		return fmt.Errorf("CHAT_ID is required when TELEGRAM_TOKEN is set")
	}
	if _, err := c.Server.Level(); err != nil {
		return err
	}
	return nil
}

// BotEnabled reports whether the process should run as a Telegram bot.
func (c *Config) BotEnabled() bool {
	return c.TelegramBot.Token != ""
}

func (s Server) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s.LogLevel))); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL %q: %w", s.LogLevel, err)
	}
	return level, nil
}
