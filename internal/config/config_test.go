package config

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("PLAYER_POOL_PATH", "testdata/players.csv")
	t.Setenv("WEEKLY_FEED_PATH", "testdata/weekly.xlsx")
}

func TestNew_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, "testdata/players.csv", cfg.League.PlayerPoolPath)
	assert.Equal(t, 10, cfg.League.Size)
	assert.Zero(t, cfg.League.Seed)
	assert.Equal(t, "0 8 * * 2", cfg.Scheduler.SimulationCron)
	assert.Equal(t, "America/Chicago", cfg.Scheduler.Timezone)
	assert.Equal(t, ":80", cfg.Server.HTTPAddr)
	assert.False(t, cfg.BotEnabled())

	level, err := cfg.Server.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestNew_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("LEAGUE_SIZE", "12")
	t.Setenv("HUMAN_TEAM", "Team 4")
	t.Setenv("SEED", "1234")
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	t.Setenv("CHAT_ID", "-100200300")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.League.Size)
	assert.Equal(t, "Team 4", cfg.League.HumanTeam)
	assert.Equal(t, int64(1234), cfg.League.Seed)
	assert.Equal(t, int64(-100200300), cfg.TelegramBot.ChatID)
	assert.True(t, cfg.BotEnabled())

	level, err := cfg.Server.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantMsg string
	}{
		{name: "small league", env: map[string]string{"LEAGUE_SIZE": "1"}, wantMsg: "invalid LEAGUE_SIZE"},
		{name: "nine teams", env: map[string]string{"LEAGUE_SIZE": "9"}, wantMsg: "round robin needs an even team count"},
		{name: "fourteen teams", env: map[string]string{"LEAGUE_SIZE": "14"}, wantMsg: "unsupported league size 14"},
		{name: "bad cron", env: map[string]string{"SIMULATION_CRON": "every tuesday"}, wantMsg: "invalid SIMULATION_CRON"},
		{name: "bad timezone", env: map[string]string{"TIMEZONE": "Mars/Olympus"}, wantMsg: "invalid TIMEZONE"},
		{name: "token without chat", env: map[string]string{"TELEGRAM_TOKEN": "123:abc"}, wantMsg: "CHAT_ID is required"},
		{name: "bad log level", env: map[string]string{"LOG_LEVEL": "loud"}, wantMsg: "invalid LOG_LEVEL"},
		{name: "bad number", env: map[string]string{"LEAGUE_SIZE": "ten"}, wantMsg: "LEAGUE_SIZE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := New()
			assert.ErrorContains(t, err, tt.wantMsg)
		})
	}
}

func TestNew_MissingRequired(t *testing.T) {
	setRequired(t)
	require.NoError(t, os.Unsetenv("PLAYER_POOL_PATH"))

	_, err := New()
	assert.ErrorContains(t, err, "PLAYER_POOL_PATH")
}
