package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 2000, cfg.Parser.CenturyBase)
	assert.Equal(t, "8", cfg.Schedule.Region)
	assert.Equal(t, "Sunday", cfg.Schedule.WeekAnchor)
	assert.Equal(t, "output", cfg.Paths.OutputDir)
	assert.True(t, cfg.Security.RateLimitEnabled)

	require.NoError(t, cfg.validate())
}

func TestParserConfig_Year(t *testing.T) {
	assert.Equal(t, 2025, ParserConfig{ImplicitYear: 2025}.Year())
	assert.Equal(t, time.Now().Year(), ParserConfig{}.Year())
}

func TestScheduleConfig_AnchorWeekday(t *testing.T) {
	tests := []struct {
		anchor  string
		want    time.Weekday
		wantErr bool
	}{
		{anchor: "Sunday", want: time.Sunday},
		{anchor: "monday", want: time.Monday},
		{anchor: "SATURDAY", want: time.Saturday},
		{anchor: "Someday", wantErr: true},
		{anchor: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.anchor, func(t *testing.T) {
			got, err := ScheduleConfig{WeekAnchor: tt.anchor}.AnchorWeekday()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoad_FileAndEnvOverlay(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.yaml")
	content := "server:\n  port: 9090\nschedule:\n  region: \"9\"\nparser:\n  implicit_year: 2026\n"
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0o644))

	t.Setenv("SCHED_CONFIG_FILE", configFile)
	t.Setenv("SCHED_SCHEDULE_REGION", "10")

	cfg, err := Load()
	require.NoError(t, err)

	// File overrides defaults, environment overrides the file.
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "10", cfg.Schedule.Region)
	assert.Equal(t, 2026, cfg.Parser.ImplicitYear)

	// Untouched values keep their defaults.
	assert.Equal(t, "Sunday", cfg.Schedule.WeekAnchor)
	assert.Equal(t, 2000, cfg.Parser.CenturyBase)
}

func TestLoad_InvalidValues(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.yaml")

	tests := []struct {
		name    string
		content string
	}{
		{name: "bad port", content: "server:\n  port: 0\n"},
		{name: "bad century base", content: "parser:\n  century_base: 1950\n"},
		{name: "bad week anchor", content: "schedule:\n  week_anchor: Someday\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, os.WriteFile(configFile, []byte(tt.content), 0o644))
			t.Setenv("SCHED_CONFIG_FILE", configFile)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
