package config_test

import (
	"testing"
	"time"

	"github.com/limbo/dopamine/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	cfg, err := config.Parse()
	require.NoError(t, err)
	assert.Equal(t, 500, cfg.DefaultDailyTarget)
	assert.Equal(t, 1, cfg.GoodStartMin)
	assert.Equal(t, 3, cfg.HighPerformanceMin)
	assert.Equal(t, time.Hour, cfg.TaskReminderDelay)
	assert.Equal(t, 20, cfg.DailyReminderHour)
	assert.Equal(t, time.Hour, cfg.JWTTTL)
}

func TestParseOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DOPAMINE_DEFAULT_DAILY_TARGET", "750")
	t.Setenv("DOPAMINE_HIGH_PERFORMANCE_MIN", "4")
	t.Setenv("DOPAMINE_TASK_REMINDER_DELAY", "30m")
	t.Setenv("DOPAMINE_TIMEZONE", "UTC")
	cfg, err := config.Parse()
	require.NoError(t, err)
	assert.Equal(t, 750, cfg.DefaultDailyTarget)
	assert.Equal(t, 4, cfg.HighPerformanceMin)
	assert.Equal(t, 30*time.Minute, cfg.TaskReminderDelay)
	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		envs map[string]string
	}{
		{"not a number", map[string]string{"DOPAMINE_DEFAULT_DAILY_TARGET": "lots"}},
		{"empty jwt secret", map[string]string{"JWT_SECRET": ""}},
		{"zero good start", map[string]string{"DOPAMINE_GOOD_START_MIN": "0"}},
		{"negative good start", map[string]string{"DOPAMINE_GOOD_START_MIN": "-2"}},
		{"high performance below good start", map[string]string{"DOPAMINE_GOOD_START_MIN": "3", "DOPAMINE_HIGH_PERFORMANCE_MIN": "2"}},
		{"zero daily target", map[string]string{"DOPAMINE_DEFAULT_DAILY_TARGET": "0"}},
		{"reminder hour out of range", map[string]string{"DOPAMINE_DAILY_REMINDER_HOUR": "24"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", "secret")
			for k, v := range tt.envs {
				t.Setenv(k, v)
			}
			_, err := config.Parse()
			assert.Error(t, err)
		})
	}
}

func TestLocalTimezone(t *testing.T) {
	cfg := &config.Config{Timezone: "Local"}
	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)
}
