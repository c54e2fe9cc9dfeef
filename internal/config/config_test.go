package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withConfigPath(t *testing.T, content string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if content != "" {
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
	t.Setenv("CONFIG_PATH", path)
}

func TestLoad_Defaults(t *testing.T) {
	withConfigPath(t, "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 4000, cfg.Server.Port)
	assert.Equal(t, "http://localhost:5173", cfg.Server.Origin)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "__session", cfg.Session.CookieName)
	assert.Equal(t, 30*24*60*60, cfg.SessionMaxAge())
	assert.Equal(t, "smtp.protonmail.ch", cfg.Email.SMTPHost)
	assert.Equal(t, 587, cfg.Email.SMTPPort)
	assert.Equal(t, 12, cfg.Events.UpcomingCount)

	wd, err := cfg.EventWeekday()
	require.NoError(t, err)
	assert.Equal(t, time.Saturday, wd)
	assert.Equal(t, "Europe/London", cfg.Location().String())
}

func TestLoad_FileThenEnv(t *testing.T) {
	withConfigPath(t, `
server:
  port: 5000
  origin: https://football.example
events:
  weekday: sunday
`)
	t.Setenv("SERVER_PORT", "6000")
	t.Setenv("SMTP_USER", "mailer@example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 6000, cfg.Server.Port, "env wins over file")
	assert.Equal(t, "https://football.example", cfg.Server.Origin)
	assert.Equal(t, "mailer@example.com", cfg.Email.FromEmail, "from defaults to SMTP_USER")

	wd, err := cfg.EventWeekday()
	require.NoError(t, err)
	assert.Equal(t, time.Sunday, wd)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"bad port", "SERVER_PORT", "abc"},
		{"bad driver", "DATABASE_DRIVER", "oracle"},
		{"postgres without url", "DATABASE_DRIVER", "postgres"},
		{"bad timezone", "EVENT_TIMEZONE", "Mars/Olympus"},
		{"bad weekday", "EVENT_WEEKDAY", "funday"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withConfigPath(t, "")
			t.Setenv(tt.key, tt.val)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	withConfigPath(t, "")
	t.Setenv("SERVER_ENV", "production")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("SESSION_SECRET", "a-real-secret")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}
