package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, k := range []string{"ENV", "PORT", "DATABASE_DRIVER", "SESSION_TTL", "KAFKA_BROKERS", "COOKIE_SECURE", "SITE_URL"} {
		t.Setenv(k, "")
	}

	cfg := LoadConfig()
	require.Equal(t, "dev", cfg.Env)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, "sqlite", cfg.DatabaseDriver)
	require.Equal(t, "credmarket.db", cfg.DatabaseFile)
	require.Equal(t, 12*time.Hour, cfg.SessionTTL)
	require.Equal(t, 30*time.Minute, cfg.PendingTokenTTL)
	require.Equal(t, 10*time.Minute, cfg.OTPValidity)
	require.Equal(t, 4, cfg.NotifyWorkers)
	require.Equal(t, 256, cfg.NotifyQueueSize)
	require.Equal(t, "http://localhost:8080", cfg.SiteURL)
	require.Nil(t, cfg.KafkaBrokers)
	require.False(t, cfg.CookieSecure)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("ENV", "prod")
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_DRIVER", "Postgres")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("OTP_VALIDITY", "5")
	t.Setenv("SITE_URL", "https://credmarket.example/")
	t.Setenv("KAFKA_BROKERS", "k1:9092, ,k2:9092")
	t.Setenv("SMTP_PORT", "not-a-port")

	cfg := LoadConfig()
	require.Equal(t, 9090, cfg.Port)
	require.Equal(t, "postgres", cfg.DatabaseDriver)
	require.Equal(t, 2*time.Hour, cfg.SessionTTL)
	require.Equal(t, 5*time.Minute, cfg.OTPValidity, "bare integers are minutes")
	require.Equal(t, "https://credmarket.example", cfg.SiteURL)
	require.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	require.Equal(t, 587, cfg.SMTPPort)
	require.True(t, cfg.CookieSecure, "secure cookies by default outside dev")

	t.Setenv("COOKIE_SECURE", "false")
	require.False(t, LoadConfig().CookieSecure)
}
