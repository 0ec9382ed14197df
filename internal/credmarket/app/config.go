package app

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)

	DatabaseDriver string // sqlite or postgres (default: sqlite)
	DatabaseFile   string // SQLite database file (default: credmarket.db)
	DatabaseURL    string // Postgres DSN, required when DatabaseDriver is postgres

	PepperFile     string // Password hashing pepper (default: pepper)
	SessionKeyFile string // HMAC key for session, pending and waitlist tokens (default: session.key)

	SessionTTL      time.Duration // Session lifetime (default: 12h)
	PendingTokenTTL time.Duration // Pending verification token lifetime (default: 30m)
	OTPValidity     time.Duration // Emailed code lifetime (default: 10m)

	SiteURL      string // Public base URL used in emails (default: http://localhost:8080)
	MailFrom     string // From address (default: CredMarket <no-reply@credmarket.local>)
	SMTPHost     string // SMTP relay; unset logs emails instead of sending them
	SMTPPort     int    // SMTP port (default: 587)
	SMTPUsername string
	SMTPPassword string

	NotifyWorkers     int           // Email worker pool size (default: 4)
	NotifyQueueSize   int           // Email queue capacity (default: 256)
	NotifySendTimeout time.Duration // Per-email deadline (default: 15s)

	RedisURL     string   // Revocation list; unset keeps it in memory
	KafkaBrokers []string // Domain events; unset logs them instead
	KafkaTopic   string   // Event topic (default: credmarket.events)

	MFAIssuer    string // Name shown in authenticator apps (default: CredMarket)
	CookieSecure bool   // Mark the session cookie Secure (default: true outside dev)
}

// LoadConfig reads the environment. A .env file in the working directory is
// loaded first; variables already set win over it.
func LoadConfig() Config {
	_ = godotenv.Load()

	env := getEnvOrDefault("ENV", "dev")
	cfg := Config{
		Env:                  env,
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),

		DatabaseDriver: strings.ToLower(getEnvOrDefault("DATABASE_DRIVER", "sqlite")),
		DatabaseFile:   getEnvOrDefault("DATABASE_FILE", "credmarket.db"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),

		PepperFile:     getEnvOrDefault("PEPPER_FILE", "pepper"),
		SessionKeyFile: getEnvOrDefault("SESSION_KEY_FILE", "session.key"),

		SessionTTL:      getEnvDurationOrDefault("SESSION_TTL", 12*time.Hour),
		PendingTokenTTL: getEnvDurationOrDefault("PENDING_TOKEN_TTL", 30*time.Minute),
		OTPValidity:     getEnvDurationOrDefault("OTP_VALIDITY", 10*time.Minute),

		SiteURL:      strings.TrimRight(getEnvOrDefault("SITE_URL", "http://localhost:8080"), "/"),
		MailFrom:     getEnvOrDefault("MAIL_FROM", "CredMarket <no-reply@credmarket.local>"),
		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     getEnvIntOrDefault("SMTP_PORT", 587),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),

		NotifyWorkers:     getEnvIntOrDefault("NOTIFY_WORKERS", 4),
		NotifyQueueSize:   getEnvIntOrDefault("NOTIFY_QUEUE_SIZE", 256),
		NotifySendTimeout: getEnvDurationOrDefault("NOTIFY_SEND_TIMEOUT", 15*time.Second),

		RedisURL:     os.Getenv("REDIS_URL"),
		KafkaBrokers: getEnvListOrDefault("KAFKA_BROKERS", nil),
		KafkaTopic:   getEnvOrDefault("KAFKA_TOPIC", "credmarket.events"),

		MFAIssuer:    getEnvOrDefault("MFA_ISSUER", "CredMarket"),
		CookieSecure: getEnvBoolOrDefault("COOKIE_SECURE", env != "dev"),
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}

	return defaultValue
}

// getEnvListOrDefault splits a comma separated value, dropping blanks.
func getEnvListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are minutes.
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
