package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/credmarket/internal/credmarket/events"
	"github.com/aussiebroadwan/credmarket/internal/credmarket/notify"
	"github.com/aussiebroadwan/credmarket/internal/credmarket/revocation"
	"github.com/aussiebroadwan/credmarket/internal/credmarket/service"
	"github.com/aussiebroadwan/credmarket/internal/credmarket/store"
	"github.com/aussiebroadwan/credmarket/internal/credmarket/store/drivers/postgres"
	"github.com/aussiebroadwan/credmarket/internal/credmarket/store/drivers/sqlite"
	"github.com/aussiebroadwan/credmarket/pkg/cryptox"
	"github.com/aussiebroadwan/credmarket/pkg/jwtx"
)

// TokenIssuer is the iss claim on every token the service signs.
const TokenIssuer = "credmarket"

// Deps are the external systems the services run against. The server and
// the operator CLI both build them from the same Config.
type Deps struct {
	Store       store.Store
	Revocations revocation.List
	Events      events.Publisher
	Dispatcher  *notify.Dispatcher
}

// OpenStore connects the configured database driver and applies migrations.
func OpenStore(ctx context.Context, cfg Config, logger *slog.Logger) (store.Store, error) {
	var (
		st  store.Store
		err error
	)

	switch cfg.DatabaseDriver {
	case "sqlite", "":
		host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", cfg.DatabaseFile)
		st, err = sqlite.NewStore(host)
	case "postgres":
		if cfg.DatabaseURL == "" {
			return nil, errors.New("DATABASE_URL is required for the postgres driver")
		}
		st, err = postgres.NewStore(ctx, cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("unknown DATABASE_DRIVER %q", cfg.DatabaseDriver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := st.ApplyMigrations(); err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("failed to apply database migrations: %w", err)
	}

	logger.Info("database migrations applied successfully", "driver", cfg.DatabaseDriver)
	return st, nil
}

// OpenDeps opens the store and the optional remote collaborators. Redis and
// Kafka are used when configured; otherwise revocations stay in memory and
// events go to the log. The dispatcher is returned started.
func OpenDeps(ctx context.Context, cfg Config, logger *slog.Logger) (*Deps, error) {
	st, err := OpenStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	d := &Deps{Store: st}

	if cfg.RedisURL != "" {
		r, err := revocation.DialRedis(ctx, cfg.RedisURL)
		if err != nil {
			d.Close(logger)
			return nil, err
		}
		d.Revocations = r
		logger.Info("session revocation list backed by redis")
	} else {
		d.Revocations = revocation.NewMemory()
	}

	if len(cfg.KafkaBrokers) > 0 {
		d.Events = events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		logger.Info("publishing domain events to kafka", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	} else {
		d.Events = events.LogPublisher{}
	}

	var sender notify.Sender = notify.LogSender{Logger: logger}
	if cfg.SMTPHost != "" {
		sender = notify.NewSMTPSender(notify.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.MailFrom,
		})
	} else {
		logger.Warn("SMTP_HOST not set, emails will be written to the log")
	}
	d.Dispatcher = notify.NewDispatcher(sender, logger, cfg.NotifyWorkers, cfg.NotifyQueueSize, cfg.NotifySendTimeout)
	d.Dispatcher.Start()

	return d, nil
}

// Close drains the notification queue before closing anything the workers
// might still need.
func (d *Deps) Close(logger *slog.Logger) {
	if d.Dispatcher != nil {
		d.Dispatcher.Stop()
	}
	if d.Events != nil {
		if err := d.Events.Close(); err != nil {
			logger.Error("error closing event publisher", "error", err)
		}
	}
	if d.Revocations != nil {
		if err := d.Revocations.Close(); err != nil {
			logger.Error("error closing revocation list", "error", err)
		}
	}
	if d.Store != nil {
		if err := d.Store.Close(); err != nil {
			logger.Error("error closing database", "error", err)
		}
	}
}

// LoadSigner reads (or creates) the session key file.
func LoadSigner(cfg Config) (*jwtx.HMAC, error) {
	key, err := cryptox.LoadOrCreateSecret(cfg.SessionKeyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load session key: %w", err)
	}
	return jwtx.NewHMAC(cryptox.FingerprintToken(string(key))[:8], key, TokenIssuer)
}

// Services is the business layer wired to a set of Deps.
type Services struct {
	Companies    *service.CompanyService
	Users        *service.UserService
	OTPs         *service.OTPService
	Sessions     *service.SessionService
	MFA          *service.MFAService
	Signup       *service.SignupService
	Housekeeping *service.HousekeepingService
}

// NewServices wires the services. signer may be nil for callers that never
// issue tokens, such as the CLI; Sessions and Signup are then left nil.
func NewServices(cfg Config, d *Deps, signer *jwtx.HMAC, logger *slog.Logger) *Services {
	s := &Services{
		Companies: &service.CompanyService{
			Store:    d.Store,
			Notifier: d.Dispatcher,
			Events:   d.Events,
			SiteURL:  cfg.SiteURL,
		},
		Users: &service.UserService{Store: d.Store, Events: d.Events},
		OTPs:  &service.OTPService{Store: d.Store, Validity: cfg.OTPValidity},
		MFA:   &service.MFAService{Store: d.Store, Issuer: cfg.MFAIssuer},
	}

	s.Housekeeping = service.NewHousekeepingService(d.Store, logger, cfg.HousekeepingInterval, cfg.PendingTokenTTL)
	s.Housekeeping.Queue = d.Dispatcher

	if signer == nil {
		return s
	}

	s.Sessions = &service.SessionService{
		Tokens:      signer,
		Revocations: d.Revocations,
		Store:       d.Store,
		SessionTTL:  cfg.SessionTTL,
		PendingTTL:  cfg.PendingTokenTTL,
	}
	s.Signup = &service.SignupService{
		Store:     d.Store,
		Companies: s.Companies,
		Users:     s.Users,
		OTPs:      s.OTPs,
		Sessions:  s.Sessions,
		MFA:       s.MFA,
		Notifier:  d.Dispatcher,
		Events:    d.Events,
	}
	return s
}
