package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/shadyar-bakr/storefront/internal/apperr"
	"github.com/shadyar-bakr/storefront/internal/data"
	"github.com/shadyar-bakr/storefront/internal/errlog"
	"github.com/shadyar-bakr/storefront/internal/mailer"
)

const version = "1.0.0"

type config struct {
	port int
	env  string
	db   struct {
		dsn         string
		maxConns    int
		maxIdleTime time.Duration
	}
	limiter struct {
		rps        float64
		burst      int
		cleanup    time.Duration
		enabled    bool
		trustProxy bool
	}
	cors struct {
		trustedOrigins []string
	}
	smtp struct {
		host     string
		port     int
		username string
		password string
		sender   string
	}
	alertRecipient string
	sessionTTL     time.Duration
	bcryptCost     int
}

type application struct {
	config config
	env    apperr.Env
	logger *slog.Logger
	errors *errlog.Logger
	models data.Models
	wg     sync.WaitGroup
}

func main() {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Printf("Error loading .env file: %v\n", err)
		os.Exit(1)
	}

	var cfg config

	flag.IntVar(&cfg.port, "port", 4000, "API server port")
	flag.StringVar(&cfg.env, "env", envOr("STOREFRONT_ENV", "development"), "Environment (development|staging|production)")
	flag.StringVar(&cfg.db.dsn, "sink-db-dsn", os.Getenv("STOREFRONT_SINK_DB_DSN"), "PostgreSQL DSN for the error event sink (disabled when empty)")
	flag.IntVar(&cfg.db.maxConns, "sink-db-max-conns", 4, "PostgreSQL max connections for the error event sink")
	flag.DurationVar(&cfg.db.maxIdleTime, "sink-db-max-idle-time", 15*time.Minute, "PostgreSQL max idle time")
	flag.Float64Var(&cfg.limiter.rps, "limiter-rps", 2, "Rate limiter maximum requests per second")
	flag.IntVar(&cfg.limiter.burst, "limiter-burst", 4, "Rate limiter maximum burst")
	flag.DurationVar(&cfg.limiter.cleanup, "limiter-cleanup", 3*time.Minute, "Rate limiter cleanup time")
	flag.BoolVar(&cfg.limiter.enabled, "limiter-enabled", true, "Enable rate limiter")
	flag.BoolVar(&cfg.limiter.trustProxy, "limiter-trust-proxy", false, "Key the rate limiter on X-Forwarded-For/X-Real-IP (only behind a trusted proxy)")
	flag.StringVar(&cfg.smtp.host, "smtp-host", os.Getenv("STOREFRONT_SMTP_HOST"), "SMTP host for error alerts (disabled when empty)")
	flag.IntVar(&cfg.smtp.port, "smtp-port", 25, "SMTP port")
	flag.StringVar(&cfg.smtp.username, "smtp-username", os.Getenv("STOREFRONT_SMTP_USERNAME"), "SMTP username")
	flag.StringVar(&cfg.smtp.password, "smtp-password", os.Getenv("STOREFRONT_SMTP_PASSWORD"), "SMTP password")
	flag.StringVar(&cfg.smtp.sender, "smtp-sender", "Storefront <no-reply@storefront.example.com>", "SMTP sender")
	flag.StringVar(&cfg.alertRecipient, "alert-recipient", os.Getenv("STOREFRONT_ALERT_RECIPIENT"), "Recipient of error alert emails")
	flag.DurationVar(&cfg.sessionTTL, "session-ttl", 24*time.Hour, "Authentication token lifetime")
	flag.IntVar(&cfg.bcryptCost, "bcrypt-cost", 12, "bcrypt cost for seeded demo accounts")

	flag.Func("cors-trusted-origins", "Trusted CORS origins (space separated)", func(val string) error {
		cfg.cors.trustedOrigins = strings.Fields(val)
		return nil
	})

	flag.Parse()

	env := apperr.Env(cfg.env)
	if !env.Valid() {
		fmt.Printf("invalid -env value %q\n", cfg.env)
		os.Exit(1)
	}

	logger := newLogger(env)

	var sinks []errlog.Sink

	if cfg.db.dsn != "" {
		pool, err := openDB(cfg, logger)
		if err != nil {
			logger.Error("unable to connect to error sink database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		sinks = append(sinks, errlog.NewPostgresSink(pool))
	}

	if cfg.smtp.host != "" && cfg.alertRecipient != "" {
		m := mailer.New(mailer.SMTPConfig{
			Host:     cfg.smtp.host,
			Port:     cfg.smtp.port,
			Username: cfg.smtp.username,
			Password: cfg.smtp.password,
			Sender:   cfg.smtp.sender,
		})
		sinks = append(sinks, errlog.NewMailSink(m, cfg.alertRecipient))
	}

	if len(sinks) == 0 && !env.IsDevelopment() {
		sinks = append(sinks, errlog.LogSink(logger))
	}

	users, err := data.NewUserModel(cfg.bcryptCost, data.DemoAccounts...)
	if err != nil {
		logger.Error("unable to seed demo accounts", "error", err)
		os.Exit(1)
	}

	app := &application{
		config: cfg,
		env:    env,
		logger: logger,
		errors: errlog.New(errlog.Config{Env: env, Sink: errlog.Multi(sinks...)}, logger),
		models: data.NewModels(users),
	}

	err = app.serve()
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

func newLogger(env apperr.Env) *slog.Logger {
	if env.IsDevelopment() {
		return slog.New(slog.NewTextHandler(os.Stdout, nil))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, nil))
}

func openDB(cfg config, logger *slog.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.db.dsn)
	if err != nil {
		return nil, err
	}
	poolConfig.MaxConns = int32(cfg.db.maxConns)
	poolConfig.MaxConnIdleTime = cfg.db.maxIdleTime

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, err
	}

	err = pool.Ping(ctx)
	if err != nil {
		pool.Close()
		return nil, err
	}

	logger.Info("error sink database connected")
	return pool, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
