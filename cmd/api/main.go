package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/pattaya1/pattaya1_backend/internal/env"
	"github.com/pattaya1/pattaya1_backend/internal/payments"
	"github.com/pattaya1/pattaya1_backend/internal/store"
	"github.com/pattaya1/pattaya1_backend/pkg/auth"
	"github.com/pattaya1/pattaya1_backend/pkg/mailer"
)

// @title           Pattaya1 Portal API
// @version         1.0
// @description     Backend-for-frontend API for the Pattaya1 city portal.

// @contact.name   API Support
// @contact.url    https://pattaya1.com/support

// @host      localhost:8080
// @BasePath  /
func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// 2. Setup Logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 3. Config
	cfg := config{
		Address:     env.GetString("ADDR", ":8080"),
		StrapiURL:   env.GetString("STRAPI_URL", ""),
		StrapiToken: env.GetString("STRAPI_API_TOKEN", ""),
		RedisAddr:   env.GetString("REDIS_ADDR", "localhost:6379"),
		JWTSecret:   env.GetString("JWT_SECRET", ""),
		SMTP: mailer.SMTPConfig{
			Host:     env.GetString("SMTP_HOST", ""),
			Port:     env.GetInt("SMTP_PORT", 587),
			Username: env.GetString("SMTP_USER", ""),
			Password: env.GetString("SMTP_PASS", ""),
			From:     env.GetString("SMTP_FROM", "noreply@pattaya1.com"),
		},
		StripeKey: env.GetString("STRIPE_SECRET_KEY", ""),
	}

	// 4. OTP Cache. Best-effort: verification falls back to the cookie
	// mirror when the cache is unreachable, so the server still starts.
	cache, err := store.NewRedisClient(cfg.RedisAddr, "", 0)
	if err != nil {
		logger.Warn("redis unreachable, OTP verification will rely on the cookie fallback", "error", err)
		cache = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	} else {
		logger.Info("redis connection established")
	}
	defer cache.Close()

	// 5. Outbound providers
	var mail mailer.Provider
	if cfg.SMTP.Host != "" {
		mail, err = mailer.NewSMTPProvider(cfg.SMTP)
		if err != nil {
			logger.Error("failed to configure SMTP relay", "error", err)
			os.Exit(1)
		}
	} else {
		logger.Warn("SMTP_HOST not set, using mock mail provider")
		mail = mailer.NewMockProvider()
	}

	var stripeProvider payments.IntentCreator
	if cfg.StripeKey != "" {
		stripeProvider = payments.NewStripeCreator(cfg.StripeKey)
	} else {
		logger.Warn("STRIPE_SECRET_KEY not set, payment endpoints will return 500")
	}

	// 6. Initialize Application
	app := &application{
		config:   cfg,
		cache:    cache,
		logger:   logger,
		mailer:   mail,
		auth:     auth.NewJWTManager(cfg.JWTSecret),
		stripe:   stripeProvider,
		registry: prometheus.NewRegistry(),
	}

	// 7. Start Server
	logger.Info("starting server", "addr", cfg.Address)
	if err := app.run(app.mount()); err != nil {
		logger.Error("server crashed", "error", err)
		os.Exit(1)
	}
}
