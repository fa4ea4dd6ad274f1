package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/pattaya1/pattaya1_backend/internal/accounts"
	"github.com/pattaya1/pattaya1_backend/internal/content"
	"github.com/pattaya1/pattaya1_backend/internal/forum"
	"github.com/pattaya1/pattaya1_backend/internal/metrics"
	"github.com/pattaya1/pattaya1_backend/internal/middlewares"
	"github.com/pattaya1/pattaya1_backend/internal/payments"
	"github.com/pattaya1/pattaya1_backend/internal/strapi"
	"github.com/pattaya1/pattaya1_backend/internal/widgets"
	"github.com/pattaya1/pattaya1_backend/pkg/auth"
	"github.com/pattaya1/pattaya1_backend/pkg/mailer"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "github.com/pattaya1/pattaya1_backend/docs"
)

type config struct {
	Address     string
	StrapiURL   string
	StrapiToken string
	RedisAddr   string
	JWTSecret   string
	SMTP        mailer.SMTPConfig
	StripeKey   string
}

type application struct {
	config   config
	cache    *redis.Client
	logger   *slog.Logger
	mailer   mailer.Provider
	auth     auth.TokenManager
	stripe   payments.IntentCreator // nil when STRIPE_SECRET_KEY is absent
	registry *prometheus.Registry
}

func (app *application) run(handler http.Handler) error {
	srv := http.Server{
		Addr:         app.config.Address,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  time.Minute,
	}
	return srv.ListenAndServe()
}

// healthCheckHandler godoc
// @Summary      Health Check
// @Description  Checks if the API is up and running
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (app *application) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	now := time.Now()
	w.Write([]byte(`{"status": "available", "message": "Pattaya1 API is live 🌴", "serverTimeStamp": "` + now.Format(time.RFC3339) + `"}`))
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "https://pattaya1.com"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// PROTECT AGAINST LARGE PAYLOADS: Max 1MB globally.
	r.Use(middlewares.LimitRequestSize(1 * 1024 * 1024))

	// GLOBAL RATE LIMITING: 100 req/min
	r.Use(middlewares.RateLimit(100, 1*time.Minute, "Global rate limit exceeded. Please slow down."))

	// REQUEST TIMEOUT: Don't let connections hang for more than 30s.
	r.Use(middleware.Timeout(30 * time.Second))

	// Compresses large JSON responses (Level 5) to save bandwidth.
	r.Use(middleware.Compress(5))

	// Swagger Route
	r.Get("/swagger/*", httpSwagger.Handler())

	// Prometheus scrape endpoint
	r.Method(http.MethodGet, "/metrics", metrics.Handler(app.registry))

	// Health Check (Public)
	r.Get("/health", app.healthCheckHandler)

	// ALL APIS //
	collector := metrics.NewCollector(app.registry)
	cms := strapi.NewClient(app.config.StrapiURL, app.config.StrapiToken,
		http.DefaultClient, app.logger.With("component", "strapi"), collector)
	if !cms.Configured() {
		app.logger.Warn("STRAPI_URL not set; proxy endpoints will report the upstream as unavailable")
	}

	accountsHandler := accounts.NewHandler(
		accounts.NewDemoDirectory(),
		app.logger.With("handler", "accounts"),
		app.cache,
		app.mailer,
		app.auth,
	)
	forumHandler := forum.NewHandler(cms, app.logger.With("handler", "forum"))
	contentHandler := content.NewHandler(cms, app.logger.With("handler", "content"))
	widgetsHandler := widgets.NewHandler(
		widgets.NewCachedFlightProvider(),
		widgets.NewDemoCurrencyProvider(),
		widgets.NewDemoRadioProvider(),
		app.logger.With("handler", "widgets"),
	)
	paymentsHandler := payments.NewHandler(app.stripe, app.logger.With("handler", "payments"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/", MountRoutes(app, accountsHandler, forumHandler, contentHandler, widgetsHandler, paymentsHandler))
	})

	return r
}
