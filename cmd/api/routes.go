package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pattaya1/pattaya1_backend/internal/accounts"
	"github.com/pattaya1/pattaya1_backend/internal/content"
	"github.com/pattaya1/pattaya1_backend/internal/forum"
	"github.com/pattaya1/pattaya1_backend/internal/middlewares"
	"github.com/pattaya1/pattaya1_backend/internal/payments"
	"github.com/pattaya1/pattaya1_backend/internal/widgets"
)

// MountRoutes connects the specific sub-handlers for the v1 API.
// Note: Global logic like CORS and basic logging are handled in the main app mount.
func MountRoutes(
	app *application,
	accountsHandler accounts.Handler,
	forumHandler forum.Handler,
	contentHandler content.Handler,
	widgetsHandler widgets.Handler,
	paymentsHandler payments.Handler,
) http.Handler {
	r := chi.NewRouter()

	// 1. IDENTITY ENDPOINTS
	r.Route("/auth", func(r chi.Router) {

		// Override the global 1MB limit to 10KB here to prevent
		// "JSON Bomb" attacks on the credential endpoints.
		r.Use(middlewares.LimitRequestSize(10 * 1024))

		// Stricter rate limiting (10 req/min) against credential stuffing
		// and OTP spam.
		r.Use(middlewares.RateLimit(10, 1*time.Minute, "Too many authentication attempts. Try again in a minute."))

		r.Post("/login", accountsHandler.Login)
		r.Post("/register", accountsHandler.Register)
		r.Post("/email-otp/send", accountsHandler.SendEmailOTP)
		r.Post("/email-otp/verify", accountsHandler.VerifyEmailOTP)

		r.Group(func(r chi.Router) {
			r.Use(middlewares.Auth(app.auth))
			r.Get("/me", accountsHandler.Me)
		})
	})

	// 2. FORUM PROXIES
	r.Route("/forum", func(r chi.Router) {
		r.Get("/posts", forumHandler.ListPosts)
		r.Post("/posts", forumHandler.CreatePost)
		r.Get("/topics", forumHandler.ListTopics)
		r.Get("/topics/{id}", forumHandler.GetTopic)
	})
	r.Post("/forum-reactions/add", forumHandler.AddReaction)

	// 3. CONTENT PROXIES
	r.Get("/articles", contentHandler.ListArticles)
	r.Get("/articles/{slug}", contentHandler.GetArticle)
	r.Post("/analytics/track", contentHandler.TrackEvent)
	r.Get("/sponsorships", contentHandler.ListSponsorships)
	r.Route("/search", func(r chi.Router) {
		r.Get("/facets", contentHandler.SearchFacets)
		r.Group(func(r chi.Router) {
			r.Use(middlewares.RequireAuthHeader)
			r.Get("/users", contentHandler.SearchUsers)
		})
	})

	// 4. WIDGETS (fixture-backed)
	r.Get("/flight-tracker/status", widgetsHandler.FlightStatus)
	r.Get("/flight-tracker/flights", widgetsHandler.FlightBoard)
	r.Get("/homepage/config", widgetsHandler.HomepageConfig)
	r.Get("/settings/currency", widgetsHandler.CurrencySettings)
	r.Get("/radio/status", widgetsHandler.RadioStatus)
	r.Post("/moderation/check", widgetsHandler.ModerateContent)
	r.Get("/suggestions", widgetsHandler.Suggestions)
	r.Get("/admin/widgets", widgetsHandler.AdminWidgets)

	// 5. PAYMENTS
	r.Post("/payments/create-payment-intent", paymentsHandler.CreateIntent)

	return r
}
