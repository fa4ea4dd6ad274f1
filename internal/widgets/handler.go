// Package widgets serves the fixture-backed endpoints that keep the UI
// functional where no real integration exists yet. Handlers here never make
// an outbound call; each capability sits behind a provider interface so a
// live integration is a drop-in replacement.
package widgets

import (
	"log/slog"
	"net/http"

	"github.com/pattaya1/pattaya1_backend/pkg/constants"
	"github.com/pattaya1/pattaya1_backend/pkg/json"
)

type moderationRequest struct {
	Content string `json:"content"`
}

type handler struct {
	flights  FlightProvider
	currency CurrencyProvider
	radio    RadioProvider
	logger   *slog.Logger
}

type Handler interface {
	FlightStatus(w http.ResponseWriter, r *http.Request)
	FlightBoard(w http.ResponseWriter, r *http.Request)
	HomepageConfig(w http.ResponseWriter, r *http.Request)
	CurrencySettings(w http.ResponseWriter, r *http.Request)
	RadioStatus(w http.ResponseWriter, r *http.Request)
	ModerateContent(w http.ResponseWriter, r *http.Request)
	Suggestions(w http.ResponseWriter, r *http.Request)
	AdminWidgets(w http.ResponseWriter, r *http.Request)
}

func NewHandler(flights FlightProvider, currency CurrencyProvider, radio RadioProvider, logger *slog.Logger) Handler {
	return &handler{
		flights:  flights,
		currency: currency,
		radio:    radio,
		logger:   logger,
	}
}

// FlightStatus godoc
// @Summary      Flight tracker operational status
// @Description  Pure function of no input; always reports the cached-data mode.
// @Tags         widgets
// @Produce      json
// @Success      200  {object}  FlightStatus
// @Router       /api/v1/flight-tracker/status [get]
func (h *handler) FlightStatus(w http.ResponseWriter, r *http.Request) {
	// Legacy wire shape: fields at the top level, no envelope.
	json.Write(w, http.StatusOK, h.flights.Status())
}

// FlightBoard godoc
// @Summary      Arrivals/departures board
// @Tags         widgets
// @Produce      json
// @Param        airport    query  string  false  "IATA code"        default(UTP)
// @Param        direction  query  string  false  "arrivals or departures"
// @Success      200  {object}  FlightBoard
// @Router       /api/v1/flight-tracker/flights [get]
func (h *handler) FlightBoard(w http.ResponseWriter, r *http.Request) {
	board := h.flights.Board(r.URL.Query().Get("airport"), r.URL.Query().Get("direction"))
	json.WriteData(w, http.StatusOK, board)
}

// HomepageConfig godoc
// @Summary      Homepage widget layout
// @Tags         widgets
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /api/v1/homepage/config [get]
func (h *handler) HomepageConfig(w http.ResponseWriter, r *http.Request) {
	json.Write(w, http.StatusOK, map[string]any{"data": homepageConfig})
}

// CurrencySettings godoc
// @Summary      Supported currencies and THB rates
// @Description  Rates carry demo jitter; only the response shape is contractual.
// @Tags         widgets
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /api/v1/settings/currency [get]
func (h *handler) CurrencySettings(w http.ResponseWriter, r *http.Request) {
	json.WriteData(w, http.StatusOK, map[string]any{
		"base":  "THB",
		"rates": h.currency.Rates(),
	})
}

// RadioStatus godoc
// @Summary      Radio station directory with stream health
// @Tags         widgets
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /api/v1/radio/status [get]
func (h *handler) RadioStatus(w http.ResponseWriter, r *http.Request) {
	json.WriteData(w, http.StatusOK, map[string]any{"stations": h.radio.Stations()})
}

// ModerateContent godoc
// @Summary      Stub content moderation
// @Description  Keyword matching stand-in for a real moderation service.
// @Tags         widgets
// @Accept       json
// @Produce      json
// @Param        request  body  moderationRequest  true  "Content to check"
// @Success      200  {object}  ModerationVerdict
// @Failure      400  {object}  json.ErrorResponse
// @Router       /api/v1/moderation/check [post]
func (h *handler) ModerateContent(w http.ResponseWriter, r *http.Request) {
	var req moderationRequest
	if err := json.Read(r, &req); err != nil || req.Content == "" {
		json.WriteError(w, http.StatusBadRequest, constants.ErrInvalidJSON)
		return
	}
	json.WriteData(w, http.StatusOK, Moderate(req.Content))
}

// Suggestions godoc
// @Summary      Canned AI topic suggestions
// @Tags         widgets
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /api/v1/suggestions [get]
func (h *handler) Suggestions(w http.ResponseWriter, r *http.Request) {
	json.WriteData(w, http.StatusOK, map[string]any{"suggestions": suggestionPool})
}

// AdminWidgets godoc
// @Summary      Admin widget configuration
// @Tags         widgets
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /api/v1/admin/widgets [get]
func (h *handler) AdminWidgets(w http.ResponseWriter, r *http.Request) {
	json.WriteData(w, http.StatusOK, map[string]any{"widgets": adminWidgets})
}
