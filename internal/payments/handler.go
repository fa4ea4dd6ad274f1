package payments

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	stripe "github.com/stripe/stripe-go/v82"

	"github.com/pattaya1/pattaya1_backend/pkg/constants"
	"github.com/pattaya1/pattaya1_backend/pkg/json"
)

// All deals are priced in Thai baht.
const currency = "thb"

// createIntentRequest carries the deal being purchased. Amount is in major
// currency units (baht) and converted to satang before reaching Stripe.
// @Name CreateIntentRequest
type createIntentRequest struct {
	DealID    string  `json:"dealId" validate:"required" example:"deal_123"`
	DealTitle string  `json:"dealTitle" validate:"required" example:"2-for-1 dive trip"`
	Amount    float64 `json:"amount" validate:"required,gt=0" example:"500"`
	Quantity  int     `json:"quantity" example:"2"`
}

// createIntentResponse hands the client what it needs to confirm the payment
// @Name CreateIntentResponse
type createIntentResponse struct {
	ClientSecret    string `json:"clientSecret"`
	PaymentIntentID string `json:"paymentIntentId"`
	Amount          int64  `json:"amount"` // minor units
	Currency        string `json:"currency" example:"thb"`
}

type handler struct {
	provider IntentCreator // nil when STRIPE_SECRET_KEY is absent
	logger   *slog.Logger
	validate *validator.Validate
}

type Handler interface {
	CreateIntent(w http.ResponseWriter, r *http.Request)
}

func NewHandler(provider IntentCreator, logger *slog.Logger) Handler {
	return &handler{
		provider: provider,
		logger:   logger,
		validate: validator.New(),
	}
}

// CreateIntent godoc
// @Summary      Create a Stripe payment intent
// @Description  Converts the amount to minor units and creates one intent. Creation is never retried; a duplicate intent would double-charge.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        request  body      createIntentRequest  true  "Deal purchase"
// @Success      200      {object}  createIntentResponse
// @Failure      400      {object}  json.ErrorResponse "Missing dealId, dealTitle or amount"
// @Failure      500      {object}  json.ErrorResponse "Stripe unconfigured or the creation call failed"
// @Router       /api/v1/payments/create-payment-intent [post]
func (h *handler) CreateIntent(w http.ResponseWriter, r *http.Request) {
	var req createIntentRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteError(w, http.StatusBadRequest, constants.ErrInvalidJSON)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		json.WriteError(w, http.StatusBadRequest, "dealId, dealTitle and amount are required")
		return
	}

	if h.provider == nil {
		h.logger.Error("payment intent requested but Stripe is not configured")
		json.WriteError(w, http.StatusInternalServerError, constants.ErrPaymentsUnavailable)
		return
	}

	quantity := req.Quantity
	if quantity <= 0 {
		quantity = 1
	}
	minorUnits := int64(math.Round(req.Amount * 100))

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(minorUnits),
		Currency: stripe.String(currency),
		Metadata: map[string]string{
			"dealId":    req.DealID,
			"dealTitle": req.DealTitle,
			"quantity":  strconv.Itoa(quantity),
		},
	}

	intent, err := h.provider.CreateIntent(r.Context(), params)
	if err != nil {
		h.logger.Error("payment intent creation failed", "dealId", req.DealID, "error", err)
		json.WriteError(w, http.StatusInternalServerError, "Failed to create payment intent")
		return
	}

	json.WriteData(w, http.StatusOK, createIntentResponse{
		ClientSecret:    intent.ClientSecret,
		PaymentIntentID: intent.ID,
		Amount:          minorUnits,
		Currency:        currency,
	})
}
