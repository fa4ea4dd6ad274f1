package accounts

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	gojson "encoding/json"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"

	"github.com/pattaya1/pattaya1_backend/internal/middlewares"
	"github.com/pattaya1/pattaya1_backend/pkg/auth"
	"github.com/pattaya1/pattaya1_backend/pkg/constants"
	"github.com/pattaya1/pattaya1_backend/pkg/json"
	"github.com/pattaya1/pattaya1_backend/pkg/mailer"
	"github.com/pattaya1/pattaya1_backend/pkg/random"
)

const (
	otpTTL       = 10 * time.Minute
	otpKeyPrefix = "email-otp:"
	otpCookie    = "email-otp"
)

// Cache interface abstracts Redis for testability
type Cache interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type handler struct {
	directory Directory
	logger    *slog.Logger
	cache     Cache
	validate  *validator.Validate
	genOTP    func() (string, error)
	mailer    mailer.Provider
	auth      auth.TokenManager
}

type Handler interface {
	Login(w http.ResponseWriter, r *http.Request)
	Register(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
	SendEmailOTP(w http.ResponseWriter, r *http.Request)
	VerifyEmailOTP(w http.ResponseWriter, r *http.Request)
}

// NewHandler creates the identity handler with its dependencies
func NewHandler(directory Directory, logger *slog.Logger, cache Cache, mail mailer.Provider,
	tokenManager auth.TokenManager,
) Handler {
	return &handler{
		directory: directory,
		logger:    logger,
		cache:     cache,
		validate:  validator.New(),
		genOTP:    random.GenerateOTP,
		mailer:    mail,
		auth:      tokenManager,
	}
}

// Login godoc
// @Summary      Login with email and password
// @Description  Checks the credentials against the identity directory and issues a 7-day JWT.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      loginRequest  true  "Email and password"
// @Success      200      {object}  authResponse
// @Failure      400      {object}  json.ErrorResponse "Invalid JSON or missing field"
// @Failure      401      {object}  json.ErrorResponse "Credential mismatch"
// @Router       /api/v1/auth/login [post]
func (h *handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteError(w, http.StatusBadRequest, constants.ErrInvalidJSON)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		json.WriteError(w, http.StatusBadRequest, constants.ErrInvalidCredentials)
		return
	}

	user, ok := h.directory.FindByCredentials(req.Email, req.Password)
	if !ok {
		// Same message whichever field was wrong.
		json.WriteError(w, http.StatusUnauthorized, constants.ErrInvalidCredentials)
		return
	}

	token, err := h.auth.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		h.logger.Error("failed to sign token", "error", err)
		json.WriteError(w, http.StatusInternalServerError, constants.ErrInternal)
		return
	}

	json.WriteData(w, http.StatusOK, authResponse{Token: token, User: user.Public()})
}

// Register godoc
// @Summary      Register a demo account
// @Description  Synthesizes a new identity and issues a token. No uniqueness check is performed in the demo directory.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      registerRequest  true  "Email, password and display name"
// @Success      200      {object}  authResponse
// @Failure      400      {object}  json.ErrorResponse
// @Router       /api/v1/auth/register [post]
func (h *handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteError(w, http.StatusBadRequest, constants.ErrInvalidJSON)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		json.WriteError(w, http.StatusBadRequest, constants.ErrInvalidJSON)
		return
	}

	user := User{
		ID:    strconv.FormatInt(time.Now().UnixMilli(), 10),
		Email: req.Email,
		Name:  req.Name,
		Role:  "user",
	}

	token, err := h.auth.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		h.logger.Error("failed to sign token", "error", err)
		json.WriteError(w, http.StatusInternalServerError, constants.ErrInternal)
		return
	}

	json.WriteData(w, http.StatusOK, authResponse{Token: token, User: user.Public()})
}

// Me godoc
// @Summary      Current identity
// @Description  Rebuilds the identity view from the verified token claims.
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]PublicUser
// @Failure      401  {object}  json.ErrorResponse "Bad signature or expired token"
// @Router       /api/v1/auth/me [get]
func (h *handler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(middlewares.ClaimsKey).(*auth.Claims)
	if !ok {
		json.WriteError(w, http.StatusUnauthorized, constants.ErrInvalidToken)
		return
	}

	// The token carries no display name; the view is claims-only.
	user := PublicUser{ID: claims.UserID, Email: claims.Email, Role: claims.Role}
	json.WriteData(w, http.StatusOK, map[string]PublicUser{"user": user})
}

// otpCookiePayload mirrors the issued code into an HTTP-only cookie so OTP
// verification survives a cache restart.
type otpCookiePayload struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// SendEmailOTP godoc
// @Summary      Send a verification code by email
// @Description  Generates a 5-digit code, stores it in the cache for 10 minutes and dispatches it through the mail relay. The code is also mirrored into an HTTP-only cookie.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      sendOTPRequest  true  "Recipient email"
// @Success      200      {object}  map[string]bool
// @Failure      400      {object}  json.ErrorResponse "Email missing or malformed"
// @Failure      500      {object}  json.ErrorResponse "Mail dispatch failed"
// @Router       /api/v1/auth/email-otp/send [post]
func (h *handler) SendEmailOTP(w http.ResponseWriter, r *http.Request) {
	var req sendOTPRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteError(w, http.StatusBadRequest, constants.ErrEmailRequired)
		return
	}

	// Keys are namespaced by the normalized address.
	req.Email = strings.TrimSpace(req.Email)
	if err := h.validate.Struct(req); err != nil {
		json.WriteError(w, http.StatusBadRequest, constants.ErrEmailRequired)
		return
	}

	email := strings.ToLower(req.Email)
	ctx := r.Context()

	code, err := h.genOTP()
	if err != nil {
		h.logger.Error("otp generation failed", "error", err)
		json.WriteError(w, http.StatusInternalServerError, constants.ErrInternal)
		return
	}

	// Cache is best-effort. A failed write only disables the cache path;
	// the cookie mirror below still lets verification succeed.
	if err := h.cache.Set(ctx, otpKeyPrefix+email, code, otpTTL).Err(); err != nil {
		h.logger.Warn("otp cache write failed", "error", err, "email", email)
	}

	msg := mailer.Message{
		To:      email,
		Subject: "Your Pattaya1 verification code",
		Body:    fmt.Sprintf("Your Pattaya1 verification code is: %s. Valid for 10 minutes.", code),
	}
	if err := h.mailer.Send(ctx, msg); err != nil {
		h.logger.Error("failed to deliver email", "error", err, "email", email)
		json.WriteError(w, http.StatusInternalServerError, constants.ErrFailedToSendEmail)
		return
	}

	raw, _ := gojson.Marshal(otpCookiePayload{Email: email, Code: code})
	http.SetCookie(w, &http.Cookie{
		Name:     otpCookie,
		Value:    base64.RawURLEncoding.EncodeToString(raw),
		Path:     "/",
		MaxAge:   int(otpTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	json.Write(w, http.StatusOK, map[string]bool{"ok": true})
}

// VerifyEmailOTP godoc
// @Summary      Verify an email code
// @Description  Checks the code against the cache, falling back to the cookie mirror when the cache entry is gone. Codes are single-use.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      verifyOTPRequest  true  "Email and 5-digit code"
// @Success      200      {object}  map[string]bool
// @Failure      400      {object}  json.ErrorResponse
// @Failure      401      {object}  json.ErrorResponse "Code mismatch or expired"
// @Router       /api/v1/auth/email-otp/verify [post]
func (h *handler) VerifyEmailOTP(w http.ResponseWriter, r *http.Request) {
	var req verifyOTPRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteError(w, http.StatusBadRequest, constants.ErrInvalidJSON)
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if err := h.validate.Struct(req); err != nil {
		json.WriteError(w, http.StatusBadRequest, constants.ErrInvalidOTP)
		return
	}

	email := strings.ToLower(req.Email)
	ctx := r.Context()
	key := otpKeyPrefix + email

	stored, err := h.cache.Get(ctx, key).Result()
	switch {
	case err == nil:
		if stored != req.Code {
			json.WriteError(w, http.StatusUnauthorized, constants.ErrInvalidOTP)
			return
		}
		h.cache.Del(ctx, key)
	case err == redis.Nil:
		// Cache entry gone (restart or TTL). Fall back to the cookie mirror.
		if !h.verifyFromCookie(r, email, req.Code) {
			json.WriteError(w, http.StatusUnauthorized, constants.ErrInvalidOTP)
			return
		}
	default:
		h.logger.Error("otp cache read failed", "error", err)
		if !h.verifyFromCookie(r, email, req.Code) {
			json.WriteError(w, http.StatusUnauthorized, constants.ErrInvalidOTP)
			return
		}
	}

	json.Write(w, http.StatusOK, map[string]any{"ok": true, "message": constants.MsgOTPVerified})
}

func (h *handler) verifyFromCookie(r *http.Request, email, code string) bool {
	cookie, err := r.Cookie(otpCookie)
	if err != nil {
		return false
	}
	raw, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return false
	}
	var payload otpCookiePayload
	if err := gojson.Unmarshal(raw, &payload); err != nil {
		return false
	}
	return payload.Email == email && payload.Code == code
}
