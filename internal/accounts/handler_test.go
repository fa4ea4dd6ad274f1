package accounts

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/pattaya1/pattaya1_backend/internal/middlewares"
	"github.com/pattaya1/pattaya1_backend/pkg/auth"
	"github.com/pattaya1/pattaya1_backend/pkg/mailer"
)

// --- Mocks ---

type mockMailer struct{ mock.Mock }

func (m *mockMailer) Send(ctx context.Context, msg mailer.Message) error {
	return m.Called(ctx, msg).Error(0)
}

type authEnvelope struct {
	Success bool `json:"success"`
	Data    struct {
		Token string     `json:"token"`
		User  PublicUser `json:"user"`
	} `json:"data"`
}

func newTestHandler(t *testing.T) (*handler, *miniredis.Miniredis, *mockMailer, auth.TokenManager) {
	t.Helper()
	mr, err := miniredis.Run()
	assert.NoError(t, err)
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	mail := new(mockMailer)
	mgr := auth.NewJWTManager("test-secret")

	h := &handler{
		directory: NewDemoDirectory(),
		logger:    slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), nil)),
		cache:     rdb,
		validate:  validator.New(),
		genOTP:    func() (string, error) { return "12345", nil },
		mailer:    mail,
		auth:      mgr,
	}
	return h, mr, mail, mgr
}

func postJSON(t *testing.T, h http.HandlerFunc, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBuffer(body))
	w := httptest.NewRecorder()
	h(w, req)
	return w
}

func TestHandler_Login(t *testing.T) {
	h, _, _, mgr := newTestHandler(t)

	t.Run("admin login issues admin token", func(t *testing.T) {
		w := postJSON(t, h.Login, "/auth/login", map[string]string{
			"email": "admin@pattaya1.com", "password": "admin123",
		})

		assert.Equal(t, http.StatusOK, w.Code)

		var resp authEnvelope
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, "admin@pattaya1.com", resp.Data.User.Email)
		assert.NotContains(t, w.Body.String(), "admin123") // password stripped

		claims, err := mgr.VerifyToken(resp.Data.Token)
		assert.NoError(t, err)
		assert.Equal(t, "admin", claims.Role)
	})

	t.Run("wrong password does not reveal which field failed", func(t *testing.T) {
		w := postJSON(t, h.Login, "/auth/login", map[string]string{
			"email": "admin@pattaya1.com", "password": "nope",
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid email or password")
		assert.NotContains(t, w.Body.String(), "password was")
	})

	t.Run("unknown email returns the same message", func(t *testing.T) {
		w := postJSON(t, h.Login, "/auth/login", map[string]string{
			"email": "ghost@pattaya1.com", "password": "admin123",
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid email or password")
	})
}

func TestHandler_Register(t *testing.T) {
	h, _, _, mgr := newTestHandler(t)

	t.Run("registered token round-trips to role user via Me", func(t *testing.T) {
		w := postJSON(t, h.Register, "/auth/register", map[string]string{
			"email": "new@pattaya1.com", "password": "secret", "name": "New Visitor",
		})

		assert.Equal(t, http.StatusOK, w.Code)

		var resp authEnvelope
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Data.User.ID)

		claims, err := mgr.VerifyToken(resp.Data.Token)
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		req = req.WithContext(context.WithValue(req.Context(), middlewares.ClaimsKey, claims))
		mw := httptest.NewRecorder()
		h.Me(mw, req)

		assert.Equal(t, http.StatusOK, mw.Code)
		var me struct {
			Data struct {
				User PublicUser `json:"user"`
			} `json:"data"`
		}
		assert.NoError(t, json.Unmarshal(mw.Body.Bytes(), &me))
		assert.Equal(t, "user", me.Data.User.Role)
		assert.Equal(t, "new@pattaya1.com", me.Data.User.Email)
	})

	t.Run("missing name rejected", func(t *testing.T) {
		w := postJSON(t, h.Register, "/auth/register", map[string]string{
			"email": "new@pattaya1.com", "password": "secret",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_Me_WithoutClaims(t *testing.T) {
	h, _, _, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	w := httptest.NewRecorder()
	h.Me(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid token")
}

func TestHandler_SendEmailOTP(t *testing.T) {
	t.Run("stores code, mails it and mirrors into cookie", func(t *testing.T) {
		h, mr, mail, _ := newTestHandler(t)
		mail.On("Send", mock.Anything, mock.MatchedBy(func(m mailer.Message) bool {
			return m.To == "a@b.com"
		})).Return(nil)

		w := postJSON(t, h.SendEmailOTP, "/auth/email-otp/send", map[string]string{"email": "A@b.com "})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"ok":true`)

		// Key is namespaced by the lower-cased, trimmed email.
		got, err := mr.Get("email-otp:a@b.com")
		assert.NoError(t, err)
		assert.Equal(t, "12345", got)

		cookies := w.Result().Cookies()
		assert.Len(t, cookies, 1)
		assert.Equal(t, "email-otp", cookies[0].Name)
		assert.True(t, cookies[0].HttpOnly)

		mail.AssertExpectations(t)
	})

	t.Run("entry expires after the 10-minute TTL", func(t *testing.T) {
		h, mr, mail, _ := newTestHandler(t)
		mail.On("Send", mock.Anything, mock.Anything).Return(nil)

		postJSON(t, h.SendEmailOTP, "/auth/email-otp/send", map[string]string{"email": "a@b.com"})

		mr.FastForward(11 * time.Minute)
		_, err := mr.Get("email-otp:a@b.com")
		assert.Error(t, err)
	})

	t.Run("missing email fails before any dispatch", func(t *testing.T) {
		h, _, mail, _ := newTestHandler(t)

		w := postJSON(t, h.SendEmailOTP, "/auth/email-otp/send", map[string]string{})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mail.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})

	t.Run("mail relay failure surfaces as 500", func(t *testing.T) {
		h, _, mail, _ := newTestHandler(t)
		mail.On("Send", mock.Anything, mock.Anything).Return(assert.AnError)

		w := postJSON(t, h.SendEmailOTP, "/auth/email-otp/send", map[string]string{"email": "a@b.com"})

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestHandler_VerifyEmailOTP(t *testing.T) {
	t.Run("matching code is accepted once", func(t *testing.T) {
		h, mr, _, _ := newTestHandler(t)
		mr.Set("email-otp:a@b.com", "12345")

		w := postJSON(t, h.VerifyEmailOTP, "/auth/email-otp/verify", map[string]string{
			"email": "a@b.com", "code": "12345",
		})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.False(t, mr.Exists("email-otp:a@b.com")) // single use

		// Second attempt without the cookie fails.
		w = postJSON(t, h.VerifyEmailOTP, "/auth/email-otp/verify", map[string]string{
			"email": "a@b.com", "code": "12345",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("wrong code rejected", func(t *testing.T) {
		h, mr, _, _ := newTestHandler(t)
		mr.Set("email-otp:a@b.com", "12345")

		w := postJSON(t, h.VerifyEmailOTP, "/auth/email-otp/verify", map[string]string{
			"email": "a@b.com", "code": "99999",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("cookie mirror covers a lost cache entry", func(t *testing.T) {
		h, mr, mail, _ := newTestHandler(t)
		mail.On("Send", mock.Anything, mock.Anything).Return(nil)

		sent := postJSON(t, h.SendEmailOTP, "/auth/email-otp/send", map[string]string{"email": "a@b.com"})
		cookie := sent.Result().Cookies()[0]

		// Simulate a cache restart wiping the entry.
		mr.FlushAll()

		body, _ := json.Marshal(map[string]string{"email": "a@b.com", "code": "12345"})
		req := httptest.NewRequest(http.MethodPost, "/auth/email-otp/verify", bytes.NewBuffer(body))
		req.AddCookie(cookie)
		w := httptest.NewRecorder()
		h.VerifyEmailOTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
