package widgets

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestHandler() Handler {
	return NewHandler(
		NewCachedFlightProvider(),
		NewDemoCurrencyProvider(),
		NewDemoRadioProvider(),
		slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), nil)),
	)
}

func TestFlightStatus_Golden(t *testing.T) {
	h := newTestHandler()

	// A pure function of no input: same contractual fields on every call.
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/flight-tracker/status", nil)
		w := httptest.NewRecorder()
		h.FlightStatus(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var status FlightStatus
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
		assert.Equal(t, "operational", status.Status)
		assert.True(t, status.APILimitReached)
		assert.Equal(t, "API limit exceeded", status.Message)
		assert.NotEmpty(t, status.CheckedAt)
	}
}

func TestFlightBoard(t *testing.T) {
	h := newTestHandler()

	t.Run("defaults to UTP arrivals and discloses cached data", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/flight-tracker/flights", nil)
		w := httptest.NewRecorder()
		h.FlightBoard(w, req)

		var resp struct {
			Data FlightBoard `json:"data"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "UTP", resp.Data.Meta.Airport)
		assert.Equal(t, "arrivals", resp.Data.Meta.Direction)
		assert.Equal(t, "API limit exceeded", resp.Data.Meta.Message)
		assert.True(t, resp.Data.Meta.Cached)
		assert.NotEmpty(t, resp.Data.Flights)
	})

	t.Run("departures board", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/flight-tracker/flights?direction=departures", nil)
		w := httptest.NewRecorder()
		h.FlightBoard(w, req)

		var resp struct {
			Data FlightBoard `json:"data"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "departures", resp.Data.Meta.Direction)
	})
}

func TestCurrencySettings_ShapeOnly(t *testing.T) {
	h := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/settings/currency", nil)
	w := httptest.NewRecorder()
	h.CurrencySettings(w, req)

	var resp struct {
		Data struct {
			Base  string         `json:"base"`
			Rates []CurrencyRate `json:"rates"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "THB", resp.Data.Base)
	assert.NotEmpty(t, resp.Data.Rates)
	for _, rate := range resp.Data.Rates {
		// Values carry demo jitter and are non-contractual; only sanity here.
		assert.NotEmpty(t, rate.Code)
		assert.Greater(t, rate.Rate, 0.0)
	}
}

func TestRadioStatus_ShapeOnly(t *testing.T) {
	h := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/radio/status", nil)
	w := httptest.NewRecorder()
	h.RadioStatus(w, req)

	var resp struct {
		Data struct {
			Stations []RadioStation `json:"stations"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data.Stations, 3)
	for _, s := range resp.Data.Stations {
		assert.NotEmpty(t, s.ID)
		assert.NotEmpty(t, s.StreamURL)
	}
}

func TestModerate(t *testing.T) {
	t.Run("clean content passes", func(t *testing.T) {
		verdict := Moderate("Great restaurant near the beach")
		assert.False(t, verdict.Flagged)
		assert.Empty(t, verdict.Reasons)
		assert.Zero(t, verdict.Score)
	})

	t.Run("keyword is flagged", func(t *testing.T) {
		verdict := Moderate("This is a SCAM, avoid it")
		assert.True(t, verdict.Flagged)
		assert.NotEmpty(t, verdict.Reasons)
		assert.Greater(t, verdict.Score, 0.0)
		assert.LessOrEqual(t, verdict.Score, 1.0)
	})
}

func TestModerateContentHandler(t *testing.T) {
	h := newTestHandler()

	t.Run("empty content rejected", func(t *testing.T) {
		body, _ := json.Marshal(map[string]string{"content": ""})
		req := httptest.NewRequest(http.MethodPost, "/moderation/check", bytes.NewBuffer(body))
		w := httptest.NewRecorder()
		h.ModerateContent(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("verdict is wrapped in the envelope", func(t *testing.T) {
		body, _ := json.Marshal(map[string]string{"content": "spam spam spam"})
		req := httptest.NewRequest(http.MethodPost, "/moderation/check", bytes.NewBuffer(body))
		w := httptest.NewRecorder()
		h.ModerateContent(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Success bool              `json:"success"`
			Data    ModerationVerdict `json:"data"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.True(t, resp.Data.Flagged)
	})
}

func TestHomepageConfigAndAdminWidgets(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/homepage/config", nil)
	w := httptest.NewRecorder()
	h.HomepageConfig(w, req)

	var home struct {
		Data []HomepageSection `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &home))
	assert.NotEmpty(t, home.Data)

	req = httptest.NewRequest(http.MethodGet, "/admin/widgets", nil)
	w = httptest.NewRecorder()
	h.AdminWidgets(w, req)

	var admin struct {
		Data struct {
			Widgets []AdminWidgetConfig `json:"widgets"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &admin))
	assert.NotEmpty(t, admin.Data.Widgets)
}
