package forum

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/pattaya1/pattaya1_backend/internal/strapi"
)

type mockCMS struct{ mock.Mock }

func (m *mockCMS) Do(ctx context.Context, req strapi.Request) (*strapi.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*strapi.Response), args.Error(1)
}

func newHandler(cms CMS) *handler {
	return &handler{
		cms:      cms,
		logger:   slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), nil)),
		validate: validator.New(),
	}
}

func TestListPosts(t *testing.T) {
	t.Run("pagination defaults to page 1 size 20", func(t *testing.T) {
		cms := new(mockCMS)
		cms.On("Do", mock.Anything, mock.MatchedBy(func(req strapi.Request) bool {
			return req.Query.Get("page") == "1" && req.Query.Get("limit") == "20"
		})).Return(&strapi.Response{StatusCode: http.StatusOK, Body: []byte(`{"data":[]}`)}, nil)

		req := httptest.NewRequest(http.MethodGet, "/forum/posts", nil)
		w := httptest.NewRecorder()
		newHandler(cms).ListPosts(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"data":[]}`, w.Body.String())
		cms.AssertExpectations(t)
	})

	t.Run("explicit pagination and topic are forwarded verbatim", func(t *testing.T) {
		cms := new(mockCMS)
		cms.On("Do", mock.Anything, mock.MatchedBy(func(req strapi.Request) bool {
			return req.Query.Get("page") == "3" &&
				req.Query.Get("limit") == "5" &&
				req.Query.Get("topic") == "nightlife"
		})).Return(&strapi.Response{StatusCode: http.StatusOK, Body: []byte(`{"data":[]}`)}, nil)

		req := httptest.NewRequest(http.MethodGet, "/forum/posts?topic=nightlife&page=3&limit=5", nil)
		w := httptest.NewRecorder()
		newHandler(cms).ListPosts(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		cms.AssertExpectations(t)
	})

	t.Run("upstream error status is surfaced with a generic message", func(t *testing.T) {
		cms := new(mockCMS)
		cms.On("Do", mock.Anything, mock.Anything).
			Return(&strapi.Response{StatusCode: http.StatusBadGateway, Body: []byte(`{}`)}, nil)

		req := httptest.NewRequest(http.MethodGet, "/forum/posts", nil)
		w := httptest.NewRecorder()
		newHandler(cms).ListPosts(w, req)

		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Contains(t, w.Body.String(), "Content service is unavailable")
	})
}

func TestCreatePost(t *testing.T) {
	t.Run("missing content fails before any upstream call", func(t *testing.T) {
		cms := new(mockCMS)
		body, _ := json.Marshal(map[string]string{"topic": "food"})
		req := httptest.NewRequest(http.MethodPost, "/forum/posts", bytes.NewBuffer(body))
		req.Header.Set("Authorization", "Bearer token")
		w := httptest.NewRecorder()

		newHandler(cms).CreatePost(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		cms.AssertNotCalled(t, "Do", mock.Anything, mock.Anything)
	})

	t.Run("missing bearer header is a 401 with no upstream call", func(t *testing.T) {
		cms := new(mockCMS)
		body, _ := json.Marshal(map[string]string{"content": "hi", "topic": "food"})
		req := httptest.NewRequest(http.MethodPost, "/forum/posts", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		newHandler(cms).CreatePost(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		cms.AssertNotCalled(t, "Do", mock.Anything, mock.Anything)
	})

	t.Run("valid post is forwarded with the caller token", func(t *testing.T) {
		cms := new(mockCMS)
		cms.On("Do", mock.Anything, mock.MatchedBy(func(req strapi.Request) bool {
			return req.Method == http.MethodPost && req.Bearer == "user-token"
		})).Return(&strapi.Response{StatusCode: http.StatusOK, Body: []byte(`{"data":{"id":7}}`)}, nil)

		body, _ := json.Marshal(map[string]string{"content": "hi", "topic": "food"})
		req := httptest.NewRequest(http.MethodPost, "/forum/posts", bytes.NewBuffer(body))
		req.Header.Set("Authorization", "Bearer user-token")
		w := httptest.NewRecorder()

		newHandler(cms).CreatePost(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		cms.AssertExpectations(t)
	})
}

func TestGetTopic(t *testing.T) {
	t.Run("upstream 404 becomes a local 500", func(t *testing.T) {
		cms := new(mockCMS)
		cms.On("Do", mock.Anything, mock.Anything).
			Return(&strapi.Response{StatusCode: http.StatusNotFound, Body: []byte(`{}`)}, nil)

		req := httptest.NewRequest(http.MethodGet, "/forum/topics/99", nil)
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", "99")
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
		w := httptest.NewRecorder()

		newHandler(cms).GetTopic(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "Failed to fetch topic")
	})
}

func TestAddReaction(t *testing.T) {
	submit := func(h Handler, payload map[string]string, bearer string) *httptest.ResponseRecorder {
		body, _ := json.Marshal(payload)
		req := httptest.NewRequest(http.MethodPost, "/forum-reactions/add", bytes.NewBuffer(body))
		if bearer != "" {
			req.Header.Set("Authorization", "Bearer "+bearer)
		}
		w := httptest.NewRecorder()
		h.AddReaction(w, req)
		return w
	}

	t.Run("each allowed type is forwarded", func(t *testing.T) {
		for _, typ := range []string{"like", "love", "laugh", "wow", "sad", "angry"} {
			cms := new(mockCMS)
			cms.On("Do", mock.Anything, mock.Anything).
				Return(&strapi.Response{StatusCode: http.StatusOK, Body: []byte(`{"data":{}}`)}, nil)

			w := submit(newHandler(cms), map[string]string{"type": typ, "postId": "42"}, "tok")

			assert.Equal(t, http.StatusOK, w.Code, "type %q", typ)
			cms.AssertNumberOfCalls(t, "Do", 1)
		}
	})

	t.Run("unknown type yields 400 and zero upstream calls", func(t *testing.T) {
		cms := new(mockCMS)
		w := submit(newHandler(cms), map[string]string{"type": "meh", "postId": "42"}, "tok")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		cms.AssertNotCalled(t, "Do", mock.Anything, mock.Anything)
	})

	t.Run("missing target yields 400", func(t *testing.T) {
		cms := new(mockCMS)
		w := submit(newHandler(cms), map[string]string{"type": "like"}, "tok")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		cms.AssertNotCalled(t, "Do", mock.Anything, mock.Anything)
	})

	t.Run("missing bearer header yields 401", func(t *testing.T) {
		cms := new(mockCMS)
		w := submit(newHandler(cms), map[string]string{"type": "like", "postId": "42"}, "")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		cms.AssertNotCalled(t, "Do", mock.Anything, mock.Anything)
	})
}
