package forum

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/pattaya1/pattaya1_backend/internal/middlewares"
	"github.com/pattaya1/pattaya1_backend/internal/strapi"
	"github.com/pattaya1/pattaya1_backend/pkg/constants"
	"github.com/pattaya1/pattaya1_backend/pkg/json"
)

const (
	defaultPage     = "1"
	defaultPageSize = "20"
)

// CMS abstracts the strapi client for testability
type CMS interface {
	Do(ctx context.Context, req strapi.Request) (*strapi.Response, error)
}

type handler struct {
	cms      CMS
	logger   *slog.Logger
	validate *validator.Validate
}

type Handler interface {
	ListPosts(w http.ResponseWriter, r *http.Request)
	CreatePost(w http.ResponseWriter, r *http.Request)
	ListTopics(w http.ResponseWriter, r *http.Request)
	GetTopic(w http.ResponseWriter, r *http.Request)
	AddReaction(w http.ResponseWriter, r *http.Request)
}

func NewHandler(cms CMS, logger *slog.Logger) Handler {
	return &handler{
		cms:      cms,
		logger:   logger,
		validate: validator.New(),
	}
}

// relay surfaces the upstream result: success bodies pass through unchanged,
// upstream error statuses keep their code behind a generic message.
func (h *handler) relay(w http.ResponseWriter, resp *strapi.Response, err error) {
	if err != nil {
		h.logger.Error("upstream call failed", "error", err)
		json.WriteError(w, http.StatusInternalServerError, constants.ErrUpstreamUnavailable)
		return
	}
	if !resp.OK() {
		json.WriteError(w, resp.StatusCode, constants.ErrUpstreamUnavailable)
		return
	}
	json.WriteRaw(w, resp.StatusCode, resp.Body)
}

// ListPosts godoc
// @Summary      List forum posts
// @Description  Proxies the CMS post listing. Pagination defaults to page=1, limit=20 and is forwarded verbatim.
// @Tags         forum
// @Produce      json
// @Param        topic  query  string  false  "Filter by topic slug"
// @Param        page   query  int     false  "Page number"  default(1)
// @Param        limit  query  int     false  "Page size"    default(20)
// @Success      200  {object}  map[string]any
// @Router       /api/v1/forum/posts [get]
func (h *handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	q := url.Values{}
	if topic := r.URL.Query().Get("topic"); topic != "" {
		q.Set("topic", topic)
	}
	q.Set("page", queryOr(r, "page", defaultPage))
	q.Set("limit", queryOr(r, "limit", defaultPageSize))

	resp, err := h.cms.Do(r.Context(), strapi.Request{
		Method:   http.MethodGet,
		Path:     "/api/forum-posts",
		Query:    q,
		Resource: "forum_posts",
	})
	h.relay(w, resp, err)
}

// CreatePost godoc
// @Summary      Create a forum post
// @Description  Validates content and topic locally, then forwards the write with the caller's bearer token. Token verification is the CMS's job.
// @Tags         forum
// @Accept       json
// @Produce      json
// @Param        request  body  createPostRequest  true  "Post content"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  json.ErrorResponse "Missing content or topic"
// @Failure      401  {object}  json.ErrorResponse "No Authorization header"
// @Router       /api/v1/forum/posts [post]
func (h *handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	bearer, ok := middlewares.BearerToken(r)
	if !ok {
		json.WriteError(w, http.StatusUnauthorized, constants.ErrMissingAuthHeader)
		return
	}

	var req createPostRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteError(w, http.StatusBadRequest, constants.ErrInvalidJSON)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		json.WriteError(w, http.StatusBadRequest, "content and topic are required")
		return
	}

	resp, err := h.cms.Do(r.Context(), strapi.Request{
		Method:   http.MethodPost,
		Path:     "/api/forum-posts",
		Body:     req,
		Bearer:   bearer,
		Resource: "forum_posts",
	})
	h.relay(w, resp, err)
}

// ListTopics godoc
// @Summary      List forum topics
// @Tags         forum
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /api/v1/forum/topics [get]
func (h *handler) ListTopics(w http.ResponseWriter, r *http.Request) {
	resp, err := h.cms.Do(r.Context(), strapi.Request{
		Method:   http.MethodGet,
		Path:     "/api/forum-topics",
		Resource: "forum_topics",
	})
	h.relay(w, resp, err)
}

// GetTopic godoc
// @Summary      Fetch one forum topic
// @Description  Any upstream failure, including a 404, is reported as a 500 of this service.
// @Tags         forum
// @Produce      json
// @Param        id  path  string  true  "Topic id"
// @Success      200  {object}  map[string]any
// @Failure      500  {object}  json.ErrorResponse
// @Router       /api/v1/forum/topics/{id} [get]
func (h *handler) GetTopic(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	resp, err := h.cms.Do(r.Context(), strapi.Request{
		Method:   http.MethodGet,
		Path:     "/api/forum-topics/" + id,
		Resource: "forum_topics",
	})
	if err != nil || !resp.OK() {
		if err != nil {
			h.logger.Error("topic fetch failed", "id", id, "error", err)
		}
		json.WriteError(w, http.StatusInternalServerError, "Failed to fetch topic")
		return
	}
	json.WriteRaw(w, resp.StatusCode, resp.Body)
}

// AddReaction godoc
// @Summary      React to a post or topic
// @Description  Type must be one of like, love, laugh, wow, sad, angry. Invalid types are rejected before any upstream call.
// @Tags         forum
// @Accept       json
// @Produce      json
// @Param        request  body  addReactionRequest  true  "Reaction"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  json.ErrorResponse "Unknown reaction type or missing target"
// @Failure      401  {object}  json.ErrorResponse "No Authorization header"
// @Router       /api/v1/forum-reactions/add [post]
func (h *handler) AddReaction(w http.ResponseWriter, r *http.Request) {
	bearer, ok := middlewares.BearerToken(r)
	if !ok {
		json.WriteError(w, http.StatusUnauthorized, constants.ErrMissingAuthHeader)
		return
	}

	var req addReactionRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteError(w, http.StatusBadRequest, constants.ErrInvalidJSON)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		json.WriteError(w, http.StatusBadRequest, "reaction type must be one of like, love, laugh, wow, sad, angry")
		return
	}
	if req.PostID == "" && req.TopicID == "" {
		json.WriteError(w, http.StatusBadRequest, "postId or topicId is required")
		return
	}

	resp, err := h.cms.Do(r.Context(), strapi.Request{
		Method:   http.MethodPost,
		Path:     "/api/forum-reactions",
		Body:     req,
		Bearer:   bearer,
		Resource: "forum_reactions",
	})
	h.relay(w, resp, err)
}

func queryOr(r *http.Request, key, fallback string) string {
	if v := r.URL.Query().Get(key); v != "" {
		return v
	}
	return fallback
}
