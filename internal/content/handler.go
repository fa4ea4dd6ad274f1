// Package content proxies the article, analytics, sponsorship and search
// resources of the CMS. Handlers here never fall back to mock data; an
// unavailable upstream is reported, not papered over.
package content

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

// trackEventRequest is a fire-and-acknowledge analytics write
// @Name TrackEventRequest
type trackEventRequest struct {
	Event      string         `json:"event" validate:"required" example:"page_view"`
	Page       string         `json:"page,omitempty" example:"/nightlife"`
	Properties map[string]any `json:"properties,omitempty"`
}

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
	ListArticles(w http.ResponseWriter, r *http.Request)
	GetArticle(w http.ResponseWriter, r *http.Request)
	TrackEvent(w http.ResponseWriter, r *http.Request)
	ListSponsorships(w http.ResponseWriter, r *http.Request)
	SearchUsers(w http.ResponseWriter, r *http.Request)
	SearchFacets(w http.ResponseWriter, r *http.Request)
}

func NewHandler(cms CMS, logger *slog.Logger) Handler {
	return &handler{
		cms:      cms,
		logger:   logger,
		validate: validator.New(),
	}
}

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

// ListArticles godoc
// @Summary      List articles
// @Tags         content
// @Produce      json
// @Param        page      query  int  false  "Page number"  default(1)
// @Param        pageSize  query  int  false  "Page size"    default(20)
// @Success      200  {object}  map[string]any
// @Router       /api/v1/articles [get]
func (h *handler) ListArticles(w http.ResponseWriter, r *http.Request) {
	q := url.Values{}
	q.Set("page", queryOr(r, "page", defaultPage))
	q.Set("pageSize", queryOr(r, "pageSize", defaultPageSize))
	if category := r.URL.Query().Get("category"); category != "" {
		q.Set("category", category)
	}

	resp, err := h.cms.Do(r.Context(), strapi.Request{
		Method:   http.MethodGet,
		Path:     "/api/articles",
		Query:    q,
		Resource: "articles",
	})
	h.relay(w, resp, err)
}

// GetArticle godoc
// @Summary      Fetch a single article by slug
// @Tags         content
// @Produce      json
// @Param        slug  path  string  true  "Article slug"
// @Success      200  {object}  map[string]any
// @Router       /api/v1/articles/{slug} [get]
func (h *handler) GetArticle(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	resp, err := h.cms.Do(r.Context(), strapi.Request{
		Method:   http.MethodGet,
		Path:     "/api/articles/" + slug,
		Resource: "articles",
	})
	h.relay(w, resp, err)
}

// TrackEvent godoc
// @Summary      Record an analytics event
// @Description  Requires an event name; the payload is forwarded to the CMS analytics collection.
// @Tags         content
// @Accept       json
// @Produce      json
// @Param        request  body  trackEventRequest  true  "Event"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  json.ErrorResponse "Missing event name"
// @Router       /api/v1/analytics/track [post]
func (h *handler) TrackEvent(w http.ResponseWriter, r *http.Request) {
	var req trackEventRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteError(w, http.StatusBadRequest, constants.ErrInvalidJSON)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		json.WriteError(w, http.StatusBadRequest, "event is required")
		return
	}

	resp, err := h.cms.Do(r.Context(), strapi.Request{
		Method:   http.MethodPost,
		Path:     "/api/analytics-events",
		Body:     req,
		Resource: "analytics",
	})
	h.relay(w, resp, err)
}

// ListSponsorships godoc
// @Summary      List active sponsorships
// @Tags         content
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /api/v1/sponsorships [get]
func (h *handler) ListSponsorships(w http.ResponseWriter, r *http.Request) {
	resp, err := h.cms.Do(r.Context(), strapi.Request{
		Method:   http.MethodGet,
		Path:     "/api/sponsorships",
		Resource: "sponsorships",
	})
	h.relay(w, resp, err)
}

// SearchUsers godoc
// @Summary      Search portal users
// @Description  Requires a bearer header (route-level); the CMS performs verification.
// @Tags         content
// @Produce      json
// @Param        q  query  string  true  "Search term"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  json.ErrorResponse "Empty query"
// @Failure      401  {object}  json.ErrorResponse
// @Router       /api/v1/search/users [get]
func (h *handler) SearchUsers(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")
	if term == "" {
		json.WriteError(w, http.StatusBadRequest, "q query parameter is required")
		return
	}

	bearer, _ := middlewares.BearerToken(r)
	q := url.Values{}
	q.Set("q", term)

	resp, err := h.cms.Do(r.Context(), strapi.Request{
		Method:   http.MethodGet,
		Path:     "/api/users/search",
		Query:    q,
		Bearer:   bearer,
		Resource: "user_search",
	})
	h.relay(w, resp, err)
}

// SearchFacets godoc
// @Summary      Enumerate search facets
// @Description  Fixed facet lists; no upstream call is involved. Served in the legacy bare data shape.
// @Tags         content
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /api/v1/search/facets [get]
func (h *handler) SearchFacets(w http.ResponseWriter, r *http.Request) {
	json.Write(w, http.StatusOK, map[string]any{"data": facets})
}

func queryOr(r *http.Request, key, fallback string) string {
	if v := r.URL.Query().Get(key); v != "" {
		return v
	}
	return fallback
}
