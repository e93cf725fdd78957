package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/tendant/signed-assets/pkg/signedassets"
)

// RewriteContentRequest is the request body for rewriting a rendered fragment
type RewriteContentRequest struct {
	Content string `json:"content"`
}

// RewriteContentResponse is the response body for a rewritten fragment
type RewriteContentResponse struct {
	Content string `json:"content"`
}

// RewriteURLRequest is the request body for rewriting a single URL value
type RewriteURLRequest struct {
	URL string `json:"url"`
}

// RewriteURLResponse is the response body for a rewritten URL value
type RewriteURLResponse struct {
	URL string `json:"url"`
}

// RewriteHandler exposes the rewrite hook points over HTTP for the host
// render system. Signing failures are invisible at this layer by design:
// the pipeline fails open, so a well-formed request always gets a 200 with
// the (possibly unchanged) text back.
type RewriteHandler struct {
	service signedassets.Service
}

// NewRewriteHandler creates a new rewrite handler
func NewRewriteHandler(service signedassets.Service) *RewriteHandler {
	return &RewriteHandler{service: service}
}

// Routes returns the routes for the rewrite hook points
func (h *RewriteHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/rewrite", h.RewriteContent)
	r.Post("/rewrite-url", h.RewriteURL)

	return r
}

// RewriteContent rewrites asset references inside a rendered text fragment
func (h *RewriteHandler) RewriteContent(w http.ResponseWriter, r *http.Request) {
	var req RewriteContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	out := h.service.RewriteContent(r.Context(), req.Content)

	render.Status(r, http.StatusOK)
	render.JSON(w, r, RewriteContentResponse{Content: out})
}

// RewriteURL rewrites a single structured URL value
func (h *RewriteHandler) RewriteURL(w http.ResponseWriter, r *http.Request) {
	var req RewriteURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	out := h.service.RewriteURL(r.Context(), req.URL)

	render.Status(r, http.StatusOK)
	render.JSON(w, r, RewriteURLResponse{URL: out})
}
