package search

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/paperchat/paperchat/internal/model/paper"
	searchService "github.com/paperchat/paperchat/internal/service/search"
	"github.com/paperchat/paperchat/pkg/utils"
)

// Searcher runs composed paper searches against the upstream index.
type Searcher interface {
	Search(ctx context.Context, req paper.SearchRequest) ([]paper.Paper, error)
}

// Handler exposes paper search and the category catalog over HTTP.
type Handler struct {
	searcher Searcher
}

// New creates the search handler.
func New(searcher Searcher) *Handler {
	return &Handler{searcher: searcher}
}

// RegisterRoutes mounts the search endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/search", h.handleSearch)
	r.Get("/categories", h.handleCategories)
}

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	query := strings.TrimSpace(params.Get("query"))
	if query == "" {
		utils.RespondError(w, http.StatusBadRequest, "query parameter is required")
		return
	}

	req := paper.SearchRequest{
		Query:      query,
		Categories: params.Get("categories"),
		DateFrom:   params.Get("date_from"),
		DateTo:     params.Get("date_to"),
		Authors:    params.Get("authors"),
		SortBy:     params.Get("sort_by"),
	}

	papers, err := h.searcher.Search(r.Context(), req)
	if err != nil {
		if errors.Is(err, searchService.ErrBadQuery) {
			utils.RespondError(w, http.StatusBadRequest, "search query rejected by upstream")
			return
		}
		utils.RespondError(w, http.StatusBadGateway, "search unavailable")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string][]paper.Paper{"papers": papers})
}

func (h *Handler) handleCategories(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]map[string]string{
		"categories": searchService.Categories(),
	})
}
