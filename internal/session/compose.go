package session

import (
	"strings"

	"github.com/paperchat/paperchat/internal/model/paper"
)

// Compose merges free text with the active facet filters into one search
// request. It fails locally with ErrEmptyQuery for blank text; callers must
// not issue a search in that case. Empty filter fields stay empty and are
// omitted from the outgoing request by the backend client.
func Compose(freeText string, filters paper.SearchFilters) (paper.SearchRequest, error) {
	if strings.TrimSpace(freeText) == "" {
		return paper.SearchRequest{}, ErrEmptyQuery
	}

	sortBy := filters.SortBy
	if sortBy == "" {
		sortBy = paper.SortRelevance
	}

	return paper.SearchRequest{
		Query:      freeText,
		Categories: joinCategories(filters.Categories),
		DateFrom:   filters.DateFrom,
		DateTo:     filters.DateTo,
		Authors:    filters.Authors,
		SortBy:     sortBy,
	}, nil
}

func joinCategories(categories []string) string {
	kept := make([]string, 0, len(categories))
	for _, cat := range categories {
		if cat = strings.TrimSpace(cat); cat != "" {
			kept = append(kept, cat)
		}
	}
	return strings.Join(kept, ",")
}
