package search

import (
	"fmt"
	"strings"

	"github.com/paperchat/paperchat/internal/model/paper"
)

// BuildQuery lowers a composed search request into the fielded query string
// the arXiv API expects. Free text stays first; each active filter is
// AND-joined onto it.
func BuildQuery(req paper.SearchRequest) string {
	query := req.Query

	var dateFilter []string
	if req.DateFrom != "" {
		dateFilter = append(dateFilter, fmt.Sprintf("submittedDate:[%s*]", req.DateFrom))
	}
	if req.DateTo != "" {
		dateFilter = append(dateFilter, fmt.Sprintf("submittedDate:[* TO %s]", req.DateTo))
	}
	if len(dateFilter) > 0 {
		query += " AND " + strings.Join(dateFilter, " AND ")
	}

	if req.Authors != "" {
		var authorFilter []string
		for _, author := range strings.Split(req.Authors, ",") {
			if author = strings.TrimSpace(author); author != "" {
				authorFilter = append(authorFilter, fmt.Sprintf("au:%q", author))
			}
		}
		if len(authorFilter) > 0 {
			query += fmt.Sprintf(" AND (%s)", strings.Join(authorFilter, " OR "))
		}
	}

	if req.Categories != "" {
		var catFilter []string
		for _, cat := range strings.Split(req.Categories, ",") {
			if cat = strings.TrimSpace(cat); cat != "" {
				catFilter = append(catFilter, "cat:"+cat)
			}
		}
		if len(catFilter) > 0 {
			query += fmt.Sprintf(" AND (%s)", strings.Join(catFilter, " OR "))
		}
	}

	return query
}

// SortCriterion maps the API's sort_by values onto arXiv sort criteria.
// Unknown values fall back to relevance, the API default.
func SortCriterion(sortBy string) string {
	switch sortBy {
	case paper.SortLastUpdated:
		return "lastUpdatedDate"
	case paper.SortSubmitted:
		return "submittedDate"
	default:
		return "relevance"
	}
}
