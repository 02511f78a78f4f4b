package paper

// Sort orders accepted by the search endpoint.
const (
	SortRelevance   = "relevance"
	SortLastUpdated = "lastUpdated"
	SortSubmitted   = "submitted"
)

// SearchFilters narrows a free-text query. Zero values mean unconstrained;
// Authors is comma-separated text as typed by the user.
type SearchFilters struct {
	Categories []string
	DateFrom   string
	DateTo     string
	Authors    string
	SortBy     string
}

// SearchRequest is a composed search. Empty optional fields are omitted
// from the outgoing request entirely rather than sent as empty strings.
type SearchRequest struct {
	Query      string
	Categories string
	DateFrom   string
	DateTo     string
	Authors    string
	SortBy     string
}
