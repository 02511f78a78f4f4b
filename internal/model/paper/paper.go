package paper

// Paper is the read-only result entity returned by the search collaborator.
// Dates are ISO-8601 strings as they arrive on the wire.
type Paper struct {
	Title      string   `json:"title"`
	Authors    []string `json:"authors"`
	Summary    string   `json:"summary"`
	PDFURL     string   `json:"pdf_url"`
	Published  string   `json:"published"`
	Updated    string   `json:"updated,omitempty"`
	ArxivID    string   `json:"arxiv_id"`
	Categories []string `json:"categories"`
	Comment    string   `json:"comment,omitempty"`
	JournalRef string   `json:"journal_ref,omitempty"`
	DOI        string   `json:"doi,omitempty"`
}
