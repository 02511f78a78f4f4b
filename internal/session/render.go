package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/paperchat/paperchat/internal/model/paper"
)

// RenderPapers formats search results into the assistant reply text. Pure
// and deterministic: the same paper list always yields identical output.
// Zero papers render as the empty string.
func RenderPapers(papers []paper.Paper) string {
	blocks := make([]string, 0, len(papers))
	for _, p := range papers {
		var b strings.Builder
		fmt.Fprintf(&b, "- %s\n", p.Title)
		fmt.Fprintf(&b, "  Authors: %s\n", strings.Join(p.Authors, ", "))
		fmt.Fprintf(&b, "  Categories: %s\n", strings.Join(p.Categories, ", "))
		fmt.Fprintf(&b, "  Published: %s\n", displayDate(p.Published))
		if p.Updated != "" {
			fmt.Fprintf(&b, "  Updated: %s\n", displayDate(p.Updated))
		}
		if p.DOI != "" {
			fmt.Fprintf(&b, "  DOI: %s\n", p.DOI)
		}
		if p.JournalRef != "" {
			fmt.Fprintf(&b, "  Journal Reference: %s\n", p.JournalRef)
		}
		fmt.Fprintf(&b, "  arXiv ID: %s\n", p.ArxivID)
		fmt.Fprintf(&b, "  PDF: %s\n", p.PDFURL)
		fmt.Fprintf(&b, "  Summary: %s\n", p.Summary)
		if p.Comment != "" {
			fmt.Fprintf(&b, "  Comment: %s\n", p.Comment)
		}
		blocks = append(blocks, b.String())
	}
	return strings.Join(blocks, "\n")
}

// displayDate renders an ISO-8601 timestamp as a short human date. Values
// that fail to parse pass through untouched so rendering stays total.
func displayDate(iso string) string {
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return iso
	}
	return t.Format("Jan 2, 2006")
}
