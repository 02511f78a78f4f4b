package search

import (
	"testing"

	"github.com/paperchat/paperchat/internal/model/paper"
)

func TestBuildQueryFreeTextOnly(t *testing.T) {
	got := BuildQuery(paper.SearchRequest{Query: "attention is all you need"})
	if got != "attention is all you need" {
		t.Fatalf("unexpected query: %q", got)
	}
}

func TestBuildQueryAllFilters(t *testing.T) {
	req := paper.SearchRequest{
		Query:      "graph neural networks",
		Categories: "cs.LG, stat.ML",
		DateFrom:   "2023-01-01",
		DateTo:     "2024-01-01",
		Authors:    "Kipf, Welling",
	}

	want := `graph neural networks` +
		` AND submittedDate:[2023-01-01*] AND submittedDate:[* TO 2024-01-01]` +
		` AND (au:"Kipf" OR au:"Welling")` +
		` AND (cat:cs.LG OR cat:stat.ML)`
	if got := BuildQuery(req); got != want {
		t.Fatalf("unexpected query:\ngot  %q\nwant %q", got, want)
	}
}

func TestBuildQuerySkipsBlankListEntries(t *testing.T) {
	req := paper.SearchRequest{
		Query:      "diffusion",
		Categories: "cs.CV,,",
		Authors:    " , ",
	}

	want := "diffusion AND (cat:cs.CV)"
	if got := BuildQuery(req); got != want {
		t.Fatalf("unexpected query:\ngot  %q\nwant %q", got, want)
	}
}

func TestSortCriterion(t *testing.T) {
	cases := map[string]string{
		paper.SortRelevance:   "relevance",
		paper.SortLastUpdated: "lastUpdatedDate",
		paper.SortSubmitted:   "submittedDate",
		"":                    "relevance",
		"bogus":               "relevance",
	}
	for in, want := range cases {
		if got := SortCriterion(in); got != want {
			t.Fatalf("SortCriterion(%q) = %q, want %q", in, got, want)
		}
	}
}
