package search

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/paperchat/paperchat/internal/model/paper"
)

// ErrBadQuery reports a query the arXiv API rejected as malformed.
var ErrBadQuery = errors.New("search query rejected")

// Config carries the arXiv API settings.
type Config struct {
	BaseURL    string
	MaxResults int
	Timeout    time.Duration
}

// Client issues paper searches against the arXiv Atom API.
type Client struct {
	baseURL    string
	maxResults int
	httpClient *http.Client
	log        *zap.Logger
}

// NewClient builds a search client from configuration.
func NewClient(cfg Config, log *zap.Logger) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		maxResults: cfg.MaxResults,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        log,
	}
}

// Search runs one query and returns papers in the order arXiv ranked them.
func (c *Client) Search(ctx context.Context, req paper.SearchRequest) ([]paper.Paper, error) {
	params := url.Values{}
	params.Set("search_query", BuildQuery(req))
	params.Set("start", "0")
	params.Set("max_results", strconv.Itoa(c.maxResults))
	params.Set("sortBy", SortCriterion(req.SortBy))
	params.Set("sortOrder", "descending")

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build arxiv request: %w", err)
	}

	started := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("query arxiv: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusBadRequest {
		return nil, ErrBadQuery
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("query arxiv: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read arxiv response: %w", err)
	}

	papers, err := parseFeed(body)
	if err != nil {
		return nil, err
	}

	c.log.Info("arxiv search completed",
		zap.String("query", req.Query),
		zap.Int("results", len(papers)),
		zap.Duration("elapsed", time.Since(started)))
	return papers, nil
}

type atomFeed struct {
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	ID         string   `xml:"id"`
	Title      string   `xml:"title"`
	Summary    string   `xml:"summary"`
	Published  string   `xml:"published"`
	Updated    string   `xml:"updated"`
	Authors    []author `xml:"author"`
	Links      []link   `xml:"link"`
	Categories []struct {
		Term string `xml:"term,attr"`
	} `xml:"category"`
	Comment    string `xml:"comment"`
	JournalRef string `xml:"journal_ref"`
	DOI        string `xml:"doi"`
}

type author struct {
	Name string `xml:"name"`
}

type link struct {
	Href  string `xml:"href,attr"`
	Rel   string `xml:"rel,attr"`
	Title string `xml:"title,attr"`
}

func parseFeed(body []byte) ([]paper.Paper, error) {
	var feed atomFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("decode arxiv feed: %w", err)
	}

	papers := make([]paper.Paper, 0, len(feed.Entries))
	for _, entry := range feed.Entries {
		p := paper.Paper{
			Title:      collapseWhitespace(entry.Title),
			Summary:    strings.TrimSpace(entry.Summary),
			Published:  entry.Published,
			ArxivID:    arxivIDFromEntryID(entry.ID),
			Comment:    strings.TrimSpace(entry.Comment),
			JournalRef: strings.TrimSpace(entry.JournalRef),
			DOI:        strings.TrimSpace(entry.DOI),
		}
		// arXiv echoes published as updated for never-revised papers;
		// surface updated only when it differs.
		if entry.Updated != entry.Published {
			p.Updated = entry.Updated
		}
		for _, a := range entry.Authors {
			p.Authors = append(p.Authors, strings.TrimSpace(a.Name))
		}
		for _, c := range entry.Categories {
			p.Categories = append(p.Categories, c.Term)
		}
		for _, l := range entry.Links {
			if l.Title == "pdf" {
				p.PDFURL = l.Href
				break
			}
		}
		papers = append(papers, p)
	}
	return papers, nil
}

// arxivIDFromEntryID extracts "2101.00001v1" from an Atom entry id like
// "http://arxiv.org/abs/2101.00001v1".
func arxivIDFromEntryID(entryID string) string {
	if idx := strings.LastIndex(entryID, "/"); idx >= 0 {
		return entryID[idx+1:]
	}
	return entryID
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
