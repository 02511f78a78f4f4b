// Package client implements the session.Backend contract over HTTP. All
// endpoints resolve against a single configured base URL.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/paperchat/paperchat/internal/model/chat"
	"github.com/paperchat/paperchat/internal/model/paper"
	"github.com/paperchat/paperchat/internal/session"
)

const defaultTimeout = 30 * time.Second

// Config carries the backend endpoint settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client talks to the paperchat backend API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New builds a client for the given backend endpoint.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// CreateChat provisions a new session and returns its id.
func (c *Client) CreateChat(ctx context.Context, isPublic bool) (string, error) {
	var out struct {
		ChatID string `json:"chat_id"`
	}
	err := c.post(ctx, "/chats", map[string]bool{"is_public": isPublic}, &out)
	if err != nil {
		return "", err
	}
	if out.ChatID == "" {
		return "", fmt.Errorf("%w: backend returned no chat_id", session.ErrInvalid)
	}
	return out.ChatID, nil
}

// ChatHistory fetches the full persisted history for a session.
func (c *Client) ChatHistory(ctx context.Context, chatID string) ([]chat.Message, error) {
	var out struct {
		Messages []chat.Message `json:"messages"`
	}
	if err := c.get(ctx, "/chats/"+url.PathEscape(chatID), &out); err != nil {
		return nil, err
	}
	return out.Messages, nil
}

// AppendMessage persists one message to a session.
func (c *Client) AppendMessage(ctx context.Context, chatID string, msg chat.Message) error {
	payload := map[string]string{"content": msg.Content, "role": msg.Role}
	return c.post(ctx, "/chats/"+url.PathEscape(chatID)+"/messages", payload, nil)
}

// SetVisibility updates the public flag of a session.
func (c *Client) SetVisibility(ctx context.Context, chatID string, isPublic bool) error {
	return c.post(ctx, "/chats/"+url.PathEscape(chatID), map[string]bool{"is_public": isPublic}, nil)
}

// PublicChats lists sessions published for public viewing.
func (c *Client) PublicChats(ctx context.Context) ([]chat.PublicChat, error) {
	var out struct {
		Chats []chat.PublicChat `json:"chats"`
	}
	if err := c.get(ctx, "/chats/public", &out); err != nil {
		return nil, err
	}
	return out.Chats, nil
}

// Search runs a composed paper search. Unset optional fields are omitted
// from the query string entirely.
func (c *Client) Search(ctx context.Context, req paper.SearchRequest) ([]paper.Paper, error) {
	params := url.Values{}
	params.Set("query", req.Query)
	if req.Categories != "" {
		params.Set("categories", req.Categories)
	}
	if req.DateFrom != "" {
		params.Set("date_from", req.DateFrom)
	}
	if req.DateTo != "" {
		params.Set("date_to", req.DateTo)
	}
	if req.Authors != "" {
		params.Set("authors", req.Authors)
	}
	if req.SortBy != "" {
		params.Set("sort_by", req.SortBy)
	}

	var out struct {
		Papers []paper.Paper `json:"papers"`
	}
	if err := c.get(ctx, "/search?"+params.Encode(), &out); err != nil {
		return nil, err
	}
	return out.Papers, nil
}

// Categories fetches the category code to display name mapping.
func (c *Client) Categories(ctx context.Context) (map[string]string, error) {
	var out struct {
		Categories map[string]string `json:"categories"`
	}
	if err := c.get(ctx, "/categories", &out); err != nil {
		return nil, err
	}
	return out.Categories, nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", session.ErrUnavailable, err)
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, payload interface{}, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: %v", session.ErrInvalid, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", session.ErrUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

// do executes the request and maps failures onto the session error
// taxonomy: 404 to NotFound, other 4xx to Invalid, everything else that is
// not a 2xx (including transport errors) to Unavailable.
func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", session.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		// fall through to decode
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", session.ErrNotFound, errorMessage(resp.Body))
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return fmt.Errorf("%w: %s", session.ErrInvalid, errorMessage(resp.Body))
	default:
		return fmt.Errorf("%w: status %d", session.ErrUnavailable, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", session.ErrUnavailable, err)
	}
	return nil
}

// errorMessage pulls the error string out of the backend's JSON error
// envelope, falling back to a generic label.
func errorMessage(body io.Reader) string {
	var envelope struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(body).Decode(&envelope); err == nil && envelope.Error != "" {
		return envelope.Error
	}
	return "request failed"
}
