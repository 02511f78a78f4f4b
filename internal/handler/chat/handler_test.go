package chat

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	model "github.com/paperchat/paperchat/internal/model/chat"
	chatservice "github.com/paperchat/paperchat/internal/service/chat"
	"github.com/paperchat/paperchat/internal/store"
)

func setupRouter(t *testing.T) *chi.Mux {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "handler.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	r := chi.NewRouter()
	New(chatservice.NewService(st, zap.NewNop())).RegisterRoutes(r)
	return r
}

func createChat(t *testing.T, r *chi.Mux, isPublic bool) string {
	t.Helper()
	payload, _ := json.Marshal(map[string]bool{"is_public": isPublic})

	req := httptest.NewRequest(http.MethodPost, "/chats", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}

	var body struct {
		ChatID string `json:"chat_id"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if body.ChatID == "" {
		t.Fatal("expected a chat_id")
	}
	return body.ChatID
}

func TestCreateChat(t *testing.T) {
	r := setupRouter(t)
	createChat(t, r, false)
}

func TestGetHistoryUnknownChat(t *testing.T) {
	r := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/chats/unknown-id", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestSaveMessageAndGetHistory(t *testing.T) {
	r := setupRouter(t)
	chatID := createChat(t, r, false)

	messages := []map[string]string{
		{"content": "find papers on quantization", "role": model.RoleUser},
		{"content": "- Paper A\n", "role": model.RoleAssistant},
	}
	for _, msg := range messages {
		payload, _ := json.Marshal(msg)
		req := httptest.NewRequest(http.MethodPost, "/chats/"+chatID+"/messages", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		if resp.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/chats/"+chatID, nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body struct {
		Messages []model.Message `json:"messages"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if len(body.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(body.Messages))
	}
	if body.Messages[0].Role != model.RoleUser || body.Messages[1].Role != model.RoleAssistant {
		t.Fatalf("unexpected roles: %+v", body.Messages)
	}
}

func TestSaveMessageRejectsUnknownRole(t *testing.T) {
	r := setupRouter(t)
	chatID := createChat(t, r, false)

	payload, _ := json.Marshal(map[string]string{"content": "x", "role": "narrator"})
	req := httptest.NewRequest(http.MethodPost, "/chats/"+chatID+"/messages", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestPublishShowsChatInPublicListing(t *testing.T) {
	r := setupRouter(t)
	chatID := createChat(t, r, false)

	payload, _ := json.Marshal(map[string]bool{"is_public": true})
	req := httptest.NewRequest(http.MethodPost, "/chats/"+chatID, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/chats/public", nil)
	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body struct {
		Chats []model.PublicChat `json:"chats"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode public listing: %v", err)
	}

	found := false
	for _, pc := range body.Chats {
		if pc.ID == chatID {
			found = true
		}
	}
	if !found {
		t.Fatal("published chat missing from public listing")
	}
}
