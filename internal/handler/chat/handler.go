package chat

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/paperchat/paperchat/internal/model/chat"
	chatService "github.com/paperchat/paperchat/internal/service/chat"
	"github.com/paperchat/paperchat/pkg/utils"
)

// Handler exposes session and message persistence over HTTP.
type Handler struct {
	chatSvc *chatService.Service
}

// New creates the chat handler.
func New(chatSvc *chatService.Service) *Handler {
	return &Handler{chatSvc: chatSvc}
}

// RegisterRoutes mounts the chat endpoints. The static /chats/public route
// is registered alongside the parameterized ones; chi matches it first.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chats", h.handleCreateChat)
	r.Get("/chats/public", h.handleListPublic)
	r.Get("/chats/{chatID}", h.handleGetHistory)
	r.Post("/chats/{chatID}", h.handleUpdateVisibility)
	r.Post("/chats/{chatID}/messages", h.handleSaveMessage)
}

func (h *Handler) handleCreateChat(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		IsPublic bool `json:"is_public"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.chatSvc.CreateSession(r.Context(), payload.IsPublic)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to create chat")
		return
	}

	utils.RespondJSON(w, http.StatusCreated, map[string]string{"chat_id": session.ID})
}

func (h *Handler) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	chatID := chi.URLParam(r, "chatID")

	messages, err := h.chatSvc.Transcript(r.Context(), chatID)
	if errors.Is(err, chatService.ErrSessionNotFound) {
		utils.RespondError(w, http.StatusNotFound, "chat not found")
		return
	}
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to load chat history")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string][]chat.Message{"messages": messages})
}

func (h *Handler) handleSaveMessage(w http.ResponseWriter, r *http.Request) {
	chatID := chi.URLParam(r, "chatID")

	var payload struct {
		Content string `json:"content"`
		Role    string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	message := chat.Message{Content: payload.Content, Role: payload.Role}
	if err := h.chatSvc.SaveMessage(r.Context(), chatID, message); err != nil {
		switch {
		case errors.Is(err, chatService.ErrSessionNotFound):
			utils.RespondError(w, http.StatusNotFound, "chat not found")
		case errors.Is(err, chatService.ErrInvalidRole):
			utils.RespondError(w, http.StatusBadRequest, err.Error())
		default:
			utils.RespondError(w, http.StatusInternalServerError, "failed to save message")
		}
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

func (h *Handler) handleUpdateVisibility(w http.ResponseWriter, r *http.Request) {
	chatID := chi.URLParam(r, "chatID")

	var payload struct {
		IsPublic bool `json:"is_public"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.chatSvc.SetVisibility(r.Context(), chatID, payload.IsPublic); err != nil {
		if errors.Is(err, chatService.ErrSessionNotFound) {
			utils.RespondError(w, http.StatusNotFound, "chat not found")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "failed to update chat")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *Handler) handleListPublic(w http.ResponseWriter, r *http.Request) {
	chats, err := h.chatSvc.PublicSessions(r.Context())
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to list public chats")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string][]chat.PublicChat{"chats": chats})
}
