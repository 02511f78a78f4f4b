package chat

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/paperchat/paperchat/internal/model/chat"
	"github.com/paperchat/paperchat/internal/store"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrInvalidRole     = errors.New("role must be user or assistant")
)

// Service encapsulates conversation state management on top of the store.
type Service struct {
	store *store.Store
	log   *zap.Logger
}

// NewService wires the chat service to its persistence layer.
func NewService(st *store.Store, log *zap.Logger) *Service {
	return &Service{store: st, log: log}
}

// CreateSession provisions a new session with the requested visibility.
func (s *Service) CreateSession(ctx context.Context, isPublic bool) (chat.Session, error) {
	session, err := s.store.CreateChat(ctx, isPublic)
	if err != nil {
		return chat.Session{}, fmt.Errorf("create session: %w", err)
	}

	s.log.Info("session created",
		zap.String("chat_id", session.ID),
		zap.Bool("is_public", session.IsPublic))
	return session, nil
}

// Session retrieves a session by identifier.
func (s *Service) Session(ctx context.Context, sessionID string) (chat.Session, error) {
	session, err := s.store.GetChat(ctx, sessionID)
	if errors.Is(err, store.ErrChatNotFound) {
		return chat.Session{}, ErrSessionNotFound
	}
	if err != nil {
		return chat.Session{}, fmt.Errorf("load session: %w", err)
	}
	return session, nil
}

// SaveMessage appends a message to the session history. Empty content is
// allowed: a search that matches nothing still produces an assistant turn.
func (s *Service) SaveMessage(ctx context.Context, sessionID string, msg chat.Message) error {
	if msg.Role != chat.RoleUser && msg.Role != chat.RoleAssistant {
		return ErrInvalidRole
	}

	err := s.store.AddMessage(ctx, sessionID, msg)
	if errors.Is(err, store.ErrChatNotFound) {
		return ErrSessionNotFound
	}
	if err != nil {
		return fmt.Errorf("save message: %w", err)
	}
	return nil
}

// Transcript returns stored messages for the session in append order.
func (s *Service) Transcript(ctx context.Context, sessionID string) ([]chat.Message, error) {
	messages, err := s.store.Messages(ctx, sessionID)
	if errors.Is(err, store.ErrChatNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load transcript: %w", err)
	}
	return messages, nil
}

// SetVisibility flips the public flag of an existing session.
func (s *Service) SetVisibility(ctx context.Context, sessionID string, isPublic bool) error {
	err := s.store.SetVisibility(ctx, sessionID, isPublic)
	if errors.Is(err, store.ErrChatNotFound) {
		return ErrSessionNotFound
	}
	if err != nil {
		return fmt.Errorf("update visibility: %w", err)
	}

	s.log.Info("session visibility updated",
		zap.String("chat_id", sessionID),
		zap.Bool("is_public", isPublic))
	return nil
}

// PublicSessions lists sessions that were made public.
func (s *Service) PublicSessions(ctx context.Context) ([]chat.PublicChat, error) {
	chats, err := s.store.PublicChats(ctx)
	if err != nil {
		return nil, fmt.Errorf("list public sessions: %w", err)
	}
	return chats, nil
}
