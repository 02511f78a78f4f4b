package session

import (
	"context"

	"github.com/paperchat/paperchat/internal/model/chat"
	"github.com/paperchat/paperchat/internal/model/paper"
)

// Backend is the remote collaborator the controller drives. Implementations
// translate failures into the package error taxonomy: ErrNotFound for a
// missing session, ErrInvalid for a rejected request, ErrUnavailable for any
// transport failure.
type Backend interface {
	CreateChat(ctx context.Context, isPublic bool) (string, error)
	ChatHistory(ctx context.Context, chatID string) ([]chat.Message, error)
	AppendMessage(ctx context.Context, chatID string, msg chat.Message) error
	SetVisibility(ctx context.Context, chatID string, isPublic bool) error
	PublicChats(ctx context.Context) ([]chat.PublicChat, error)
	Search(ctx context.Context, req paper.SearchRequest) ([]paper.Paper, error)
	Categories(ctx context.Context) (map[string]string, error)
}
