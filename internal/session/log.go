package session

import (
	"context"
	"sync"
	"time"

	"github.com/paperchat/paperchat/internal/model/chat"
)

// Log holds the ordered local projection of one session's transcript and
// performs its backend persistence. The projection is the source of truth
// for display: entries appear before their append acknowledges and are
// never removed on failure, only marked failed.
type Log struct {
	backend Backend

	mu      sync.RWMutex
	entries []chat.Message
}

// NewLog creates an empty transcript bound to the backend.
func NewLog(backend Backend) *Log {
	return &Log{
		backend: backend,
		entries: make([]chat.Message, 0, 16),
	}
}

// Hydrate replaces the local projection with the persisted history for
// sessionID, in exact append order.
func (l *Log) Hydrate(ctx context.Context, sessionID string) error {
	messages, err := l.backend.ChatHistory(ctx, sessionID)
	if err != nil {
		return err
	}

	for i := range messages {
		messages[i].Delivery = chat.DeliverySent
	}

	l.mu.Lock()
	l.entries = messages
	l.mu.Unlock()
	return nil
}

// Append records msg locally first, then persists it. On persistence
// failure the optimistic entry stays in place with a failed delivery state
// so typed content is never lost.
func (l *Log) Append(ctx context.Context, sessionID string, msg chat.Message) error {
	msg.CreatedAt = time.Now().UTC()
	msg.Delivery = chat.DeliveryPending

	l.mu.Lock()
	l.entries = append(l.entries, msg)
	idx := len(l.entries) - 1
	l.mu.Unlock()

	if err := l.backend.AppendMessage(ctx, sessionID, msg); err != nil {
		l.setDelivery(idx, chat.DeliveryFailed)
		return err
	}

	l.setDelivery(idx, chat.DeliverySent)
	return nil
}

// Messages returns a copy of the local projection in append order.
func (l *Log) Messages() []chat.Message {
	l.mu.RLock()
	defer l.mu.RUnlock()

	copied := make([]chat.Message, len(l.entries))
	copy(copied, l.entries)
	return copied
}

// Len reports the number of locally projected messages.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

func (l *Log) setDelivery(idx int, state chat.Delivery) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if idx >= 0 && idx < len(l.entries) {
		l.entries[idx].Delivery = state
	}
}
