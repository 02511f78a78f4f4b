package chat

import "time"

// Session is one persisted conversation with the paper-search assistant.
// The id is assigned at creation and never changes.
type Session struct {
	ID        string    `json:"chat_id"`
	IsPublic  bool      `json:"is_public"`
	CreatedAt time.Time `json:"created_at"`
}

// PublicChat is one entry in the public-sessions listing.
type PublicChat struct {
	ID        string    `json:"chat_id"`
	CreatedAt time.Time `json:"created_at"`
}
