package chat

import "time"

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Delivery tracks the backend persist state of a locally projected message.
type Delivery string

const (
	DeliveryPending Delivery = "pending"
	DeliverySent    Delivery = "sent"
	DeliveryFailed  Delivery = "failed"
)

// Message is one turn entry. Content and Role are immutable once appended;
// CreatedAt and Delivery are local bookkeeping and never travel over the wire.
type Message struct {
	Content   string    `json:"content"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"-"`
	Delivery  Delivery  `json:"-"`
}
