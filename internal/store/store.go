package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/paperchat/paperchat/internal/model/chat"
)

var ErrChatNotFound = errors.New("chat not found")

// Store persists chats and their messages in SQLite.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and applies pending
// migrations. A single connection keeps SQLite writes serialized.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// CreateChat inserts a new chat with a fresh id and the given visibility.
func (s *Store) CreateChat(ctx context.Context, isPublic bool) (chat.Session, error) {
	session := chat.Session{
		ID:        uuid.NewString(),
		IsPublic:  isPublic,
		CreatedAt: time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO chats (chat_id, created_at, is_public) VALUES (?, ?, ?)`,
		session.ID, session.CreatedAt.Format(time.RFC3339Nano), boolToInt(session.IsPublic))
	if err != nil {
		return chat.Session{}, fmt.Errorf("insert chat: %w", err)
	}
	return session, nil
}

// GetChat returns the chat with the given id, or ErrChatNotFound.
func (s *Store) GetChat(ctx context.Context, chatID string) (chat.Session, error) {
	var (
		session   chat.Session
		createdAt string
		isPublic  int
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT chat_id, created_at, is_public FROM chats WHERE chat_id = ?`, chatID).
		Scan(&session.ID, &createdAt, &isPublic)
	if errors.Is(err, sql.ErrNoRows) {
		return chat.Session{}, ErrChatNotFound
	}
	if err != nil {
		return chat.Session{}, fmt.Errorf("select chat: %w", err)
	}

	session.CreatedAt = parseTimestamp(createdAt)
	session.IsPublic = isPublic != 0
	return session, nil
}

// AddMessage appends one message to an existing chat.
func (s *Store) AddMessage(ctx context.Context, chatID string, msg chat.Message) error {
	if _, err := s.GetChat(ctx, chatID); err != nil {
		return err
	}

	createdAt := msg.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO messages (chat_id, content, role, created_at) VALUES (?, ?, ?, ?)`,
		chatID, msg.Content, msg.Role, createdAt.Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

// Messages returns the chat history in exact append order. Ordering by the
// rowid, not created_at, keeps same-timestamp appends stable.
func (s *Store) Messages(ctx context.Context, chatID string) ([]chat.Message, error) {
	if _, err := s.GetChat(ctx, chatID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT content, role, created_at FROM messages WHERE chat_id = ? ORDER BY id`, chatID)
	if err != nil {
		return nil, fmt.Errorf("select messages: %w", err)
	}
	defer rows.Close()

	messages := make([]chat.Message, 0, 16)
	for rows.Next() {
		var (
			msg       chat.Message
			createdAt string
		)
		if err := rows.Scan(&msg.Content, &msg.Role, &createdAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		msg.CreatedAt = parseTimestamp(createdAt)
		msg.Delivery = chat.DeliverySent
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}
	return messages, nil
}

// SetVisibility updates the public flag of an existing chat.
func (s *Store) SetVisibility(ctx context.Context, chatID string, isPublic bool) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE chats SET is_public = ? WHERE chat_id = ?`, boolToInt(isPublic), chatID)
	if err != nil {
		return fmt.Errorf("update chat visibility: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update chat visibility: %w", err)
	}
	if affected == 0 {
		return ErrChatNotFound
	}
	return nil
}

// PublicChats lists all chats marked public, newest first.
func (s *Store) PublicChats(ctx context.Context) ([]chat.PublicChat, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT chat_id, created_at FROM chats WHERE is_public = 1 ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("select public chats: %w", err)
	}
	defer rows.Close()

	chats := make([]chat.PublicChat, 0, 16)
	for rows.Next() {
		var (
			pc        chat.PublicChat
			createdAt string
		)
		if err := rows.Scan(&pc.ID, &createdAt); err != nil {
			return nil, fmt.Errorf("scan public chat: %w", err)
		}
		pc.CreatedAt = parseTimestamp(createdAt)
		chats = append(chats, pc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate public chats: %w", err)
	}
	return chats, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func parseTimestamp(raw string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}
