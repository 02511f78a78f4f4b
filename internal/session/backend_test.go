package session_test

import (
	"context"
	"fmt"
	"sync"

	"github.com/paperchat/paperchat/internal/model/chat"
	"github.com/paperchat/paperchat/internal/model/paper"
	"github.com/paperchat/paperchat/internal/session"
)

// fakeBackend records every call and serves session state from memory.
// Channels let tests hold a call open to exercise the in-flight guards.
type fakeBackend struct {
	mu       sync.Mutex
	calls    []string
	messages map[string][]chat.Message
	public   map[string]bool
	papers   []paper.Paper
	nextID   int

	createErr   error
	searchErr   error
	visErr      error
	appendErrOn string // role whose append should fail

	searchEntered chan struct{}
	searchRelease chan struct{}
	createEntered chan struct{}
	createRelease chan struct{}
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		messages: make(map[string][]chat.Message),
		public:   make(map[string]bool),
	}
}

func (f *fakeBackend) record(call string) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
}

func (f *fakeBackend) recorded() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := make([]string, len(f.calls))
	copy(copied, f.calls)
	return copied
}

func (f *fakeBackend) CreateChat(_ context.Context, isPublic bool) (string, error) {
	f.record("create")
	if f.createEntered != nil {
		f.createEntered <- struct{}{}
	}
	if f.createRelease != nil {
		<-f.createRelease
	}
	if f.createErr != nil {
		return "", f.createErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	id := fmt.Sprintf("chat-%d", f.nextID)
	f.messages[id] = nil
	f.public[id] = isPublic
	return id, nil
}

func (f *fakeBackend) ChatHistory(_ context.Context, chatID string) ([]chat.Message, error) {
	f.record("history")
	f.mu.Lock()
	defer f.mu.Unlock()
	msgs, ok := f.messages[chatID]
	if !ok {
		return nil, session.ErrNotFound
	}
	copied := make([]chat.Message, len(msgs))
	copy(copied, msgs)
	return copied, nil
}

func (f *fakeBackend) AppendMessage(_ context.Context, chatID string, msg chat.Message) error {
	f.record("append:" + msg.Role)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.appendErrOn == msg.Role {
		return session.ErrUnavailable
	}
	if _, ok := f.messages[chatID]; !ok {
		return session.ErrNotFound
	}
	f.messages[chatID] = append(f.messages[chatID], msg)
	return nil
}

func (f *fakeBackend) SetVisibility(_ context.Context, chatID string, isPublic bool) error {
	f.record("visibility")
	if f.visErr != nil {
		return f.visErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.public[chatID]; !ok {
		return session.ErrNotFound
	}
	f.public[chatID] = isPublic
	return nil
}

func (f *fakeBackend) PublicChats(_ context.Context) ([]chat.PublicChat, error) {
	f.record("public")
	f.mu.Lock()
	defer f.mu.Unlock()
	var chats []chat.PublicChat
	for id, isPublic := range f.public {
		if isPublic {
			chats = append(chats, chat.PublicChat{ID: id})
		}
	}
	return chats, nil
}

func (f *fakeBackend) Search(_ context.Context, _ paper.SearchRequest) ([]paper.Paper, error) {
	f.record("search")
	if f.searchEntered != nil {
		f.searchEntered <- struct{}{}
	}
	if f.searchRelease != nil {
		<-f.searchRelease
	}
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.papers, nil
}

func (f *fakeBackend) Categories(_ context.Context) (map[string]string, error) {
	f.record("categories")
	return map[string]string{"cs.LG": "Machine Learning"}, nil
}
