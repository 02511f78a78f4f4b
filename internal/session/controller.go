package session

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/paperchat/paperchat/internal/model/chat"
	"github.com/paperchat/paperchat/internal/model/paper"
)

// Options configure a controller before its session identity is resolved.
type Options struct {
	// CreatePublic is the visibility applied when Start has to create a new
	// session. It is inert once an id is resolved; publishing afterwards
	// goes through Publish.
	CreatePublic bool
}

// Controller drives one conversational search session: identity resolution,
// the transcript, turn execution, and visibility. All turn execution is
// strictly sequential per session.
type Controller struct {
	backend    Backend
	log        *zap.Logger
	transcript *Log
	opts       Options

	mu         sync.Mutex
	id         string
	isPublic   bool
	starting   bool
	turnActive bool
}

// NewController builds a controller bound to one backend.
func NewController(backend Backend, logger *zap.Logger, opts Options) *Controller {
	return &Controller{
		backend:    backend,
		log:        logger,
		transcript: NewLog(backend),
		opts:       opts,
	}
}

// Start resolves the session identity exactly once. With a requestedID it
// resumes that session and hydrates the transcript; existence is not checked
// up front, so an unknown id surfaces as ErrNotFound here via hydration.
// Without one it creates a new session with the configured visibility.
// Repeat calls return the already-resolved id, and a call overlapping an
// in-flight creation is rejected, so a double-invoked mount can never
// create two sessions.
func (c *Controller) Start(ctx context.Context, requestedID string) (string, error) {
	c.mu.Lock()
	if c.id != "" {
		id := c.id
		c.mu.Unlock()
		return id, nil
	}
	if c.starting {
		c.mu.Unlock()
		return "", ErrStartInFlight
	}
	c.starting = true
	c.mu.Unlock()

	id, isPublic, err := c.resolve(ctx, requestedID)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.starting = false
	if err != nil {
		return "", err
	}
	c.id = id
	c.isPublic = isPublic

	c.log.Info("session resolved",
		zap.String("chat_id", id),
		zap.Bool("resumed", requestedID != ""))
	return id, nil
}

func (c *Controller) resolve(ctx context.Context, requestedID string) (string, bool, error) {
	if requestedID != "" {
		if err := c.transcript.Hydrate(ctx, requestedID); err != nil {
			return "", false, err
		}
		// The history endpoint does not report visibility; assume private
		// so Publish stays callable. Re-publishing a public session is a
		// harmless idempotent update.
		return requestedID, false, nil
	}

	id, err := c.backend.CreateChat(ctx, c.opts.CreatePublic)
	if err != nil {
		return "", false, err
	}
	return id, c.opts.CreatePublic, nil
}

// RunTurn executes one user turn: persist the user message, search with the
// composed request, render the results, persist the assistant reply. A
// second call while one is pending is rejected so message order can never
// interleave. Blank free text fails before any backend call.
func (c *Controller) RunTurn(ctx context.Context, freeText string, filters paper.SearchFilters) error {
	req, err := Compose(freeText, filters)
	if err != nil {
		return err
	}

	c.mu.Lock()
	if c.id == "" {
		c.mu.Unlock()
		return ErrNotStarted
	}
	if c.turnActive {
		c.mu.Unlock()
		return ErrTurnInFlight
	}
	c.turnActive = true
	id := c.id
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.turnActive = false
		c.mu.Unlock()
	}()

	userMsg := chat.Message{Content: freeText, Role: chat.RoleUser}
	if err := c.transcript.Append(ctx, id, userMsg); err != nil {
		return err
	}

	papers, err := c.backend.Search(ctx, req)
	if err != nil {
		c.log.Warn("turn failed after user message was persisted",
			zap.String("chat_id", id),
			zap.String("stage", StageSearch),
			zap.Error(err))
		return &PartialTurnError{Stage: StageSearch, Err: err}
	}

	reply := chat.Message{Content: RenderPapers(papers), Role: chat.RoleAssistant}
	if err := c.transcript.Append(ctx, id, reply); err != nil {
		c.log.Warn("turn failed after user message was persisted",
			zap.String("chat_id", id),
			zap.String("stage", StagePersistAssistant),
			zap.Error(err))
		return &PartialTurnError{Stage: StagePersistAssistant, Err: err}
	}

	return nil
}

// Publish transitions the session from private to public. Calling it on an
// already-public session is a no-op; nothing in this controller reverts the
// transition.
func (c *Controller) Publish(ctx context.Context) error {
	c.mu.Lock()
	if c.id == "" {
		c.mu.Unlock()
		return ErrNotStarted
	}
	if c.isPublic {
		c.mu.Unlock()
		return nil
	}
	id := c.id
	c.mu.Unlock()

	if err := c.backend.SetVisibility(ctx, id, true); err != nil {
		return err
	}

	c.mu.Lock()
	c.isPublic = true
	c.mu.Unlock()

	c.log.Info("session published", zap.String("chat_id", id))
	return nil
}

// ID returns the resolved session id, or empty before Start succeeds.
func (c *Controller) ID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.id
}

// IsPublic reports the visibility as known to this controller.
func (c *Controller) IsPublic() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isPublic
}

// Messages returns the local transcript projection in append order.
func (c *Controller) Messages() []chat.Message {
	return c.transcript.Messages()
}
