package session_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paperchat/paperchat/internal/model/chat"
	"github.com/paperchat/paperchat/internal/session"
)

func TestLogHydratePreservesOrder(t *testing.T) {
	fb := newFakeBackend()
	ctx := context.Background()

	id, err := fb.CreateChat(ctx, false)
	require.NoError(t, err)
	for i := 0; i < 6; i++ {
		require.NoError(t, fb.AppendMessage(ctx, id, chat.Message{
			Content: fmt.Sprintf("message %d", i),
			Role:    chat.RoleUser,
		}))
	}

	log := session.NewLog(fb)
	require.NoError(t, log.Hydrate(ctx, id))

	got := log.Messages()
	require.Len(t, got, 6)
	for i, msg := range got {
		assert.Equal(t, fmt.Sprintf("message %d", i), msg.Content)
		assert.Equal(t, chat.DeliverySent, msg.Delivery)
	}
}

func TestLogHydrateUnknownSession(t *testing.T) {
	log := session.NewLog(newFakeBackend())

	err := log.Hydrate(context.Background(), "unknown-id")
	assert.ErrorIs(t, err, session.ErrNotFound)
	assert.Zero(t, log.Len())
}

func TestLogAppendConfirmsDelivery(t *testing.T) {
	fb := newFakeBackend()
	ctx := context.Background()
	id, err := fb.CreateChat(ctx, false)
	require.NoError(t, err)

	log := session.NewLog(fb)
	require.NoError(t, log.Append(ctx, id, chat.Message{Content: "hello", Role: chat.RoleUser}))

	got := log.Messages()
	require.Len(t, got, 1)
	assert.Equal(t, chat.DeliverySent, got[0].Delivery)
	assert.False(t, got[0].CreatedAt.IsZero())
}

func TestLogAppendFailureKeepsOptimisticEntry(t *testing.T) {
	fb := newFakeBackend()
	ctx := context.Background()
	id, err := fb.CreateChat(ctx, false)
	require.NoError(t, err)

	fb.appendErrOn = chat.RoleUser
	log := session.NewLog(fb)

	err = log.Append(ctx, id, chat.Message{Content: "typed and kept", Role: chat.RoleUser})
	assert.ErrorIs(t, err, session.ErrUnavailable)

	got := log.Messages()
	require.Len(t, got, 1)
	assert.Equal(t, "typed and kept", got[0].Content)
	assert.Equal(t, chat.DeliveryFailed, got[0].Delivery)
}

func TestLogRoundTrip(t *testing.T) {
	fb := newFakeBackend()
	ctx := context.Background()
	id, err := fb.CreateChat(ctx, false)
	require.NoError(t, err)

	log := session.NewLog(fb)
	want := []string{"one", "two", "three"}
	for _, content := range want {
		require.NoError(t, log.Append(ctx, id, chat.Message{Content: content, Role: chat.RoleUser}))
	}

	// A fresh log hydrated from the backend sees exactly the appended
	// sequence, in order.
	fresh := session.NewLog(fb)
	require.NoError(t, fresh.Hydrate(ctx, id))

	got := fresh.Messages()
	require.Len(t, got, len(want))
	for i, content := range want {
		assert.Equal(t, content, got[i].Content)
	}
}
