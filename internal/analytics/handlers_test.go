package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/serroba/shortlinks/internal/analytics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockStore struct {
	created  []*analytics.LinkCreatedEvent
	resolved []*analytics.LinkResolvedEvent
	saveErr  error
}

func (m *mockStore) SaveLinkCreated(_ context.Context, event *analytics.LinkCreatedEvent) error {
	if m.saveErr != nil {
		return m.saveErr
	}

	m.created = append(m.created, event)

	return nil
}

func (m *mockStore) SaveLinkResolved(_ context.Context, event *analytics.LinkResolvedEvent) error {
	if m.saveErr != nil {
		return m.saveErr
	}

	m.resolved = append(m.resolved, event)

	return nil
}

func TestLinkCreatedHandler(t *testing.T) {
	t.Run("persists the event", func(t *testing.T) {
		store := &mockStore{}
		handle := analytics.NewLinkCreatedHandler(store)

		event := &analytics.LinkCreatedEvent{
			EventID:   "evt-1",
			Token:     "aZ81kT0qL",
			CreatedAt: time.Now(),
		}

		require.NoError(t, handle(context.Background(), event))
		require.Len(t, store.created, 1)
		assert.Equal(t, "evt-1", store.created[0].EventID)
	})

	t.Run("propagates store errors for redelivery", func(t *testing.T) {
		store := &mockStore{saveErr: errors.New("redis down")}
		handle := analytics.NewLinkCreatedHandler(store)

		err := handle(context.Background(), &analytics.LinkCreatedEvent{EventID: "evt-1"})

		assert.Error(t, err)
	})
}

func TestLinkResolvedHandler(t *testing.T) {
	t.Run("persists the event", func(t *testing.T) {
		store := &mockStore{}
		handle := analytics.NewLinkResolvedHandler(store)

		event := &analytics.LinkResolvedEvent{
			EventID:    "evt-2",
			Token:      "aZ81kT0qL",
			ResolvedAt: time.Now(),
		}

		require.NoError(t, handle(context.Background(), event))
		require.Len(t, store.resolved, 1)
		assert.Equal(t, "aZ81kT0qL", store.resolved[0].Token)
	})

	t.Run("propagates store errors for redelivery", func(t *testing.T) {
		store := &mockStore{saveErr: errors.New("redis down")}
		handle := analytics.NewLinkResolvedHandler(store)

		err := handle(context.Background(), &analytics.LinkResolvedEvent{EventID: "evt-2"})

		assert.Error(t, err)
	})
}
