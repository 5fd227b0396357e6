package analytics

import (
	"context"

	"github.com/serroba/shortlinks/internal/messaging"
)

// NewLinkCreatedHandler returns a handler persisting link created events.
func NewLinkCreatedHandler(store Store) messaging.Handler[LinkCreatedEvent] {
	return func(ctx context.Context, event *LinkCreatedEvent) error {
		return store.SaveLinkCreated(ctx, event)
	}
}

// NewLinkResolvedHandler returns a handler persisting link resolved events.
func NewLinkResolvedHandler(store Store) messaging.Handler[LinkResolvedEvent] {
	return func(ctx context.Context, event *LinkResolvedEvent) error {
		return store.SaveLinkResolved(ctx, event)
	}
}
