package handlers_test

import (
	"context"
	"errors"
	"time"

	"github.com/serroba/shortlinks/internal/messaging"
	"github.com/serroba/shortlinks/internal/shortlink"
	"go.uber.org/zap"
)

var errMock = errors.New("mock error")

const (
	testURL  = "https://example.com/very/long/path"
	testBase = "http://localhost:8888"
)

// noopPublish returns a publish function that always succeeds.
func noopPublish[T any]() messaging.Publish[T] {
	return func(_ *T) error { return nil }
}

// errorPublish returns a publish function that always fails.
func errorPublish[T any](err error) messaging.Publish[T] {
	return func(_ *T) error { return err }
}

func newTestService(links shortlink.LinkRepository, clicks shortlink.ClickRepository) *shortlink.Service {
	generate, _ := shortlink.NewTokenGenerator()

	cfg := shortlink.Config{
		BaseURL: testBase,
		TTL:     time.Hour,
	}

	return shortlink.NewService(links, clicks, generate, cfg, zap.NewNop())
}

// mockLinkRepo is a test double for shortlink.LinkRepository that can be
// configured to return errors.
type mockLinkRepo struct {
	insertErr     error
	findActiveErr error
	deactivateErr error
	listErr       error
}

func (m *mockLinkRepo) Insert(_ context.Context, _ *shortlink.ShortLink) error {
	return m.insertErr
}

func (m *mockLinkRepo) FindByToken(_ context.Context, _ string) (*shortlink.ShortLink, error) {
	return nil, shortlink.ErrNotFound
}

func (m *mockLinkRepo) FindActiveByToken(_ context.Context, _ string) (*shortlink.ShortLink, error) {
	return nil, m.findActiveErr
}

func (m *mockLinkRepo) Deactivate(_ context.Context, _ string) (bool, error) {
	return false, m.deactivateErr
}

func (m *mockLinkRepo) List(
	_ context.Context, _ shortlink.ListFilter, _, _ int,
) ([]shortlink.ShortLink, int, error) {
	return nil, 0, m.listErr
}

func (m *mockLinkRepo) BulkDeactivate(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}
