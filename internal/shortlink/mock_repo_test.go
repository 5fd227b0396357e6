package shortlink_test

import (
	"context"
	"time"

	"github.com/serroba/shortlinks/internal/shortlink"
)

// mockLinkRepo lets tests force specific repository outcomes that the
// in-memory store cannot produce, like transient write failures.
type mockLinkRepo struct {
	insertErr        error
	insertCalls      int
	findActiveResult *shortlink.ShortLink
	deactivateErr    error
}

func (m *mockLinkRepo) Insert(_ context.Context, _ *shortlink.ShortLink) error {
	m.insertCalls++

	return m.insertErr
}

func (m *mockLinkRepo) FindByToken(_ context.Context, _ string) (*shortlink.ShortLink, error) {
	if m.findActiveResult == nil {
		return nil, shortlink.ErrNotFound
	}

	link := *m.findActiveResult

	return &link, nil
}

func (m *mockLinkRepo) FindActiveByToken(_ context.Context, _ string) (*shortlink.ShortLink, error) {
	if m.findActiveResult == nil {
		return nil, shortlink.ErrNotFound
	}

	link := *m.findActiveResult

	return &link, nil
}

func (m *mockLinkRepo) Deactivate(_ context.Context, _ string) (bool, error) {
	if m.deactivateErr != nil {
		return false, m.deactivateErr
	}

	return true, nil
}

func (m *mockLinkRepo) List(
	_ context.Context, _ shortlink.ListFilter, _, _ int,
) ([]shortlink.ShortLink, int, error) {
	return nil, 0, nil
}

func (m *mockLinkRepo) BulkDeactivate(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}

type mockClickRepo struct {
	recordErr error
}

func (m *mockClickRepo) Record(_ context.Context, _ int64, _ time.Time) error {
	return m.recordErr
}

func (m *mockClickRepo) CountSince(_ context.Context, _ int64, _ time.Time) (int, error) {
	return 0, nil
}
