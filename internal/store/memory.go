package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/serroba/shortlinks/internal/shortlink"
)

// MemoryLinkStore is an in-memory implementation of shortlink.LinkRepository.
// It backs unit tests and the dependency-free dev mode.
type MemoryLinkStore struct {
	mu     sync.RWMutex
	nextID int64
	links  map[string]*shortlink.ShortLink // token -> link
}

// NewMemoryLinkStore creates a new in-memory link store.
func NewMemoryLinkStore() *MemoryLinkStore {
	return &MemoryLinkStore{
		links: make(map[string]*shortlink.ShortLink),
	}
}

func (m *MemoryLinkStore) Insert(_ context.Context, link *shortlink.ShortLink) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.links[link.Token]; ok {
		return shortlink.ErrDuplicateToken
	}

	m.nextID++
	link.ID = m.nextID

	stored := *link
	m.links[link.Token] = &stored

	return nil
}

func (m *MemoryLinkStore) FindByToken(_ context.Context, token string) (*shortlink.ShortLink, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	link, ok := m.links[token]
	if !ok {
		return nil, shortlink.ErrNotFound
	}

	found := *link

	return &found, nil
}

func (m *MemoryLinkStore) FindActiveByToken(_ context.Context, token string) (*shortlink.ShortLink, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	link, ok := m.links[token]
	if !ok || !link.Active {
		return nil, shortlink.ErrNotFound
	}

	found := *link

	return &found, nil
}

func (m *MemoryLinkStore) Deactivate(_ context.Context, token string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	link, ok := m.links[token]
	if !ok || !link.Active {
		return false, nil
	}

	link.Active = false

	return true, nil
}

func (m *MemoryLinkStore) List(
	_ context.Context, filter shortlink.ListFilter, offset, limit int,
) ([]shortlink.ShortLink, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	matching := make([]shortlink.ShortLink, 0, len(m.links))

	for _, link := range m.links {
		switch filter {
		case shortlink.FilterActive:
			if !link.Active {
				continue
			}
		case shortlink.FilterInactive:
			if link.Active {
				continue
			}
		case shortlink.FilterAll:
		}

		matching = append(matching, *link)
	}

	sort.Slice(matching, func(i, j int) bool { return matching[i].ID < matching[j].ID })

	total := len(matching)

	if offset > total {
		offset = total
	}

	end := total
	if limit >= 0 && offset+limit < total {
		end = offset + limit
	}

	return matching[offset:end], total, nil
}

func (m *MemoryLinkStore) BulkDeactivate(_ context.Context, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var count int64

	for _, link := range m.links {
		if link.Active && link.DueDate.Before(now) {
			link.Active = false
			count++
		}
	}

	return count, nil
}

// MemoryClickStore is an in-memory implementation of shortlink.ClickRepository.
type MemoryClickStore struct {
	mu     sync.RWMutex
	nextID int64
	clicks []shortlink.ClickEvent
}

// NewMemoryClickStore creates a new in-memory click store.
func NewMemoryClickStore() *MemoryClickStore {
	return &MemoryClickStore{}
}

func (m *MemoryClickStore) Record(_ context.Context, linkID int64, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	m.clicks = append(m.clicks, shortlink.ClickEvent{
		ID:        m.nextID,
		LinkID:    linkID,
		ClickedAt: at,
	})

	return nil
}

func (m *MemoryClickStore) CountSince(_ context.Context, linkID int64, since time.Time) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0

	for _, click := range m.clicks {
		if click.LinkID == linkID && !click.ClickedAt.Before(since) {
			count++
		}
	}

	return count, nil
}

// Compile-time checks.
var (
	_ shortlink.LinkRepository  = (*MemoryLinkStore)(nil)
	_ shortlink.ClickRepository = (*MemoryClickStore)(nil)
)
