package shortlink

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/serroba/shortlinks/internal/pagination"
	"go.uber.org/zap"
)

// maxCreateAttempts bounds retries on token collisions. Collisions are rare
// with a 9-character alphanumeric token but must not fail the request.
const maxCreateAttempts = 4

// Config carries the externally supplied parameters of the link engine.
type Config struct {
	// BaseURL is the domain/host short URLs are assembled from.
	BaseURL string
	// TTL is the default lifetime of a new link.
	TTL time.Duration
}

// Service implements the link lifecycle: create, resolve with lazy expiry,
// deactivation, and listing.
type Service struct {
	links    LinkRepository
	clicks   ClickRepository
	generate TokenGenerator
	cfg      Config
	logger   *zap.Logger
	now      func() time.Time
}

// NewService creates a new link service.
func NewService(
	links LinkRepository,
	clicks ClickRepository,
	generate TokenGenerator,
	cfg Config,
	logger *zap.Logger,
) *Service {
	return &Service{
		links:    links,
		clicks:   clicks,
		generate: generate,
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
	}
}

// WithClock overrides the service clock. Used by tests to advance time.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now

	return s
}

// ShortURL assembles the externally visible short URL for a token.
func (s *Service) ShortURL(token string) string {
	return fmt.Sprintf("%s/%s", s.cfg.BaseURL, token)
}

// Create generates a token and persists a new active link expiring after the
// configured TTL. Token collisions are retried with a fresh token up to
// maxCreateAttempts times.
func (s *Service) Create(ctx context.Context, originalURL string) (*ShortLink, error) {
	now := s.now()

	var lastErr error

	for range maxCreateAttempts {
		link := &ShortLink{
			Token:       s.generate(),
			OriginalURL: originalURL,
			Active:      true,
			DueDate:     now.Add(s.cfg.TTL),
			CreatedAt:   now,
		}

		err := s.links.Insert(ctx, link)
		if err == nil {
			return link, nil
		}

		if !errors.Is(err, ErrDuplicateToken) {
			return nil, err
		}

		lastErr = err
	}

	return nil, fmt.Errorf("create link: %w", lastErr)
}

// Resolve maps a token back to its original URL. Unknown and inactive tokens
// are not resolvable. An active but expired link is lazily deactivated and
// reported not resolvable; the deactivation is best-effort and its failure
// does not change the answer. A click event is recorded only on the success
// path.
func (s *Service) Resolve(ctx context.Context, token string) (string, error) {
	link, err := s.links.FindActiveByToken(ctx, token)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", ErrNotResolvable
		}

		return "", err
	}

	now := s.now()

	if link.Expired(now) {
		if _, err := s.links.Deactivate(ctx, token); err != nil {
			s.logger.Error("lazy deactivation failed",
				zap.String("token", token),
				zap.Error(err),
			)
		}

		return "", ErrNotResolvable
	}

	if err := s.clicks.Record(ctx, link.ID, now); err != nil {
		return "", err
	}

	return link.OriginalURL, nil
}

// Deactivate marks the link inactive and reports whether a change occurred.
// Idempotent: a second call for the same token returns false without error.
func (s *Service) Deactivate(ctx context.Context, token string) (bool, error) {
	return s.links.Deactivate(ctx, token)
}

// List returns one page of links matching the filter in insertion order,
// together with pagination metadata computed from the pre-pagination total.
func (s *Service) List(
	ctx context.Context, filter ListFilter, page, size int,
) ([]ShortLink, pagination.Page, error) {
	offsetMin, _ := pagination.Offsets(page, size)

	links, total, err := s.links.List(ctx, filter, offsetMin, size)
	if err != nil {
		return nil, pagination.Page{}, err
	}

	return links, pagination.Paginate(page, size, total), nil
}
