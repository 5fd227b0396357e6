package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/serroba/shortlinks/internal/shortlink"
)

const uniqueViolation = "23505"

// PostgresLinkStore is a PostgreSQL implementation of shortlink.LinkRepository.
type PostgresLinkStore struct {
	pool *pgxpool.Pool
}

// NewPostgresLinkStore creates a new PostgreSQL-backed link store.
func NewPostgresLinkStore(pool *pgxpool.Pool) *PostgresLinkStore {
	return &PostgresLinkStore{pool: pool}
}

// EnsureSchema creates the short_links and click_events tables if they do not
// exist yet.
func (p *PostgresLinkStore) EnsureSchema(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS short_links (
			id BIGSERIAL PRIMARY KEY,
			token TEXT NOT NULL UNIQUE,
			original_url TEXT NOT NULL,
			active BOOLEAN NOT NULL DEFAULT TRUE,
			due_date TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE TABLE IF NOT EXISTS click_events (
			id BIGSERIAL PRIMARY KEY,
			link_id BIGINT NOT NULL REFERENCES short_links(id),
			clicked_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE INDEX IF NOT EXISTS idx_short_links_active_due
			ON short_links (active, due_date);
		CREATE INDEX IF NOT EXISTS idx_click_events_link_clicked
			ON click_events (link_id, clicked_at);
	`

	if _, err := p.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}

	return nil
}

func (p *PostgresLinkStore) Insert(ctx context.Context, link *shortlink.ShortLink) error {
	query := `
		INSERT INTO short_links (token, original_url, active, due_date, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := p.pool.QueryRow(ctx, query,
		link.Token,
		link.OriginalURL,
		link.Active,
		link.DueDate,
		link.CreatedAt,
	).Scan(&link.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return shortlink.ErrDuplicateToken
		}

		return err
	}

	return nil
}

func (p *PostgresLinkStore) FindByToken(ctx context.Context, token string) (*shortlink.ShortLink, error) {
	query := `
		SELECT id, token, original_url, active, due_date, created_at
		FROM short_links
		WHERE token = $1
	`

	return p.scanLink(p.pool.QueryRow(ctx, query, token))
}

func (p *PostgresLinkStore) FindActiveByToken(ctx context.Context, token string) (*shortlink.ShortLink, error) {
	query := `
		SELECT id, token, original_url, active, due_date, created_at
		FROM short_links
		WHERE token = $1 AND active
	`

	return p.scanLink(p.pool.QueryRow(ctx, query, token))
}

func (p *PostgresLinkStore) scanLink(row pgx.Row) (*shortlink.ShortLink, error) {
	var link shortlink.ShortLink

	err := row.Scan(
		&link.ID,
		&link.Token,
		&link.OriginalURL,
		&link.Active,
		&link.DueDate,
		&link.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shortlink.ErrNotFound
		}

		return nil, err
	}

	return &link, nil
}

// Deactivate is a single atomic update; the active guard in the WHERE clause
// makes it idempotent under concurrent calls.
func (p *PostgresLinkStore) Deactivate(ctx context.Context, token string) (bool, error) {
	query := `
		UPDATE short_links
		SET active = FALSE
		WHERE token = $1 AND active
	`

	tag, err := p.pool.Exec(ctx, query, token)
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() > 0, nil
}

func (p *PostgresLinkStore) List(
	ctx context.Context, filter shortlink.ListFilter, offset, limit int,
) ([]shortlink.ShortLink, int, error) {
	where := ""

	switch filter {
	case shortlink.FilterActive:
		where = "WHERE active"
	case shortlink.FilterInactive:
		where = "WHERE NOT active"
	case shortlink.FilterAll:
	}

	var total int
	if err := p.pool.QueryRow(ctx, "SELECT count(*) FROM short_links "+where).Scan(&total); err != nil {
		return nil, 0, err
	}

	limitClause := "ALL"
	if limit >= 0 {
		limitClause = fmt.Sprintf("%d", limit)
	}

	query := fmt.Sprintf(`
		SELECT id, token, original_url, active, due_date, created_at
		FROM short_links %s
		ORDER BY id ASC
		LIMIT %s OFFSET %d
	`, where, limitClause, offset)

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var links []shortlink.ShortLink

	for rows.Next() {
		var link shortlink.ShortLink

		err := rows.Scan(
			&link.ID,
			&link.Token,
			&link.OriginalURL,
			&link.Active,
			&link.DueDate,
			&link.CreatedAt,
		)
		if err != nil {
			return nil, 0, err
		}

		links = append(links, link)
	}

	return links, total, rows.Err()
}

// BulkDeactivate is a single atomic filtered update used only by the sweeper.
func (p *PostgresLinkStore) BulkDeactivate(ctx context.Context, now time.Time) (int64, error) {
	query := `
		UPDATE short_links
		SET active = FALSE
		WHERE active AND due_date < $1
	`

	tag, err := p.pool.Exec(ctx, query, now)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}

// PostgresClickStore is a PostgreSQL implementation of shortlink.ClickRepository.
type PostgresClickStore struct {
	pool *pgxpool.Pool
}

// NewPostgresClickStore creates a new PostgreSQL-backed click store.
func NewPostgresClickStore(pool *pgxpool.Pool) *PostgresClickStore {
	return &PostgresClickStore{pool: pool}
}

func (p *PostgresClickStore) Record(ctx context.Context, linkID int64, at time.Time) error {
	query := `INSERT INTO click_events (link_id, clicked_at) VALUES ($1, $2)`

	_, err := p.pool.Exec(ctx, query, linkID, at)

	return err
}

func (p *PostgresClickStore) CountSince(ctx context.Context, linkID int64, since time.Time) (int, error) {
	query := `SELECT count(*) FROM click_events WHERE link_id = $1 AND clicked_at >= $2`

	var count int
	if err := p.pool.QueryRow(ctx, query, linkID, since).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

// Compile-time checks.
var (
	_ shortlink.LinkRepository  = (*PostgresLinkStore)(nil)
	_ shortlink.ClickRepository = (*PostgresClickStore)(nil)
)
