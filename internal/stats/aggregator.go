// Package stats computes hour/day click counts per link and ranked listings.
package stats

import (
	"context"
	"sort"
	"time"

	"github.com/serroba/shortlinks/internal/pagination"
	"github.com/serroba/shortlinks/internal/shortlink"
)

// LinkStats holds click counts over the rolling hour and day windows.
type LinkStats struct {
	HourClicks int
	DayClicks  int
}

// RankedLink pairs a link with its click statistics.
type RankedLink struct {
	Link  shortlink.ShortLink
	Stats LinkStats
}

// Aggregator computes per-link click statistics. Counts are recomputed fresh
// on every call; there are no cached counters.
type Aggregator struct {
	links  shortlink.LinkRepository
	clicks shortlink.ClickRepository
}

// NewAggregator creates a new statistics aggregator.
func NewAggregator(links shortlink.LinkRepository, clicks shortlink.ClickRepository) *Aggregator {
	return &Aggregator{
		links:  links,
		clicks: clicks,
	}
}

// StatsFor returns click counts for the link over the right-open windows
// [now-1h, now) and [now-24h, now).
func (a *Aggregator) StatsFor(ctx context.Context, linkID int64, now time.Time) (LinkStats, error) {
	hour, err := a.clicks.CountSince(ctx, linkID, now.Add(-time.Hour))
	if err != nil {
		return LinkStats{}, err
	}

	day, err := a.clicks.CountSince(ctx, linkID, now.Add(-24*time.Hour))
	if err != nil {
		return LinkStats{}, err
	}

	return LinkStats{HourClicks: hour, DayClicks: day}, nil
}

// Ranked returns one page of links ordered by recent click volume: descending
// day count, ties broken by descending hour count, remaining ties keeping
// insertion order. Ranking is global, so stats are computed for every link
// and the page window is applied only after the full sort.
func (a *Aggregator) Ranked(
	ctx context.Context, page, size int, now time.Time,
) ([]RankedLink, pagination.Page, error) {
	links, total, err := a.links.List(ctx, shortlink.FilterAll, 0, -1)
	if err != nil {
		return nil, pagination.Page{}, err
	}

	ranked := make([]RankedLink, 0, len(links))

	for _, link := range links {
		linkStats, err := a.StatsFor(ctx, link.ID, now)
		if err != nil {
			return nil, pagination.Page{}, err
		}

		ranked = append(ranked, RankedLink{Link: link, Stats: linkStats})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Stats.DayClicks != ranked[j].Stats.DayClicks {
			return ranked[i].Stats.DayClicks > ranked[j].Stats.DayClicks
		}

		return ranked[i].Stats.HourClicks > ranked[j].Stats.HourClicks
	})

	meta := pagination.Paginate(page, size, total)
	lo, hi := pagination.Clamp(meta.OffsetMin, meta.OffsetMax, len(ranked))

	return ranked[lo:hi], meta, nil
}
