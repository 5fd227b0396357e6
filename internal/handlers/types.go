package handlers

import (
	"time"

	"github.com/serroba/shortlinks/internal/pagination"
	"github.com/serroba/shortlinks/internal/shortlink"
	"github.com/serroba/shortlinks/internal/stats"
)

// GenerateLinkRequest is the request body for creating a short link.
type GenerateLinkRequest struct {
	Body struct {
		URL string `doc:"The URL to shorten" example:"https://example.com/very/long/path" json:"url"`
	}
}

// GenerateLinkResponse is the response for a successfully created short link.
type GenerateLinkResponse struct {
	Status  int
	Headers struct {
		Location string `doc:"The short URL location" header:"Location"`
	}
	Body struct {
		Message string `doc:"The generated short URL" example:"http://localhost:8888/aZ81kT0qL" json:"message"`
	}
}

// RedirectRequest is the request for resolving a short link token.
type RedirectRequest struct {
	Token string `doc:"The short link token" example:"aZ81kT0qL" path:"token"`
}

// RedirectResponse redirects to the original URL.
type RedirectResponse struct {
	Status  int
	Headers struct {
		Location string `doc:"The original URL" header:"Location"`
	}
}

// DeactivateLinkRequest is the request body for deactivating a short link.
type DeactivateLinkRequest struct {
	Body struct {
		ShortURL string `doc:"The short URL to deactivate" example:"http://localhost:8888/aZ81kT0qL" json:"short_url"`
	}
}

// DeactivateLinkResponse confirms a deactivation.
type DeactivateLinkResponse struct {
	Body struct {
		Message string `json:"message"`
	}
}

// ListLinksRequest selects a filtered page of links.
type ListLinksRequest struct {
	Filter string `default:"all" doc:"Which links to list" enum:"all,active,inactive" query:"filter"`
	Page   int    `default:"1"   doc:"1-based page number"  minimum:"1"                query:"page"`
	Size   int    `default:"30"  doc:"Page size"            minimum:"1"                query:"size"`
}

// LinkInfo describes one link in a listing.
type LinkInfo struct {
	ID           int64     `json:"id"`
	Link         string    `json:"link"`
	OriginalLink string    `json:"original_link"`
	IsActive     bool      `json:"is_active"`
	DueDate      time.Time `json:"due_date"`
}

// PaginationInfo describes the page window of a listing response.
type PaginationInfo struct {
	Page       int  `json:"page"`
	Size       int  `json:"size"`
	TotalPages int  `json:"total_pages"`
	Next       bool `json:"next"`
	Prev       bool `json:"prev"`
}

// ListLinksResponse is one page of links with pagination metadata.
type ListLinksResponse struct {
	Body struct {
		Links []LinkInfo     `json:"links"`
		Info  PaginationInfo `json:"info"`
	}
}

// LinkStatsRequest selects a page of the ranked statistics listing.
type LinkStatsRequest struct {
	Page int `default:"1"  doc:"1-based page number" minimum:"1" query:"page"`
	Size int `default:"30" doc:"Page size"           minimum:"1" query:"size"`
}

// StatLinkInfo describes one link with its click statistics.
type StatLinkInfo struct {
	Link           string    `json:"link"`
	OrigLink       string    `json:"orig_link"`
	LastHourClicks int       `json:"last_hour_clicks"`
	LastDayClicks  int       `json:"last_day_clicks"`
	IsActive       bool      `json:"is_active"`
	DueDate        time.Time `json:"due_date"`
}

// LinkStatsResponse is one page of the ranked statistics listing.
type LinkStatsResponse struct {
	Body struct {
		Links []StatLinkInfo `json:"links"`
		Info  PaginationInfo `json:"info"`
	}
}

func paginationInfo(page pagination.Page) PaginationInfo {
	return PaginationInfo{
		Page:       page.Page,
		Size:       page.Size,
		TotalPages: page.TotalPages,
		Next:       page.HasNext,
		Prev:       page.HasPrev,
	}
}

func linkInfo(link shortlink.ShortLink, shortURL string) LinkInfo {
	return LinkInfo{
		ID:           link.ID,
		Link:         shortURL,
		OriginalLink: link.OriginalURL,
		IsActive:     link.Active,
		DueDate:      link.DueDate,
	}
}

func statLinkInfo(ranked stats.RankedLink, shortURL string) StatLinkInfo {
	return StatLinkInfo{
		Link:           shortURL,
		OrigLink:       ranked.Link.OriginalURL,
		LastHourClicks: ranked.Stats.HourClicks,
		LastDayClicks:  ranked.Stats.DayClicks,
		IsActive:       ranked.Link.Active,
		DueDate:        ranked.Link.DueDate,
	}
}
