package handlers

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shortlinks/internal/auth"
	"github.com/serroba/shortlinks/internal/ratelimit"
)

// RegisterRoutes registers the link service routes. The redirect endpoint is
// public; creation, deactivation, and the listings require basic auth.
func RegisterRoutes(api huma.API, links *LinkHandler, listings *ListingHandler) {
	huma.Register(api, huma.Operation{
		Method:        http.MethodPost,
		Path:          "/generate",
		Summary:       "Create short link",
		Description:   "Generates a short, time-limited link for the submitted URL.",
		Tags:          []string{"Links"},
		DefaultStatus: http.StatusCreated,
		Metadata: map[string]any{
			auth.MetadataKey: true,
			ratelimit.MetadataKey: ratelimit.EndpointConfig{
				Limits: []ratelimit.LimitConfig{
					{Window: time.Minute, Max: 30},
					{Window: time.Hour, Max: 300},
				},
			},
		},
	}, links.GenerateLink)

	// High-traffic read path, relaxed limits
	huma.Register(api, huma.Operation{
		Method:      http.MethodGet,
		Path:        "/{token}",
		Summary:     "Redirect to original URL",
		Description: "Resolves the token and redirects to the original URL.",
		Tags:        []string{"Links"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{
				Limits: []ratelimit.LimitConfig{
					{Window: time.Minute, Max: 1000},
				},
			},
		},
	}, links.RedirectToLink)

	huma.Register(api, huma.Operation{
		Method:      http.MethodPut,
		Path:        "/deactivate",
		Summary:     "Deactivate a short link",
		Description: "Marks an active short link inactive. Deactivation is irreversible.",
		Tags:        []string{"Links"},
		Metadata: map[string]any{
			auth.MetadataKey: true,
		},
	}, links.DeactivateLink)

	huma.Register(api, huma.Operation{
		Method:      http.MethodGet,
		Path:        "/links",
		Summary:     "List links",
		Description: "Lists links in insertion order, filtered by active state.",
		Tags:        []string{"Listings"},
		Metadata: map[string]any{
			auth.MetadataKey: true,
		},
	}, listings.ListLinks)

	huma.Register(api, huma.Operation{
		Method:      http.MethodGet,
		Path:        "/links/stats",
		Summary:     "Link statistics",
		Description: "Lists links ranked by clicks over the last day, then the last hour.",
		Tags:        []string{"Listings"},
		Metadata: map[string]any{
			auth.MetadataKey: true,
		},
	}, listings.LinkStats)
}
