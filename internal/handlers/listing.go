package handlers

import (
	"context"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shortlinks/internal/shortlink"
	"github.com/serroba/shortlinks/internal/stats"
	"go.uber.org/zap"
)

// ListingHandler handles the private listing and statistics endpoints.
type ListingHandler struct {
	service    *shortlink.Service
	aggregator *stats.Aggregator
	logger     *zap.Logger
}

// NewListingHandler creates a new listing handler.
func NewListingHandler(service *shortlink.Service, aggregator *stats.Aggregator, logger *zap.Logger) *ListingHandler {
	return &ListingHandler{
		service:    service,
		aggregator: aggregator,
		logger:     logger,
	}
}

// ListLinks returns one page of links in insertion order.
func (h *ListingHandler) ListLinks(ctx context.Context, req *ListLinksRequest) (*ListLinksResponse, error) {
	links, page, err := h.service.List(ctx, shortlink.ListFilter(req.Filter), req.Page, req.Size)
	if err != nil {
		h.logger.Error("failed to list links", zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to list links")
	}

	resp := &ListLinksResponse{}
	resp.Body.Links = make([]LinkInfo, 0, len(links))
	resp.Body.Info = paginationInfo(page)

	for _, link := range links {
		resp.Body.Links = append(resp.Body.Links, linkInfo(link, h.service.ShortURL(link.Token)))
	}

	return resp, nil
}

// LinkStats returns one page of links ranked by recent click volume.
func (h *ListingHandler) LinkStats(ctx context.Context, req *LinkStatsRequest) (*LinkStatsResponse, error) {
	ranked, page, err := h.aggregator.Ranked(ctx, req.Page, req.Size, time.Now())
	if err != nil {
		h.logger.Error("failed to aggregate link stats", zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to aggregate link stats")
	}

	resp := &LinkStatsResponse{}
	resp.Body.Links = make([]StatLinkInfo, 0, len(ranked))
	resp.Body.Info = paginationInfo(page)

	for _, entry := range ranked {
		resp.Body.Links = append(resp.Body.Links, statLinkInfo(entry, h.service.ShortURL(entry.Link.Token)))
	}

	return resp, nil
}
