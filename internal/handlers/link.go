package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/serroba/shortlinks/internal/analytics"
	"github.com/serroba/shortlinks/internal/messaging"
	"github.com/serroba/shortlinks/internal/shortlink"
	"go.uber.org/zap"
)

// LinkHandler handles link creation, resolution, and deactivation.
type LinkHandler struct {
	service             *shortlink.Service
	baseURL             string
	publishLinkCreated  messaging.Publish[analytics.LinkCreatedEvent]
	publishLinkResolved messaging.Publish[analytics.LinkResolvedEvent]
	logger              *zap.Logger
}

// NewLinkHandler creates a new link handler.
func NewLinkHandler(
	service *shortlink.Service,
	baseURL string,
	publishLinkCreated messaging.Publish[analytics.LinkCreatedEvent],
	publishLinkResolved messaging.Publish[analytics.LinkResolvedEvent],
	logger *zap.Logger,
) *LinkHandler {
	return &LinkHandler{
		service:             service,
		baseURL:             baseURL,
		publishLinkCreated:  publishLinkCreated,
		publishLinkResolved: publishLinkResolved,
		logger:              logger,
	}
}

// GenerateLink creates a new short link for the submitted URL.
func (h *LinkHandler) GenerateLink(ctx context.Context, req *GenerateLinkRequest) (*GenerateLinkResponse, error) {
	originalURL, err := ValidateURL(req.Body.URL)
	if err != nil {
		return nil, huma.Error422UnprocessableEntity(err.Error())
	}

	link, err := h.service.Create(ctx, originalURL)
	if err != nil {
		h.logger.Error("failed to create link", zap.Error(err))

		return nil, huma.Error400BadRequest("cannot create link")
	}

	meta := RequestMetaFromContext(ctx)
	event := &analytics.LinkCreatedEvent{
		EventID:     uuid.NewString(),
		Token:       link.Token,
		OriginalURL: link.OriginalURL,
		DueDate:     link.DueDate,
		CreatedAt:   link.CreatedAt,
		ClientIP:    meta.ClientIP,
		UserAgent:   meta.UserAgent,
	}

	if err := h.publishLinkCreated(event); err != nil {
		h.logger.Error("failed to publish link created event",
			zap.String("token", event.Token),
			zap.Error(err),
		)
	}

	shortURL := h.service.ShortURL(link.Token)

	resp := &GenerateLinkResponse{Status: http.StatusCreated}
	resp.Headers.Location = shortURL
	resp.Body.Message = shortURL

	return resp, nil
}

// RedirectToLink resolves a token and redirects to the original URL.
func (h *LinkHandler) RedirectToLink(ctx context.Context, req *RedirectRequest) (*RedirectResponse, error) {
	originalURL, err := h.service.Resolve(ctx, req.Token)
	if err != nil {
		if errors.Is(err, shortlink.ErrNotResolvable) {
			return nil, huma.Error404NotFound("cannot find active link")
		}

		return nil, huma.Error500InternalServerError("failed to resolve link")
	}

	meta := RequestMetaFromContext(ctx)
	event := &analytics.LinkResolvedEvent{
		EventID:    uuid.NewString(),
		Token:      req.Token,
		ResolvedAt: time.Now(),
		ClientIP:   meta.ClientIP,
		UserAgent:  meta.UserAgent,
		Referrer:   meta.Referrer,
	}

	if err := h.publishLinkResolved(event); err != nil {
		h.logger.Error("failed to publish link resolved event",
			zap.String("token", event.Token),
			zap.Error(err),
		)
	}

	resp := &RedirectResponse{Status: http.StatusFound}
	resp.Headers.Location = originalURL

	return resp, nil
}

// DeactivateLink marks the link behind a short URL inactive.
func (h *LinkHandler) DeactivateLink(ctx context.Context, req *DeactivateLinkRequest) (*DeactivateLinkResponse, error) {
	token, err := ParseShortURL(h.baseURL, req.Body.ShortURL)
	if err != nil {
		return nil, huma.Error422UnprocessableEntity(err.Error())
	}

	changed, err := h.service.Deactivate(ctx, token)
	if err != nil {
		return nil, huma.Error500InternalServerError("failed to deactivate link")
	}

	if !changed {
		return nil, huma.Error404NotFound("cannot find this active link")
	}

	resp := &DeactivateLinkResponse{}
	resp.Body.Message = "link deactivated"

	return resp, nil
}
