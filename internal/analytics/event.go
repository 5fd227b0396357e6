// Package analytics carries best-effort usage events emitted by the link
// service. The synchronous click store remains the source of truth for
// hour/day statistics; these events feed dashboards and counters only.
package analytics

import "time"

const (
	TopicLinkCreated  = "link.created"
	TopicLinkResolved = "link.resolved"
)

// LinkCreatedEvent is emitted when a short link is generated.
type LinkCreatedEvent struct {
	EventID     string    `json:"eventId"`
	Token       string    `json:"token"`
	OriginalURL string    `json:"originalUrl"`
	DueDate     time.Time `json:"dueDate"`
	CreatedAt   time.Time `json:"createdAt"`
	ClientIP    string    `json:"clientIp"`
	UserAgent   string    `json:"userAgent"`
}

// LinkResolvedEvent is emitted on every successful resolve.
type LinkResolvedEvent struct {
	EventID    string    `json:"eventId"`
	Token      string    `json:"token"`
	ResolvedAt time.Time `json:"resolvedAt"`
	ClientIP   string    `json:"clientIp"`
	UserAgent  string    `json:"userAgent"`
	Referrer   string    `json:"referrer"`
}
