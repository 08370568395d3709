package dto

import "github.com/johnquangdev/scrum-assistant/internal/domain/entities"

// Share channels
const (
	ShareChannelText     = "text"
	ShareChannelEmail    = "email"
	ShareChannelWhatsApp = "whatsapp"
	ShareChannelSlack    = "slack"
)

// ShareRequest represents query parameters for sharing a summary
type ShareRequest struct {
	Channel string `query:"channel" validate:"omitempty,oneof=text email whatsapp slack"`
}

// ShareResponse is a ready-to-send rendering of a summary
type ShareResponse struct {
	Channel string `json:"channel"`
	Text    string `json:"text"`
	URL     string `json:"url,omitempty"`
}

// SummaryListResponse represents the stored summaries
type SummaryListResponse struct {
	Summaries []entities.StoredSummary `json:"summaries"`
	Total     int                      `json:"total"`
}
