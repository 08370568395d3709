package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/scrum-assistant/errors"
	"github.com/johnquangdev/scrum-assistant/internal/adapter/dto"
	"github.com/johnquangdev/scrum-assistant/internal/usecase/meeting"
	"github.com/johnquangdev/scrum-assistant/internal/usecase/summary"
	"github.com/johnquangdev/scrum-assistant/pkg/share"
)

// Summary handles stored summary HTTP requests
type Summary struct {
	service meeting.Service
	logger  *zap.Logger
}

// NewSummaryHandler creates a new summary handler
func NewSummaryHandler(service meeting.Service, logger *zap.Logger) *Summary {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Summary{service: service, logger: logger}
}

// List handles GET /summaries
// @Summary      List stored summaries
// @Tags         Summaries
// @Produce      json
// @Success      200  {object}  dto.SummaryListResponse
// @Router       /summaries [get]
func (h *Summary) List(c echo.Context) error {
	summaries, err := h.service.ListSummaries(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, dto.SummaryListResponse{Summaries: summaries, Total: len(summaries)})
}

// Get handles GET /summaries/:session_id
// @Summary      Get the summary of a session
// @Tags         Summaries
// @Produce      json
// @Param        session_id  path      string  true  "Session ID"
// @Success      200         {object}  entities.StoredSummary
// @Failure      404         {object}  common.ErrorResponse
// @Router       /summaries/{session_id} [get]
func (h *Summary) Get(c echo.Context) error {
	stored, err := h.service.GetSummary(c.Request().Context(), c.Param("session_id"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, stored)
}

// Share handles GET /summaries/:session_id/share
// @Summary      Render a summary for sharing
// @Description  Builds plain text, a Slack message, or a mail or WhatsApp compose link
// @Tags         Summaries
// @Produce      json
// @Param        session_id  path      string  true   "Session ID"
// @Param        channel     query     string  false  "text (default), email, whatsapp or slack"
// @Success      200         {object}  dto.ShareResponse
// @Failure      400         {object}  common.ErrorResponse
// @Failure      404         {object}  common.ErrorResponse
// @Router       /summaries/{session_id}/share [get]
func (h *Summary) Share(c echo.Context) error {
	var req dto.ShareRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload(err))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrValidationFailed(err))
	}

	stored, err := h.service.GetSummary(c.Request().Context(), c.Param("session_id"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	resp := dto.ShareResponse{Channel: req.Channel, Text: summary.Text(stored.Summary)}
	switch req.Channel {
	case dto.ShareChannelEmail:
		resp.URL = share.EmailURL(stored.Summary)
	case dto.ShareChannelWhatsApp:
		resp.URL = share.WhatsAppURL(stored.Summary)
	case dto.ShareChannelSlack:
		resp.Text = share.SlackText(stored.Summary)
	default:
		resp.Channel = dto.ShareChannelText
	}
	return HandleSuccess(h.logger, c, resp)
}

// Dashboard handles GET /dashboard
// @Summary      Team dashboard
// @Description  Meeting counts, average duration and scores, ceremony distribution and open action items across stored summaries
// @Tags         Summaries
// @Produce      json
// @Success      200  {object}  entities.DashboardStats
// @Router       /dashboard [get]
func (h *Summary) Dashboard(c echo.Context) error {
	stats, err := h.service.Dashboard(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, stats)
}
