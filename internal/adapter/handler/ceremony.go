package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/scrum-assistant/errors"
	"github.com/johnquangdev/scrum-assistant/internal/domain/entities"
	"github.com/johnquangdev/scrum-assistant/internal/usecase/ceremony"
)

// Ceremony serves the Scrum ceremony catalog
type Ceremony struct {
	catalog *ceremony.Catalog
	logger  *zap.Logger
}

// NewCeremonyHandler creates a new ceremony handler
func NewCeremonyHandler(catalog *ceremony.Catalog, logger *zap.Logger) *Ceremony {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ceremony{catalog: catalog, logger: logger}
}

// List handles GET /api/ceremonies
// @Summary      List ceremonies
// @Tags         Ceremonies
// @Produce      json
// @Success      200  {array}  ceremony.Ceremony
// @Router       /ceremonies [get]
func (h *Ceremony) List(c echo.Context) error {
	return HandleSuccess(h.logger, c, h.catalog.All())
}

// Get handles GET /api/ceremonies/:type
// @Summary      Get a ceremony
// @Tags         Ceremonies
// @Produce      json
// @Param        type  path      string  true  "standup, planning, review or retrospective"
// @Success      200   {object}  ceremony.Ceremony
// @Failure      404   {object}  common.ErrorResponse
// @Router       /ceremonies/{type} [get]
func (h *Ceremony) Get(c echo.Context) error {
	notFound := errors.ErrNotFound("Ceremony").WithDetail("type", c.Param("type"))

	t, err := entities.ParseMeetingType(c.Param("type"))
	if err != nil {
		return HandleError(h.logger, c, notFound)
	}

	cer, ok := h.catalog.Get(t)
	if !ok {
		return HandleError(h.logger, c, notFound)
	}
	return HandleSuccess(h.logger, c, cer)
}
