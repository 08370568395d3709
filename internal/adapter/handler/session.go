package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/scrum-assistant/errors"
	"github.com/johnquangdev/scrum-assistant/internal/adapter/dto/session"
	"github.com/johnquangdev/scrum-assistant/internal/adapter/presenter"
	"github.com/johnquangdev/scrum-assistant/internal/domain/entities"
	"github.com/johnquangdev/scrum-assistant/internal/usecase/meeting"
)

const (
	// DefaultClockTick is the interval between clock stream frames
	DefaultClockTick = time.Second

	clockWriteTimeout = 5 * time.Second
)

// Session handles meeting session HTTP requests
type Session struct {
	service  meeting.Service
	logger   *zap.Logger
	clock    clock.Clock
	tick     time.Duration
	upgrader websocket.Upgrader
}

// NewSessionHandler creates a new session handler. clk drives the clock
// stream ticker and tick is its interval.
func NewSessionHandler(service meeting.Service, clk clock.Clock, tick time.Duration, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	if clk == nil {
		clk = clock.New()
	}
	if tick <= 0 {
		tick = DefaultClockTick
	}
	return &Session{
		service: service,
		logger:  logger,
		clock:   clk,
		tick:    tick,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// CORS is permissive for the whole API
				return true
			},
		},
	}
}

// Create handles POST /sessions
// @Summary      Create a meeting session
// @Description  Creates an idle session. Title and objectives default to the ceremony catalog.
// @Tags         Sessions
// @Accept       json
// @Produce      json
// @Param        request  body      session.CreateSessionRequest  true  "Session creation request"
// @Success      201      {object}  session.SessionResponse
// @Failure      400      {object}  common.ErrorResponse  "Invalid request or validation failed"
// @Router       /sessions [post]
func (h *Session) Create(c echo.Context) error {
	var req session.CreateSessionRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload(err))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrValidationFailed(err))
	}

	meetingType, err := entities.ParseMeetingType(req.Type)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	created, err := h.service.Create(c.Request().Context(), meeting.CreateInput{
		Title:        req.Title,
		Type:         meetingType,
		Participants: presenter.ToParticipants(req.Participants),
		Objectives:   req.Objectives,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleCreated(h.logger, c, presenter.ToSessionResponse(created, h.service.Now()))
}

// List handles GET /sessions
// @Summary      List meeting sessions
// @Tags         Sessions
// @Produce      json
// @Success      200  {object}  session.SessionListResponse
// @Router       /sessions [get]
func (h *Session) List(c echo.Context) error {
	sessions, err := h.service.List(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToSessionListResponse(sessions, h.service.Now()))
}

// Get handles GET /sessions/:id
// @Summary      Get a meeting session
// @Description  Returns status, elapsed time, current notes and agenda, and the event log
// @Tags         Sessions
// @Produce      json
// @Param        id   path      string  true  "Session ID"
// @Success      200  {object}  session.SessionResponse
// @Failure      404  {object}  common.ErrorResponse
// @Router       /sessions/{id} [get]
func (h *Session) Get(c echo.Context) error {
	s, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToSessionResponse(s, h.service.Now()))
}

// SetParticipants handles PUT /sessions/:id/participants
// @Summary      Replace the roster
// @Description  Only allowed while the session is idle
// @Tags         Sessions
// @Accept       json
// @Produce      json
// @Param        id       path      string                          true  "Session ID"
// @Param        request  body      session.SetParticipantsRequest  true  "New roster"
// @Success      200      {object}  session.SessionResponse
// @Failure      400      {object}  common.ErrorResponse
// @Failure      404      {object}  common.ErrorResponse
// @Failure      409      {object}  common.ErrorResponse  "Session already started"
// @Router       /sessions/{id}/participants [put]
func (h *Session) SetParticipants(c echo.Context) error {
	var req session.SetParticipantsRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload(err))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrValidationFailed(err))
	}

	s, err := h.service.SetParticipants(c.Request().Context(), c.Param("id"), presenter.ToParticipants(req.Participants))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToSessionResponse(s, h.service.Now()))
}

// Start handles POST /sessions/:id/start
// @Summary      Start a session
// @Tags         Sessions
// @Produce      json
// @Param        id   path      string  true  "Session ID"
// @Success      200  {object}  session.SessionResponse
// @Failure      404  {object}  common.ErrorResponse
// @Failure      409  {object}  common.ErrorResponse  "Session is not idle"
// @Router       /sessions/{id}/start [post]
func (h *Session) Start(c echo.Context) error {
	s, err := h.service.Start(c.Request().Context(), c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToSessionResponse(s, h.service.Now()))
}

// RecordEvent handles POST /sessions/:id/events
// @Summary      Record a session event
// @Tags         Sessions
// @Accept       json
// @Produce      json
// @Param        id       path      string                      true  "Session ID"
// @Param        request  body      session.RecordEventRequest  true  "Event"
// @Success      201      {object}  session.EventResponse
// @Failure      400      {object}  common.ErrorResponse
// @Failure      404      {object}  common.ErrorResponse
// @Failure      409      {object}  common.ErrorResponse  "Session is not active"
// @Router       /sessions/{id}/events [post]
func (h *Session) RecordEvent(c echo.Context) error {
	var req session.RecordEventRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload(err))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrValidationFailed(err))
	}

	event, err := h.service.Record(c.Request().Context(), c.Param("id"), presenter.ToSessionEvent(req))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleCreated(h.logger, c, presenter.ToEventResponse(event))
}

// End handles POST /sessions/:id/end
// @Summary      End a session
// @Description  Ends an active session and returns its stored summary
// @Tags         Sessions
// @Produce      json
// @Param        id   path      string  true  "Session ID"
// @Success      200  {object}  entities.StoredSummary
// @Failure      404  {object}  common.ErrorResponse
// @Failure      409  {object}  common.ErrorResponse  "Session is not active"
// @Failure      500  {object}  common.ErrorResponse  "Summary write failed; retry with POST /sessions/{id}/summary"
// @Router       /sessions/{id}/end [post]
func (h *Session) End(c echo.Context) error {
	stored, err := h.service.End(c.Request().Context(), c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, stored)
}

// Abandon handles POST /sessions/:id/abandon
// @Summary      Abandon a session
// @Description  Ends an idle or active session as abandoned and returns its stored summary
// @Tags         Sessions
// @Produce      json
// @Param        id   path      string  true  "Session ID"
// @Success      200  {object}  entities.StoredSummary
// @Failure      404  {object}  common.ErrorResponse
// @Failure      409  {object}  common.ErrorResponse  "Session already ended"
// @Router       /sessions/{id}/abandon [post]
func (h *Session) Abandon(c echo.Context) error {
	stored, err := h.service.Abandon(c.Request().Context(), c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, stored)
}

// GenerateSummary handles POST /sessions/:id/summary
// @Summary      Store the summary of an ended session
// @Description  Retry path after End or Abandon failed to store the summary
// @Tags         Sessions
// @Produce      json
// @Param        id   path      string  true  "Session ID"
// @Success      201  {object}  entities.StoredSummary
// @Failure      404  {object}  common.ErrorResponse
// @Failure      409  {object}  common.ErrorResponse  "Session has not ended"
// @Router       /sessions/{id}/summary [post]
func (h *Session) GenerateSummary(c echo.Context) error {
	stored, err := h.service.GenerateSummary(c.Request().Context(), c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleCreated(h.logger, c, stored)
}

// Clock handles GET /sessions/:id/clock
// @Summary      Stream elapsed time
// @Description  Upgrades to a websocket and pushes a frame every tick until the session ends or the client disconnects
// @Tags         Sessions
// @Param        id   path  string  true  "Session ID"
// @Success      101  {object}  session.ClockFrame
// @Failure      404  {object}  common.ErrorResponse
// @Router       /sessions/{id}/clock [get]
func (h *Session) Clock(c echo.Context) error {
	id := c.Param("id")
	s, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	ws, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// the upgrader has already replied
		h.logger.Warn("clock.upgrade.failed", zap.String("session_id", id), zap.Error(err))
		return nil
	}
	defer ws.Close()

	ctx, cancel := context.WithCancel(c.Request().Context())
	defer cancel()
	go h.drain(ws, cancel)

	ticker := h.clock.Ticker(h.tick)
	defer ticker.Stop()

	h.logger.Debug("clock.stream.opened", zap.String("session_id", id))
	for {
		_ = ws.SetWriteDeadline(time.Now().Add(clockWriteTimeout))
		if err := ws.WriteJSON(presenter.ToClockFrame(s, h.service.Now())); err != nil {
			h.logger.Debug("clock.stream.closed", zap.String("session_id", id), zap.Error(err))
			return nil
		}
		if s.IsEnded() {
			closeStream(ws, websocket.CloseNormalClosure, "session ended")
			return nil
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		if s, err = h.service.Get(ctx, id); err != nil {
			closeStream(ws, websocket.CloseGoingAway, "session unavailable")
			return nil
		}
	}
}

// drain discards client messages and cancels the stream once the client goes away
func (h *Session) drain(ws *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()
	for {
		if _, _, err := ws.NextReader(); err != nil {
			return
		}
	}
}

func closeStream(ws *websocket.Conn, code int, reason string) {
	msg := websocket.FormatCloseMessage(code, reason)
	_ = ws.WriteControl(websocket.CloseMessage, msg, time.Now().Add(clockWriteTimeout))
}
