package handler

import (
	"net/http"

	"github.com/benbjohnson/clock"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/johnquangdev/scrum-assistant/internal/adapter/dto/common"
	"github.com/johnquangdev/scrum-assistant/internal/domain/repositories"
)

// healthTimeLayout is ISO 8601 with millisecond precision
const healthTimeLayout = "2006-01-02T15:04:05.000Z07:00"

// Router holds all handlers
type Router struct {
	clock             clock.Clock
	collectionHandler *Collection
	sessionHandler    *Session
	summaryHandler    *Summary
	ceremonyHandler   *Ceremony
}

// NewRouter creates a new router with all handlers
func NewRouter(
	clk clock.Clock,
	collectionHandler *Collection,
	sessionHandler *Session,
	summaryHandler *Summary,
	ceremonyHandler *Ceremony,
) *Router {
	if clk == nil {
		clk = clock.New()
	}
	return &Router{
		clock:             clk,
		collectionHandler: collectionHandler,
		sessionHandler:    sessionHandler,
		summaryHandler:    summaryHandler,
		ceremonyHandler:   ceremonyHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")
	api.GET("/health", rt.healthCheck)

	rt.setupCollectionRoutes(api)
	rt.setupCeremonyRoutes(api)
	rt.setupSessionRoutes(api)
	rt.setupSummaryRoutes(api)
}

// setupCollectionRoutes configures the generic document collections
func (rt *Router) setupCollectionRoutes(g *echo.Group) {
	if rt.collectionHandler == nil {
		return
	}
	for _, name := range []string{repositories.CollectionProjects, repositories.CollectionTasks} {
		g.GET("/"+name, rt.collectionHandler.List(name))
		g.POST("/"+name, rt.collectionHandler.Append(name))
	}
}

// setupCeremonyRoutes configures the ceremony catalog routes
func (rt *Router) setupCeremonyRoutes(g *echo.Group) {
	if rt.ceremonyHandler == nil {
		return
	}
	ceremonies := g.Group("/ceremonies")
	ceremonies.GET("", rt.ceremonyHandler.List)
	ceremonies.GET("/:type", rt.ceremonyHandler.Get)
}

// setupSessionRoutes configures meeting session routes
func (rt *Router) setupSessionRoutes(g *echo.Group) {
	if rt.sessionHandler == nil {
		return
	}
	sessions := g.Group("/sessions")
	sessions.GET("", rt.sessionHandler.List)
	sessions.POST("", rt.sessionHandler.Create)
	sessions.GET("/:id", rt.sessionHandler.Get)
	sessions.PUT("/:id/participants", rt.sessionHandler.SetParticipants)
	sessions.POST("/:id/start", rt.sessionHandler.Start)
	sessions.POST("/:id/events", rt.sessionHandler.RecordEvent)
	sessions.POST("/:id/end", rt.sessionHandler.End)
	sessions.POST("/:id/abandon", rt.sessionHandler.Abandon)
	sessions.POST("/:id/summary", rt.sessionHandler.GenerateSummary)
	sessions.GET("/:id/clock", rt.sessionHandler.Clock)
}

// setupSummaryRoutes configures stored summary routes
func (rt *Router) setupSummaryRoutes(g *echo.Group) {
	if rt.summaryHandler == nil {
		return
	}
	g.GET("/dashboard", rt.summaryHandler.Dashboard)

	summaries := g.Group("/summaries")
	summaries.GET("", rt.summaryHandler.List)
	summaries.GET("/:session_id", rt.summaryHandler.Get)
	summaries.GET("/:session_id/share", rt.summaryHandler.Share)
}

// healthCheck godoc
// @Summary      Liveness probe
// @Tags         Health
// @Produce      json
// @Success      200  {object}  common.HealthResponse
// @Router       /health [get]
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, common.HealthResponse{
		Status:  "ok",
		Service: "backend",
		Time:    rt.clock.Now().UTC().Format(healthTimeLayout),
	})
}
