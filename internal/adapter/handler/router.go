package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/meetwiselabs/meetwise/internal/infrastructure/http/middleware"
	"github.com/meetwiselabs/meetwise/pkg/config"
	"github.com/meetwiselabs/meetwise/pkg/jwt"
)

// Router holds all handlers
type Router struct {
	cfg              *config.Config
	jwtManager       *jwt.Manager
	authHandler      *Auth
	meetingHandler   *Meeting
	auditHandler     *Audit
	dashboardHandler *Dashboard
	assistantHandler *Assistant
	calendarHandler  *Calendar
}

// NewRouter creates a new router with all handlers
func NewRouter(
	cfg *config.Config,
	jwtManager *jwt.Manager,
	authHandler *Auth,
	meetingHandler *Meeting,
	auditHandler *Audit,
	dashboardHandler *Dashboard,
	assistantHandler *Assistant,
	calendarHandler *Calendar,
) *Router {
	return &Router{
		cfg:              cfg,
		jwtManager:       jwtManager,
		authHandler:      authHandler,
		meetingHandler:   meetingHandler,
		auditHandler:     auditHandler,
		dashboardHandler: dashboardHandler,
		assistantHandler: assistantHandler,
		calendarHandler:  calendarHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// API v1 group
	v1 := e.Group("/v1")

	rt.setupAuthRoutes(v1)

	// Everything below requires authentication
	authed := v1.Group("", middleware.EchoAuth(rt.jwtManager))
	rt.setupMeetingRoutes(authed)
	rt.setupAuditRoutes(authed)
	rt.setupDashboardRoutes(authed)
	rt.setupAssistantRoutes(authed)
	rt.setupCalendarRoutes(authed)
}

// setupAuthRoutes configures authentication routes
func (rt *Router) setupAuthRoutes(g *echo.Group) {
	authGroup := g.Group("/auth")

	authGroup.GET("/google/login", rt.authHandler.GoogleLogin)
	authGroup.GET("/google/callback", rt.authHandler.GoogleCallback)
	authGroup.POST("/refresh", rt.authHandler.RefreshToken)
	authGroup.POST("/logout", rt.authHandler.Logout)
	authGroup.GET("/me", rt.authHandler.Me, middleware.EchoAuth(rt.jwtManager))
}

// setupMeetingRoutes configures meeting routes
func (rt *Router) setupMeetingRoutes(g *echo.Group) {
	meetings := g.Group("/meetings")

	meetings.GET("", rt.meetingHandler.List)
	meetings.POST("/analyze", rt.meetingHandler.Analyze)
	meetings.POST("/bulk-cancel", rt.meetingHandler.BulkCancel)
	meetings.GET("/:id", rt.meetingHandler.Get)
	meetings.GET("/:id/attendee-recommendations", rt.meetingHandler.AttendeeRecommendations)
	meetings.POST("/:id/flags", rt.meetingHandler.Flag)
	meetings.PUT("/:id/flags/:flagId/resolve", rt.meetingHandler.ResolveFlag)
}

// setupAuditRoutes configures audit routes
func (rt *Router) setupAuditRoutes(g *echo.Group) {
	auditGroup := g.Group("/audit")

	auditGroup.POST("/run", rt.auditHandler.Run)
	auditGroup.GET("/suggestions", rt.auditHandler.Suggestions)
}

// setupDashboardRoutes configures dashboard routes
func (rt *Router) setupDashboardRoutes(g *echo.Group) {
	dashboardGroup := g.Group("/dashboard")

	dashboardGroup.GET("/metrics", rt.dashboardHandler.Metrics)
	dashboardGroup.GET("/weekly-stats", rt.dashboardHandler.WeeklyStats)
}

// setupAssistantRoutes configures agenda and summary routes
func (rt *Router) setupAssistantRoutes(g *echo.Group) {
	agendaGroup := g.Group("/agenda")
	agendaGroup.POST("/generate", rt.assistantHandler.GenerateAgenda)
	agendaGroup.POST("/save", rt.assistantHandler.SaveAgenda)

	summariesGroup := g.Group("/summaries")
	summariesGroup.POST("/generate", rt.assistantHandler.GenerateSummary)
	summariesGroup.GET("", rt.assistantHandler.ListSummaries)
	summariesGroup.GET("/:id", rt.assistantHandler.GetSummary)
}

// setupCalendarRoutes configures calendar routes
func (rt *Router) setupCalendarRoutes(g *echo.Group) {
	calendarGroup := g.Group("/calendar")

	calendarGroup.POST("/sync", rt.calendarHandler.Sync)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}
