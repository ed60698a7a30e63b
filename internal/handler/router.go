package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Moti-Eli/edu-plus/internal/middleware"
	"github.com/Moti-Eli/edu-plus/internal/models"
	"github.com/Moti-Eli/edu-plus/internal/service"
)

// Router bundles every handler and registers the API routes.
type Router struct {
	auth            *AuthHandler
	attendance      *AttendanceHandler
	adminAttendance *AdminAttendanceHandler
	stats           *StatsHandler
	users           *UserHandler
	schedules       *ScheduleHandler
	chat            *ChatHandler
	assistant       *AssistantHandler
	metrics         *MetricsHandler
	authService     *service.AuthService
}

// NewRouter creates a router over the provided handlers.
func NewRouter(
	auth *AuthHandler,
	attendance *AttendanceHandler,
	adminAttendance *AdminAttendanceHandler,
	stats *StatsHandler,
	users *UserHandler,
	schedules *ScheduleHandler,
	chat *ChatHandler,
	assistant *AssistantHandler,
	metrics *MetricsHandler,
	authService *service.AuthService,
) *Router {
	return &Router{
		auth:            auth,
		attendance:      attendance,
		adminAttendance: adminAttendance,
		stats:           stats,
		users:           users,
		schedules:       schedules,
		chat:            chat,
		assistant:       assistant,
		metrics:         metrics,
		authService:     authService,
	}
}

// Register attaches all routes under the given prefix.
func (r *Router) Register(engine *gin.Engine, prefix string) {
	engine.GET("/health", r.metrics.Health)
	engine.GET("/metrics", r.metrics.Prometheus)

	api := engine.Group(prefix)

	auth := api.Group("/auth")
	auth.POST("/login", r.auth.Login)
	auth.POST("/signup", r.auth.Signup)
	auth.POST("/refresh", r.auth.Refresh)
	auth.POST("/logout", middleware.JWT(r.authService), r.auth.Logout)
	auth.GET("/me", middleware.JWT(r.authService), r.auth.Me)

	protected := api.Group("")
	protected.Use(middleware.JWT(r.authService))

	adminOnly := middleware.RequireRoles(models.RoleAdmin)

	attendance := protected.Group("/attendance")
	attendance.GET("", r.attendance.ListMine)
	attendance.POST("", r.attendance.Create)
	attendance.PUT("/:id", r.attendance.Update)
	attendance.DELETE("/:id", r.attendance.Delete)
	attendance.GET("/all", adminOnly, r.attendance.ListAll)
	attendance.PATCH("/:id/admin-notes", adminOnly, r.attendance.SetAdminNotes)

	adminAttendance := protected.Group("/admin-attendance", adminOnly)
	adminAttendance.GET("", r.adminAttendance.List)
	adminAttendance.POST("", r.adminAttendance.Create)
	adminAttendance.PUT("/:id", r.adminAttendance.Update)
	adminAttendance.DELETE("/:id", r.adminAttendance.Delete)

	stats := protected.Group("/stats", adminOnly)
	stats.GET("", r.stats.Get)
	stats.GET("/export", r.stats.Export)

	users := protected.Group("/users", adminOnly)
	users.GET("", r.users.List)
	users.POST("/:id/toggle-role", r.users.ToggleRole)
	users.DELETE("/:id", r.users.Deactivate)

	schedules := protected.Group("/schedules")
	schedules.GET("", r.schedules.List)
	schedules.GET("/today", r.schedules.ListToday)
	schedules.GET("/mine", r.schedules.ListMine)
	schedules.POST("", adminOnly, r.schedules.Create)
	schedules.PUT("/:id", adminOnly, r.schedules.Update)
	schedules.DELETE("/:id", adminOnly, r.schedules.Delete)

	protected.GET("/schools", r.schedules.Schools)
	protected.POST("/chat", r.chat.Handle)
	protected.POST("/assistant", adminOnly, r.assistant.Ask)
}
