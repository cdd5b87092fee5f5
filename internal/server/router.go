package server

import (
	"net/http"

	"admin-console/internal/handlers"
	"admin-console/internal/middleware"
	"admin-console/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const sessionCookie = "console_session"

func NewRouter(sessionSecret string, h *handlers.Handlers, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(log))

	store := cookie.NewStore([]byte(sessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   8 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionCookie, store))

	r.Use(middleware.InjectSession(h.Registry))

	// AUTH
	r.POST("/api/auth/employee-login", h.EmployeeLogin)
	r.POST("/api/auth/login", h.UserLogin)
	r.POST("/api/auth/logout", h.Logout)
	r.GET("/access-denied", handlers.AccessDenied)

	api := r.Group("/api")
	api.Use(middleware.RequireAuth())

	api.GET("/auth/me", h.Me)

	// РОЛИ И ПРАВА
	roles := api.Group("/")
	roles.Use(middleware.RequirePermission(models.PermManageRoles))
	roles.GET("/roles", h.ListRoles)
	roles.GET("/roles/:id", h.ShowRole)
	roles.POST("/roles", h.CreateRole)
	roles.DELETE("/roles/:id", h.DeleteRole)
	roles.POST("/roles/:id/permission", h.AttachPermissions)
	roles.DELETE("/roles/:id/permission/:name", h.DetachPermission)
	roles.GET("/permissions", h.ListPermissions)
	roles.POST("/permissions", h.CreatePermission)

	// ЗАЯВКИ НА ИЗМЕНЕНИЕ ПРОФИЛЯ
	api.GET("/requests",
		middleware.RequirePermission(models.PermReviewRequests),
		h.ListRequests,
	)
	api.PUT("/requests/:id",
		middleware.RequirePermission(models.PermReviewRequests),
		h.AcceptRequest,
	)
	api.DELETE("/requests/:id",
		middleware.RequirePermission(models.PermReviewRequests),
		h.RejectRequest,
	)

	// НОВОСТИ
	api.DELETE("/news-management/:id",
		middleware.RequirePermission(models.PermManageNews),
		h.DeleteNews,
	)
	api.PUT("/news-management",
		middleware.RequirePermission(models.PermManageNews),
		h.UpdateNews,
	)

	// АУДИТ
	api.GET("/audit",
		middleware.RequirePermission(models.PermViewAuditLog),
		h.ListAuditLogs,
	)

	// HEALTHCHECK
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	return r
}
