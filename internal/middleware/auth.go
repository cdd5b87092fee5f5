package middleware

import (
	"net/http"

	"admin-console/internal/auth"
	"admin-console/internal/models"

	"github.com/gin-gonic/gin"
)

type redirect struct {
	Redirect string `json:"redirect"`
}

func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentSession(c) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.Envelope[redirect]{
				OK:      false,
				Message: "Please log in.",
				Data:    redirect{Redirect: "/login"},
			})
			return
		}
		c.Next()
	}
}

// RequirePermission пускает дальше, только если у роли сессии есть право.
// Иначе — 403 и адрес страницы "доступ запрещён".
func RequirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !auth.Authorize(CurrentSession(c), permission) {
			c.AbortWithStatusJSON(http.StatusForbidden, models.Envelope[redirect]{
				OK:      false,
				Message: "You are not authorized to access this page.",
				Data:    redirect{Redirect: "/access-denied"},
			})
			return
		}
		c.Next()
	}
}
