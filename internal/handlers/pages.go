package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func AccessDenied(c *gin.Context) {
	c.String(http.StatusForbidden, "Access Denied\nYou are not authorized to access this page.\nGo back to the homepage: /")
}
