package middleware

import (
	"admin-console/internal/auth"
	"admin-console/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const sessionKey = "CurrentSession"

type RoleLookup interface {
	Role(id int) (models.Role, bool)
}

// InjectSession достаёт сессию из cookie и подтягивает права роли из
// текущего снимка реестра, чтобы изменения ролей действовали сразу.
func InjectSession(roles RoleLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		if s, ok := auth.Load(sessions.Default(c)); ok {
			if role, found := roles.Role(s.Role.ID); found {
				s.Role = role
			}
			c.Set(sessionKey, s)
		}
		c.Next()
	}
}

func CurrentSession(c *gin.Context) *auth.Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	s, _ := v.(*auth.Session)
	return s
}
