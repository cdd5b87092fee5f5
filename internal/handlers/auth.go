package handlers

import (
	"net/http"

	"admin-console/internal/auth"
	"admin-console/internal/middleware"
	"admin-console/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type loginForm struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

type loginResult struct {
	Redirect string        `json:"redirect"`
	Session  *auth.Session `json:"session"`
}

func (h *Handlers) EmployeeLogin(c *gin.Context) {
	h.login(c, models.KindEmployee)
}

func (h *Handlers) UserLogin(c *gin.Context) {
	h.login(c, models.KindUser)
}

func (h *Handlers) login(c *gin.Context, kind models.IdentityKind) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, models.Fail("Invalid request body."))
		return
	}

	s, err := h.Gate.Authenticate(c.Request.Context(), kind, auth.Credentials(form))
	if err != nil {
		fail(c, err)
		return
	}

	if err := auth.Save(sessions.Default(c), s); err != nil {
		fail(c, err)
		return
	}

	ok(c, "Logged in successfully", loginResult{Redirect: auth.RedirectFor(kind), Session: s})
}

func (h *Handlers) Logout(c *gin.Context) {
	_ = auth.Clear(sessions.Default(c))
	ok(c, "Logged out.", redirect{Redirect: "/login"})
}

func (h *Handlers) Me(c *gin.Context) {
	ok(c, "", middleware.CurrentSession(c))
}
