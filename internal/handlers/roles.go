package handlers

import (
	"net/http"

	"admin-console/internal/middleware"
	"admin-console/internal/models"

	"github.com/gin-gonic/gin"
)

type nameForm struct {
	Name string `json:"name" form:"name"`
}

type attachForm struct {
	PermissionNames []string `json:"permissionNames" form:"permissionNames"`
}

// ListRoles перечитывает роли с бэкенда, как при открытии страницы.
func (h *Handlers) ListRoles(c *gin.Context) {
	if err := h.Registry.Refresh(c.Request.Context()); err != nil {
		fail(c, err)
		return
	}
	ok(c, "", h.Registry.Summaries())
}

func (h *Handlers) ShowRole(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		fail(c, err)
		return
	}
	role, found := h.Registry.Role(id)
	if !found {
		c.JSON(http.StatusNotFound, models.Fail("Role not found."))
		return
	}
	ok(c, "", role)
}

func (h *Handlers) CreateRole(c *gin.Context) {
	var form nameForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, models.Fail("Invalid request body."))
		return
	}
	msg, err := h.Registry.CreateRole(c.Request.Context(), middleware.CurrentSession(c), form.Name)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, msg, h.Registry.Summaries())
}

func (h *Handlers) DeleteRole(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		fail(c, err)
		return
	}
	msg, err := h.Registry.DeleteRole(c.Request.Context(), middleware.CurrentSession(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	ok[any](c, msg, nil)
}

func (h *Handlers) ListPermissions(c *gin.Context) {
	if err := h.Registry.Refresh(c.Request.Context()); err != nil {
		fail(c, err)
		return
	}
	ok(c, "", h.Registry.Permissions())
}

func (h *Handlers) CreatePermission(c *gin.Context) {
	var form nameForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, models.Fail("Invalid request body."))
		return
	}
	msg, err := h.Registry.CreatePermission(c.Request.Context(), middleware.CurrentSession(c), form.Name)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, msg, h.Registry.Permissions())
}

func (h *Handlers) AttachPermissions(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		fail(c, err)
		return
	}
	var form attachForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, models.Fail("Invalid request body."))
		return
	}
	role, msg, err := h.Registry.AttachPermissions(c.Request.Context(), middleware.CurrentSession(c), id, form.PermissionNames)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, msg, role)
}

func (h *Handlers) DetachPermission(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		fail(c, err)
		return
	}
	msg, err := h.Registry.DetachPermission(c.Request.Context(), middleware.CurrentSession(c), id, c.Param("name"))
	if err != nil {
		fail(c, err)
		return
	}
	role, _ := h.Registry.Role(id)
	ok(c, msg, role)
}
