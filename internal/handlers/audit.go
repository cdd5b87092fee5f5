package handlers

import (
	"github.com/gin-gonic/gin"
)

const auditPageSize = 200

func (h *Handlers) ListAuditLogs(c *gin.Context) {
	logs, err := h.Audit.Latest(c.Request.Context(), auditPageSize)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "", logs)
}
