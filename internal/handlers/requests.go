package handlers

import (
	"strconv"

	"admin-console/internal/middleware"
	"admin-console/internal/requests"

	"github.com/gin-gonic/gin"
)

type pendingPage struct {
	Items     []requests.UpdateRequest `json:"items"`
	Total     int                      `json:"total"`
	Page      int                      `json:"page"`
	Size      int                      `json:"size"`
	Malformed []int                    `json:"malformed,omitempty"`
}

func (h *Handlers) ListRequests(c *gin.Context) {
	malformed, err := h.Requests.Refresh(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = 10
	}

	found := h.Requests.Search(c.Query("q"))
	ok(c, "", pendingPage{
		Items:     requests.Page(found, page, size),
		Total:     len(found),
		Page:      page,
		Size:      size,
		Malformed: malformed,
	})
}

func (h *Handlers) AcceptRequest(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		fail(c, err)
		return
	}
	msg, err := h.Requests.Accept(c.Request.Context(), middleware.CurrentSession(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	ok[any](c, msg, nil)
}

func (h *Handlers) RejectRequest(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		fail(c, err)
		return
	}
	msg, err := h.Requests.Reject(c.Request.Context(), middleware.CurrentSession(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	ok[any](c, msg, nil)
}
