package handlers

import (
	"errors"
	"net/http"

	"admin-console/internal/apperr"
	"admin-console/internal/middleware"
	"admin-console/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

func (h *Handlers) DeleteNews(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		fail(c, err)
		return
	}
	res, err := h.News.Delete(c.Request.Context(), middleware.CurrentSession(c), id)
	h.newsResult(c, res, err)
}

func (h *Handlers) UpdateNews(c *gin.Context) {
	var item models.NewsItem
	if err := c.ShouldBindBodyWith(&item, binding.JSON); err != nil {
		c.JSON(http.StatusBadRequest, models.Fail("News id and title are required."))
		return
	}
	// блог-API ждёт запись целиком: пересылаем тело как есть
	if raw, ok := c.Get(gin.BodyBytesKey); ok {
		item.Raw, _ = raw.([]byte)
	}
	res, err := h.News.Update(c.Request.Context(), middleware.CurrentSession(c), item)
	h.newsResult(c, res, err)
}

func (h *Handlers) newsResult(c *gin.Context, res models.NewsResult, err error) {
	if errors.Is(err, apperr.ErrBackend) {
		_ = c.Error(err)
		c.JSON(http.StatusBadGateway, res)
		return
	}
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
