package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"admin-console/internal/apperr"
	"admin-console/internal/models"

	"github.com/gin-gonic/gin"
)

type redirect struct {
	Redirect string `json:"redirect"`
}

func ok[T any](c *gin.Context, message string, data T) {
	c.JSON(http.StatusOK, models.OK(message, data))
}

// fail переводит ошибку сервиса в статус и конверт {ok:false, message}.
// Сессия после любой ошибки остаётся рабочей.
func fail(c *gin.Context, err error) {
	_ = c.Error(err)

	var (
		ve *apperr.ValidationError
		be *apperr.BackendError
	)
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, models.Fail(ve.Message))
	case errors.Is(err, apperr.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, models.Fail("Invalid email or password"))
	case errors.Is(err, apperr.ErrAccessDenied):
		c.JSON(http.StatusForbidden, models.Envelope[redirect]{
			Message: "You are not authorized to access this page.",
			Data:    redirect{Redirect: "/access-denied"},
		})
	case errors.Is(err, apperr.ErrProtectedRole):
		c.JSON(http.StatusConflict, models.Fail("Failed to delete! The role is one of system roles."))
	case errors.Is(err, apperr.ErrNotFound):
		c.JSON(http.StatusNotFound, models.Fail("Not found."))
	case errors.Is(err, apperr.ErrMalformedRequest):
		c.JSON(http.StatusUnprocessableEntity, models.Fail(err.Error()))
	case errors.As(err, &be):
		// сообщение бэкенда отдаём как есть
		c.JSON(http.StatusBadGateway, models.Fail(be.Error()))
	case errors.Is(err, apperr.ErrTransport):
		c.JSON(http.StatusGatewayTimeout, models.Fail("Backend is unavailable, please try again."))
	default:
		c.JSON(http.StatusInternalServerError, models.Fail("An unexpected error happened"))
	}
}

func paramID(c *gin.Context, name string) (int, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		return 0, apperr.Validation(name, "Invalid id.")
	}
	return id, nil
}
