// Package news edits and deletes content items on the blog API.
package news

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"admin-console/internal/apperr"
	"admin-console/internal/auth"
	"admin-console/internal/models"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const (
	msgDeleted    = "Delete news successfully."
	msgDeleteFail = "Fail to delete news."
	msgUpdated    = "Edit news successfully"
	msgUpdateFail = "Fail to edit news"
)

type Auditor interface {
	Record(ctx context.Context, identityID uint, entity, entityID, action, details string)
}

// Service — блог-API отвечает без конверта, успех определяем по 2xx.
type Service struct {
	http  *resty.Client
	audit Auditor
	log   *zap.Logger
}

func New(baseURL string, timeout time.Duration, audit Auditor, log *zap.Logger) *Service {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")

	return &Service{http: client, audit: audit, log: log}
}

func (s *Service) Delete(ctx context.Context, sess *auth.Session, id int) (models.NewsResult, error) {
	if err := auth.Require(sess, models.PermManageNews); err != nil {
		return models.NewsResult{}, err
	}
	if id <= 0 {
		return models.NewsResult{}, apperr.Validation("id", "News id is required.")
	}

	resp, err := s.http.R().
		SetContext(ctx).
		Delete(fmt.Sprintf("/api/Blog/%d", id))
	if err != nil {
		s.log.Error("delete news failed", zap.Int("news_id", id), zap.Error(err))
		return models.NewsResult{}, &apperr.TransportError{Op: "delete news", Err: err}
	}
	if !resp.IsSuccess() {
		s.log.Warn("blog API rejected delete", zap.Int("news_id", id), zap.Int("status_code", resp.StatusCode()))
		return failed(msgDeleteFail), &apperr.BackendError{Status: resp.StatusCode(), Message: msgDeleteFail}
	}

	s.audit.Record(ctx, sess.IdentityID, "news", strconv.Itoa(id), "delete", "")
	return succeeded(msgDeleted), nil
}

func (s *Service) Update(ctx context.Context, sess *auth.Session, item models.NewsItem) (models.NewsResult, error) {
	if err := auth.Require(sess, models.PermManageNews); err != nil {
		return models.NewsResult{}, err
	}
	if item.ID <= 0 {
		return models.NewsResult{}, apperr.Validation("id", "News id is required.")
	}

	body, err := item.Body()
	if err != nil {
		return models.NewsResult{}, apperr.Validation("body", "Invalid news payload.")
	}

	resp, err := s.http.R().
		SetContext(ctx).
		SetBody(body).
		Put(fmt.Sprintf("/api/Blog/update/%d", item.ID))
	if err != nil {
		s.log.Error("edit news failed", zap.Int("news_id", item.ID), zap.Error(err))
		return models.NewsResult{}, &apperr.TransportError{Op: "edit news", Err: err}
	}
	if !resp.IsSuccess() {
		s.log.Warn("blog API rejected edit", zap.Int("news_id", item.ID), zap.Int("status_code", resp.StatusCode()))
		return failed(msgUpdateFail), &apperr.BackendError{Status: resp.StatusCode(), Message: msgUpdateFail}
	}

	s.audit.Record(ctx, sess.IdentityID, "news", strconv.Itoa(item.ID), "update", item.Title)
	return succeeded(msgUpdated), nil
}

func succeeded(msg string) models.NewsResult {
	return models.NewsResult{OK: true, Status: "success", Message: msg}
}

func failed(msg string) models.NewsResult {
	return models.NewsResult{OK: false, Status: "server error", Message: msg}
}
