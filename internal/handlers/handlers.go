package handlers

import (
	"context"

	"admin-console/internal/auth"
	"admin-console/internal/models"
	"admin-console/internal/news"
	"admin-console/internal/registry"
	"admin-console/internal/requests"
)

type AuditReader interface {
	Latest(ctx context.Context, limit int) ([]models.AuditLog, error)
}

type Handlers struct {
	Gate     *auth.Gate
	Registry *registry.Registry
	Requests *requests.Reconciler
	News     *news.Service
	Audit    AuditReader
}
