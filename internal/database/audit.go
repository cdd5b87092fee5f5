package database

import (
	"context"

	"admin-console/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AuditLog пишет журнал действий. Запись best-effort: ошибка только логируется.
type AuditLog struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewAuditLog(db *gorm.DB, log *zap.Logger) *AuditLog {
	return &AuditLog{db: db, log: log}
}

func (a *AuditLog) Record(ctx context.Context, identityID uint, entity, entityID, action, details string) {
	if a == nil || a.db == nil {
		return
	}
	record := models.AuditLog{
		IdentityID: identityID,
		Entity:     entity,
		EntityID:   entityID,
		Action:     action,
		Details:    details,
	}
	if err := a.db.WithContext(ctx).Create(&record).Error; err != nil {
		a.log.Warn("failed to write audit log",
			zap.String("entity", entity),
			zap.String("entity_id", entityID),
			zap.String("action", action),
			zap.Error(err),
		)
	}
}

func (a *AuditLog) Latest(ctx context.Context, limit int) ([]models.AuditLog, error) {
	var logs []models.AuditLog
	err := a.db.WithContext(ctx).
		Preload("Identity").
		Order("created_at desc").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}
