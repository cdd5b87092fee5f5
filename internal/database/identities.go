package database

import (
	"context"
	"errors"
	"fmt"

	"admin-console/internal/apperr"
	"admin-console/internal/models"

	"gorm.io/gorm"
)

type IdentityStore struct {
	db *gorm.DB
}

func NewIdentityStore(db *gorm.DB) *IdentityStore {
	return &IdentityStore{db: db}
}

// FindLogin ищет учётку по логину и типу. Отсутствие записи — apperr.ErrNotFound.
func (s *IdentityStore) FindLogin(ctx context.Context, username string, kind models.IdentityKind) (*models.Identity, error) {
	var identity models.Identity
	err := s.db.WithContext(ctx).
		Where("username = ? AND kind = ?", username, kind).
		First(&identity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find identity: %w", err)
	}
	return &identity, nil
}
