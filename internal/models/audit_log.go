package models

import "time"

type AuditLog struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time

	IdentityID uint
	Identity   Identity

	Entity   string `gorm:"size:50;not null"` // "role", "permission", "request", "news"
	EntityID string `gorm:"size:255"`
	Action   string `gorm:"size:50;not null"` // "create", "delete", "attach", "accept" и т.п.
	Details  string `gorm:"type:text"`
}
