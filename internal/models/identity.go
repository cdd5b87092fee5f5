package models

import "gorm.io/gorm"

type IdentityKind string

const (
	KindEmployee IdentityKind = "Employee"
	KindUser     IdentityKind = "User"
)

func (k IdentityKind) Valid() bool {
	return k == KindEmployee || k == KindUser
}

// Identity — учётка из провайдера идентификации. Наша система её только читает
// (кроме сидирования при старте).
type Identity struct {
	gorm.Model
	Username     string       `gorm:"uniqueIndex:idx_identity_login;size:50;not null"`
	DisplayName  string       `gorm:"size:255"`
	PasswordHash string       `gorm:"not null" json:"-"`
	Kind         IdentityKind `gorm:"uniqueIndex:idx_identity_login;type:varchar(20);not null"`
	RoleID       int          `gorm:"not null"`
}
