package database

import (
	"admin-console/internal/models"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedAccount — учётка, которую создаём при старте, если её ещё нет.
type SeedAccount struct {
	Username    string
	DisplayName string
	Password    string
	Kind        models.IdentityKind
	RoleID      int
}

// DefaultSeed — админ из конфига плюс демо-пользователь.
func DefaultSeed(adminUsername, adminPassword string, adminRoleID int) []SeedAccount {
	if adminUsername == "" {
		adminUsername = "admin@console.local"
	}
	if adminPassword == "" {
		adminPassword = "Admin123!"
	}
	return []SeedAccount{
		{
			Username:    adminUsername,
			DisplayName: "Administrator",
			Password:    adminPassword,
			Kind:        models.KindEmployee,
			RoleID:      adminRoleID,
		},
		{
			Username:    "demo",
			DisplayName: "Demo User",
			Password:    "demo123",
			Kind:        models.KindUser,
			RoleID:      4,
		},
	}
}

func Seed(db *gorm.DB, log *zap.Logger, accounts []SeedAccount) {
	for _, a := range accounts {
		var count int64
		if err := db.Model(&models.Identity{}).
			Where("username = ? AND kind = ?", a.Username, a.Kind).
			Count(&count).Error; err != nil {
			log.Error("failed to check seed account", zap.String("username", a.Username), zap.Error(err))
			continue
		}
		if count > 0 {
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(a.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Error("failed to hash seed password", zap.String("username", a.Username), zap.Error(err))
			continue
		}

		identity := models.Identity{
			Username:     a.Username,
			DisplayName:  a.DisplayName,
			PasswordHash: string(hash),
			Kind:         a.Kind,
			RoleID:       a.RoleID,
		}
		if err := db.Create(&identity).Error; err != nil {
			log.Error("failed to create seed account", zap.String("username", a.Username), zap.Error(err))
			continue
		}

		log.Info("created seed account",
			zap.String("username", a.Username),
			zap.String("kind", string(a.Kind)),
			zap.Int("role_id", a.RoleID),
		)
	}
}
