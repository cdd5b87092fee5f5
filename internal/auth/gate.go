// Package auth decides who the caller is and whether they may act.
package auth

import (
	"context"
	"errors"
	"fmt"

	"admin-console/internal/apperr"
	"admin-console/internal/models"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type IdentityStore interface {
	FindLogin(ctx context.Context, username string, kind models.IdentityKind) (*models.Identity, error)
}

// RoleResolver отдаёт актуальную роль по id (реестр ролей).
type RoleResolver interface {
	Resolve(ctx context.Context, roleID int) (models.Role, error)
}

type Credentials struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// Session привязана ровно к одной роли.
type Session struct {
	IdentityID  uint                `json:"identityId"`
	DisplayName string              `json:"displayName"`
	Kind        models.IdentityKind `json:"kind"`
	Role        models.Role         `json:"role"`
}

// Сотруднику пароль от 8 символов, пользователю от 3 — так было в исходных формах.
type employeeCredentials struct {
	Username string `validate:"required,max=50"`
	Password string `validate:"required,min=8,max=50"`
}

type userCredentials struct {
	Username string `validate:"required,min=3,max=50"`
	Password string `validate:"required,min=3,max=50"`
}

type Gate struct {
	identities IdentityStore
	roles      RoleResolver
	validate   *validator.Validate
	log        *zap.Logger
}

func NewGate(identities IdentityStore, roles RoleResolver, log *zap.Logger) *Gate {
	return &Gate{
		identities: identities,
		roles:      roles,
		validate:   validator.New(),
		log:        log,
	}
}

// Authenticate never tells "unknown identity" apart from "wrong secret":
// both come back as apperr.ErrInvalidCredentials.
func (g *Gate) Authenticate(ctx context.Context, kind models.IdentityKind, creds Credentials) (*Session, error) {
	if err := g.check(kind, creds); err != nil {
		return nil, err
	}

	identity, err := g.identities.FindLogin(ctx, creds.Username, kind)
	if errors.Is(err, apperr.ErrNotFound) {
		g.log.Info("login rejected", zap.String("kind", string(kind)))
		return nil, apperr.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(creds.Password)); err != nil {
		g.log.Info("login rejected", zap.String("kind", string(kind)))
		return nil, apperr.ErrInvalidCredentials
	}

	role, err := g.roles.Resolve(ctx, identity.RoleID)
	if errors.Is(err, apperr.ErrNotFound) {
		g.log.Warn("identity has unknown role",
			zap.Uint("identity_id", identity.ID),
			zap.Int("role_id", identity.RoleID),
		)
		return nil, apperr.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	g.log.Info("login succeeded",
		zap.Uint("identity_id", identity.ID),
		zap.String("kind", string(kind)),
		zap.Int("role_id", role.ID),
	)

	return &Session{
		IdentityID:  identity.ID,
		DisplayName: identity.DisplayName,
		Kind:        kind,
		Role:        role,
	}, nil
}

func (g *Gate) check(kind models.IdentityKind, creds Credentials) error {
	var target any
	switch kind {
	case models.KindEmployee:
		target = employeeCredentials(creds)
	case models.KindUser:
		target = userCredentials(creds)
	default:
		return apperr.Validation("kind", "Unknown login kind")
	}

	err := g.validate.Struct(target)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return validationMessage(kind, verrs[0])
	}
	return err
}

func validationMessage(kind models.IdentityKind, fe validator.FieldError) error {
	field := fe.Field()
	label := "Password"
	if field == "Username" {
		label = "Username"
		if kind == models.KindEmployee {
			label = "Email"
		}
	}

	switch fe.Tag() {
	case "required":
		return apperr.Validation(field, label+" is required!")
	case "min":
		return apperr.Validation(field, fmt.Sprintf("%s must be at least %s characters!", label, fe.Param()))
	case "max":
		return apperr.Validation(field, fmt.Sprintf("%s must be at most %s characters!", label, fe.Param()))
	}
	return apperr.Validation(field, label+" is invalid")
}

// RedirectFor: сотрудник идёт в закрытую часть, пользователь — в общую.
func RedirectFor(kind models.IdentityKind) string {
	if kind == models.KindEmployee {
		return "/app"
	}
	return "/"
}

// Authorize is true iff permission is one of the session role's permissions.
func Authorize(s *Session, permission string) bool {
	if s == nil {
		return false
	}
	return s.Role.HasPermission(permission)
}

// Require — Authorize в виде ошибки для сервисов.
func Require(s *Session, permission string) error {
	if !Authorize(s, permission) {
		return fmt.Errorf("%w: missing %s", apperr.ErrAccessDenied, permission)
	}
	return nil
}
