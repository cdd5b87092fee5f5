// Package registry owns the canonical role/permission snapshot of the
// console. The snapshot is refreshed by re-fetching from the backend; it is
// never pushed to.
package registry

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"admin-console/internal/apperr"
	"admin-console/internal/auth"
	"admin-console/internal/models"

	"go.uber.org/zap"
)

type Backend interface {
	ListRoles(ctx context.Context) ([]models.Role, error)
	ListPermissions(ctx context.Context) ([]models.Permission, error)
	CreateRole(ctx context.Context, name string) (string, error)
	DeleteRole(ctx context.Context, roleID int) (string, error)
	CreatePermission(ctx context.Context, name string) (string, error)
	AttachPermissions(ctx context.Context, roleID int, names []string) (models.Role, string, error)
	DetachPermission(ctx context.Context, roleID int, name string) (string, error)
}

type Auditor interface {
	Record(ctx context.Context, identityID uint, entity, entityID, action, details string)
}

type Registry struct {
	backend Backend
	audit   Auditor
	log     *zap.Logger

	mu          sync.RWMutex
	roles       []models.Role
	permissions []models.Permission
}

func New(backend Backend, audit Auditor, log *zap.Logger) *Registry {
	return &Registry{backend: backend, audit: audit, log: log}
}

func (r *Registry) Refresh(ctx context.Context) error {
	if err := r.refreshRoles(ctx); err != nil {
		return err
	}
	return r.refreshPermissions(ctx)
}

func (r *Registry) refreshRoles(ctx context.Context) error {
	roles, err := r.backend.ListRoles(ctx)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.roles = cloneRoles(roles)
	r.mu.Unlock()
	return nil
}

func (r *Registry) refreshPermissions(ctx context.Context) error {
	perms, err := r.backend.ListPermissions(ctx)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.permissions = append([]models.Permission(nil), perms...)
	r.mu.Unlock()
	return nil
}

func (r *Registry) Roles() []models.Role {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneRoles(r.roles)
}

func (r *Registry) Permissions() []models.Permission {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.Permission(nil), r.permissions...)
}

// Role — детальный просмотр одной роли (все права).
func (r *Registry) Role(id int) (models.Role, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, role := range r.roles {
		if role.ID == id {
			return role.Clone(), true
		}
	}
	return models.Role{}, false
}

// Resolve ищет роль в снимке, при промахе один раз перечитывает список.
func (r *Registry) Resolve(ctx context.Context, id int) (models.Role, error) {
	if role, ok := r.Role(id); ok {
		return role, nil
	}
	if err := r.refreshRoles(ctx); err != nil {
		return models.Role{}, err
	}
	if role, ok := r.Role(id); ok {
		return role, nil
	}
	return models.Role{}, fmt.Errorf("role %d: %w", id, apperr.ErrNotFound)
}

func (r *Registry) CreateRole(ctx context.Context, s *auth.Session, name string) (string, error) {
	if err := auth.Require(s, models.PermManageRoles); err != nil {
		return "", err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperr.Validation("name", "Role name is required.")
	}
	if r.hasRoleName(name) {
		return "", apperr.Validation("name", "Role name already exists.")
	}

	msg, err := r.backend.CreateRole(ctx, name)
	if err != nil {
		return "", err
	}
	r.audit.Record(ctx, s.IdentityID, "role", name, "create", "Created role "+name)

	// новый id знает только бэкенд, поэтому перечитываем список
	if err := r.refreshRoles(ctx); err != nil {
		r.log.Warn("role created but refresh failed", zap.String("name", name), zap.Error(err))
	}
	return msg, nil
}

func (r *Registry) hasRoleName(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, role := range r.roles {
		if role.Name == name {
			return true
		}
	}
	return false
}

func (r *Registry) DeleteRole(ctx context.Context, s *auth.Session, id int) (string, error) {
	if err := auth.Require(s, models.PermManageRoles); err != nil {
		return "", err
	}
	if id <= models.SystemRoleMaxID {
		return "", apperr.ErrProtectedRole
	}

	msg, err := r.backend.DeleteRole(ctx, id)
	if err != nil {
		return "", err
	}
	if err := r.removeRole(id); err != nil {
		return "", err
	}
	r.audit.Record(ctx, s.IdentityID, "role", strconv.Itoa(id), "delete", "Deleted role "+strconv.Itoa(id))
	return msg, nil
}

// removeRole сам проверяет защиту системных ролей: хранилище бэкенда
// может её не соблюдать, а снимок не должен терять роли 1..4.
func (r *Registry) removeRole(id int) error {
	if id <= models.SystemRoleMaxID {
		return apperr.ErrProtectedRole
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.roles[:0:0]
	for _, role := range r.roles {
		if role.ID != id {
			kept = append(kept, role)
		}
	}
	r.roles = kept
	return nil
}

func (r *Registry) CreatePermission(ctx context.Context, s *auth.Session, name string) (string, error) {
	if err := auth.Require(s, models.PermManageRoles); err != nil {
		return "", err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperr.Validation("name", "Permission name is required.")
	}
	if r.hasPermission(name) {
		return "", apperr.Validation("name", "Permission already exists.")
	}

	msg, err := r.backend.CreatePermission(ctx, name)
	if err != nil {
		return "", err
	}
	r.audit.Record(ctx, s.IdentityID, "permission", name, "create", "Created permission "+name)

	if err := r.refreshPermissions(ctx); err != nil {
		r.log.Warn("permission created but refresh failed", zap.String("name", name), zap.Error(err))
	}
	return msg, nil
}

func (r *Registry) hasPermission(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.permissions {
		if p.Name == name {
			return true
		}
	}
	return false
}

func (r *Registry) AttachPermissions(ctx context.Context, s *auth.Session, roleID int, names []string) (models.Role, string, error) {
	if err := auth.Require(s, models.PermManageRoles); err != nil {
		return models.Role{}, "", err
	}
	names = dedupe(names)
	if len(names) == 0 {
		return models.Role{}, "", apperr.Validation("permissionNames", "Select at least one permission.")
	}

	role, msg, err := r.backend.AttachPermissions(ctx, roleID, names)
	if err != nil {
		return models.Role{}, "", err
	}
	// пустой или чужой data в ответе в снимок не пускаем
	if role.ID != roleID {
		r.log.Warn("attach response carries unexpected role", zap.Int("role_id", roleID), zap.Int("response_role_id", role.ID))
		return models.Role{}, "", &apperr.BackendError{Status: http.StatusOK, Message: "Unexpected role in backend response."}
	}
	r.replaceRole(role)
	r.audit.Record(ctx, s.IdentityID, "role", strconv.Itoa(roleID), "attach", strings.Join(names, ", "))
	return role.Clone(), msg, nil
}

// replaceRole подменяет запись с тем же id, что пришёл в ответе,
// а не правит старую: бэкенд мог пересчитать и другие поля.
func (r *Registry) replaceRole(role models.Role) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.roles {
		if r.roles[i].ID == role.ID {
			r.roles[i] = role.Clone()
			return
		}
	}
	r.roles = append(r.roles, role.Clone())
}

func (r *Registry) DetachPermission(ctx context.Context, s *auth.Session, roleID int, name string) (string, error) {
	if err := auth.Require(s, models.PermManageRoles); err != nil {
		return "", err
	}
	if name == "" {
		return "", apperr.Validation("name", "Permission name is required.")
	}

	msg, err := r.backend.DetachPermission(ctx, roleID, name)
	if err != nil {
		return "", err
	}
	r.dropPermission(roleID, name)
	r.audit.Record(ctx, s.IdentityID, "role", strconv.Itoa(roleID), "detach", name)
	return msg, nil
}

func (r *Registry) dropPermission(roleID int, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.roles {
		if r.roles[i].ID != roleID {
			continue
		}
		perms := r.roles[i].Permissions
		for j, p := range perms {
			if p == name {
				next := make([]string, 0, len(perms)-1)
				next = append(next, perms[:j]...)
				next = append(next, perms[j+1:]...)
				r.roles[i].Permissions = next
				return
			}
		}
		return
	}
}

func dedupe(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

func cloneRoles(in []models.Role) []models.Role {
	out := make([]models.Role, len(in))
	for i, role := range in {
		out[i] = role.Clone()
	}
	return out
}
