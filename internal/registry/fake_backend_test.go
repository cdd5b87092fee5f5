package registry

import (
	"context"
	"sort"
	"sync"

	"admin-console/internal/apperr"
	"admin-console/internal/models"
)

// fakeBackend — внешний API в памяти. fail, если задан, возвращается
// следующим вызовом и сбрасывается.
type fakeBackend struct {
	mu          sync.Mutex
	roles       map[int]models.Role
	permissions []models.Permission
	nextID      int
	fail        error
	calls       []string
	// attachReply подменяет роль в ответе на attach
	attachReply *models.Role
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		roles: map[int]models.Role{
			1: {ID: 1, Name: "Admin", Permissions: []string{models.PermManageRoles, models.PermReviewRequests}},
			2: {ID: 2, Name: "Manager", Permissions: []string{models.PermReviewRequests}},
			3: {ID: 3, Name: "Employee", Permissions: []string{}},
			4: {ID: 4, Name: "User", Permissions: []string{}},
			5: {ID: 5, Name: "Teller", Permissions: []string{}},
		},
		permissions: []models.Permission{{Name: "ViewReports"}, {Name: "ApproveRefund"}},
		nextID:      6,
	}
}

func (f *fakeBackend) takeFail(call string) error {
	f.calls = append(f.calls, call)
	err := f.fail
	f.fail = nil
	return err
}

func (f *fakeBackend) ListRoles(context.Context) ([]models.Role, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFail("ListRoles"); err != nil {
		return nil, err
	}
	ids := make([]int, 0, len(f.roles))
	for id := range f.roles {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]models.Role, 0, len(ids))
	for _, id := range ids {
		out = append(out, f.roles[id].Clone())
	}
	return out, nil
}

func (f *fakeBackend) ListPermissions(context.Context) ([]models.Permission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFail("ListPermissions"); err != nil {
		return nil, err
	}
	return append([]models.Permission(nil), f.permissions...), nil
}

func (f *fakeBackend) CreateRole(_ context.Context, name string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFail("CreateRole"); err != nil {
		return "", err
	}
	f.roles[f.nextID] = models.Role{ID: f.nextID, Name: name, Permissions: []string{}}
	f.nextID++
	return "Create role successfully.", nil
}

// DeleteRole ничего не проверяет — как хранилище без защиты системных ролей.
func (f *fakeBackend) DeleteRole(_ context.Context, id int) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFail("DeleteRole"); err != nil {
		return "", err
	}
	delete(f.roles, id)
	return "Delete role successfully.", nil
}

func (f *fakeBackend) CreatePermission(_ context.Context, name string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFail("CreatePermission"); err != nil {
		return "", err
	}
	f.permissions = append(f.permissions, models.Permission{Name: name})
	return "Create permission successfully.", nil
}

func (f *fakeBackend) AttachPermissions(_ context.Context, id int, names []string) (models.Role, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFail("AttachPermissions"); err != nil {
		return models.Role{}, "", err
	}
	if f.attachReply != nil {
		return *f.attachReply, "Add permissions successfully.", nil
	}
	role, ok := f.roles[id]
	if !ok {
		return models.Role{}, "", &apperr.BackendError{Status: 404, Message: "Role not found."}
	}
	role = role.Clone()
	for _, n := range names {
		if !role.HasPermission(n) {
			role.Permissions = append(role.Permissions, n)
		}
	}
	f.roles[id] = role
	return role.Clone(), "Add permissions successfully.", nil
}

func (f *fakeBackend) DetachPermission(_ context.Context, id int, name string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFail("DetachPermission"); err != nil {
		return "", err
	}
	role := f.roles[id].Clone()
	kept := role.Permissions[:0]
	for _, p := range role.Permissions {
		if p != name {
			kept = append(kept, p)
		}
	}
	role.Permissions = kept
	f.roles[id] = role
	return "Remove permission successfully.", nil
}

type auditEntry struct {
	entity, entityID, action string
}

type fakeAudit struct {
	mu      sync.Mutex
	entries []auditEntry
}

func (a *fakeAudit) Record(_ context.Context, _ uint, entity, entityID, action, _ string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, auditEntry{entity, entityID, action})
}
