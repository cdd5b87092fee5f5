package registry

import (
	"context"
	"fmt"
	"testing"

	"admin-console/internal/apperr"
	"admin-console/internal/auth"
	"admin-console/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var admin = &auth.Session{
	IdentityID: 1,
	Kind:       models.KindEmployee,
	Role:       models.Role{ID: 1, Name: "Admin", Permissions: []string{models.PermManageRoles}},
}

var viewer = &auth.Session{
	IdentityID: 2,
	Kind:       models.KindUser,
	Role:       models.Role{ID: 4, Name: "User"},
}

func newTestRegistry(t *testing.T) (*Registry, *fakeBackend, *fakeAudit) {
	t.Helper()
	backend := newFakeBackend()
	audit := &fakeAudit{}
	r := New(backend, audit, zap.NewNop())
	require.NoError(t, r.Refresh(context.Background()))
	return r, backend, audit
}

func roleIDs(r *Registry) []int {
	var ids []int
	for _, role := range r.Roles() {
		ids = append(ids, role.ID)
	}
	return ids
}

func TestDeleteSystemRoleNeverRemoves(t *testing.T) {
	r, backend, _ := newTestRegistry(t)

	for id := 1; id <= models.SystemRoleMaxID; id++ {
		t.Run(fmt.Sprintf("role %d", id), func(t *testing.T) {
			_, err := r.DeleteRole(context.Background(), admin, id)
			assert.ErrorIs(t, err, apperr.ErrProtectedRole)
			assert.Contains(t, roleIDs(r), id)
		})
	}
	assert.NotContains(t, backend.calls, "DeleteRole")
}

func TestRemoveRoleGuardsResponsePath(t *testing.T) {
	r, _, _ := newTestRegistry(t)

	// даже если бэкенд ответил ok, снимок системную роль не отдаёт
	for _, id := range []int{0, 1, 4} {
		assert.ErrorIs(t, r.removeRole(id), apperr.ErrProtectedRole)
	}
	assert.Equal(t, []int{1, 2, 3, 4, 5}, roleIDs(r))
}

func TestDeleteRole(t *testing.T) {
	r, _, audit := newTestRegistry(t)

	msg, err := r.DeleteRole(context.Background(), admin, 5)
	require.NoError(t, err)
	assert.Equal(t, "Delete role successfully.", msg)
	assert.NotContains(t, roleIDs(r), 5)
	_, ok := r.Role(5)
	assert.False(t, ok)
	assert.Equal(t, []auditEntry{{"role", "5", "delete"}}, audit.entries)
}

func TestDeleteRoleBackendFailureKeepsRole(t *testing.T) {
	r, backend, audit := newTestRegistry(t)
	backend.fail = &apperr.BackendError{Status: 500, Message: "Fail to delete role."}

	_, err := r.DeleteRole(context.Background(), admin, 5)
	var be *apperr.BackendError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "Fail to delete role.", be.Message)
	assert.Contains(t, roleIDs(r), 5)
	assert.Empty(t, audit.entries)
}

func TestAttachThenDetach(t *testing.T) {
	r, _, _ := newTestRegistry(t)
	ctx := context.Background()

	role, _, err := r.AttachPermissions(ctx, admin, 5, []string{"ViewReports", "ApproveRefund"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"ViewReports", "ApproveRefund"}, role.Permissions)

	stored, ok := r.Role(5)
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"ViewReports", "ApproveRefund"}, stored.Permissions)

	_, err = r.DetachPermission(ctx, admin, 5, "ViewReports")
	require.NoError(t, err)

	stored, ok = r.Role(5)
	require.True(t, ok)
	assert.Equal(t, []string{"ApproveRefund"}, stored.Permissions)
}

func TestAttachReplacesByResponseID(t *testing.T) {
	r, backend, _ := newTestRegistry(t)

	// бэкенд поменял имя роли — снимок должен взять ответ целиком
	backend.roles[5] = models.Role{ID: 5, Name: "Senior Teller", Permissions: []string{}}
	_, _, err := r.AttachPermissions(context.Background(), admin, 5, []string{"ViewReports"})
	require.NoError(t, err)

	stored, _ := r.Role(5)
	assert.Equal(t, "Senior Teller", stored.Name)
	assert.Equal(t, []string{"ViewReports"}, stored.Permissions)
}

func TestAttachRejectsUnexpectedResponseRole(t *testing.T) {
	for name, reply := range map[string]models.Role{
		"empty data": {},
		"other role": {ID: 2, Name: "Manager", Permissions: []string{"ViewReports"}},
	} {
		t.Run(name, func(t *testing.T) {
			r, backend, _ := newTestRegistry(t)
			before := r.Roles()

			reply := reply
			backend.attachReply = &reply
			_, _, err := r.AttachPermissions(context.Background(), admin, 5, []string{"ViewReports"})
			assert.ErrorIs(t, err, apperr.ErrBackend)

			assert.Equal(t, before, r.Roles())
			_, found := r.Role(0)
			assert.False(t, found)
		})
	}
}

func TestAttachValidation(t *testing.T) {
	r, backend, _ := newTestRegistry(t)

	_, _, err := r.AttachPermissions(context.Background(), admin, 5, []string{" ", ""})
	assert.ErrorIs(t, err, apperr.ErrValidation)
	assert.NotContains(t, backend.calls, "AttachPermissions")
}

func TestDetachKeepsSummaryAndDrillDownConsistent(t *testing.T) {
	r, _, _ := newTestRegistry(t)
	ctx := context.Background()

	_, _, err := r.AttachPermissions(ctx, admin, 5, []string{"A", "B", "C", "D", "E", "F"})
	require.NoError(t, err)

	summary := summaryFor(t, r, 5)
	assert.Equal(t, []string{"A", "B", "C", "D"}, summary.Visible)
	assert.Equal(t, 2, summary.Hidden)

	_, err = r.DetachPermission(ctx, admin, 5, "B")
	require.NoError(t, err)

	summary = summaryFor(t, r, 5)
	detail, _ := r.Role(5)
	assert.Equal(t, []string{"A", "C", "D", "E"}, summary.Visible)
	assert.Equal(t, 1, summary.Hidden)
	assert.Equal(t, []string{"A", "C", "D", "E", "F"}, detail.Permissions)
}

func summaryFor(t *testing.T, r *Registry, id int) Summary {
	t.Helper()
	for _, s := range r.Summaries() {
		if s.ID == id {
			return s
		}
	}
	t.Fatalf("no summary for role %d", id)
	return Summary{}
}

func TestDetachFailureLeavesSnapshot(t *testing.T) {
	r, backend, _ := newTestRegistry(t)
	ctx := context.Background()
	_, _, err := r.AttachPermissions(ctx, admin, 5, []string{"ViewReports"})
	require.NoError(t, err)

	backend.fail = &apperr.TransportError{Op: "DELETE", Err: context.DeadlineExceeded}
	_, err = r.DetachPermission(ctx, admin, 5, "ViewReports")
	assert.ErrorIs(t, err, apperr.ErrTransport)

	stored, _ := r.Role(5)
	assert.Equal(t, []string{"ViewReports"}, stored.Permissions)
}

func TestCreateRole(t *testing.T) {
	r, _, _ := newTestRegistry(t)
	ctx := context.Background()

	_, err := r.CreateRole(ctx, admin, "   ")
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = r.CreateRole(ctx, admin, "Teller")
	assert.ErrorIs(t, err, apperr.ErrValidation)

	msg, err := r.CreateRole(ctx, admin, "Auditor")
	require.NoError(t, err)
	assert.Equal(t, "Create role successfully.", msg)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, roleIDs(r))
}

func TestCreatePermission(t *testing.T) {
	r, _, _ := newTestRegistry(t)
	ctx := context.Background()

	_, err := r.CreatePermission(ctx, admin, "")
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = r.CreatePermission(ctx, admin, "ViewReports")
	assert.ErrorIs(t, err, apperr.ErrValidation)

	// имена регистрозависимые
	_, err = r.CreatePermission(ctx, admin, "viewreports")
	require.NoError(t, err)
	assert.Contains(t, r.Permissions(), models.Permission{Name: "viewreports"})
}

func TestMutationsRequireManageRoles(t *testing.T) {
	r, backend, _ := newTestRegistry(t)
	ctx := context.Background()

	_, err := r.CreateRole(ctx, viewer, "Auditor")
	assert.ErrorIs(t, err, apperr.ErrAccessDenied)
	_, err = r.DeleteRole(ctx, viewer, 5)
	assert.ErrorIs(t, err, apperr.ErrAccessDenied)
	_, err = r.CreatePermission(ctx, viewer, "X")
	assert.ErrorIs(t, err, apperr.ErrAccessDenied)
	_, _, err = r.AttachPermissions(ctx, viewer, 5, []string{"X"})
	assert.ErrorIs(t, err, apperr.ErrAccessDenied)
	_, err = r.DetachPermission(ctx, viewer, 5, "X")
	assert.ErrorIs(t, err, apperr.ErrAccessDenied)
	_, err = r.DeleteRole(ctx, nil, 5)
	assert.ErrorIs(t, err, apperr.ErrAccessDenied)

	assert.Equal(t, []string{"ListRoles", "ListPermissions"}, backend.calls)
}

func TestResolveRefreshesOnMiss(t *testing.T) {
	r, backend, _ := newTestRegistry(t)
	ctx := context.Background()

	backend.roles[9] = models.Role{ID: 9, Name: "Late"}
	role, err := r.Resolve(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, "Late", role.Name)

	_, err = r.Resolve(ctx, 42)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestSnapshotReadsAreCopies(t *testing.T) {
	r, _, _ := newTestRegistry(t)
	role, _ := r.Role(1)
	role.Permissions[0] = "Hacked"

	again, _ := r.Role(1)
	assert.Equal(t, models.PermManageRoles, again.Permissions[0])
}

func TestSummarize(t *testing.T) {
	s := Summarize(models.Role{ID: 2, Name: "Manager", Permissions: []string{"A", "B"}})
	assert.Equal(t, []string{"A", "B"}, s.Visible)
	assert.Equal(t, 0, s.Hidden)
	assert.True(t, s.System)

	s = Summarize(models.Role{ID: 7, Name: "Ops"})
	assert.Equal(t, []string{}, s.Visible)
	assert.False(t, s.System)
}
