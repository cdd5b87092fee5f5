package models

// id 1..4 — системные роли, удалять их нельзя
const SystemRoleMaxID = 4

const (
	PermManageRoles    = "ManageRoles"
	PermReviewRequests = "ReviewRequests"
	PermManageNews     = "ManageNews"
	PermViewAuditLog   = "ViewAuditLog"
)

// Role приходит с внешнего API. Права хранятся по имени, не по id.
type Role struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Permissions []string `json:"roleHasPermissions"`
}

func (r Role) IsSystem() bool {
	return r.ID <= SystemRoleMaxID
}

func (r Role) HasPermission(name string) bool {
	for _, p := range r.Permissions {
		if p == name {
			return true
		}
	}
	return false
}

// Clone отдаёт копию с собственным слайсом прав.
func (r Role) Clone() Role {
	out := r
	out.Permissions = append([]string(nil), r.Permissions...)
	return out
}

type Permission struct {
	Name string `json:"permissionName"`
}
