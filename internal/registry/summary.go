package registry

import "admin-console/internal/models"

// VisiblePermissions — сколько прав показываем в карточке роли.
const VisiblePermissions = 4

type Summary struct {
	ID      int      `json:"id"`
	Name    string   `json:"name"`
	Visible []string `json:"visible"`
	Hidden  int      `json:"hidden"`
	System  bool     `json:"system"`
}

func Summarize(role models.Role) Summary {
	s := Summary{
		ID:     role.ID,
		Name:   role.Name,
		System: role.IsSystem(),
	}
	perms := role.Permissions
	if len(perms) > VisiblePermissions {
		s.Hidden = len(perms) - VisiblePermissions
		perms = perms[:VisiblePermissions]
	}
	s.Visible = append([]string{}, perms...)
	return s
}

// Summaries строится из того же снимка, что и Role(id), поэтому
// карточки и детальный просмотр совпадают после detach.
func (r *Registry) Summaries() []Summary {
	roles := r.Roles()
	out := make([]Summary, 0, len(roles))
	for _, role := range roles {
		out = append(out, Summarize(role))
	}
	return out
}
