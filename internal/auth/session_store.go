package auth

import (
	"admin-console/internal/models"

	"github.com/gin-contrib/sessions"
)

const (
	keyIdentityID  = "identity_id"
	keyDisplayName = "display_name"
	keyKind        = "kind"
	keyRoleID      = "role_id"
	keyRoleName    = "role_name"
	keyPermissions = "permissions"
)

func Save(sess sessions.Session, s *Session) error {
	sess.Set(keyIdentityID, s.IdentityID)
	sess.Set(keyDisplayName, s.DisplayName)
	sess.Set(keyKind, string(s.Kind))
	sess.Set(keyRoleID, s.Role.ID)
	sess.Set(keyRoleName, s.Role.Name)
	sess.Set(keyPermissions, append([]string(nil), s.Role.Permissions...))
	return sess.Save()
}

// Load восстанавливает сессию из cookie. false — не залогинен.
func Load(sess sessions.Session) (*Session, bool) {
	id, ok := sess.Get(keyIdentityID).(uint)
	if !ok || id == 0 {
		return nil, false
	}
	kind, _ := sess.Get(keyKind).(string)
	roleID, ok := sess.Get(keyRoleID).(int)
	if !ok {
		return nil, false
	}
	name, _ := sess.Get(keyDisplayName).(string)
	roleName, _ := sess.Get(keyRoleName).(string)
	perms, _ := sess.Get(keyPermissions).([]string)

	return &Session{
		IdentityID:  id,
		DisplayName: name,
		Kind:        models.IdentityKind(kind),
		Role: models.Role{
			ID:          roleID,
			Name:        roleName,
			Permissions: perms,
		},
	}, true
}

func Clear(sess sessions.Session) error {
	sess.Clear()
	return sess.Save()
}
