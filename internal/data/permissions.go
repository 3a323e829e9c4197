package data

import (
	"slices"
)

const (
	PermissionProductsWrite  = "products:write"
	PermissionDashboardAdmin = "dashboard:admin"
)

type Permissions []string

func (p Permissions) Include(code string) bool {
	return slices.Contains(p, code)
}

var rolePermissions = map[string]Permissions{
	RoleAdmin: {PermissionProductsWrite, PermissionDashboardAdmin},
	RoleUser:  {},
}

// PermissionsForRole returns a copy of the codes granted to role. Unknown
// roles get none.
func PermissionsForRole(role string) Permissions {
	return slices.Clone(rolePermissions[role])
}

func (u *User) Permissions() Permissions {
	return PermissionsForRole(u.Role)
}
