// Package authz holds the role and ownership decision logic shared by
// routing middleware and services.
package authz

import "quill/internal/models"

// RoleAllowed reports whether callerRole may access an endpoint declaring
// the given required roles. An empty set means any authenticated caller.
func RoleAllowed(callerRole models.UserRole, required ...models.UserRole) bool {
	if len(required) == 0 {
		return true
	}
	for _, r := range required {
		if callerRole == r {
			return true
		}
	}
	return false
}

// CanModify reports whether the caller may mutate or delete a resource owned
// by ownerID: the owner always may, admins may regardless of ownership.
func CanModify(ownerID, callerID uint, callerRole models.UserRole) bool {
	return ownerID == callerID || callerRole == models.RoleAdmin
}
