// Package authz holds the pure authorization decisions. Every mutating
// operation consults these before touching storage.
package authz

import "tasklog/internal/models"

// CanMutateTask permits admins and the task's owner.
func CanMutateTask(principal *models.Principal, task models.Task) bool {
	if principal == nil {
		return false
	}
	return principal.Role == models.UserRoleAdmin || task.OwnerID == principal.ID
}

// CanManageUsers permits admins only.
func CanManageUsers(principal *models.Principal) bool {
	return principal != nil && principal.Role == models.UserRoleAdmin
}
