// Package constants holds shared identifiers that must stay in sync with
// the seeded database rows.
package constants

// Permission IDs granted to roles and checked by the authorization layer.
const (
	PermissionBookCreate = "books:create"
	PermissionBookUpdate = "books:update"
	PermissionBookDelete = "books:delete"
)
