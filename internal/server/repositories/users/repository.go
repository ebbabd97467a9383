package users

import (
	"context"

	"bookcatalog/internal/server/models"
)

// Repository is the credential store: user identity records plus the
// role/permission assignments consulted by the authorization layer.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	// UsernameExists reports whether username is taken. excludeUserID > 0
	// ignores that user's own row (for profile updates).
	UsernameExists(ctx context.Context, username string, excludeUserID int64) (bool, error)
	Update(ctx context.Context, user *models.User) (*models.User, error)
	// UserHasPermission reports whether any role assigned to the user is
	// granted the permission. Unknown users simply yield false.
	UserHasPermission(ctx context.Context, userID int64, permissionID string) (bool, error)
	GrantRole(ctx context.Context, userID int64, roleName string) error
}
