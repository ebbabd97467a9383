// Package services contains server-side business logic. This file implements
// AuthService: registration, login, profile updates, token resolution and
// permission checks.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"bookcatalog/internal/apperr"
	"bookcatalog/internal/dbx"
	"bookcatalog/internal/server/auth"
	"bookcatalog/internal/server/models"
	"bookcatalog/internal/server/repositories/repomanager"
)

// DefaultRole is assigned to every self-registered user.
const DefaultRole = "reader"

// Token is a minted bearer credential in the shape clients expect.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// UpdateUserInput carries a partial profile update. Empty fields are
// treated as absent.
type UpdateUserInput struct {
	Username        string
	CurrentPassword string
	NewPassword     string
}

// AuthService provides authentication and authorization operations:
// - Register: create users and assign the default role
// - Login: verify credentials and mint access tokens
// - GetUserFromToken: resolve a bearer token back to its user
// - UpdateCurrentUser: username/password self-service changes
// - RequirePermission: role-based permission checks
type AuthService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	codec       *auth.Codec
}

// NewAuthService constructs an AuthService around a token codec and the
// repository manager.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, codec *auth.Codec) *AuthService {
	return &AuthService{db: db, repomanager: m, codec: codec}
}

// Login verifies the credentials and mints an access token. Unknown
// usernames and wrong passwords produce the same error; a disabled
// account is only revealed after the password verifies.
func (s *AuthService) Login(ctx context.Context, username, password string) (*Token, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByUsername(ctx, strings.ToLower(strings.TrimSpace(username)))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.Unauthorized("Invalid username or password")
		}
		return nil, fmt.Errorf("error fetching user: %w", err)
	}
	if !auth.VerifyPassword(user.HashedPassword, password) {
		return nil, apperr.Unauthorized("Invalid username or password")
	}
	if user.Disabled {
		return nil, apperr.Forbidden("Inactive user")
	}

	access, err := s.codec.Encode(user.Username)
	if err != nil {
		return nil, fmt.Errorf("error signing token: %w", err)
	}
	return &Token{AccessToken: access, TokenType: "bearer"}, nil
}

// Register creates a new user with the default role. The username is
// normalized before any check, so two spellings of the same name cannot
// coexist.
func (s *AuthService) Register(ctx context.Context, username, password string) (*models.User, error) {
	normalized, err := auth.NormalizeUsername(username)
	if err != nil {
		return nil, err
	}

	if violations := auth.ValidatePasswordPolicy(password, normalized); len(violations) > 0 {
		return nil, apperr.InvalidInputMeta("Password does not meet policy",
			map[string]any{"violations": violations})
	}

	repo := s.repomanager.Users(s.db)
	taken, err := repo.UsernameExists(ctx, normalized, 0)
	if err != nil {
		return nil, fmt.Errorf("error checking username: %w", err)
	}
	if taken {
		return nil, usernameTaken(normalized)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	var created *models.User
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repoTx := s.repomanager.Users(tx)
		u, err := repoTx.Create(ctx, &models.User{Username: normalized, HashedPassword: hash})
		if err != nil {
			if errors.Is(err, apperr.ErrDuplicate) {
				return usernameTaken(normalized)
			}
			return fmt.Errorf("error creating user: %w", err)
		}
		if err := repoTx.GrantRole(ctx, u.ID, DefaultRole); err != nil {
			return fmt.Errorf("error assigning default role: %w", err)
		}
		created = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// GetUserFromToken resolves a bearer token to its user record. Invalid,
// expired and orphaned tokens all yield the same unauthorized error.
func (s *AuthService) GetUserFromToken(ctx context.Context, token string) (*models.User, error) {
	payload, ok := s.codec.Decode(token)
	if !ok {
		return nil, apperr.Unauthorized("Could not validate credentials")
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByUsername(ctx, payload.Subject)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.Unauthorized("Could not validate credentials")
		}
		return nil, fmt.Errorf("error fetching user: %w", err)
	}
	return user, nil
}

// RequireActive rejects disabled accounts. Tokens minted before an
// account was disabled stop working at this gate.
func (s *AuthService) RequireActive(user *models.User) error {
	if user.Disabled {
		return apperr.Forbidden("Inactive user")
	}
	return nil
}

// UpdateCurrentUser applies a self-service profile change: a new
// username, a new password (with current-password proof), or both.
func (s *AuthService) UpdateCurrentUser(ctx context.Context, user *models.User, input UpdateUserInput) (*models.User, error) {
	if input.Username == "" && input.NewPassword == "" && input.CurrentPassword == "" {
		return nil, apperr.InvalidInput("At least one of username or new_password must be provided")
	}
	if input.NewPassword != "" && input.CurrentPassword == "" {
		return nil, apperr.InvalidInput("current_password is required to update password")
	}
	if input.CurrentPassword != "" && input.NewPassword == "" {
		return nil, apperr.InvalidInput("new_password is required when current_password is provided")
	}

	updated := *user

	if input.Username != "" {
		normalized, err := auth.NormalizeUsername(input.Username)
		if err != nil {
			return nil, err
		}
		updated.Username = normalized
	}

	changingPassword := input.NewPassword != ""
	if changingPassword {
		if !auth.VerifyPassword(user.HashedPassword, input.CurrentPassword) {
			return nil, apperr.Unauthorized("Current password is incorrect")
		}
		if input.NewPassword == input.CurrentPassword {
			return nil, apperr.InvalidInput("New password must be different from the current password")
		}
		if violations := auth.ValidatePasswordPolicy(input.NewPassword, updated.Username); len(violations) > 0 {
			return nil, apperr.InvalidInputMeta("Password does not meet policy",
				map[string]any{"violations": violations})
		}
		hash, err := auth.HashPassword(input.NewPassword)
		if err != nil {
			return nil, fmt.Errorf("error hashing password: %w", err)
		}
		updated.HashedPassword = hash
	}

	if updated.Username == user.Username && !changingPassword {
		return nil, apperr.InvalidInput("No changes detected")
	}

	if updated.Username != user.Username {
		repo := s.repomanager.Users(s.db)
		taken, err := repo.UsernameExists(ctx, updated.Username, user.ID)
		if err != nil {
			return nil, fmt.Errorf("error checking username: %w", err)
		}
		if taken {
			return nil, usernameTaken(updated.Username)
		}
	}

	var result *models.User
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		u, err := s.repomanager.Users(tx).Update(ctx, &updated)
		if err != nil {
			if errors.Is(err, apperr.ErrDuplicate) {
				return usernameTaken(updated.Username)
			}
			return fmt.Errorf("error updating user: %w", err)
		}
		result = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// UserHasPermission reports whether the user holds permissionID through
// any of their roles.
func (s *AuthService) UserHasPermission(ctx context.Context, userID int64, permissionID string) (bool, error) {
	return s.repomanager.Users(s.db).UserHasPermission(ctx, userID, permissionID)
}

// RequirePermission is the authorization gate used by protected
// operations.
func (s *AuthService) RequirePermission(ctx context.Context, user *models.User, permissionID string) error {
	has, err := s.UserHasPermission(ctx, user.ID, permissionID)
	if err != nil {
		return fmt.Errorf("error checking permission: %w", err)
	}
	if !has {
		return apperr.ForbiddenMeta("Missing required permission: "+permissionID,
			map[string]any{"permission_id": permissionID})
	}
	return nil
}

func usernameTaken(username string) error {
	return apperr.ConflictMeta("Username already exists", map[string]any{"username": username})
}
