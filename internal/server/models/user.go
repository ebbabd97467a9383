package models

import "time"

// User is the identity record held by the credential store. HashedPassword
// is opaque (argon2id PHC string) and must never leave the service layer.
type User struct {
	ID             int64
	Username       string
	HashedPassword string
	Disabled       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
