package models

// Role is a named bundle of permissions assignable to users
// (users <-> roles and roles <-> permissions are both many-to-many).
type Role struct {
	ID   int64
	Name string
}

// Permission is an atomic capability identifier grantable to a role.
// ID is the capability tag (e.g. "books:create"), Name a display label.
type Permission struct {
	ID   string
	Name string
}
