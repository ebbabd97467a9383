package auth

import (
	"strings"
	"unicode"

	"github.com/alexedwards/argon2id"
)

const minPasswordLength = 8

// Policy violation messages, returned verbatim to clients.
const (
	violationTooShort  = "Password must be at least 8 characters long"
	violationLowercase = "Password must include at least one lowercase letter"
	violationUppercase = "Password must include at least one uppercase letter"
	violationDigit     = "Password must include at least one digit"
	violationUsername  = "Password must not contain the username"
)

// HashPassword derives an argon2id hash of plaintext. The result is a
// self-describing PHC string (parameters and salt embedded) that fits a
// varchar(255) column.
func HashPassword(plaintext string) (string, error) {
	return argon2id.CreateHash(plaintext, argon2id.DefaultParams)
}

// VerifyPassword reports whether plaintext matches hash. Corrupt or
// foreign-format hashes verify false; no error ever escapes.
func VerifyPassword(hash, plaintext string) bool {
	match, err := argon2id.ComparePasswordAndHash(plaintext, hash)
	return err == nil && match
}

// ValidatePasswordPolicy checks password against every policy rule and
// returns all violations at once, so a client can fix them in a single
// round trip. An empty slice means the password is acceptable.
func ValidatePasswordPolicy(password, username string) []string {
	violations := []string{}

	if len(password) < minPasswordLength {
		violations = append(violations, violationTooShort)
	}

	var hasLower, hasUpper, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLower {
		violations = append(violations, violationLowercase)
	}
	if !hasUpper {
		violations = append(violations, violationUppercase)
	}
	if !hasDigit {
		violations = append(violations, violationDigit)
	}

	if username != "" && strings.Contains(strings.ToLower(password), strings.ToLower(username)) {
		violations = append(violations, violationUsername)
	}

	return violations
}
