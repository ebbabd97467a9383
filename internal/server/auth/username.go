package auth

import (
	"regexp"
	"strings"

	"bookcatalog/internal/apperr"
)

var usernamePattern = regexp.MustCompile(`^[a-z0-9._-]+$`)

const usernameRules = "Username may only contain lowercase letters, digits, '.', '_' and '-'"

// NormalizeUsername trims whitespace, lowercases and validates raw against
// the allowed character set. The returned name is the canonical form used
// everywhere (storage, token subjects, uniqueness checks).
func NormalizeUsername(raw string) (string, error) {
	username := strings.ToLower(strings.TrimSpace(raw))
	if username == "" || !usernamePattern.MatchString(username) {
		return "", apperr.InvalidInput(usernameRules)
	}
	return username, nil
}
