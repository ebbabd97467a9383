// Package auth implements the credential primitives of the service:
// the signed access-token codec and the password hasher/policy.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenPayload is the decoded content of an access token.
type TokenPayload struct {
	Subject   string
	ExpiresAt time.Time
}

// Codec encodes and decodes signed, expiring bearer tokens. Secret,
// algorithm and default lifetime come from explicit configuration; there
// is no ambient state.
type Codec struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
}

// NewCodec builds a Codec for the named HMAC algorithm (HS256/HS384/HS512).
func NewCodec(secret, algorithm string, ttl time.Duration) (*Codec, error) {
	if len(secret) == 0 {
		return nil, errors.New("token secret is empty")
	}
	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return nil, fmt.Errorf("unknown signing algorithm: %s", algorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("signing algorithm %s is not a shared-secret algorithm", algorithm)
	}
	if ttl <= 0 {
		return nil, errors.New("token ttl must be positive")
	}
	return &Codec{secret: []byte(secret), method: method, ttl: ttl}, nil
}

// Encode signs a token for subject with the configured default lifetime.
func (c *Codec) Encode(subject string) (string, error) {
	return c.EncodeWithTTL(subject, c.ttl)
}

// EncodeWithTTL signs a token for subject expiring ttl from now.
func (c *Codec) EncodeWithTTL(subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
	}
	token := jwt.NewWithClaims(c.method, claims)
	return token.SignedString(c.secret)
}

// Decode verifies signature, expiry and payload shape. Every failure mode
// collapses into ok == false; callers get no hint about why a token was
// rejected.
func (c *Codec) Decode(tokenString string) (*TokenPayload, bool) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{c.method.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, false
	}
	if claims.Subject == "" || claims.ExpiresAt == nil {
		return nil, false
	}
	return &TokenPayload{Subject: claims.Subject, ExpiresAt: claims.ExpiresAt.Time}, true
}
