package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func newTestCodec(t *testing.T) *Codec {
	t.Helper()
	c, err := NewCodec("super-secret", "HS256", 30*time.Minute)
	if err != nil {
		t.Fatalf("NewCodec error: %v", err)
	}
	return c
}

func TestNewCodec_RejectsBadConfig(t *testing.T) {
	t.Parallel()

	if _, err := NewCodec("", "HS256", time.Minute); err == nil {
		t.Fatalf("expected error for empty secret")
	}
	if _, err := NewCodec("k", "HS999", time.Minute); err == nil {
		t.Fatalf("expected error for unknown algorithm")
	}
	if _, err := NewCodec("k", "RS256", time.Minute); err == nil {
		t.Fatalf("expected error for non-HMAC algorithm")
	}
	if _, err := NewCodec("k", "HS256", 0); err == nil {
		t.Fatalf("expected error for zero ttl")
	}
	if _, err := NewCodec("k", "HS384", time.Minute); err != nil {
		t.Fatalf("HS384 must be accepted: %v", err)
	}
}

func TestCodec_EncodeDecode_RoundTrip(t *testing.T) {
	t.Parallel()

	c := newTestCodec(t)
	tok, err := c.Encode("new_user")
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}

	payload, ok := c.Decode(tok)
	if !ok {
		t.Fatalf("Decode rejected a valid token")
	}
	if payload.Subject != "new_user" {
		t.Fatalf("subject mismatch: got %q", payload.Subject)
	}
	if !payload.ExpiresAt.After(time.Now()) {
		t.Fatalf("expiry must be in the future, got %v", payload.ExpiresAt)
	}
}

func TestCodec_Decode_ZeroTTLIsInvalid(t *testing.T) {
	t.Parallel()

	c := newTestCodec(t)
	tok, err := c.EncodeWithTTL("u1", 0)
	if err != nil {
		t.Fatalf("EncodeWithTTL error: %v", err)
	}
	if _, ok := c.Decode(tok); ok {
		t.Fatalf("token with ttl=0 must decode as invalid")
	}
}

func TestCodec_Decode_Expired(t *testing.T) {
	t.Parallel()

	c := newTestCodec(t)
	tok, err := c.EncodeWithTTL("u1", -time.Second)
	if err != nil {
		t.Fatalf("EncodeWithTTL error: %v", err)
	}
	if _, ok := c.Decode(tok); ok {
		t.Fatalf("expired token must decode as invalid")
	}
}

func TestCodec_Decode_WrongSecret(t *testing.T) {
	t.Parallel()

	c := newTestCodec(t)
	other, err := NewCodec("other-secret", "HS256", 30*time.Minute)
	if err != nil {
		t.Fatalf("NewCodec error: %v", err)
	}

	tok, err := other.Encode("u2")
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	if _, ok := c.Decode(tok); ok {
		t.Fatalf("token signed with a different secret must be invalid")
	}
}

func TestCodec_Decode_Malformed(t *testing.T) {
	t.Parallel()

	c := newTestCodec(t)
	for _, tok := range []string{"", "not.a.jwt", "a.b"} {
		if _, ok := c.Decode(tok); ok {
			t.Fatalf("malformed token %q must be invalid", tok)
		}
	}
}

func TestCodec_Decode_UnsignedAlgRejected(t *testing.T) {
	t.Parallel()

	c := newTestCodec(t)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "u3",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	tok, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("signing error: %v", err)
	}
	if _, ok := c.Decode(tok); ok {
		t.Fatalf("alg=none token must be invalid")
	}
}

func TestCodec_Decode_MissingSubject(t *testing.T) {
	t.Parallel()

	c := newTestCodec(t)
	tok, err := c.Encode("")
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	if _, ok := c.Decode(tok); ok {
		t.Fatalf("token without subject must be invalid")
	}
}
