package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itops-inc/itdesk/internal/shared/authorization"
)

const testSecret = "test-secret"

func sign(t *testing.T, method jwt.SigningMethod, key any, claims Claims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func validClaims() Claims {
	now := time.Now()
	return Claims{
		Email: "somchai@example.com",
		Name:  "Somchai",
		Role:  authorization.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "42",
			Issuer:    "idp",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
}

func TestJWTVerifier_Valid(t *testing.T) {
	v := NewJWTVerifier(testSecret, "idp", "")
	claims, err := v.Verify(sign(t, jwt.SigningMethodHS256, []byte(testSecret), validClaims()))
	require.NoError(t, err)

	actor, err := claims.Actor()
	require.NoError(t, err)
	assert.Equal(t, authorization.Actor{ID: 42, Role: authorization.RoleAdmin, Email: "somchai@example.com"}, actor)
}

func TestJWTVerifier_Rejects(t *testing.T) {
	v := NewJWTVerifier(testSecret, "idp", "")

	expired := validClaims()
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))

	wrongIssuer := validClaims()
	wrongIssuer.Issuer = "other"

	badSubject := validClaims()
	badSubject.Subject = "somchai"

	noExpiry := validClaims()
	noExpiry.ExpiresAt = nil

	cases := map[string]string{
		"wrong secret":  sign(t, jwt.SigningMethodHS256, []byte("nope"), validClaims()),
		"expired":       sign(t, jwt.SigningMethodHS256, []byte(testSecret), expired),
		"wrong issuer":  sign(t, jwt.SigningMethodHS256, []byte(testSecret), wrongIssuer),
		"bad subject":   sign(t, jwt.SigningMethodHS256, []byte(testSecret), badSubject),
		"no expiry":     sign(t, jwt.SigningMethodHS256, []byte(testSecret), noExpiry),
		"not a token":   "abc.def",
		"unsigned none": sign(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, validClaims()),
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := v.Verify(token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
