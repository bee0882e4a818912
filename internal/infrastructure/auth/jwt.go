// Package auth verifies bearer tokens issued by the organization's
// identity provider. Tokens are never issued here.
package auth

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"

	"github.com/itops-inc/itdesk/internal/shared/authorization"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims carries the directory fields the provider puts in the token. The
// subject is the numeric user ID.
type Claims struct {
	Email      string                 `json:"email"`
	Name       string                 `json:"name,omitempty"`
	Department string                 `json:"department,omitempty"`
	Role       authorization.UserRole `json:"role"`
	jwt.RegisteredClaims
}

func (c *Claims) UserID() (uint, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: subject is not a user ID", ErrInvalidToken)
	}
	return uint(id), nil
}

// Actor reduces the claims to what authorization decisions need.
func (c *Claims) Actor() (authorization.Actor, error) {
	id, err := c.UserID()
	if err != nil {
		return authorization.Actor{}, err
	}
	return authorization.Actor{
		ID:    id,
		Role:  authorization.ParseUserRole(string(c.Role)),
		Email: c.Email,
	}, nil
}

type JWTVerifier struct {
	secret []byte
	opts   []jwt.ParserOption
}

func NewJWTVerifier(secret, issuer, audience string) *JWTVerifier {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg(), jwt.SigningMethodHS384.Alg(), jwt.SigningMethodHS512.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	if audience != "" {
		opts = append(opts, jwt.WithAudience(audience))
	}
	return &JWTVerifier{secret: []byte(secret), opts: opts}
}

func (v *JWTVerifier) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	}, v.opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if _, err := claims.UserID(); err != nil {
		return nil, err
	}
	return claims, nil
}
