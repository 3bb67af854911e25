// Package auth implements the credential primitives of the server:
// stateless HMAC-signed access tokens and bcrypt password hashing.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrMalformedToken reports a token that could not be parsed at all.
	ErrMalformedToken = errors.New("malformed token")
	// ErrSignatureInvalid reports a token whose MAC does not match the key.
	ErrSignatureInvalid = errors.New("token signature mismatch")
	// ErrTokenExpired reports a token past its expiry claim.
	ErrTokenExpired = errors.New("token expired")
)

// Claims is the token payload: the registered claims plus the opaque user id.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"uid"`
}

// Authority issues and verifies access tokens with a single symmetric key.
// The key is injected at construction so issuer and verifier share no
// ambient global state and tests can run with distinct keys.
type Authority struct {
	secret   []byte
	validity time.Duration
	now      func() time.Time
}

// NewAuthority builds an Authority from a non-empty secret key. A validity
// of zero issues tokens without an expiry claim; a positive validity embeds
// one and makes Verify reject tokens past it.
func NewAuthority(secret []byte, validity time.Duration) (*Authority, error) {
	if len(secret) == 0 {
		return nil, errors.New("auth: empty secret key")
	}
	return &Authority{secret: secret, validity: validity, now: time.Now}, nil
}

// Issue signs a token asserting the given user id, stamped with the current
// issuance time.
func (a *Authority) Issue(userID string) (string, error) {
	now := a.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
		},
		UserID: userID,
	}
	if a.validity > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(a.validity))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

// Verify checks the token's MAC and returns its claims. Failures come back
// as ErrMalformedToken, ErrSignatureInvalid or ErrTokenExpired; arbitrary
// input never panics. Only HS256 is accepted.
func (a *Authority) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) { return a.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return a.now() }),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrSignatureInvalid
		default:
			return nil, ErrMalformedToken
		}
	}

	if !token.Valid {
		return nil, ErrSignatureInvalid
	}

	return claims, nil
}
