package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// JWTGuard is the identity of a user authenticated by an access token.
type JWTGuard struct {
	Subject   int64 `json:"sub"`
	IssuedAt  int64 `json:"iat"`
	ExpiresAt int64 `json:"exp"`
}

// JWTGuardFromClaims parses the numeric user id out of the subject.
func JWTGuardFromClaims(claims Claims) (JWTGuard, error) {
	sub, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return JWTGuard{}, fmt.Errorf("parse subject %q: %w", claims.Subject, err)
	}
	return JWTGuard{Subject: sub, IssuedAt: claims.IssuedAt, ExpiresAt: claims.ExpiresAt}, nil
}

// TokenSubject describes a token without interpreting its subject.
type TokenSubject struct {
	Subject   string    `json:"subject"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// TokenSubjectFromClaims keeps the subject verbatim.
func TokenSubjectFromClaims(claims Claims) (TokenSubject, error) {
	if claims.Subject == "" {
		return TokenSubject{}, errors.New("empty subject")
	}
	return TokenSubject{
		Subject:   claims.Subject,
		IssuedAt:  time.Unix(claims.IssuedAt, 0).UTC(),
		ExpiresAt: time.Unix(claims.ExpiresAt, 0).UTC(),
	}, nil
}
