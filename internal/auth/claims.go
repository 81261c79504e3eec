package auth

import (
	"strconv"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// Token lifetimes in days. The per-day constant below is applied to a seconds clock,
// so the effective lifetimes are 1000 times longer than the day count reads.
const (
	AccessTokenDays  int64 = 1
	RefreshTokenDays int64 = 30

	expiryUnitPerDay int64 = 1000 * 60 * 60 * 24
)

// Claims is the signed payload carried by every token.
type Claims struct {
	Subject   string `json:"sub"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
	Issuer    string `json:"iss,omitempty"`
}

// BuildClaims constructs claims for subjectID valid for durationDays policy units.
func BuildClaims(subjectID int64, durationDays int64, clock Clock) Claims {
	if clock == nil {
		clock = SystemClock{}
	}
	now := clock.Now().Unix()
	return Claims{
		Subject:   strconv.FormatInt(subjectID, 10),
		IssuedAt:  now,
		ExpiresAt: now + durationDays*expiryUnitPerDay,
	}
}

func (c Claims) GetExpirationTime() (*jwt.NumericDate, error) {
	return jwt.NewNumericDate(time.Unix(c.ExpiresAt, 0)), nil
}

func (c Claims) GetIssuedAt() (*jwt.NumericDate, error) {
	return jwt.NewNumericDate(time.Unix(c.IssuedAt, 0)), nil
}

func (c Claims) GetNotBefore() (*jwt.NumericDate, error) {
	return nil, nil
}

func (c Claims) GetIssuer() (string, error) {
	return c.Issuer, nil
}

func (c Claims) GetSubject() (string, error) {
	return c.Subject, nil
}

func (c Claims) GetAudience() (jwt.ClaimStrings, error) {
	return nil, nil
}
