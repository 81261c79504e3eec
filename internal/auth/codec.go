package auth

import (
	"errors"
	"net/http"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	apperrors "github.com/spec-kit/gambler-service/pkg/util/errorutil"
)

const (
	msgTokenInvalid  = "Token is invalid"
	msgIssuerInvalid = "Issuer is invalid"
	msgOtherError    = "Some other error occurred"

	defaultLeeway = 60 * time.Second
)

var signingMethod = jwt.SigningMethodHS256

// Codec signs claims into compact HS256 tokens and verifies them back.
type Codec struct {
	secrets SecretProvider
	clock   Clock
	leeway  time.Duration
	issuer  string
}

// CodecOption customizes a Codec.
type CodecOption func(*Codec)

// WithLeeway sets the clock skew tolerated when checking expiry.
func WithLeeway(d time.Duration) CodecOption {
	return func(c *Codec) {
		if d >= 0 {
			c.leeway = d
		}
	}
}

// WithIssuer stamps iss on signed tokens and rejects verified tokens carrying a different one.
// Tokens without iss are still accepted.
func WithIssuer(issuer string) CodecOption {
	return func(c *Codec) { c.issuer = issuer }
}

// NewCodec builds a codec over the given secret provider and clock.
func NewCodec(secrets SecretProvider, clock Clock, opts ...CodecOption) *Codec {
	if clock == nil {
		clock = SystemClock{}
	}
	c := &Codec{secrets: secrets, clock: clock, leeway: defaultLeeway}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Clock exposes the codec's time source.
func (c *Codec) Clock() Clock {
	return c.clock
}

// Sign serializes claims into a signed token.
func (c *Codec) Sign(claims Claims) (string, error) {
	key, err := c.secret()
	if err != nil {
		return "", err
	}
	return c.signWithKey(claims, key)
}

// Verify checks the token signature and timestamps and returns its claims.
func (c *Codec) Verify(tokenStr string) (Claims, error) {
	key, err := c.secret()
	if err != nil {
		return Claims{}, apperrors.NewInternal(msgOtherError, err)
	}

	var claims Claims
	_, err = jwt.ParseWithClaims(tokenStr, &claims, func(*jwt.Token) (interface{}, error) {
		return key, nil
	},
		jwt.WithValidMethods([]string{signingMethod.Alg()}),
		jwt.WithTimeFunc(c.clock.Now),
		jwt.WithLeeway(c.leeway),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return Claims{}, classify(err)
	}

	if c.issuer != "" && claims.Issuer != "" && claims.Issuer != c.issuer {
		return Claims{}, issuerInvalid(nil)
	}
	return claims, nil
}

func (c *Codec) secret() ([]byte, error) {
	if c.secrets == nil {
		return nil, apperrors.NewInternal("Env Var: secret provider not configured", nil)
	}
	key, err := c.secrets.Secret()
	if err != nil {
		var domainErr *apperrors.DomainError
		if errors.As(err, &domainErr) {
			return nil, err
		}
		return nil, apperrors.NewInternal("Env Var: "+err.Error(), err)
	}
	return key, nil
}

func (c *Codec) signWithKey(claims Claims, key []byte) (string, error) {
	if claims.Issuer == "" {
		claims.Issuer = c.issuer
	}
	token, err := jwt.NewWithClaims(signingMethod, claims).SignedString(key)
	if err != nil {
		return "", apperrors.NewInternal("JWT error: failed to sign token", err)
	}
	return token, nil
}

// classify folds parser errors into the three caller-visible classes.
// Expiry is part of the invalid bucket.
func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return issuerInvalid(err)
	case errors.Is(err, jwt.ErrTokenMalformed),
		errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable),
		errors.Is(err, jwt.ErrTokenInvalidClaims),
		errors.Is(err, jwt.ErrTokenExpired),
		errors.Is(err, jwt.ErrTokenNotValidYet),
		errors.Is(err, jwt.ErrTokenUsedBeforeIssued),
		errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
		return &apperrors.DomainError{
			Code:       apperrors.CodeUnauthorized,
			Message:    msgTokenInvalid,
			HTTPStatus: http.StatusUnauthorized,
			Err:        err,
		}
	default:
		return apperrors.NewInternal(msgOtherError, err)
	}
}

func issuerInvalid(err error) error {
	return &apperrors.DomainError{
		Code:       apperrors.CodeBadRequest,
		Message:    msgIssuerInvalid,
		HTTPStatus: http.StatusBadRequest,
		Err:        err,
	}
}
