package auth

import (
	"errors"
	"os"

	apperrors "github.com/spec-kit/gambler-service/pkg/util/errorutil"
)

// DefaultSecretEnv names the environment variable holding the HMAC secret.
const DefaultSecretEnv = "JWT_SECRET"

// SecretProvider supplies the signing and verification secret on demand.
// A failure is a configuration defect and is reported as an internal error.
type SecretProvider interface {
	Secret() ([]byte, error)
}

// StaticSecret is a fixed secret, typically resolved once at startup.
type StaticSecret []byte

// Secret returns the configured bytes.
func (s StaticSecret) Secret() ([]byte, error) {
	if len(s) == 0 {
		return nil, apperrors.NewInternal("Env Var: secret not present", errors.New("empty secret"))
	}
	return []byte(s), nil
}

// EnvSecretProvider reads the secret from the process environment on every call.
type EnvSecretProvider struct {
	Key string
}

// NewEnvSecretProvider returns a provider for key, defaulting to JWT_SECRET.
func NewEnvSecretProvider(key string) *EnvSecretProvider {
	if key == "" {
		key = DefaultSecretEnv
	}
	return &EnvSecretProvider{Key: key}
}

// Secret looks up the environment variable.
func (p *EnvSecretProvider) Secret() ([]byte, error) {
	val, ok := os.LookupEnv(p.Key)
	if !ok || val == "" {
		return nil, apperrors.NewInternal("Env Var: "+p.Key+" not present", errors.New("environment variable not found"))
	}
	return []byte(val), nil
}
