package auth

import (
	"testing"

	apperrors "github.com/spec-kit/gambler-service/pkg/util/errorutil"
)

func TestIssuer_Issue(t *testing.T) {
	codec := newTestCodec(t)
	pair, err := NewIssuer(codec).Issue(7)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if pair.ID != 7 {
		t.Errorf("ID = %d, want 7", pair.ID)
	}
	if pair.AccessToken == pair.RefreshToken {
		t.Error("access and refresh tokens must differ")
	}

	access, err := codec.Verify(pair.AccessToken)
	if err != nil {
		t.Fatalf("verify access: %v", err)
	}
	refresh, err := codec.Verify(pair.RefreshToken)
	if err != nil {
		t.Fatalf("verify refresh: %v", err)
	}

	tests := []struct {
		name   string
		claims Claims
		exp    int64
	}{
		{"access", access, 1000 + 1*86_400_000},
		{"refresh", refresh, 1000 + 30*86_400_000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.claims.Subject != "7" {
				t.Errorf("Subject = %q, want 7", tt.claims.Subject)
			}
			if tt.claims.IssuedAt != 1000 {
				t.Errorf("IssuedAt = %d, want 1000", tt.claims.IssuedAt)
			}
			if tt.claims.ExpiresAt != tt.exp {
				t.Errorf("ExpiresAt = %d, want %d", tt.claims.ExpiresAt, tt.exp)
			}
		})
	}
}

func TestIssuer_SubjectRoundTrip(t *testing.T) {
	codec := newTestCodec(t)
	issuer := NewIssuer(codec)

	for _, id := range []int64{0, 1, 42, -3, 2147483647} {
		pair, err := issuer.Issue(id)
		if err != nil {
			t.Fatalf("Issue(%d) error = %v", id, err)
		}
		claims, err := codec.Verify(pair.AccessToken)
		if err != nil {
			t.Fatalf("Verify() error = %v", err)
		}
		guard, err := JWTGuardFromClaims(claims)
		if err != nil {
			t.Fatal(err)
		}
		if guard.Subject != id {
			t.Errorf("Subject = %d, want %d", guard.Subject, id)
		}
	}
}

type countingSecret struct {
	calls int
	fail  bool
}

func (s *countingSecret) Secret() ([]byte, error) {
	s.calls++
	if s.fail {
		return nil, apperrors.NewInternal("Env Var: JWT_SECRET not present", nil)
	}
	return []byte("rotating"), nil
}

func TestIssuer_SingleSecretLookup(t *testing.T) {
	secret := &countingSecret{}
	if _, err := NewIssuer(NewCodec(secret, FixedClock(testNow))).Issue(1); err != nil {
		t.Fatal(err)
	}
	if secret.calls != 1 {
		t.Errorf("secret looked up %d times, want 1", secret.calls)
	}
}

func TestIssuer_MissingSecret(t *testing.T) {
	pair, err := NewIssuer(NewCodec(&countingSecret{fail: true}, FixedClock(testNow))).Issue(1)
	if pair != nil {
		t.Errorf("Issue() returned partial pair %+v", pair)
	}
	if !apperrors.IsCode(err, apperrors.CodeInternal) {
		t.Errorf("Issue() error = %v, want INTERNAL_ERROR", err)
	}
}
