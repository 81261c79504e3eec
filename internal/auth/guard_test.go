package auth

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/gambler-service/pkg/util/errorutil"
)

func signFor(t *testing.T, codec *Codec, subject string) string {
	t.Helper()
	token, err := codec.Sign(Claims{Subject: subject, IssuedAt: testNow, ExpiresAt: testNow + expiryUnitPerDay})
	if err != nil {
		t.Fatal(err)
	}
	return token
}

func TestAuthenticate(t *testing.T) {
	codec := newTestCodec(t)
	valid := signFor(t, codec, "42")
	alpha := signFor(t, codec, "abc")

	tests := []struct {
		name        string
		header      string
		present     bool
		wantOutcome Outcome
		wantErr     error
		wantSubject int64
	}{
		{name: "no header", present: false, wantOutcome: OutcomeForward, wantErr: ErrMissingKey},
		{name: "valid bearer", header: "Bearer " + valid, present: true, wantOutcome: OutcomeSuccess, wantSubject: 42},
		{name: "raw token", header: valid, present: true, wantOutcome: OutcomeSuccess, wantSubject: 42},
		{name: "prefix removed anywhere", header: valid + "Bearer ", present: true, wantOutcome: OutcomeSuccess, wantSubject: 42},
		{name: "non numeric subject", header: "Bearer " + alpha, present: true, wantOutcome: OutcomeError, wantErr: ErrInvalidKey},
		{name: "garbage", header: "Bearer nope", present: true, wantOutcome: OutcomeError, wantErr: ErrInvalidKey},
		{name: "empty header", header: "", present: true, wantOutcome: OutcomeError, wantErr: ErrInvalidKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Authenticate(codec, tt.header, tt.present, JWTGuardFromClaims)
			if res.Outcome != tt.wantOutcome {
				t.Fatalf("Outcome = %v, want %v", res.Outcome, tt.wantOutcome)
			}
			if res.Outcome != OutcomeSuccess && res.Status != http.StatusUnauthorized {
				t.Errorf("Status = %d, want 401", res.Status)
			}
			if !errors.Is(res.Err, tt.wantErr) {
				t.Errorf("Err = %v, want %v", res.Err, tt.wantErr)
			}
			if tt.wantOutcome == OutcomeSuccess && res.Identity.Subject != tt.wantSubject {
				t.Errorf("Subject = %d, want %d", res.Identity.Subject, tt.wantSubject)
			}
		})
	}
}

func TestAuthenticate_CollapsesCodecClasses(t *testing.T) {
	codec := newTestCodec(t, WithIssuer("gambler"))
	foreign, err := codec.Sign(Claims{Subject: "1", IssuedAt: testNow, ExpiresAt: testNow + 100, Issuer: "other"})
	if err != nil {
		t.Fatal(err)
	}

	res := Authenticate(codec, "Bearer "+foreign, true, JWTGuardFromClaims)
	if res.Outcome != OutcomeError || res.Err != ErrInvalidKey || res.Status != http.StatusUnauthorized {
		t.Fatalf("got %v/%v/%d, want error/invalid key/401", res.Outcome, res.Err, res.Status)
	}
	if !apperrors.IsCode(res.Cause, apperrors.CodeBadRequest) {
		t.Errorf("Cause = %v, want the codec's BAD_REQUEST", res.Cause)
	}
}

func TestAuthenticate_SecondShape(t *testing.T) {
	codec := newTestCodec(t)
	res := Authenticate(codec, "Bearer "+signFor(t, codec, "abc"), true, TokenSubjectFromClaims)
	if res.Outcome != OutcomeSuccess {
		t.Fatalf("Outcome = %v, want success", res.Outcome)
	}
	if res.Identity.Subject != "abc" {
		t.Errorf("Subject = %q, want abc", res.Identity.Subject)
	}
	if got := res.Identity.ExpiresAt.Unix(); got != testNow+expiryUnitPerDay {
		t.Errorf("ExpiresAt = %d", got)
	}
}

func newGuardApp(guard *Guard[JWTGuard], forward fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).SendString(domainErr.Message)
		},
	})
	app.Get("/me", guard.Middleware(forward), func(c *fiber.Ctx) error {
		identity, ok := IdentityFrom[JWTGuard](c)
		if !ok {
			return fiber.ErrInternalServerError
		}
		return c.JSON(identity)
	})
	return app
}

func TestGuard_Middleware(t *testing.T) {
	codec := newTestCodec(t)
	guard := NewGuard("jwt", codec, JWTGuardFromClaims, nil)
	app := newGuardApp(guard, nil)

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"valid token", "Bearer " + signFor(t, codec, "42"), http.StatusOK},
		{"non numeric subject", "Bearer " + signFor(t, codec, "abc"), http.StatusUnauthorized},
		{"wrong secret", "Bearer " + signFor(t, NewCodec(StaticSecret("x"), FixedClock(testNow)), "42"), http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			if tt.wantStatus != http.StatusOK {
				return
			}
			var identity JWTGuard
			if err := json.NewDecoder(resp.Body).Decode(&identity); err != nil {
				t.Fatal(err)
			}
			if identity.Subject != 42 {
				t.Errorf("Subject = %d, want 42", identity.Subject)
			}
		})
	}
}

func TestGuard_MiddlewareForward(t *testing.T) {
	codec := newTestCodec(t)
	guard := NewGuard("jwt", codec, JWTGuardFromClaims, nil)
	app := newGuardApp(guard, func(c *fiber.Ctx) error {
		return c.SendString("anonymous")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/me", nil))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || string(body) != "anonymous" {
		t.Fatalf("got %d %q, want forward handler response", resp.StatusCode, body)
	}

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer broken")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("invalid token status = %d, want 401 without forwarding", resp.StatusCode)
	}
}
