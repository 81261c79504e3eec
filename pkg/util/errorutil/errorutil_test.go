package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

func TestToDomainError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   string
		wantStatus int
	}{
		{"domain error passes through", NewUnauthorized("Token is invalid"), CodeUnauthorized, http.StatusUnauthorized},
		{"wrapped domain error", fmt.Errorf("issue: %w", NewBadRequest("Issuer is invalid")), CodeBadRequest, http.StatusBadRequest},
		{"no rows", pgx.ErrNoRows, CodeNotFound, http.StatusNotFound},
		{"fiber error", fiber.NewError(http.StatusConflict, "taken"), CodeConflict, http.StatusConflict},
		{"plain error", errors.New("boom"), CodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToDomainError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("Code = %q, want %q", got.Code, tt.wantCode)
			}
			if got.HTTPStatus != tt.wantStatus {
				t.Errorf("HTTPStatus = %d, want %d", got.HTTPStatus, tt.wantStatus)
			}
		})
	}
}

func TestMapErrorNil(t *testing.T) {
	if err := MapError(nil); err != nil {
		t.Fatalf("MapError(nil) = %v, want nil", err)
	}
}

func TestInternalKeepsCause(t *testing.T) {
	cause := errors.New("JWT_SECRET not present")
	err := NewInternal("Env Var: JWT_SECRET not present", cause)
	if !errors.Is(err, cause) {
		t.Fatal("expected internal error to unwrap to its cause")
	}
	if !IsCode(err, CodeInternal) {
		t.Fatal("expected INTERNAL_ERROR code")
	}
	if IsCode(errors.New("x"), CodeInternal) {
		t.Fatal("plain errors carry no code")
	}
}
