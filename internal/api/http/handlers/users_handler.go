package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/gambler-service/internal/api/dto"
	"github.com/spec-kit/gambler-service/internal/auth"
	"github.com/spec-kit/gambler-service/internal/service"
	apperrors "github.com/spec-kit/gambler-service/pkg/util/errorutil"
)

// UsersHandler serves the authenticated player's own account.
type UsersHandler struct {
	auth *service.AuthService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService) *UsersHandler {
	return &UsersHandler{auth: authService}
}

// Me handles GET /users/me.
func (h *UsersHandler) Me(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFrom[auth.JWTGuard](c)
	if !ok {
		return apperrors.NewUnauthorized("invalid key")
	}
	user, err := h.auth.Profile(c.UserContext(), identity.Subject)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}
