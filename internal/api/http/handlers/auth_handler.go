package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/gambler-service/internal/api/dto"
	"github.com/spec-kit/gambler-service/internal/auth"
	"github.com/spec-kit/gambler-service/internal/service"
	apperrors "github.com/spec-kit/gambler-service/pkg/util/errorutil"
)

// AuthHandler exposes login, registration and logout.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("[Parser] Bad request")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	pair, err := h.auth.Register(c.UserContext(), req.Credentials())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": pair})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("[Parser] Bad request")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	pair, err := h.auth.Login(c.UserContext(), req.Credentials())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": pair})
}

// Logout handles GET /auth/logout behind the access token guard.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFrom[auth.JWTGuard](c)
	if !ok {
		return apperrors.NewUnauthorized("invalid key")
	}
	result, err := h.auth.Logout(c.UserContext(), identity)
	if err != nil {
		return err
	}
	return c.JSON(dto.ResultResponse{Result: result})
}

// Token handles GET /auth/token and describes the presented token.
func (h *AuthHandler) Token(c *fiber.Ctx) error {
	subject, ok := auth.IdentityFrom[auth.TokenSubject](c)
	if !ok {
		return apperrors.NewUnauthorized("invalid key")
	}
	return c.JSON(fiber.Map{"data": subject})
}
