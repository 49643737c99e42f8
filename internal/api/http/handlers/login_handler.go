package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/employee-directory/internal/api/dto"
	"github.com/spec-kit/employee-directory/internal/auth"
	"github.com/spec-kit/employee-directory/internal/command"
	"github.com/spec-kit/employee-directory/internal/service"
	"github.com/spec-kit/employee-directory/pkg/util"
)

// LoginHandler exposes credential authentication and logout.
type LoginHandler struct {
	bus  *command.Bus
	auth *service.AuthService
}

// NewLoginHandler constructs handler.
func NewLoginHandler(bus *command.Bus, authService *service.AuthService) *LoginHandler {
	return &LoginHandler{bus: bus, auth: authService}
}

// Login handles POST /auth/login.
func (h *LoginHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	result, err := h.bus.Login(c.UserContext(), command.LoginCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	if !result.Success {
		return util.NewDomainError(result.ErrorKind, result.ErrorMessage)
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"employee": dto.NewEmployeeResponse(result.Employee),
			"auth":     dto.AuthResponse{Token: result.Token, ExpiresAt: result.ExpiresAt},
		},
	})
}

// Logout handles POST /auth/logout. The presented token is revoked until it
// expires on its own.
func (h *LoginHandler) Logout(c *fiber.Ctx) error {
	token, ok := auth.RawTokenFromRequest(c)
	if !ok {
		return util.NewDomainError(util.KindUserUnauthorized, "User is not authenticated.")
	}
	if err := h.auth.Logout(c.UserContext(), token); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
