package auth

import (
	"errors"
	"strings"

	authsvc "wealthwise-backend/internal/application/auth"
	usersvc "wealthwise-backend/internal/application/users"
	"wealthwise-backend/internal/middleware"
	"wealthwise-backend/internal/pkg/response"
	"wealthwise-backend/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Auth  *authsvc.Service
	Users *usersvc.Service
}

// Register POST /auth/register — creates a user with a credential attached.
func (h *Handlers) Register(c *fiber.Ctx) error {
	var body struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest)
	}
	if body.Password == "" {
		return response.Error(c, "Password is required for registration", fiber.StatusBadRequest)
	}
	if !validation.IsValidName(body.Name) {
		return response.Error(c, "Name must be between 2 and 100 characters", fiber.StatusBadRequest)
	}
	email := strings.TrimSpace(strings.ToLower(body.Email))
	if !validation.IsValidEmail(email) {
		return response.Error(c, "Invalid email format", fiber.StatusBadRequest)
	}

	hash, err := authsvc.HashPassword(body.Password)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError)
	}
	u, err := h.Users.Create(c.Context(), strings.TrimSpace(body.Name), email, hash)
	if err != nil {
		if errors.Is(err, usersvc.ErrDuplicateEmail) {
			return response.Error(c, "Email "+email+" already exists", fiber.StatusConflict)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError)
	}
	return response.SuccessCreated(c, "User registered", u)
}

// Login POST /auth/login — verifies credentials and issues an access token.
func (h *Handlers) Login(c *fiber.Ctx) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest)
	}
	if body.Email == "" || body.Password == "" {
		return response.Error(c, "Email and password are required", fiber.StatusBadRequest)
	}

	u, err := h.Auth.Authenticate(c.Context(), strings.TrimSpace(strings.ToLower(body.Email)), body.Password)
	if err != nil {
		if errors.Is(err, authsvc.ErrInvalidCredentials) || errors.Is(err, authsvc.ErrNoPassword) {
			return response.Unauthorized(c, err.Error())
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError)
	}

	token, err := h.Auth.CreateAccessToken(u.UserID)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError)
	}
	return response.Success(c, "Login successful", fiber.Map{
		"access_token": token,
		"token_type":   "bearer",
	})
}

// Me GET /auth/me — returns the authenticated user (RequireAuth set the id).
func (h *Handlers) Me(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	u, err := h.Users.GetByID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, usersvc.ErrUserNotFound) {
			return response.Error(c, err.Error(), fiber.StatusNotFound)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError)
	}
	return response.Success(c, "User retrieved", u)
}
