package users

import (
	"errors"
	"strings"

	usersvc "wealthwise-backend/internal/application/users"
	"wealthwise-backend/internal/pkg/response"
	"wealthwise-backend/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *usersvc.Service
}

// Create POST /users/create_user — creates a user without a credential.
func (h *Handlers) Create(c *fiber.Ctx) error {
	var body struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest)
	}
	if !validation.IsValidName(body.Name) {
		return response.Error(c, "Name must be between 2 and 100 characters", fiber.StatusBadRequest)
	}
	email := strings.TrimSpace(strings.ToLower(body.Email))
	if !validation.IsValidEmail(email) {
		return response.Error(c, "Invalid email format", fiber.StatusBadRequest)
	}

	u, err := h.Service.Create(c.Context(), strings.TrimSpace(body.Name), email, "")
	if err != nil {
		if errors.Is(err, usersvc.ErrDuplicateEmail) {
			return response.Error(c, "Email "+email+" already exists", fiber.StatusConflict)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError)
	}
	return response.SuccessCreated(c, "User created", u)
}

// Get GET /users/:user_id
func (h *Handlers) Get(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return response.Error(c, "Invalid UUID format for user_id", fiber.StatusBadRequest)
	}
	u, err := h.Service.GetByID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, usersvc.ErrUserNotFound) {
			return response.Error(c, err.Error(), fiber.StatusNotFound)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError)
	}
	return response.Success(c, "User retrieved", u)
}
