package server

import (
	"context"
	"errors"
	"time"

	"murmur/internal/models"
	"murmur/internal/service"
	"murmur/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// GetUsers handles GET /api/users
func (s *Server) GetUsers(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	page := parsePagination(c, 100)

	users, err := s.userService.ListUsers(ctx, page.Limit, page.Offset)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return c.Status(fiber.StatusGatewayTimeout).JSON(fiber.Map{
				"error": "Request timeout",
			})
		}
		return respondServiceError(c, err)
	}

	return c.JSON(users)
}

// GetUser handles GET /api/users/:userId
func (s *Server) GetUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	user, err := s.userService.GetUser(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(user)
}

// CreateUser handles POST /api/users
func (s *Server) CreateUser(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.CreateUser(c.Context(), validation.NewUserInput{
		Username: req.Username,
		Email:    req.Email,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

// UpdateUser handles PUT /api/users/:userId. The payload is a partial
// update: omitted fields keep their stored values.
func (s *Server) UpdateUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	var req struct {
		Username *string `json:"username"`
		Email    *string `json:"email"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.Context(), id, service.UpdateUserInput{
		Username: req.Username,
		Email:    req.Email,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(user)
}

// DeleteUser handles DELETE /api/users/:userId. Deleting a user also
// deletes every thought owned by the user's username; the response
// reports how many went with it.
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	result, err := s.userService.DeleteUser(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(result)
}
