package server

import (
	"context"
	"errors"
	"time"

	"murmur/internal/models"
	"murmur/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetThoughts handles GET /api/thoughts. An optional username query
// parameter filters to a single author's thoughts.
func (s *Server) GetThoughts(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	if username := c.Query("username"); username != "" {
		thoughts, err := s.thoughtService.ListThoughtsByUsername(ctx, username)
		if err != nil {
			return respondServiceError(c, err)
		}
		return c.JSON(thoughts)
	}

	page := parsePagination(c, 100)

	thoughts, err := s.thoughtService.ListThoughts(ctx, page.Limit, page.Offset)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return c.Status(fiber.StatusGatewayTimeout).JSON(fiber.Map{
				"error": "Request timeout",
			})
		}
		return respondServiceError(c, err)
	}

	return c.JSON(thoughts)
}

// GetThought handles GET /api/thoughts/:thoughtId
func (s *Server) GetThought(c *fiber.Ctx) error {
	id, err := s.parseID(c, "thoughtId")
	if err != nil {
		return nil
	}

	thought, err := s.thoughtService.GetThought(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(thought)
}

// CreateThought handles POST /api/thoughts. The payload names the
// owning user both by username (stored on the thought) and by id (used
// to link the thought into the user's thoughts set).
func (s *Server) CreateThought(c *fiber.Ctx) error {
	var req struct {
		ThoughtText string `json:"thoughtText"`
		Username    string `json:"username"`
		UserID      uint   `json:"userId"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	result, err := s.thoughtService.CreateThought(c.Context(), service.CreateThoughtInput{
		ThoughtText: req.ThoughtText,
		Username:    req.Username,
		UserID:      req.UserID,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}

// UpdateThought handles PUT /api/thoughts/:thoughtId. The payload is a
// partial update: an omitted thoughtText keeps its stored value.
func (s *Server) UpdateThought(c *fiber.Ctx) error {
	id, err := s.parseID(c, "thoughtId")
	if err != nil {
		return nil
	}

	var req struct {
		ThoughtText *string `json:"thoughtText"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	thought, err := s.thoughtService.UpdateThought(c.Context(), id, service.UpdateThoughtInput{
		ThoughtText: req.ThoughtText,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(thought)
}

// DeleteThought handles DELETE /api/thoughts/:thoughtId. An optional
// userId query parameter identifies the owner whose thoughts set should
// drop the id; without it the set cleanup is skipped.
func (s *Server) DeleteThought(c *fiber.Ctx) error {
	id, err := s.parseID(c, "thoughtId")
	if err != nil {
		return nil
	}

	ownerID := c.QueryInt("userId", 0)
	if ownerID < 0 {
		ownerID = 0
	}

	result, err := s.thoughtService.DeleteThought(c.Context(), id, uint(ownerID))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(result)
}
