package server

import (
	"murmur/internal/models"

	"github.com/gofiber/fiber/v2"
)

// AddReaction handles POST /api/thoughts/:thoughtId/reactions. Each
// reaction receives a generated reactionId; duplicate bodies from the
// same user are allowed.
func (s *Server) AddReaction(c *fiber.Ctx) error {
	thoughtID, err := s.parseID(c, "thoughtId")
	if err != nil {
		return nil
	}

	var req struct {
		ReactionBody string `json:"reactionBody"`
		Username     string `json:"username"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	thought, err := s.thoughtService.AddReaction(c.Context(), thoughtID, req.ReactionBody, req.Username)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(thought)
}

// RemoveReaction handles DELETE /api/thoughts/:thoughtId/reactions/:reactionId.
// Removing an absent reaction id succeeds and returns the unchanged thought.
func (s *Server) RemoveReaction(c *fiber.Ctx) error {
	thoughtID, err := s.parseID(c, "thoughtId")
	if err != nil {
		return nil
	}

	reactionID := c.Params("reactionId")
	if reactionID == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid reaction ID"))
	}

	thought, err := s.thoughtService.RemoveReaction(c.Context(), thoughtID, reactionID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(thought)
}
