package server

import (
	"github.com/gofiber/fiber/v2"
)

// AddFriend handles POST /api/users/:userId/friends/:friendId.
// The friend id is set-added to the user's friend set; adding an
// existing member is a no-op and the edge is directional.
func (s *Server) AddFriend(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}
	friendID, err := s.parseID(c, "friendId")
	if err != nil {
		return nil
	}

	user, err := s.userService.AddFriend(c.Context(), userID, friendID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(user)
}

// RemoveFriend handles DELETE /api/users/:userId/friends/:friendId.
// Removing a non-member succeeds and returns the unchanged user.
func (s *Server) RemoveFriend(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}
	friendID, err := s.parseID(c, "friendId")
	if err != nil {
		return nil
	}

	user, err := s.userService.RemoveFriend(c.Context(), userID, friendID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(user)
}
