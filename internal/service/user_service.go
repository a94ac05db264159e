// Package service contains the business logic that keeps the linked
// entity kinds (users, thoughts, embedded reactions) consistent:
// cascading deletion, set-membership maintenance, and ownership
// bookkeeping. Multi-document sequences here are best-effort: they run
// as ordered single-document operations with no rollback, and
// bookkeeping failures after the primary operation succeeded are
// reported to the caller instead of being dropped.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"murmur/internal/aggregate"
	"murmur/internal/cache"
	"murmur/internal/models"
	"murmur/internal/observability"
	"murmur/internal/repository"
	"murmur/internal/validation"

	"go.opentelemetry.io/otel/attribute"
)

// UserService provides user lifecycle and friend-set business logic.
type UserService struct {
	userRepo    repository.UserRepository
	thoughtRepo repository.ThoughtRepository
	validator   *validation.Validator
	cacheTTL    time.Duration
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository, thoughtRepo repository.ThoughtRepository, validator *validation.Validator, cacheTTL time.Duration) *UserService {
	return &UserService{
		userRepo:    userRepo,
		thoughtRepo: thoughtRepo,
		validator:   validator,
		cacheTTL:    cacheTTL,
	}
}

// UpdateUserInput carries a partial profile update. Nil fields were
// omitted by the caller and keep their stored values.
type UpdateUserInput struct {
	Username *string
	Email    *string
}

// DeleteUserResult reports the outcome of a user deletion, including
// the cascade over the user's thoughts.
type DeleteUserResult struct {
	DeletedThoughts int64  `json:"deletedThoughts"`
	Message         string `json:"message"`
	// CascadeWarning is set when the user was deleted but the thought
	// cascade failed; the deletion is reported as a partial success.
	CascadeWarning string `json:"cascadeWarning,omitempty"`
}

// CreateUser validates and creates a new user. A fresh user has empty
// friend and thought sets and a friendCount of 0.
func (s *UserService) CreateUser(ctx context.Context, in validation.NewUserInput) (*models.User, error) {
	if err := s.validator.ValidateNewUser(ctx, &in); err != nil {
		return nil, err
	}

	user := &models.User{
		Username: in.Username,
		Email:    in.Email,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.GetUser(ctx, user.ID)
}

// GetUser returns the user with derived fields applied. The decorated
// entity may be served from the read-through cache; every mutation path
// invalidates the key, so the cached id sets and the count derived from
// them can never drift apart.
func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	key := cache.EntityKey("users", id)
	err := cache.CacheAside(ctx, "users", key, &user, s.cacheTTL, func() error {
		fetched, err := s.userRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		user = *aggregate.User(fetched)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUsers returns users with derived fields applied.
func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	users, err := s.userRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	return aggregate.Users(users), nil
}

// UpdateProfile applies a validated partial update to username and/or
// email. Omitted fields are preserved.
func (s *UserService) UpdateProfile(ctx context.Context, id uint, in UpdateUserInput) (*models.User, error) {
	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if in.Username != nil {
		username := strings.TrimSpace(*in.Username)
		if err := s.validator.ValidateUsernameChange(ctx, id, username); err != nil {
			return nil, err
		}
		fields["username"] = username
	}
	if in.Email != nil {
		if err := s.validator.ValidateEmailChange(ctx, id, *in.Email); err != nil {
			return nil, err
		}
		fields["email"] = *in.Email
	}

	if err := s.userRepo.UpdateByID(ctx, id, fields); err != nil {
		return nil, err
	}

	cache.Invalidate(ctx, cache.EntityKey("users", id))
	return s.GetUser(ctx, id)
}

// DeleteUser deletes the user, then cascades by deleting every thought
// whose username equals the deleted user's username. Ownership is
// resolved by username equality, not by the thoughts id set. The two
// steps are independent: if the cascade fails after the user row is
// gone, the result carries a warning and the orphaned thoughts are left
// for a later delete attempt.
func (s *UserService) DeleteUser(ctx context.Context, id uint) (*DeleteUserResult, error) {
	span, ctx := observability.NewSpan(ctx, "user.delete")
	defer span.End()
	span.AddAttributes(attribute.Int("user.id", int(id)))

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return nil, err
	}
	cache.Invalidate(ctx, cache.EntityKey("users", id))

	result := &DeleteUserResult{}
	cascadeLog := observability.NewCascadeLogger("user_delete")

	thoughtIDs, deleted, err := s.thoughtRepo.DeleteByUsername(ctx, user.Username)
	if err != nil {
		span.SetError(err)
		result.CascadeWarning = fmt.Sprintf("user deleted, but removing associated thoughts failed: %v", err)
		cascadeLog.StepFailed("delete_thoughts", err, map[string]interface{}{
			"user_id":  id,
			"username": user.Username,
		})
		observability.CascadeStepFailures.WithLabelValues("user_delete", "delete_thoughts").Inc()
	} else {
		// Drop the cached entries for every cascaded thought, or a
		// previously warmed read would keep serving a deleted thought
		// until its TTL ran out.
		keys := make([]string, 0, len(thoughtIDs))
		for _, thoughtID := range thoughtIDs {
			keys = append(keys, cache.EntityKey("thoughts", thoughtID))
		}
		cache.Invalidate(ctx, keys...)

		result.DeletedThoughts = deleted
		span.AddAttributes(attribute.Int64("cascade.deleted_thoughts", deleted))
		observability.CascadeDeletedThoughts.Add(float64(deleted))
		cascadeLog.Completed(map[string]interface{}{
			"user_id":          id,
			"username":         user.Username,
			"deleted_thoughts": deleted,
		})
	}

	result.Message = fmt.Sprintf("User successfully deleted including %d associated thoughts", result.DeletedThoughts)
	return result, nil
}

// AddFriend performs a set-add of friendID into the user's friend set.
// The operation is idempotent: adding an existing member changes
// nothing. The edge is directional; the friend's own set is untouched.
// The friend id is stored as an identifier and is not dereferenced.
func (s *UserService) AddFriend(ctx context.Context, userID, friendID uint) (*models.User, error) {
	if userID == friendID {
		return nil, models.NewValidationError("Cannot add yourself as a friend")
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	if err := s.userRepo.AddFriend(ctx, userID, friendID); err != nil {
		return nil, err
	}

	cache.Invalidate(ctx, cache.EntityKey("users", userID))
	return s.GetUser(ctx, userID)
}

// RemoveFriend performs a set-remove of friendID from the user's friend
// set. Removing a non-member is a no-op, not an error.
func (s *UserService) RemoveFriend(ctx context.Context, userID, friendID uint) (*models.User, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	if err := s.userRepo.RemoveFriend(ctx, userID, friendID); err != nil {
		return nil, err
	}

	cache.Invalidate(ctx, cache.EntityKey("users", userID))
	return s.GetUser(ctx, userID)
}
