package service

import (
	"context"
	"fmt"
	"time"

	"murmur/internal/aggregate"
	"murmur/internal/cache"
	"murmur/internal/models"
	"murmur/internal/observability"
	"murmur/internal/repository"
	"murmur/internal/validation"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

// ThoughtService provides thought lifecycle and reaction-set business logic.
type ThoughtService struct {
	thoughtRepo repository.ThoughtRepository
	userRepo    repository.UserRepository
	cacheTTL    time.Duration
}

// NewThoughtService returns a new ThoughtService.
func NewThoughtService(thoughtRepo repository.ThoughtRepository, userRepo repository.UserRepository, cacheTTL time.Duration) *ThoughtService {
	return &ThoughtService{
		thoughtRepo: thoughtRepo,
		userRepo:    userRepo,
		cacheTTL:    cacheTTL,
	}
}

// CreateThoughtInput carries a thought create payload. UserID names the
// owner whose thoughts id set should receive the new id; Username is
// the canonical denormalized owner reference stored on the thought.
type CreateThoughtInput struct {
	ThoughtText string
	Username    string
	UserID      uint
}

// CreateThoughtResult is the outcome of a thought creation. The thought
// is always present on success; OwnerWarning is set when the ownership
// bookkeeping step failed after the thought was already created.
type CreateThoughtResult struct {
	Thought *models.Thought `json:"thought"`
	// OwnerWarning reports a non-fatal failure to link the thought into
	// the owner's thoughts set.
	OwnerWarning string `json:"ownerWarning,omitempty"`
}

// UpdateThoughtInput carries a partial thought update. A nil
// ThoughtText was omitted by the caller and keeps its stored value.
type UpdateThoughtInput struct {
	ThoughtText *string
}

// DeleteThoughtResult reports the outcome of a thought deletion.
type DeleteThoughtResult struct {
	Message string `json:"message"`
	// OwnerWarning reports a non-fatal failure to remove the thought id
	// from the owner's thoughts set.
	OwnerWarning string `json:"ownerWarning,omitempty"`
}

// CreateThought validates and creates a thought, then set-adds its id
// into the owner's thoughts set. The bookkeeping step is non-fatal: if
// the owner cannot be found or the set-add fails, the thought still
// exists and the result carries a warning.
func (s *ThoughtService) CreateThought(ctx context.Context, in CreateThoughtInput) (*CreateThoughtResult, error) {
	if err := validation.ValidateThoughtText(in.ThoughtText); err != nil {
		return nil, err
	}
	if in.Username == "" {
		return nil, models.NewValidationError("Username is required")
	}

	span, ctx := observability.NewSpan(ctx, "thought.create")
	defer span.End()
	span.AddAttributes(attribute.Int("user.id", int(in.UserID)))

	thought := &models.Thought{
		ThoughtText: in.ThoughtText,
		Username:    in.Username,
	}
	if err := s.thoughtRepo.Create(ctx, thought); err != nil {
		span.SetError(err)
		return nil, err
	}

	result := &CreateThoughtResult{}
	cascadeLog := observability.NewCascadeLogger("thought_create")

	if in.UserID == 0 {
		result.OwnerWarning = "Thought created, but no owner user id was supplied; the thought was not linked to a user"
	} else if _, err := s.userRepo.GetByID(ctx, in.UserID); err != nil {
		result.OwnerWarning = fmt.Sprintf("Thought created, but owner lookup failed: %v", err)
		cascadeLog.StepFailed("owner_lookup", err, map[string]interface{}{
			"thought_id": thought.ID,
			"user_id":    in.UserID,
		})
		observability.CascadeStepFailures.WithLabelValues("thought_create", "owner_lookup").Inc()
	} else if err := s.userRepo.AddThoughtRef(ctx, in.UserID, thought.ID); err != nil {
		result.OwnerWarning = fmt.Sprintf("Thought created, but linking it to the owner failed: %v", err)
		cascadeLog.StepFailed("add_thought_ref", err, map[string]interface{}{
			"thought_id": thought.ID,
			"user_id":    in.UserID,
		})
		observability.CascadeStepFailures.WithLabelValues("thought_create", "add_thought_ref").Inc()
	} else {
		cache.Invalidate(ctx, cache.EntityKey("users", in.UserID))
	}

	created, err := s.GetThought(ctx, thought.ID)
	if err != nil {
		return nil, err
	}
	result.Thought = created
	return result, nil
}

// GetThought returns the thought with derived fields applied. The
// decorated entity may be served from the read-through cache; every
// mutation path invalidates the key.
func (s *ThoughtService) GetThought(ctx context.Context, id uint) (*models.Thought, error) {
	var thought models.Thought
	key := cache.EntityKey("thoughts", id)
	err := cache.CacheAside(ctx, "thoughts", key, &thought, s.cacheTTL, func() error {
		fetched, err := s.thoughtRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		thought = *aggregate.Thought(fetched)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &thought, nil
}

// ListThoughts returns thoughts with derived fields applied.
func (s *ThoughtService) ListThoughts(ctx context.Context, limit, offset int) ([]models.Thought, error) {
	thoughts, err := s.thoughtRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	return aggregate.Thoughts(thoughts), nil
}

// ListThoughtsByUsername returns the username's thoughts, newest first,
// with derived fields applied. An unknown username yields an empty
// slice, not an error.
func (s *ThoughtService) ListThoughtsByUsername(ctx context.Context, username string) ([]models.Thought, error) {
	thoughts, err := s.thoughtRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return aggregate.Thoughts(thoughts), nil
}

// UpdateThought applies a validated partial update. An omitted
// thoughtText keeps the stored value; it is never overwritten with an
// absent value.
func (s *ThoughtService) UpdateThought(ctx context.Context, id uint, in UpdateThoughtInput) (*models.Thought, error) {
	if _, err := s.thoughtRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if in.ThoughtText != nil {
		if err := validation.ValidateThoughtText(*in.ThoughtText); err != nil {
			return nil, err
		}
		fields["thought_text"] = *in.ThoughtText
	}

	if err := s.thoughtRepo.UpdateByID(ctx, id, fields); err != nil {
		return nil, err
	}

	cache.Invalidate(ctx, cache.EntityKey("thoughts", id))
	return s.GetThought(ctx, id)
}

// DeleteThought deletes the thought (reactions die with it), then
// set-removes its id from the owner's thoughts set. The set-remove is
// idempotent and non-fatal: removing an absent id is a no-op, and a
// failure after the thought is gone is reported as a warning.
func (s *ThoughtService) DeleteThought(ctx context.Context, thoughtID, ownerUserID uint) (*DeleteThoughtResult, error) {
	if err := s.thoughtRepo.Delete(ctx, thoughtID); err != nil {
		return nil, err
	}
	cache.Invalidate(ctx, cache.EntityKey("thoughts", thoughtID))

	result := &DeleteThoughtResult{Message: "Thought successfully deleted"}
	if ownerUserID != 0 {
		if err := s.userRepo.RemoveThoughtRef(ctx, ownerUserID, thoughtID); err != nil {
			result.OwnerWarning = fmt.Sprintf("Thought deleted, but unlinking it from the owner failed: %v", err)
			observability.NewCascadeLogger("thought_delete").StepFailed("remove_thought_ref", err, map[string]interface{}{
				"thought_id": thoughtID,
				"user_id":    ownerUserID,
			})
			observability.CascadeStepFailures.WithLabelValues("thought_delete", "remove_thought_ref").Inc()
		} else {
			cache.Invalidate(ctx, cache.EntityKey("users", ownerUserID))
		}
	}
	return result, nil
}

// AddReaction appends a reaction with a freshly generated reactionId to
// the thought's reactions. Duplicate bodies are permitted; uniqueness
// is by reactionId only.
func (s *ThoughtService) AddReaction(ctx context.Context, thoughtID uint, body, username string) (*models.Thought, error) {
	if err := validation.ValidateReaction(body, username); err != nil {
		return nil, err
	}

	if _, err := s.thoughtRepo.GetByID(ctx, thoughtID); err != nil {
		return nil, err
	}

	reaction := &models.Reaction{
		ReactionID:   uuid.NewString(),
		ThoughtID:    thoughtID,
		ReactionBody: body,
		Username:     username,
	}
	if err := s.thoughtRepo.AddReaction(ctx, reaction); err != nil {
		return nil, err
	}

	cache.Invalidate(ctx, cache.EntityKey("thoughts", thoughtID))
	return s.GetThought(ctx, thoughtID)
}

// RemoveReaction set-removes the reaction with the given id from the
// thought. Removing an absent reaction is a no-op, not an error.
func (s *ThoughtService) RemoveReaction(ctx context.Context, thoughtID uint, reactionID string) (*models.Thought, error) {
	if _, err := s.thoughtRepo.GetByID(ctx, thoughtID); err != nil {
		return nil, err
	}

	if err := s.thoughtRepo.RemoveReaction(ctx, thoughtID, reactionID); err != nil {
		return nil, err
	}

	cache.Invalidate(ctx, cache.EntityKey("thoughts", thoughtID))
	return s.GetThought(ctx, thoughtID)
}
