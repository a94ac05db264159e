package repository

import (
	"context"
	"errors"

	"murmur/internal/models"

	"gorm.io/gorm"
)

// ThoughtRepository defines the interface for thought data operations.
// Reactions have no collection of their own; they are reachable only
// through their owning thought.
type ThoughtRepository interface {
	Create(ctx context.Context, thought *models.Thought) error
	GetByID(ctx context.Context, id uint) (*models.Thought, error)
	List(ctx context.Context, limit, offset int) ([]models.Thought, error)
	GetByUsername(ctx context.Context, username string) ([]models.Thought, error)
	UpdateByID(ctx context.Context, id uint, fields map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
	DeleteByUsername(ctx context.Context, username string) ([]uint, int64, error)
	AddReaction(ctx context.Context, reaction *models.Reaction) error
	RemoveReaction(ctx context.Context, thoughtID uint, reactionID string) error
}

// thoughtRepository implements ThoughtRepository
type thoughtRepository struct {
	db *gorm.DB
}

// NewThoughtRepository creates a new thought repository
func NewThoughtRepository(db *gorm.DB) ThoughtRepository {
	return &thoughtRepository{db: db}
}

// preloadReactions loads embedded reactions in insertion order.
func preloadReactions(db *gorm.DB) *gorm.DB {
	return db.Order("reactions.created_at ASC, reactions.reaction_id ASC")
}

func (r *thoughtRepository) Create(ctx context.Context, thought *models.Thought) error {
	if err := r.db.WithContext(ctx).Create(thought).Error; err != nil {
		return models.NewStoreError(err)
	}
	return nil
}

func (r *thoughtRepository) GetByID(ctx context.Context, id uint) (*models.Thought, error) {
	var thought models.Thought
	if err := r.db.WithContext(ctx).
		Preload("Reactions", preloadReactions).
		First(&thought, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Thought", id)
		}
		return nil, models.NewStoreError(err)
	}
	return &thought, nil
}

func (r *thoughtRepository) List(ctx context.Context, limit, offset int) ([]models.Thought, error) {
	var thoughts []models.Thought
	if err := r.db.WithContext(ctx).
		Preload("Reactions", preloadReactions).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&thoughts).Error; err != nil {
		return nil, models.NewStoreError(err)
	}
	return thoughts, nil
}

func (r *thoughtRepository) GetByUsername(ctx context.Context, username string) ([]models.Thought, error) {
	var thoughts []models.Thought
	if err := r.db.WithContext(ctx).
		Preload("Reactions", preloadReactions).
		Where("username = ?", username).
		Order("created_at DESC").
		Find(&thoughts).Error; err != nil {
		return nil, models.NewStoreError(err)
	}
	return thoughts, nil
}

// UpdateByID applies a partial field update. Only the supplied fields
// are written; omitted fields keep their stored values.
func (r *thoughtRepository) UpdateByID(ctx context.Context, id uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Thought{}).
		Where("id = ?", id).
		Updates(fields).Error; err != nil {
		return models.NewStoreError(err)
	}
	return nil
}

// Delete removes a thought and its embedded reactions, plus any
// user_thoughts rows still pointing at it. Children go first so the
// thought never exists without the ability to reach its reactions.
func (r *thoughtRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Where("thought_id = ?", id).Delete(&models.Reaction{}).Error; err != nil {
		return models.NewStoreError(err)
	}
	if err := r.db.WithContext(ctx).Where("thought_id = ?", id).Delete(&models.UserThought{}).Error; err != nil {
		return models.NewStoreError(err)
	}

	res := r.db.WithContext(ctx).Delete(&models.Thought{}, id)
	if res.Error != nil {
		return models.NewStoreError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Thought", id)
	}
	return nil
}

// DeleteByUsername bulk-deletes every thought owned by username,
// resolved by username equality, and returns the removed thought ids
// alongside the row count so callers can drop any per-thought state
// keyed by id. The steps are independent single-collection statements
// with no rollback; a failure part way through leaves the remainder for
// the next attempt rather than undoing what already succeeded.
func (r *thoughtRepository) DeleteByUsername(ctx context.Context, username string) ([]uint, int64, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.Thought{}).
		Where("username = ?", username).
		Pluck("id", &ids).Error; err != nil {
		return nil, 0, models.NewStoreError(err)
	}
	if len(ids) == 0 {
		return nil, 0, nil
	}

	if err := r.db.WithContext(ctx).Where("thought_id IN ?", ids).Delete(&models.Reaction{}).Error; err != nil {
		return nil, 0, models.NewStoreError(err)
	}
	if err := r.db.WithContext(ctx).Where("thought_id IN ?", ids).Delete(&models.UserThought{}).Error; err != nil {
		return nil, 0, models.NewStoreError(err)
	}

	res := r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&models.Thought{})
	if res.Error != nil {
		return nil, 0, models.NewStoreError(res.Error)
	}
	return ids, res.RowsAffected, nil
}

func (r *thoughtRepository) AddReaction(ctx context.Context, reaction *models.Reaction) error {
	if err := r.db.WithContext(ctx).Create(reaction).Error; err != nil {
		return models.NewStoreError(err)
	}
	return nil
}

func (r *thoughtRepository) RemoveReaction(ctx context.Context, thoughtID uint, reactionID string) error {
	if err := r.db.WithContext(ctx).
		Where("thought_id = ? AND reaction_id = ?", thoughtID, reactionID).
		Delete(&models.Reaction{}).Error; err != nil {
		return models.NewStoreError(err)
	}
	return nil
}
