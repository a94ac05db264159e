// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"murmur/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository defines the interface for user data operations.
// Set-membership operations (AddFriend, RemoveFriend, AddThoughtRef,
// RemoveThoughtRef) are each a single atomic statement: set-adds are
// idempotent and set-removes of absent members are no-ops, so
// concurrent calls on the same target converge.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, limit, offset int) ([]models.User, error)
	UpdateByID(ctx context.Context, id uint, fields map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
	AddFriend(ctx context.Context, userID, friendID uint) error
	RemoveFriend(ctx context.Context, userID, friendID uint) error
	AddThoughtRef(ctx context.Context, userID, thoughtID uint) error
	RemoveThoughtRef(ctx context.Context, userID, thoughtID uint) error
}

// userRepository implements UserRepository
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return models.NewStoreError(err)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).
		Preload("FriendEdges").
		Preload("ThoughtRefs").
		First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", id)
		}
		return nil, models.NewStoreError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewStoreError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewStoreError(err)
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Preload("FriendEdges").
		Preload("ThoughtRefs").
		Order("id ASC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error; err != nil {
		return nil, models.NewStoreError(err)
	}
	return users, nil
}

// UpdateByID applies a partial field update. Only the supplied fields
// are written; omitted fields keep their stored values.
func (r *userRepository) UpdateByID(ctx context.Context, id uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Updates(fields).Error; err != nil {
		return models.NewStoreError(err)
	}
	return nil
}

// Delete removes the user row together with the rows that make up its
// document: the friend set it owns and its thoughts id-set cache.
// Friend edges held by other users that point at the deleted user are
// left in place; the friend relation is directional and those rows
// belong to the other users' documents.
func (r *userRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.User{}, id)
	if res.Error != nil {
		return models.NewStoreError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("User", id)
	}

	if err := r.db.WithContext(ctx).Where("user_id = ?", id).Delete(&models.Friend{}).Error; err != nil {
		return models.NewStoreError(err)
	}
	if err := r.db.WithContext(ctx).Where("user_id = ?", id).Delete(&models.UserThought{}).Error; err != nil {
		return models.NewStoreError(err)
	}
	return nil
}

func (r *userRepository) AddFriend(ctx context.Context, userID, friendID uint) error {
	edge := models.Friend{UserID: userID, FriendID: friendID}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&edge).Error; err != nil {
		return models.NewStoreError(err)
	}
	return nil
}

func (r *userRepository) RemoveFriend(ctx context.Context, userID, friendID uint) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND friend_id = ?", userID, friendID).
		Delete(&models.Friend{}).Error; err != nil {
		return models.NewStoreError(err)
	}
	return nil
}

func (r *userRepository) AddThoughtRef(ctx context.Context, userID, thoughtID uint) error {
	ref := models.UserThought{UserID: userID, ThoughtID: thoughtID}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&ref).Error; err != nil {
		return models.NewStoreError(err)
	}
	return nil
}

func (r *userRepository) RemoveThoughtRef(ctx context.Context, userID, thoughtID uint) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND thought_id = ?", userID, thoughtID).
		Delete(&models.UserThought{}).Error; err != nil {
		return models.NewStoreError(err)
	}
	return nil
}
