package service

import (
	"context"

	"murmur/internal/models"
)

type userRepoStub struct {
	createFn           func(context.Context, *models.User) error
	getByIDFn          func(context.Context, uint) (*models.User, error)
	getByUsernameFn    func(context.Context, string) (*models.User, error)
	getByEmailFn       func(context.Context, string) (*models.User, error)
	listFn             func(context.Context, int, int) ([]models.User, error)
	updateByIDFn       func(context.Context, uint, map[string]interface{}) error
	deleteFn           func(context.Context, uint) error
	addFriendFn        func(context.Context, uint, uint) error
	removeFriendFn     func(context.Context, uint, uint) error
	addThoughtRefFn    func(context.Context, uint, uint) error
	removeThoughtRefFn func(context.Context, uint, uint) error
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *userRepoStub) UpdateByID(ctx context.Context, id uint, fields map[string]interface{}) error {
	return s.updateByIDFn(ctx, id, fields)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *userRepoStub) AddFriend(ctx context.Context, userID, friendID uint) error {
	return s.addFriendFn(ctx, userID, friendID)
}
func (s *userRepoStub) RemoveFriend(ctx context.Context, userID, friendID uint) error {
	return s.removeFriendFn(ctx, userID, friendID)
}
func (s *userRepoStub) AddThoughtRef(ctx context.Context, userID, thoughtID uint) error {
	return s.addThoughtRefFn(ctx, userID, thoughtID)
}
func (s *userRepoStub) RemoveThoughtRef(ctx context.Context, userID, thoughtID uint) error {
	return s.removeThoughtRefFn(ctx, userID, thoughtID)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn:           func(context.Context, *models.User) error { return nil },
		getByIDFn:          func(context.Context, uint) (*models.User, error) { return &models.User{}, nil },
		getByUsernameFn:    func(context.Context, string) (*models.User, error) { return nil, nil },
		getByEmailFn:       func(context.Context, string) (*models.User, error) { return nil, nil },
		listFn:             func(context.Context, int, int) ([]models.User, error) { return nil, nil },
		updateByIDFn:       func(context.Context, uint, map[string]interface{}) error { return nil },
		deleteFn:           func(context.Context, uint) error { return nil },
		addFriendFn:        func(context.Context, uint, uint) error { return nil },
		removeFriendFn:     func(context.Context, uint, uint) error { return nil },
		addThoughtRefFn:    func(context.Context, uint, uint) error { return nil },
		removeThoughtRefFn: func(context.Context, uint, uint) error { return nil },
	}
}

type thoughtRepoStub struct {
	createFn           func(context.Context, *models.Thought) error
	getByIDFn          func(context.Context, uint) (*models.Thought, error)
	listFn             func(context.Context, int, int) ([]models.Thought, error)
	getByUsernameFn    func(context.Context, string) ([]models.Thought, error)
	updateByIDFn       func(context.Context, uint, map[string]interface{}) error
	deleteFn           func(context.Context, uint) error
	deleteByUsernameFn func(context.Context, string) ([]uint, int64, error)
	addReactionFn      func(context.Context, *models.Reaction) error
	removeReactionFn   func(context.Context, uint, string) error
}

func (s *thoughtRepoStub) Create(ctx context.Context, thought *models.Thought) error {
	return s.createFn(ctx, thought)
}
func (s *thoughtRepoStub) GetByID(ctx context.Context, id uint) (*models.Thought, error) {
	return s.getByIDFn(ctx, id)
}
func (s *thoughtRepoStub) List(ctx context.Context, limit, offset int) ([]models.Thought, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *thoughtRepoStub) GetByUsername(ctx context.Context, username string) ([]models.Thought, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *thoughtRepoStub) UpdateByID(ctx context.Context, id uint, fields map[string]interface{}) error {
	return s.updateByIDFn(ctx, id, fields)
}
func (s *thoughtRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *thoughtRepoStub) DeleteByUsername(ctx context.Context, username string) ([]uint, int64, error) {
	return s.deleteByUsernameFn(ctx, username)
}
func (s *thoughtRepoStub) AddReaction(ctx context.Context, reaction *models.Reaction) error {
	return s.addReactionFn(ctx, reaction)
}
func (s *thoughtRepoStub) RemoveReaction(ctx context.Context, thoughtID uint, reactionID string) error {
	return s.removeReactionFn(ctx, thoughtID, reactionID)
}

func noopThoughtRepo() *thoughtRepoStub {
	return &thoughtRepoStub{
		createFn:           func(context.Context, *models.Thought) error { return nil },
		getByIDFn:          func(context.Context, uint) (*models.Thought, error) { return &models.Thought{}, nil },
		listFn:             func(context.Context, int, int) ([]models.Thought, error) { return nil, nil },
		getByUsernameFn:    func(context.Context, string) ([]models.Thought, error) { return nil, nil },
		updateByIDFn:       func(context.Context, uint, map[string]interface{}) error { return nil },
		deleteFn:           func(context.Context, uint) error { return nil },
		deleteByUsernameFn: func(context.Context, string) ([]uint, int64, error) { return nil, 0, nil },
		addReactionFn:      func(context.Context, *models.Reaction) error { return nil },
		removeReactionFn:   func(context.Context, uint, string) error { return nil },
	}
}
