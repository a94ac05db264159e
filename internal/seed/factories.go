// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"strings"
	"time"

	"murmur/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by the seeder and tests.
type Factory struct {
	db *gorm.DB
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{db: db}
}

// CreateUser constructs and persists a sample user. The generated email
// is derived from the username so it always passes format validation.
// Optional override functions may modify the user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	username := strings.ToLower(gofakeit.Username()) + fmt.Sprintf("%d", gofakeit.Number(100, 999))
	user := &models.User{
		Username: username,
		Email:    fmt.Sprintf("%s@%s", username, strings.ToLower(gofakeit.DomainName())),
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateThought persists a thought owned by the given user and links it
// into the user's thoughts set, with a created_at spread over the last
// maxDays days for a realistic feed.
func (f *Factory) CreateThought(user *models.User, maxDays int, overrides ...func(*models.Thought)) (*models.Thought, error) {
	if maxDays <= 0 {
		maxDays = 90
	}

	thought := &models.Thought{
		ThoughtText: clampText(gofakeit.HipsterSentence(gofakeit.Number(4, 16)), models.ThoughtTextMaxLen),
		Username:    user.Username,
		CreatedAt:   spreadTimestamp(maxDays),
	}

	for _, override := range overrides {
		override(thought)
	}

	if err := f.db.Create(thought).Error; err != nil {
		return nil, err
	}

	ref := models.UserThought{UserID: user.ID, ThoughtID: thought.ID}
	if err := f.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&ref).Error; err != nil {
		return nil, err
	}
	return thought, nil
}

// CreateReaction persists a reaction to the thought from the given user.
func (f *Factory) CreateReaction(thought *models.Thought, user *models.User) (*models.Reaction, error) {
	reaction := &models.Reaction{
		ReactionID:   uuid.NewString(),
		ThoughtID:    thought.ID,
		ReactionBody: clampText(gofakeit.HipsterSentence(gofakeit.Number(2, 8)), models.ReactionBodyMaxLen),
		Username:     user.Username,
		CreatedAt:    thought.CreatedAt.Add(time.Duration(gofakeit.Number(1, 720)) * time.Minute),
	}

	if err := f.db.Create(reaction).Error; err != nil {
		return nil, err
	}
	return reaction, nil
}

// AddFriend set-adds a directional friend edge. Duplicate edges are
// silently ignored, matching the API's set semantics.
func (f *Factory) AddFriend(user, friend *models.User) error {
	edge := models.Friend{UserID: user.ID, FriendID: friend.ID}
	return f.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&edge).Error
}

func clampText(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func spreadTimestamp(maxDays int) time.Time {
	daysBack := gofakeit.Number(0, maxDays-1)
	hoursBack := gofakeit.Number(0, 23)
	minsBack := gofakeit.Number(0, 59)
	return time.Now().
		Add(-time.Duration(daysBack) * 24 * time.Hour).
		Add(-time.Duration(hoursBack) * time.Hour).
		Add(-time.Duration(minsBack) * time.Minute)
}
