// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents a registered user. The Friends and Thoughts id sets
// are projected from the edge tables at read time by the aggregate
// package; they are never persisted on the user row itself.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	// Relationships
	FriendEdges []Friend      `gorm:"foreignKey:UserID" json:"-"`
	ThoughtRefs []UserThought `gorm:"foreignKey:UserID" json:"-"`

	// Friends is the id-set projection of FriendEdges (computed at read time)
	Friends []uint `gorm:"-" json:"friends"`
	// Thoughts is the id-set projection of ThoughtRefs (computed at read time)
	Thoughts []uint `gorm:"-" json:"thoughts"`
	// FriendCount is not persisted; computed at read time
	FriendCount int `gorm:"-" json:"friendCount"`
}

// Friend is a directional friend edge: FriendID is a member of UserID's
// friend set. Adding B to A's set does not add A to B's set.
// The combination of UserID and FriendID must be unique.
type Friend struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_friend" json:"user_id"`
	FriendID  uint      `gorm:"not null;uniqueIndex:idx_user_friend" json:"friend_id"`
	CreatedAt time.Time `json:"-"`
}

// TableName specifies the table name for GORM
func (Friend) TableName() string {
	return "friends"
}

// UserThought is a membership row of a user's thoughts id set. It is a
// denormalized cache of ownership; the authoritative owner reference is
// Thought.Username.
type UserThought struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_thought" json:"user_id"`
	ThoughtID uint      `gorm:"not null;uniqueIndex:idx_user_thought" json:"thought_id"`
	CreatedAt time.Time `json:"-"`
}

// TableName specifies the table name for GORM
func (UserThought) TableName() string {
	return "user_thoughts"
}
