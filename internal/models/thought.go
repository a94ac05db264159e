package models

import (
	"time"
)

// ThoughtTextMaxLen is the maximum length of a thought's text.
const ThoughtTextMaxLen = 280

// Thought represents a posted thought. Username is the canonical owner
// reference, matched by value on cascade; the owner's UserThought row is
// only a secondary index.
type Thought struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ThoughtText string    `gorm:"not null" json:"thoughtText"`
	Username    string    `gorm:"not null;index" json:"username"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`

	// Reactions are embedded child rows; they never outlive the thought.
	Reactions []Reaction `gorm:"foreignKey:ThoughtID" json:"reactions"`

	// ReactionCount is not persisted; computed at read time
	ReactionCount int `gorm:"-" json:"reactionCount"`
	// CreatedAtDisplay is the human-readable rendering of CreatedAt (computed)
	CreatedAtDisplay string `gorm:"-" json:"createdAt"`
}

// TableName specifies the table name for GORM
func (Thought) TableName() string {
	return "thoughts"
}
