package models

import (
	"time"
)

// ReactionBodyMaxLen is the maximum length of a reaction body.
const ReactionBodyMaxLen = 280

// Reaction is an embedded child of a Thought. ReactionID is generated
// by the application at creation; uniqueness is by ReactionID only, so
// duplicate bodies from the same author are permitted.
type Reaction struct {
	ReactionID   string    `gorm:"primaryKey;type:varchar(36)" json:"reactionId"`
	ThoughtID    uint      `gorm:"not null;index" json:"-"`
	ReactionBody string    `gorm:"not null" json:"reactionBody"`
	Username     string    `gorm:"not null" json:"username"`
	CreatedAt    time.Time `json:"-"`

	// CreatedAtDisplay is the human-readable rendering of CreatedAt (computed)
	CreatedAtDisplay string `gorm:"-" json:"createdAt"`
}

// TableName specifies the table name for GORM
func (Reaction) TableName() string {
	return "reactions"
}
