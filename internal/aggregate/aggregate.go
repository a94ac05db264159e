// Package aggregate computes derived read-only fields from current
// entity state. Everything here is a pure function invoked at read
// time; no derived value is ever persisted or cached, so counts cannot
// drift from the collections they are computed from.
package aggregate

import (
	"time"

	"murmur/internal/models"
)

// timestampLayout renders timestamps the way the API presents them,
// e.g. "Apr 29, 2023, 4:30:00 PM".
const timestampLayout = "Jan 2, 2006, 3:04:05 PM"

// FormatTimestamp renders a timestamp in the API's human-readable form.
func FormatTimestamp(t time.Time) string {
	return t.Format(timestampLayout)
}

// User fills in the derived fields of a user: the friends and thoughts
// id-set projections and friendCount. Returns its argument for chaining.
func User(u *models.User) *models.User {
	if u == nil {
		return nil
	}

	u.Friends = make([]uint, 0, len(u.FriendEdges))
	for _, edge := range u.FriendEdges {
		u.Friends = append(u.Friends, edge.FriendID)
	}

	u.Thoughts = make([]uint, 0, len(u.ThoughtRefs))
	for _, ref := range u.ThoughtRefs {
		u.Thoughts = append(u.Thoughts, ref.ThoughtID)
	}

	u.FriendCount = len(u.Friends)
	return u
}

// Users decorates a slice of users in place.
func Users(users []models.User) []models.User {
	for i := range users {
		User(&users[i])
	}
	return users
}

// Thought fills in reactionCount and the rendered timestamps of a
// thought and its embedded reactions. Returns its argument for chaining.
func Thought(t *models.Thought) *models.Thought {
	if t == nil {
		return nil
	}

	if t.Reactions == nil {
		t.Reactions = []models.Reaction{}
	}
	for i := range t.Reactions {
		Reaction(&t.Reactions[i])
	}

	t.ReactionCount = len(t.Reactions)
	t.CreatedAtDisplay = FormatTimestamp(t.CreatedAt)
	return t
}

// Thoughts decorates a slice of thoughts in place.
func Thoughts(thoughts []models.Thought) []models.Thought {
	for i := range thoughts {
		Thought(&thoughts[i])
	}
	return thoughts
}

// Reaction fills in the rendered timestamp of a reaction.
func Reaction(r *models.Reaction) *models.Reaction {
	if r == nil {
		return nil
	}
	r.CreatedAtDisplay = FormatTimestamp(r.CreatedAt)
	return r
}
