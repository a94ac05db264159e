// Package validation enforces field-level constraints before a write is
// accepted. Checks are pure against the supplied data; the only store
// access is a read-only uniqueness lookup through UserLookup.
package validation

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"murmur/internal/models"
)

// emailRegex matches a standard address pattern: local part, host, and
// a 2-6 character TLD, all lowercase.
var emailRegex = regexp.MustCompile(`^([a-z0-9_\.-]+)@([\da-z\.-]+)\.([a-z\.]{2,6})$`)

// UserLookup is the read-only slice of the user store needed for
// uniqueness checks. A nil result with a nil error means "not taken".
type UserLookup interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// Validator performs field-level validation for users, thoughts, and
// reactions.
type Validator struct {
	users UserLookup
}

// New returns a Validator backed by the given user lookup.
func New(users UserLookup) *Validator {
	return &Validator{users: users}
}

// NewUserInput is a candidate user create payload.
type NewUserInput struct {
	Username string
	Email    string
}

// ValidateNewUser checks a candidate user for required fields, email
// format, and username/email uniqueness. The trimmed username is
// written back into in.
func (v *Validator) ValidateNewUser(ctx context.Context, in *NewUserInput) error {
	in.Username = strings.TrimSpace(in.Username)

	if in.Username == "" {
		return models.NewValidationError("Username is required")
	}
	if in.Email == "" {
		return models.NewValidationError("Email is required")
	}
	if err := ValidateEmail(in.Email); err != nil {
		return err
	}

	existing, err := v.users.GetByUsername(ctx, in.Username)
	if err != nil {
		return err
	}
	if existing != nil {
		return models.NewValidationError("Username is already taken")
	}

	existing, err = v.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		return models.NewValidationError("Email is already registered")
	}

	return nil
}

// ValidateUsernameChange checks a replacement username for format and
// uniqueness, ignoring the user currently holding it.
func (v *Validator) ValidateUsernameChange(ctx context.Context, userID uint, username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return models.NewValidationError("Username is required")
	}

	existing, err := v.users.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != userID {
		return models.NewValidationError("Username is already taken")
	}
	return nil
}

// ValidateEmailChange checks a replacement email for format and
// uniqueness, ignoring the user currently holding it.
func (v *Validator) ValidateEmailChange(ctx context.Context, userID uint, email string) error {
	if err := ValidateEmail(email); err != nil {
		return err
	}

	existing, err := v.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != userID {
		return models.NewValidationError("Email is already registered")
	}
	return nil
}

// ValidateEmail checks the address pattern only.
func ValidateEmail(email string) error {
	if email == "" {
		return models.NewValidationError("Email is required")
	}
	if !emailRegex.MatchString(email) {
		return models.NewValidationError("Email address is not valid")
	}
	return nil
}

// ValidateThoughtText checks the thought text length constraint
// [1, 280]. Length is counted in characters, not bytes, so multibyte
// text is not penalized.
func ValidateThoughtText(text string) error {
	if text == "" {
		return models.NewValidationError("Thought text is required")
	}
	if utf8.RuneCountInString(text) > models.ThoughtTextMaxLen {
		return models.NewValidationError(
			fmt.Sprintf("Thought text too long (max %d characters)", models.ThoughtTextMaxLen))
	}
	return nil
}

// ValidateReaction checks the reaction body and author constraints.
// The body length is counted in characters, like thought text.
func ValidateReaction(body, username string) error {
	if body == "" {
		return models.NewValidationError("Reaction body is required")
	}
	if utf8.RuneCountInString(body) > models.ReactionBodyMaxLen {
		return models.NewValidationError(
			fmt.Sprintf("Reaction body too long (max %d characters)", models.ReactionBodyMaxLen))
	}
	if username == "" {
		return models.NewValidationError("Reaction username is required")
	}
	return nil
}
