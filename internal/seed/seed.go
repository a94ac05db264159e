package seed

import (
	"fmt"
	"log"

	"murmur/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumThoughts int
	MaxDays     int
	ShouldClean bool
}

// Seed populates the database with a social mesh of users, directional
// friend edges, thoughts and reactions.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Starting database seeding with %d users and %d thoughts...", opts.NumUsers, opts.NumThoughts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	factory := NewFactory(db)

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := factory.CreateUser()
		if err != nil {
			return fmt.Errorf("seed user %d: %w", i, err)
		}
		users = append(users, user)
	}

	// Directional friend mesh: each user picks a few friends at random.
	// The picked friend does not get a reciprocal edge.
	for _, user := range users {
		numFriends := gofakeit.Number(0, min(5, len(users)-1))
		for j := 0; j < numFriends; j++ {
			friend := users[gofakeit.Number(0, len(users)-1)]
			if friend.ID == user.ID {
				continue
			}
			if err := factory.AddFriend(user, friend); err != nil {
				return fmt.Errorf("seed friend edge: %w", err)
			}
		}
	}

	for i := 0; i < opts.NumThoughts; i++ {
		author := users[gofakeit.Number(0, len(users)-1)]
		thought, err := factory.CreateThought(author, opts.MaxDays)
		if err != nil {
			return fmt.Errorf("seed thought %d: %w", i, err)
		}

		numReactions := gofakeit.Number(0, 3)
		for j := 0; j < numReactions; j++ {
			reactor := users[gofakeit.Number(0, len(users)-1)]
			if _, err := factory.CreateReaction(thought, reactor); err != nil {
				return fmt.Errorf("seed reaction: %w", err)
			}
		}
	}

	log.Println("Database seeding complete")
	return nil
}

func clearData(db *gorm.DB) error {
	// Children before parents, matching the delete order used by the API.
	for _, model := range []interface{}{
		&models.Reaction{},
		&models.UserThought{},
		&models.Friend{},
		&models.Thought{},
		&models.User{},
	} {
		if err := db.Where("1 = 1").Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}
