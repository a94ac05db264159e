// Command migrate runs schema operations for the API database.
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"murmur/internal/config"
	"murmur/internal/database"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func usage() error {
	return fmt.Errorf("usage: go run ./cmd/migrate <auto|status>")
}

func run() error {
	flag.Parse()
	if flag.NArg() < 1 {
		return usage()
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	cmd := strings.ToLower(strings.TrimSpace(flag.Arg(0)))
	switch cmd {
	case "auto":
		if err := database.Migrate(db); err != nil {
			return fmt.Errorf("auto migration failed: %w", err)
		}
		log.Println("auto migration applied")
	case "status":
		for _, table := range []string{"users", "friends", "user_thoughts", "thoughts", "reactions"} {
			exists := db.Migrator().HasTable(table)
			log.Printf("table %-14s exists=%v", table, exists)
		}
	default:
		return usage()
	}

	return nil
}
