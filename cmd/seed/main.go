// Command main runs the database seeder for roomboard.
package main

import (
	"context"
	"flag"
	"log"

	"roomboard/internal/config"
	"roomboard/internal/database"
	"roomboard/internal/seed"
)

func main() {
	defaults := seed.DefaultOptions()
	numUsers := flag.Int("users", defaults.Users, "Number of users to create")
	numRooms := flag.Int("rooms", defaults.Rooms, "Number of rooms to create")
	numComments := flag.Int("comments", defaults.CommentsPerRoom, "Comments per room")
	shouldClean := flag.Bool("clean", defaults.Clean, "Clean database before seeding")
	fast := flag.Bool("fast", false, "Hash the shared password at minimum bcrypt cost")
	randSeed := flag.Int64("rand-seed", 0, "Fixed random seed for reproducible data")
	flag.Parse()

	log.Printf("Target: %d users, %d rooms, %d comments per room, clean=%v",
		*numUsers, *numRooms, *numComments, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	stats, err := seed.Seed(context.Background(), db, seed.Options{
		Users:           *numUsers,
		Rooms:           *numRooms,
		CommentsPerRoom: *numComments,
		Clean:           *shouldClean,
		FastHash:        *fast,
		RandSeed:        *randSeed,
	})
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Created %d users, %d rooms, %d comments", stats.Users, stats.Rooms, stats.Comments)
	log.Printf("All seeded users have the password: %s", seed.DefaultPassword)
}
