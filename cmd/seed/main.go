package main

import (
	"context"
	"log"

	"marketcatalyst/internal/auth"
	"marketcatalyst/internal/config"
	"marketcatalyst/internal/db"
	"marketcatalyst/internal/model"
	"marketcatalyst/internal/repository"
)

// demoUser is a development account inserted by the seed script.
type demoUser struct {
	Username string
	Password string
}

var demoUsers = []demoUser{
	{Username: "Jimmy", Password: "Neutron"},
	{Username: "tkerstiens", Password: "changeme"},
}

func main() {
	log.Println("Starting seed script...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration: %v", err)
	}

	gormDB, err := db.NewMySQL(cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Token{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	users := repository.NewUserRepository(gormDB)
	hasher := auth.NewPasswordHasher(cfg.Salt)
	ctx := context.Background()

	seeded, skipped := 0, 0
	for _, demo := range demoUsers {
		count, err := users.CountByUsername(ctx, demo.Username)
		if err != nil {
			log.Fatalf("Failed to check user %s: %v", demo.Username, err)
		}
		if count > 0 {
			log.Printf("Skipping existing user %s", demo.Username)
			skipped++
			continue
		}

		user := &model.User{
			Username: demo.Username,
			Password: hasher.Hash(demo.Password),
		}
		if err := users.Create(ctx, user); err != nil {
			log.Fatalf("Failed to create user %s: %v", demo.Username, err)
		}
		log.Printf("Created user %s with id %d", demo.Username, user.ID)
		seeded++
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - New users created: %d", seeded)
	log.Printf("  - Existing users skipped: %d", skipped)
}
