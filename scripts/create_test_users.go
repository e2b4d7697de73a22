package main

import (
	"fmt"
	"log"

	"github.com/meetwiselabs/meetwise/internal/domain/entities"
	"github.com/meetwiselabs/meetwise/internal/infrastructure/database"
	"github.com/meetwiselabs/meetwise/pkg/config"
	pkgjwt "github.com/meetwiselabs/meetwise/pkg/jwt"
)

func main() {
	log.Println("🚀 Starting test users creation...")

	// Load configuration from .env
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	// Initialize JWT manager
	jwtManager := pkgjwt.NewManager(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	// Define test users
	testUsers := []struct {
		Email string
		Name  string
	}{
		{Email: "alice@test.local", Name: "Alice"},
		{Email: "bob@test.local", Name: "Bob"},
		{Email: "charlie@test.local", Name: "Charlie"},
	}

	log.Println("🗑️  Cleaning up existing test users...")
	db.Where("email LIKE ?", "%@test.local").Delete(&entities.User{})

	log.Println("🔑 Creating test users and tokens...")

	for _, tu := range testUsers {
		user := entities.NewUser(tu.Email, tu.Name)
		if err := db.Create(user).Error; err != nil {
			log.Fatalf("Failed to create user %s: %v", tu.Email, err)
		}

		token, err := jwtManager.GenerateAccessToken(user.ID, user.Email)
		if err != nil {
			log.Fatalf("Failed to generate token for %s: %v", tu.Email, err)
		}

		fmt.Printf("👤 %s <%s>\n", tu.Name, tu.Email)
		fmt.Printf("   id:    %s\n", user.ID)
		fmt.Printf("   token: %s\n\n", token)
	}

	log.Println("✅ Done. Use a token as: Authorization: Bearer <token>")
}
