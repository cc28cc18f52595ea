package main

import (
	"fmt"
	"os"
	"time"

	"tour-booking/database"
	"tour-booking/database/seeders"
	"tour-booking/middleware"

	"github.com/joho/godotenv"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage:")
		fmt.Println("  go run tools/migrate.go migrate        - Run database migrations")
		fmt.Println("  go run tools/migrate.go seed           - Insert the demo operator, tours and accounts")
		fmt.Println("  go run tools/migrate.go token <uuid>   - Print a 24h access token for a user")
		return
	}

	if err := godotenv.Load(); err != nil {
		fmt.Printf("⚠️  No .env file loaded: %v\n", err)
	}

	command := os.Args[1]

	switch command {
	case "migrate":
		fmt.Println("🚀 Running database migrations...")
		db, err := database.Open()
		if err != nil {
			fmt.Printf("❌ Connection failed: %v\n", err)
			os.Exit(1)
		}
		if err := database.RunMigrations(db); err != nil {
			fmt.Printf("❌ Migration failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("✅ Migration completed successfully!")

	case "seed":
		fmt.Println("🌱 Seeding demo data...")
		db, err := database.InitDB()
		if err != nil {
			fmt.Printf("❌ Connection failed: %v\n", err)
			os.Exit(1)
		}
		if err := seeders.SeedDemoData(db); err != nil {
			fmt.Printf("❌ Seeding failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("✅ Demo data seeded")

	case "token":
		if len(os.Args) < 3 {
			fmt.Println("Please provide the user's UUID")
			fmt.Printf("Example: go run tools/migrate.go token %s\n", seeders.DemoCustomerUUID)
			return
		}
		secret := os.Getenv("JWT_SECRET")
		if secret == "" {
			fmt.Println("❌ JWT_SECRET is not set")
			os.Exit(1)
		}
		token, err := middleware.SignToken([]byte(secret), os.Args[2], 24*time.Hour)
		if err != nil {
			fmt.Printf("❌ Failed to sign token: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(token)

	default:
		fmt.Printf("Unknown command: %s\n", command)
		fmt.Println("Available commands: migrate, seed, token")
	}
}
