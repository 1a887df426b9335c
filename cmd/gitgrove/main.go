package main

import (
	"log"
	"os"

	"github.com/gitgrove-dev/gitgrove/db"
	"github.com/gitgrove-dev/gitgrove/internal/auth"
	"github.com/gitgrove-dev/gitgrove/internal/cache"
	"github.com/gitgrove-dev/gitgrove/internal/router"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	if err := auth.InitJWTSecret(); err != nil {
		log.Fatalf("Failed to initialize JWT secret: %v", err)
	}

	if err := db.ConnectDatabase(os.Getenv("DATABASE_URL")); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	if err := cache.Connect(os.Getenv("REDIS_ADDR")); err != nil {
		log.Printf("Redis cache disabled: %v", err)
	}

	r := router.NewRouter()

	var port string

	if port = os.Getenv("PORT"); port == "" {
		port = "3000"
		log.Println("PORT not set, defaulting to 3000")
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
