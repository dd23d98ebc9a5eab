package main

import (
	"log"
	"os"

	"flix-n-chill-be/internal/model"
	"flix-n-chill-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	// Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Seeding Genre Catalog...")

	// TMDB genre catalog; tmdb_id is the stable external identifier.
	genres := []model.Genre{
		{TmdbId: 28, Name: "Action"},
		{TmdbId: 12, Name: "Adventure"},
		{TmdbId: 16, Name: "Animation"},
		{TmdbId: 35, Name: "Comedy"},
		{TmdbId: 80, Name: "Crime"},
		{TmdbId: 99, Name: "Documentary"},
		{TmdbId: 18, Name: "Drama"},
		{TmdbId: 10751, Name: "Family"},
		{TmdbId: 14, Name: "Fantasy"},
		{TmdbId: 36, Name: "History"},
		{TmdbId: 27, Name: "Horror"},
		{TmdbId: 10402, Name: "Music"},
		{TmdbId: 9648, Name: "Mystery"},
		{TmdbId: 10749, Name: "Romance"},
		{TmdbId: 878, Name: "Science Fiction"},
		{TmdbId: 10770, Name: "TV Movie"},
		{TmdbId: 53, Name: "Thriller"},
		{TmdbId: 10752, Name: "War"},
		{TmdbId: 37, Name: "Western"},
	}

	for _, g := range genres {
		// Check if genre with this tmdb_id already exists
		var existing model.Genre
		if err := db.Where("tmdb_id = ?", g.TmdbId).First(&existing).Error; err == nil {
			log.Printf("Genre '%s' already exists, skipping...", g.Name)
			continue
		}

		if err := db.Create(&g).Error; err != nil {
			log.Printf("Error creating genre '%s': %v", g.Name, err)
		} else {
			log.Printf("Created genre: %s (tmdb %d)", g.Name, g.TmdbId)
		}
	}

	log.Println("Genre seeding completed!")
}
