package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/vladimiradmaev/nutrilyzer/internal/config"
	"github.com/vladimiradmaev/nutrilyzer/internal/database"
	"github.com/vladimiradmaev/nutrilyzer/internal/logger"
	"github.com/vladimiradmaev/nutrilyzer/internal/repository"
	"github.com/vladimiradmaev/nutrilyzer/internal/services"
)

func main() {
	path := flag.String("file", "cmd/seed-defaults/catalog.json", "catalog of default food items and meals")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := logger.InitWithConfig(logger.Config{
		Level:      cfg.Logger.Level,
		OutputPath: "stdout",
		Format:     "text",
	}); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}

	f, err := os.Open(*path)
	if err != nil {
		logger.Fatal("Failed to open catalog", "path", *path, "error", err)
	}
	defer f.Close()

	catalog, err := services.ReadCatalog(f)
	if err != nil {
		logger.Fatal("Failed to read catalog", "path", *path, "error", err)
	}

	db, err := database.NewPostgresDB(cfg.DB, logger.GetLogger())
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	seeder := services.NewSeedService(repository.NewStore(db), logger.GetLogger())
	res, err := seeder.SeedDefaults(context.Background(), catalog)
	if err != nil {
		logger.Fatal("Seeding failed", "error", err)
	}
	logger.Infof("Seeded %d food items and %d meals (%d and %d already present)",
		res.FoodItemsCreated, res.MealsCreated, res.FoodItemsSkipped, res.MealsSkipped)
}
