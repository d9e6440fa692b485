package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"greenboard/internal/config"
	"greenboard/internal/db"
	"greenboard/internal/model"
	"greenboard/internal/repository"
	"greenboard/internal/service"
)

func main() {
	log.Println("Starting seed script...")

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using system environment")
	}
	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.Task{}, &model.Chance{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	taskRepo := repository.NewTaskRepository(gormDB)
	chanceRepo := repository.NewChanceRepository(gormDB)
	catalog := service.NewCatalogService(taskRepo, chanceRepo)

	tasks, chances, err := catalog.SeedDefaults(context.Background())
	if err != nil {
		log.Fatalf("Failed to seed catalogs: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - Tasks created: %d", tasks)
	log.Printf("  - Chance cards created: %d", chances)
	if tasks == 0 && chances == 0 {
		log.Println("Catalogs were already populated, nothing to do")
	}
}
