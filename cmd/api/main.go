package main

import (
	"log"

	"github.com/joho/godotenv"

	"todo-app/internal/config"
	"todo-app/internal/database"
	"todo-app/internal/routes"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found; relying on existing environment")
	}

	// JWT_SECRET / JWT_ALGORITHM が無ければここで起動失敗
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Fatal: Failed to load config: %v", err)
	}

	db := database.InitDB(cfg)
	defer db.Close()

	if err := database.EnsureSchema(db); err != nil {
		log.Fatalf("Fatal: Failed to ensure schema: %v", err)
	}

	r := routes.SetupRouter(db, cfg)

	log.Printf("Server listening on port %s...", cfg.Port)
	if err := r.Run(cfg.HTTPAddress()); err != nil {
		log.Fatal(err)
	}
}
