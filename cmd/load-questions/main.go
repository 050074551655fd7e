package main

import (
	"flag"
	"log"
	"os"
	"time"

	"bluff-this/internal/config"
	"bluff-this/internal/db"
	"bluff-this/internal/game"
)

func main() {
	filePath := flag.String("file", "questions.txt", "path to a pipe-delimited question file")
	flag.Parse()

	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("failed to load .env: %v", err)
	}
	cfg := config.Load()

	conn, err := db.Open()
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	if err := db.Migrate(conn); err != nil {
		log.Fatalf("database migration failed: %v", err)
	}

	file, err := os.Open(*filePath)
	if err != nil {
		log.Fatalf("failed to open question file: %v", err)
	}
	defer file.Close()

	store := db.NewStore(conn, cfg.RetryAttempts, time.Duration(cfg.RetryDelayMillis)*time.Millisecond)
	engine := game.NewEngine(store, game.DefaultPolicy())
	imported, skipped, err := engine.ImportQuestions(file)
	if err != nil {
		log.Fatalf("import failed after %d questions: %v", imported, err)
	}
	log.Printf("loaded %d questions, skipped %d malformed lines", imported, skipped)
}
