package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"bluff-this/internal/config"
	"bluff-this/internal/db"
	"bluff-this/internal/game"
	"bluff-this/internal/server"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("failed to load .env: %v", err)
	}
	cfg := config.Load()
	if cfg.AdminPassword == "" {
		log.Fatal("ADMIN_PASSWORD is not set")
	}

	var store game.Gateway
	if conn, err := db.Open(); err != nil {
		log.Printf("running with in-memory store: %v", err)
		store = game.NewMemoryStore()
	} else {
		if err := db.Migrate(conn); err != nil {
			log.Fatalf("database migration failed: %v", err)
		}
		store = db.NewStore(conn, cfg.RetryAttempts, time.Duration(cfg.RetryDelayMillis)*time.Millisecond)
	}

	addr := ":8080"
	if env := os.Getenv("PORT"); env != "" {
		addr = ":" + env
	}

	srv := server.New(store, cfg)
	log.Printf("bluff-this server listening on %s", addr)
	if err := http.ListenAndServe(addr, srv.Handler()); err != nil {
		log.Fatal(err)
	}
}
