package main

import (
	"log"

	"giftedlens/app"
	"giftedlens/internal/config"
	"giftedlens/ui"

	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; environment variables win
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	server, err := ui.NewServer(cfg, app.NewAuditService())
	if err != nil {
		log.Fatalf("failed to create dashboard server: %v", err)
	}

	log.Printf("Starting equity audit dashboard on http://localhost:%s", cfg.Server.Port)
	if err := server.Start(); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
