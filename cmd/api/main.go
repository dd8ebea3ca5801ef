package main

import (
	"log"

	"giftedlens/app"
	"giftedlens/internal/config"
	"giftedlens/ui"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	api := ui.NewApp(cfg, app.NewAuditService())
	log.Printf("Starting equity audit API on http://localhost:%s", cfg.Server.APIPort)
	if err := api.Start(); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
