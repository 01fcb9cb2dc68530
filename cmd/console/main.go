package main

import (
	"log"

	"github.com/marinelink/nav_encoder/internal/app"
	"github.com/marinelink/nav_encoder/internal/config"
)

func main() {
	log.Println("starting nav-encoder console (MQTT subscriber)")

	// Load configuration
	if err := config.InitGlobal("navenc_config.txt"); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := app.RunConsole(); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}
