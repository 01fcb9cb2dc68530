package main

import (
	"log"

	"github.com/marinelink/nav_encoder/internal/app"
	"github.com/marinelink/nav_encoder/internal/config"
)

func main() {
	log.Println("starting nav-encoder (snapshots -> NMEA 0183)")

	// Load configuration
	if err := config.InitGlobal("navenc_config.txt"); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := app.RunEncoder(); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}
