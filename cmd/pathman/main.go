package main

import (
	"os"

	"github.com/davidchappy/pathman/internal/app"
	"github.com/davidchappy/pathman/internal/config"
)

func main() {
	cfg := config.Load()
	log := config.SetupLogger(cfg, os.Stderr)
	if err := app.Start(cfg, log); err != nil {
		log.Error("pathman exited", "error", err)
		os.Exit(1)
	}
}
