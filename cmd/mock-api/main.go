package main

import (
	"fmt"
	"os"

	"nebula/internal/common/config"
	"nebula/internal/common/logger"
	"nebula/internal/mockapi"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewStructured(cfg.Logging.Level, cfg.Logging.Format)

	server := mockapi.NewServer(cfg.Server, log)
	if err := server.Run(cfg.Server.Address); err != nil {
		log.WithError(err).Error("server exited", nil)
		os.Exit(1)
	}
}
