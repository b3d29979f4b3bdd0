package main

import (
	"context"
	"fmt"
	"os"

	"driver-service/internal/config"
	driverservice "driver-service/internal/driver-service"
	"driver-service/internal/mylogger"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := mylogger.New(cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}

	if err := driverservice.Run(context.Background(), log, cfg); err != nil {
		log.Error("driver service stopped", err)
		os.Exit(1)
	}
}
