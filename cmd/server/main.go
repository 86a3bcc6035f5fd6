package main

import (
	"context"
	"log"
	"os"

	"towerdefense/server/internal/app"
	"towerdefense/server/internal/config"
	"towerdefense/server/internal/telemetry"
)

func main() {
	stdLogger := log.New(os.Stderr, "", log.LstdFlags)
	cfg := config.LoadFromEnv(config.DefaultConfig(), stdLogger)

	err := app.Run(context.Background(), app.RunnerConfig{
		Config: cfg,
		Logger: telemetry.StdLogger{Logger: stdLogger},
	})
	if err != nil {
		log.Fatalf("%v", err)
	}
}
