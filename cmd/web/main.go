package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"bridgesched/internal/app"
)

func main() {
	// A .env file is optional; environment variables win either way.
	if err := godotenv.Load(); err == nil {
		slog.Info("loaded environment from .env")
	}

	application, err := app.NewApplication()
	if err != nil {
		slog.Error("failed to initialize application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
