package main

import (
	"log/slog"
	"net/http"

	"github.com/hadikasem/AI-Financial-Advisor/internal/app"
	"github.com/hadikasem/AI-Financial-Advisor/internal/config"
	"github.com/hadikasem/AI-Financial-Advisor/internal/logger"
	"github.com/hadikasem/AI-Financial-Advisor/internal/routes"
)

func main() {
	cfg := config.Load()

	logger.Init(cfg.IsDevelopment(), cfg.SentryDSN)

	app, err := app.New(cfg)
	if err != nil {
		slog.Error("failed to initialize app", "error", err)
		panic(err)
	}
	defer func() {
		closeErr := app.Close()
		if closeErr != nil {
			slog.Error("failed to close app", "error", closeErr)
		}
	}()

	err = app.Scheduler.Start()
	if err != nil {
		slog.Error("failed to start scheduler", "error", err)
		panic(err)
	}

	handler := routes.SetupRoutes(app)
	slog.Info("server starting", "port", cfg.Port, "env", cfg.AppEnv, "url", "http://localhost:"+cfg.Port)

	err = http.ListenAndServe(":"+cfg.Port, handler)
	if err != nil {
		slog.Error("server failed", "error", err)
		panic(err)
	}
}
