package http

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"petstore/internal/adapter/database/postgres"
	pgrepo "petstore/internal/adapter/database/postgres/repository"
	"petstore/internal/adapter/database/sqlite"
	sqliterepo "petstore/internal/adapter/database/sqlite/repository"
	"petstore/internal/adapter/http/routes"
	"petstore/internal/core/port"
	"petstore/internal/core/telemetry"
	"petstore/pkg"
	"petstore/pkg/config"
	"petstore/pkg/tracing"
)

func StartServer(metrics *tracing.AppMetrics, logger *config.AppLogger) {
	StartServerWithConfig(metrics, logger, config.GetDefaultConfig())
}

// StartServerWithConfig wires the repository, service and HTTP layers and
// blocks serving requests. Postgres is used when DATABASE_URL is set,
// otherwise the embedded sqlite database.
func StartServerWithConfig(metrics *tracing.AppMetrics, logger *config.AppLogger, cfg *config.AppConfig) {
	probe := telemetry.NewOTELProbe(slog.Default(), metrics)

	var repo port.PetRepository

	if os.Getenv("DATABASE_URL") != "" {
		db, err := postgres.NewDB()
		if err != nil {
			slog.Error("Failed to connect to postgres", "error", err)
			return
		}
		defer db.Close()

		repo = pgrepo.NewPetRepository(db, probe)
	} else {
		db, err := sqlite.NewDB()
		if err != nil {
			slog.Error("Failed to open sqlite database", "error", err)
			return
		}
		defer db.Close()

		repo = sqliterepo.NewPetRepository(db, probe)
	}

	container := NewContainer(repo, probe, logger)

	router := routes.SetupRouterWithConfig(routes.HandlersConfig{
		PetHandler:    container.PetHandler,
		HealthHandler: container.HealthHandler,
	}, metrics, logger, cfg)

	serverPort := pkg.GetServerPort()

	slog.Info("Server starting",
		"port", serverPort,
		"environment", cfg.Environment,
		"rate_limit_enabled", cfg.RateLimitEnabled,
		"https_enforced", cfg.EnforceHTTPS)

	srv := &http.Server{
		Addr:         ":" + serverPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("Server failed to start", "error", err)
	}
}
