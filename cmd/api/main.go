package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	api "petstore/internal/adapter/http"
	. "petstore/pkg/config"
	. "petstore/pkg/tracing"
)

func main() {
	ctx := context.Background()

	logger, err := NewAppLogger("petstore")

	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	defer logger.Sync()

	otlpEndpoint := os.Getenv("OTLP_ENDPOINT")
	if otlpEndpoint == "" {
		otlpEndpoint = "localhost:4317"
	}

	telemetry, err := InitTelemetry(TelemetryConfig{
		ServiceName:    "petstore",
		ServiceVersion: "1.0.0",
		MetricsPort:    "9091",
		OTLPEndpoint:   otlpEndpoint,
	})

	if err != nil {
		log.Fatal("Failed to initialize telemetry:", err)
	}

	defer telemetry.Shutdown(ctx)

	metrics := NewAppMetrics(telemetry.PrometheusRegistry)
	metrics.StartSystemMetrics(ctx)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		config := GetDefaultConfig()

		if os.Getenv("GIN_MODE") == "release" {
			config.Environment = "production"
			config.EnforceHTTPS = true
		}

		api.StartServerWithConfig(metrics, logger, config)
	}()

	<-c
	logger.Logger.Info("Shutting down gracefully...")
}
