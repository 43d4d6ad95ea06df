package config

import (
	"fmt"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// AppLogger wraps a zap logger with otelzap so every log line carries the
// trace and span ids of the request that produced it.
type AppLogger struct {
	Logger      *otelzap.Logger
	ServiceName string
}

func NewAppLogger(serviceName string) (*AppLogger, error) {
	config := zap.NewProductionConfig()
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.TimeKey = "timestamp"

	zapLogger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create zap logger: %w", err)
	}

	otelLogger := otelzap.New(zapLogger)

	return &AppLogger{
		Logger:      otelLogger,
		ServiceName: serviceName,
	}, nil
}

func (l *AppLogger) Sync() error {
	return l.Logger.Sync()
}
