package logger

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is a no-op logger until Initialize is called, so packages can log from tests
// without any setup.
var Log = zap.NewNop()

type Config struct {
	Level       string // debug, info, warn, error
	Environment string // development, production
	ServiceName string
}

func Initialize(cfg Config) error {
	var config zap.Config

	if cfg.Environment == "production" {
		config = zap.NewProductionConfig()
		config.EncoderConfig.TimeKey = "timestamp"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		config.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	config.Level = zap.NewAtomicLevelAt(level)

	built, err := config.Build(
		zap.AddCallerSkip(1),
		zap.Fields(
			zap.String("service", cfg.ServiceName),
			zap.String("env", cfg.Environment),
		),
	)
	if err != nil {
		return err
	}

	Log = built

	return nil
}

func Sync() {
	if Log != nil {
		_ = Log.Sync()
	}
}

// WithFunction scopes the logger to one of the deployed functions.
func WithFunction(name string) *zap.Logger {
	return Log.With(zap.String("function", name))
}

func WithRequestID(requestID string) *zap.Logger {
	return Log.With(zap.String("request_id", requestID))
}

func Info(msg string, fields ...zap.Field) {
	Log.Info(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	Log.Error(msg, fields...)
}

// Audit records a state change made on behalf of a user.
func Audit(action string, userID string, details map[string]interface{}) {
	fields := []zap.Field{
		zap.String("type", "audit"),
		zap.String("action", action),
		zap.String("user_id", userID),
		zap.Time("timestamp", time.Now()),
	}

	for k, v := range details {
		fields = append(fields, zap.Any(k, v))
	}

	Log.Info("audit_event", fields...)
}

func Performance(operation string, duration time.Duration, details map[string]interface{}) {
	fields := []zap.Field{
		zap.String("type", "performance"),
		zap.String("operation", operation),
		zap.Duration("duration", duration),
		zap.Bool("slow", duration > time.Second),
	}

	for k, v := range details {
		fields = append(fields, zap.Any(k, v))
	}

	if duration > time.Second {
		Log.Warn("slow_operation", fields...)
	} else {
		Log.Debug("operation_complete", fields...)
	}
}
