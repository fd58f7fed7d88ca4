package app

import (
	"log/slog"
	"testing"
)

func TestNewLoggerSelectsHandlerByFormat(t *testing.T) {
	logger := NewLogger(&Config{LogFormat: "json"})
	if _, ok := logger.Handler().(*slog.JSONHandler); !ok {
		t.Fatalf("expected JSON handler for LOG_FORMAT=json, got %T", logger.Handler())
	}

	logger = NewLogger(&Config{LogFormat: "text"})
	if _, ok := logger.Handler().(*slog.TextHandler); !ok {
		t.Fatalf("expected text handler for LOG_FORMAT=text, got %T", logger.Handler())
	}
}

func TestNewLoggerProductionDefaultsToJSON(t *testing.T) {
	logger := NewLogger(&Config{AppEnv: "production"})
	if _, ok := logger.Handler().(*slog.JSONHandler); !ok {
		t.Fatalf("expected JSON handler in production, got %T", logger.Handler())
	}

	logger = NewLogger(&Config{AppEnv: "development"})
	if _, ok := logger.Handler().(*slog.TextHandler); !ok {
		t.Fatalf("expected text handler in development, got %T", logger.Handler())
	}

	logger = NewLogger(nil)
	if _, ok := logger.Handler().(*slog.TextHandler); !ok {
		t.Fatalf("expected text handler without config, got %T", logger.Handler())
	}
}
