package utils

import (
	"os"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
)

// InitSentry initializes Sentry for error tracking. Skipped when no DSN is
// configured.
func InitSentry() {
	dsn := os.Getenv("SENTRY_DSN")
	if dsn == "" {
		logrus.Info("SENTRY_DSN not set, skipping Sentry initialization")
		return
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		EnableTracing:    true,
		TracesSampleRate: 1.0,
		Environment:      os.Getenv("APP_ENV"),
	})
	if err != nil {
		logrus.Fatalf("sentry.Init: %s", err)
	}
	logrus.Info("Sentry initialized")
}
