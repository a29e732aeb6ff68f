package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/abhishekk-y16/KisanMitra/internal/server"
	"github.com/abhishekk-y16/KisanMitra/internal/server/storage/sqlite"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	addr := flag.String("addr", envOr("KISANMITRA_ADDR", ":8080"), "Listen address")
	dbPath := flag.String("db", envOr("KISANMITRA_DB", "kisanmitra-server.db"), "Path to SQLite database")
	tokenTTL := flag.Duration("token-ttl", 12*time.Hour, "Device token lifetime")
	logLevel := flag.String("log-level", envOr("KISANMITRA_LOG_LEVEL", "info"), "Log level (debug, info, warn, error)")
	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	logger := newLogger(*logLevel)

	// Secrets come from the environment only, never from flags.
	enrollmentKey := os.Getenv("KISANMITRA_ENROLLMENT_KEY")
	tokenSecret := os.Getenv("KISANMITRA_TOKEN_SECRET")
	if enrollmentKey == "" || tokenSecret == "" {
		logger.Error("KISANMITRA_ENROLLMENT_KEY and KISANMITRA_TOKEN_SECRET must be set")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	storage, err := sqlite.New(ctx, *dbPath)
	if err != nil {
		logger.Error("failed to open storage", "path", *dbPath, "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := storage.Close(); err != nil {
			logger.Error("failed to close storage", "error", err)
		}
	}()

	srv := server.New(storage, server.Config{
		Addr:          *addr,
		EnrollmentKey: enrollmentKey,
		TokenSecret:   []byte(tokenSecret),
		TokenTTL:      *tokenTTL,
		Version:       Version,
	}, logger)

	if err := srv.Run(ctx); err != nil {
		logger.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func printVersion() {
	fmt.Printf("KisanMitra Server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
