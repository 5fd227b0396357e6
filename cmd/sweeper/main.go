// Standalone expiry sweeper for deployments that retire expired links from a
// maintenance process instead of the API server.
package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/samber/do"
	"github.com/serroba/shortlinks/internal/container"
	"github.com/serroba/shortlinks/internal/sweeper"
	"go.uber.org/zap"
)

func main() {
	opts := &container.Options{
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		RedisAddr:    getEnv("REDIS_ADDR", "localhost:6379"),
		SweepSeconds: getEnvInt("SWEEP_SECONDS", 15),
		LogFormat:    getEnv("LOG_FORMAT", "console"),
	}

	injector := do.New()
	do.ProvideValue(injector, opts)
	container.LoggerPackage(injector)
	container.RedisPackage(injector)
	container.PostgresPackage(injector)
	container.RepositoryPackage(injector)
	container.SweeperPackage(injector)

	logger := do.MustInvoke[*zap.Logger](injector)
	sweep := do.MustInvoke[*sweeper.Sweeper](injector)

	ctx, cancel := context.WithCancel(context.Background())

	if len(os.Args) > 1 && os.Args[1] == "--once" {
		sweep.Sweep(ctx)
		cancel()

		if err := injector.Shutdown(); err != nil {
			logger.Error("shutdown error", zap.Error(err))
		}

		return
	}

	if err := sweep.Start(ctx); err != nil {
		logger.Fatal("failed to start sweeper", zap.Error(err))
	}

	logger.Info("sweeper running", zap.Int("interval_seconds", opts.SweepSeconds))

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutting down")
	cancel()

	if err := injector.Shutdown(); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}

	return defaultValue
}
