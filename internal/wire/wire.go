// Package wire provides dependency injection for the rosterguard application.
// It creates singleton services with lazy initialization.
package wire

import (
	"io"
	"log"
	"log/slog"
	"os"
	"sync"

	cliadapter "github.com/example/rosterguard/internal/adapters/cli"
	"github.com/example/rosterguard/internal/adapters/sqlite"
	"github.com/example/rosterguard/internal/app"
	"github.com/example/rosterguard/internal/config"
	"github.com/example/rosterguard/internal/core/detect"
	"github.com/example/rosterguard/internal/core/resolve"
	"github.com/example/rosterguard/internal/db"
	"github.com/example/rosterguard/internal/ports/primary"
)

var (
	detectionService  primary.DetectionService
	resolutionService primary.ResolutionService
	scheduleService   primary.ScheduleService
	once              sync.Once
)

// DetectionService returns the singleton DetectionService instance.
func DetectionService() primary.DetectionService {
	once.Do(initServices)
	return detectionService
}

// ResolutionService returns the singleton ResolutionService instance.
func ResolutionService() primary.ResolutionService {
	once.Do(initServices)
	return resolutionService
}

// ScheduleService returns the singleton ScheduleService instance.
func ScheduleService() primary.ScheduleService {
	once.Do(initServices)
	return scheduleService
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	database, err := db.GetDB()
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	cwd, err := os.Getwd()
	if err != nil {
		cwd = ""
	}
	cfg := config.LoadOrDefault(cwd)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	// Repository adapters (secondary ports) with injected DB
	scheduleRepo := sqlite.NewScheduleRepository(database)
	runRepo := sqlite.NewRunRepository(database)

	// Engine cores
	detector := detect.New(cfg.DetectorConfig())
	resolver := resolve.New(detector)

	// Services (primary ports implementation)
	detectionService = app.NewDetectionService(detector, runRepo, logger, cfg.Workers)
	resolutionService = app.NewResolutionService(resolver, runRepo, logger)
	scheduleService = app.NewScheduleService(scheduleRepo, logger)
}

// DetectionAdapter returns a new DetectionAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func DetectionAdapter() *cliadapter.DetectionAdapter {
	return DetectionAdapterWithOutput(os.Stdout)
}

// DetectionAdapterWithOutput returns a new DetectionAdapter writing to the
// given output. This variant allows testing or alternate output destinations.
func DetectionAdapterWithOutput(out io.Writer) *cliadapter.DetectionAdapter {
	once.Do(initServices)
	return cliadapter.NewDetectionAdapter(detectionService, out)
}

// ResolutionAdapter returns a new ResolutionAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func ResolutionAdapter() *cliadapter.ResolutionAdapter {
	return ResolutionAdapterWithOutput(os.Stdout)
}

// ResolutionAdapterWithOutput returns a new ResolutionAdapter writing to the
// given output. This variant allows testing or alternate output destinations.
func ResolutionAdapterWithOutput(out io.Writer) *cliadapter.ResolutionAdapter {
	once.Do(initServices)
	return cliadapter.NewResolutionAdapter(resolutionService, out)
}
