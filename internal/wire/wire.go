// Package wire provides dependency injection for the searchops application.
// It creates singleton services with lazy initialization.
package wire

import (
	"io"
	"log"
	"os"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	cliadapter "github.com/example/searchops/internal/adapters/cli"
	"github.com/example/searchops/internal/adapters/sqlite"
	"github.com/example/searchops/internal/app"
	"github.com/example/searchops/internal/config"
	"github.com/example/searchops/internal/core/allocation"
	"github.com/example/searchops/internal/db"
	"github.com/example/searchops/internal/logging"
	"github.com/example/searchops/internal/ports/primary"
)

var (
	configDir = "."

	cfg               *config.Config
	logger            *zap.Logger
	registry          *prometheus.Registry
	allocationService primary.AllocationService
	premiseService    primary.PremiseService
	resourceService   primary.ResourceService
	rosterService     primary.RosterService
	once              sync.Once
)

// SetConfigDir sets the directory holding .searchops/config.json.
// Must be called before any accessor.
func SetConfigDir(dir string) {
	configDir = dir
}

// Config returns the loaded configuration.
func Config() *config.Config {
	once.Do(initServices)
	return cfg
}

// Logger returns the process logger.
func Logger() *zap.Logger {
	once.Do(initServices)
	return logger
}

// Registry returns the metrics registry the services record into.
func Registry() *prometheus.Registry {
	once.Do(initServices)
	return registry
}

// AllocationService returns the singleton AllocationService instance.
func AllocationService() primary.AllocationService {
	once.Do(initServices)
	return allocationService
}

// PremiseService returns the singleton PremiseService instance.
func PremiseService() primary.PremiseService {
	once.Do(initServices)
	return premiseService
}

// ResourceService returns the singleton ResourceService instance.
func ResourceService() primary.ResourceService {
	once.Do(initServices)
	return resourceService
}

// RosterService returns the singleton RosterService instance.
func RosterService() primary.RosterService {
	once.Do(initServices)
	return rosterService
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	var err error
	cfg, err = config.LoadOrDefault(configDir)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err = logging.New(cfg.LogLevel, cfg.LogFormat, "searchops")
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}

	// $SEARCHOPS_DB wins over the config file
	if cfg.DBPath != "" && os.Getenv(db.EnvDBPath) == "" {
		db.SetPath(cfg.DBPath)
	}
	database, err := db.GetDB()
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	registry = prometheus.NewRegistry()
	metrics := app.NewMetrics(registry)

	// Create repository adapters (secondary ports) - sqlite adapters with injected DB
	resourceRepo := sqlite.NewResourceRepository(database)
	premiseRepo := sqlite.NewPremiseRepository(database)
	ledger := sqlite.NewAllocationLedger(database)
	tx := sqlite.NewTransactor(database)

	executor := app.NewEffectExecutor(resourceRepo, ledger, logger, metrics)

	resources := app.NewResourceService(resourceRepo, tx, logger)
	premises := app.NewPremiseService(premiseRepo, ledger, tx, logger)
	resourceService = resources
	premiseService = premises
	rosterService = app.NewRosterService(resources, premises, tx, logger)
	allocationService = app.NewAllocationService(
		resourceRepo, premiseRepo, ledger, tx, executor,
		AllocationOptions(cfg), logger, metrics,
	)
}

// AllocationOptions converts the configured policy into service options.
func AllocationOptions(c *config.Config) app.AllocationOptions {
	return app.AllocationOptions{
		Policy: allocation.Policy{
			MinWitnesses: c.MinWitnesses,
			MinOfficials: c.MinOfficials,
		},
		DriverGenders:     c.DriverGenders,
		AutoAssignRetries: c.AutoAssignRetries,
	}
}

// AllocationAdapter returns a new AllocationAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func AllocationAdapter() *cliadapter.AllocationAdapter {
	return AllocationAdapterWithOutput(os.Stdout)
}

// AllocationAdapterWithOutput returns a new AllocationAdapter writing to the given output.
func AllocationAdapterWithOutput(out io.Writer) *cliadapter.AllocationAdapter {
	once.Do(initServices)
	return cliadapter.NewAllocationAdapter(allocationService, out)
}

// PremiseAdapter returns a new PremiseAdapter writing to stdout.
func PremiseAdapter() *cliadapter.PremiseAdapter {
	return PremiseAdapterWithOutput(os.Stdout)
}

// PremiseAdapterWithOutput returns a new PremiseAdapter writing to the given output.
func PremiseAdapterWithOutput(out io.Writer) *cliadapter.PremiseAdapter {
	once.Do(initServices)
	return cliadapter.NewPremiseAdapter(premiseService, allocationService, out)
}

// ResourceAdapter returns a new ResourceAdapter writing to stdout.
func ResourceAdapter() *cliadapter.ResourceAdapter {
	return ResourceAdapterWithOutput(os.Stdout)
}

// ResourceAdapterWithOutput returns a new ResourceAdapter writing to the given output.
func ResourceAdapterWithOutput(out io.Writer) *cliadapter.ResourceAdapter {
	once.Do(initServices)
	return cliadapter.NewResourceAdapter(resourceService, rosterService, out)
}
