package runtime

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mwantia/fabric/pkg/container"

	"github.com/strataquery/strata/internal/config"
	"github.com/strataquery/strata/pkg/db/store"
	"github.com/strataquery/strata/pkg/log"
)

// Runtime wires the shared services (logger, metadata store) used by the
// CLI commands and tears them down on shutdown.
type Runtime struct {
	mutex sync.RWMutex

	cfg   *config.BaseConfig
	sc    *container.ServiceContainer
	log   log.LoggerService
	store store.MetadataStore
}

func New(cfg *config.BaseConfig) *Runtime {
	return &Runtime{
		cfg: cfg,
		sc:  container.NewServiceContainer(),
		log: log.NewLoggerService("strata", cfg.Log),
	}
}

// Setup registers services and opens the metadata store.
func (rt *Runtime) Setup(ctx context.Context) error {
	rt.mutex.Lock()
	defer rt.mutex.Unlock()

	errs := container.Errors{}

	rt.log.Debug("Registering 'LoggerService'...")
	errs.Add(container.Register[log.LoggerServiceImpl](rt.sc,
		container.With[log.LoggerService](),
		container.WithInstance(rt.log)))

	if err := errs.Errors(); err != nil {
		return err
	}

	s, err := rt.openStore()
	if err != nil {
		return err
	}

	if err := s.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect metadata store: %w", err)
	}
	if err := s.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to migrate metadata store: %w", err)
	}

	rt.store = s
	return nil
}

func (rt *Runtime) openStore() (store.MetadataStore, error) {
	switch rt.cfg.Metadata.Type {
	case "", "sqlite":
		return store.NewSQLiteStore(store.SQLiteConfig{
			Path: rt.cfg.Metadata.SQLite.Path,
		})
	default:
		return nil, fmt.Errorf("unsupported metadata store type: %q", rt.cfg.Metadata.Type)
	}
}

// Log returns the base logger service.
func (rt *Runtime) Log() log.LoggerService {
	rt.mutex.RLock()
	defer rt.mutex.RUnlock()

	return rt.log
}

// Store returns the metadata store; Setup must have completed.
func (rt *Runtime) Store() store.MetadataStore {
	rt.mutex.RLock()
	defer rt.mutex.RUnlock()

	return rt.store
}

// Shutdown closes the metadata store and cleans up the service container
// within the configured shutdown timeout.
func (rt *Runtime) Shutdown() error {
	rt.mutex.Lock()
	defer rt.mutex.Unlock()

	timeout, err := time.ParseDuration(rt.cfg.ShutdownTimeout)
	if err != nil {
		timeout = 10 * time.Second
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if rt.store != nil {
		if err := rt.store.Close(); err != nil {
			return fmt.Errorf("failed to close metadata store: %w", err)
		}
		rt.store = nil
	}

	if err := rt.sc.Cleanup(ctx); err != nil {
		return fmt.Errorf("failed to complete service container cleanup: %w", err)
	}

	return nil
}
