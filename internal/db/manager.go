package db

import (
	"context"
	"fmt"
	"sync"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

var poolsOpen = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "db_pools_open",
	Help: "Number of live connection pools in the registry",
})

// Manager owns the registry of live connection pools, keyed by descriptor
// identity. Pools are created lazily through the matching adapter and live
// until closed explicitly or at shutdown.
type Manager struct {
	mu       sync.RWMutex
	pools    map[string]*sqlx.DB
	adapters map[Dialect]Adapter
	group    singleflight.Group
	logger   zerolog.Logger
}

func NewManager(logger zerolog.Logger) *Manager {
	return &Manager{
		logger: logger,
		pools:  map[string]*sqlx.DB{},
		adapters: map[Dialect]Adapter{
			DialectPostgres:  &postgresAdapter{},
			DialectSQLServer: &mssqlAdapter{},
			DialectMySQL:     &mysqlAdapter{},
		},
	}
}

// AdapterFor returns the adapter registered for the dialect.
func (m *Manager) AdapterFor(dialect Dialect) (Adapter, error) {
	adapter, ok := m.adapters[dialect]
	if !ok {
		return nil, &UnsupportedDialectError{Dialect: dialect}
	}
	return adapter, nil
}

// GetPool returns the cached pool for the descriptor's identity key, creating
// it on first use. Concurrent first use for the same key is collapsed into a
// single creation, so the registry never holds (or leaks) duplicate pools.
func (m *Manager) GetPool(ctx context.Context, desc Descriptor) (*sqlx.DB, error) {
	key := desc.Key()

	m.mu.RLock()
	pool, ok := m.pools[key]
	m.mu.RUnlock()
	if ok {
		return pool, nil
	}

	adapter, err := m.AdapterFor(desc.Dialect)
	if err != nil {
		return nil, err
	}

	created, err, _ := m.group.Do(key, func() (any, error) {
		m.mu.RLock()
		existing, ok := m.pools[key]
		m.mu.RUnlock()
		if ok {
			return existing, nil
		}

		pool, err := adapter.Open(ctx, desc)
		if err != nil {
			return nil, err
		}

		m.mu.Lock()
		m.pools[key] = pool
		m.mu.Unlock()
		poolsOpen.Inc()
		m.logger.Info().
			Str("dialect", string(desc.Dialect)).
			Str("endpoint", desc.Endpoint()).
			Msg("created connection pool")
		return pool, nil
	})
	if err != nil {
		return nil, err
	}
	return created.(*sqlx.DB), nil
}

// Query resolves a pool for the descriptor and runs the statement through the
// matching adapter.
func (m *Manager) Query(ctx context.Context, desc Descriptor, query string, args ...any) ([]map[string]any, error) {
	pool, err := m.GetPool(ctx, desc)
	if err != nil {
		return nil, err
	}
	adapter, err := m.AdapterFor(desc.Dialect)
	if err != nil {
		return nil, err
	}
	return adapter.Query(ctx, pool, query, args...)
}

// Exec resolves a pool for the descriptor and runs a mutating statement,
// returning the affected row count.
func (m *Manager) Exec(ctx context.Context, desc Descriptor, query string, args ...any) (int64, error) {
	pool, err := m.GetPool(ctx, desc)
	if err != nil {
		return 0, err
	}
	adapter, err := m.AdapterFor(desc.Dialect)
	if err != nil {
		return 0, err
	}
	return adapter.Exec(ctx, pool, query, args...)
}

// TestConnection delegates to the matching adapter. It never returns an
// error: anything unexpected is folded into a failure envelope.
func (m *Manager) TestConnection(ctx context.Context, desc Descriptor) TestResult {
	adapter, err := m.AdapterFor(desc.Dialect)
	if err != nil {
		return TestResult{Success: false, Message: fmt.Sprintf("Connection test failed: %v", err)}
	}
	return adapter.Test(ctx, desc)
}

// ClosePool removes and closes the pool matching the descriptor's identity
// key. No-op when absent.
func (m *Manager) ClosePool(desc Descriptor) {
	key := desc.Key()

	m.mu.Lock()
	pool, ok := m.pools[key]
	if ok {
		delete(m.pools, key)
	}
	m.mu.Unlock()

	if ok {
		pool.Close()
		poolsOpen.Dec()
		m.logger.Info().Str("endpoint", desc.Endpoint()).Msg("closed connection pool")
	}
}

// CloseAllPools concurrently closes every cached pool and clears the
// registry, waiting for all closes to finish. Called at process shutdown.
func (m *Manager) CloseAllPools() {
	m.mu.Lock()
	pools := m.pools
	m.pools = map[string]*sqlx.DB{}
	m.mu.Unlock()

	var wg sync.WaitGroup
	for _, pool := range pools {
		wg.Add(1)
		go func(p *sqlx.DB) {
			defer wg.Done()
			p.Close()
			poolsOpen.Dec()
		}(pool)
	}
	wg.Wait()

	if len(pools) > 0 {
		m.logger.Info().Int("count", len(pools)).Msg("closed all connection pools")
	}
}

// PoolCount reports the number of live pools in the registry.
func (m *Manager) PoolCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.pools)
}
