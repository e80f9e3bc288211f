package tenant

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fleetreach/commworker/pkg/cache"
	"github.com/fleetreach/commworker/pkg/central"
	"github.com/fleetreach/commworker/pkg/db"
)

// Gateway is the sole entry point the queue engine and scheduler use to
// reach tenant configuration and tenant DMS databases.
type Gateway struct {
	store       *central.Store
	configCache cache.Cache[central.TenantConfig]

	poolsMu sync.RWMutex
	pools   map[string]*pgxpool.Pool
}

// New creates a Gateway backed by the given central store. configCache is
// typically cache.NewMemory[central.TenantConfig](); the config cache's TTL
// has no automatic invalidation in this design, so callers should pass a
// negative TTL to GetOrSet's effective caching (handled internally).
func New(store *central.Store, configCache cache.Cache[central.TenantConfig]) *Gateway {
	return &Gateway{
		store:       store,
		configCache: configCache,
		pools:       make(map[string]*pgxpool.Pool),
	}
}

// GetTenantConfig returns tenant_id's config, loading it from the central
// store on first reference and caching it indefinitely thereafter (credential
// rotation requires a process restart — see DESIGN.md). Concurrent callers
// for the same uncached tenant collapse into a single store query.
func (g *Gateway) GetTenantConfig(ctx context.Context, tenantID string) (central.TenantConfig, error) {
	cfg, err := cache.GetOrSet(ctx, g.configCache, tenantID, func(ctx context.Context) (central.TenantConfig, time.Duration, error) {
		cfg, err := g.store.GetTenantConfig(ctx, tenantID)
		if err != nil {
			return central.TenantConfig{}, 0, err
		}
		return cfg, -1, nil // never expires
	})
	if errors.Is(err, central.ErrTenantNotFound) {
		return central.TenantConfig{}, ErrUnknownTenant
	}
	return cfg, err
}

// GetTenantPool returns the cached DMS connection pool for tenant_id,
// opening one lazily on first reference. The pool map is read-mostly and
// published atomically under write lock so no reader ever observes a
// half-initialized pool.
func (g *Gateway) GetTenantPool(ctx context.Context, tenantID string) (*pgxpool.Pool, error) {
	g.poolsMu.RLock()
	pool := g.pools[tenantID]
	g.poolsMu.RUnlock()
	if pool != nil {
		return pool, nil
	}

	cfg, err := g.GetTenantConfig(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if cfg.DMSConnectionString == "" {
		return nil, ErrNoDMSConnection
	}

	newPool, err := db.OpenTenantPool(ctx, cfg.DMSConnectionString)
	if err != nil {
		return nil, err
	}

	g.poolsMu.Lock()
	defer g.poolsMu.Unlock()
	if existing := g.pools[tenantID]; existing != nil {
		newPool.Close()
		return existing, nil
	}
	g.pools[tenantID] = newPool
	return newPool, nil
}

// Close closes every cached tenant DMS pool. Called by the supervisor
// during graceful shutdown, after the queue engine and scheduler have
// stopped.
func (g *Gateway) Close() {
	g.poolsMu.Lock()
	defer g.poolsMu.Unlock()
	for _, pool := range g.pools {
		pool.Close()
	}
	g.pools = make(map[string]*pgxpool.Pool)
}
