//go:build integration

package tenant_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fleetreach/commworker/pkg/cache"
	"github.com/fleetreach/commworker/pkg/central"
	"github.com/fleetreach/commworker/pkg/db"
	"github.com/fleetreach/commworker/pkg/tenant"
)

func newTestGateway(t *testing.T) (*tenant.Gateway, *central.Store) {
	t.Helper()

	url := os.Getenv("CENTRAL_DB_TEST_URL")
	if url == "" {
		t.Skip("CENTRAL_DB_TEST_URL not set")
	}

	ctx := context.Background()
	pool, err := db.Open(ctx, url, db.WithMigrations(central.Migrations))
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	store := central.New(pool)
	gw := tenant.New(store, cache.NewMemory[central.TenantConfig]())
	return gw, store
}

func TestGateway_GetTenantConfig_UnknownTenant(t *testing.T) {
	t.Parallel()
	gw, _ := newTestGateway(t)

	_, err := gw.GetTenantConfig(context.Background(), "does-not-exist")
	require.ErrorIs(t, err, tenant.ErrUnknownTenant)
}

func TestGateway_GetTenantConfig_CachesAcrossCalls(t *testing.T) {
	t.Parallel()
	gw, store := newTestGateway(t)
	ctx := context.Background()

	_, err := store.Pool().Exec(ctx, `
		INSERT INTO tenant_configs (tenant_id, dms_connection_string)
		VALUES ('cache-test', 'postgres://unused')
		ON CONFLICT (tenant_id) DO NOTHING`)
	require.NoError(t, err)

	cfg1, err := gw.GetTenantConfig(ctx, "cache-test")
	require.NoError(t, err)

	_, err = store.Pool().Exec(ctx, `UPDATE tenant_configs SET dms_connection_string = 'postgres://changed' WHERE tenant_id = 'cache-test'`)
	require.NoError(t, err)

	cfg2, err := gw.GetTenantConfig(ctx, "cache-test")
	require.NoError(t, err)
	require.Equal(t, cfg1.DMSConnectionString, cfg2.DMSConnectionString, "config cache has no invalidation path short of process restart")
}
