// Package db provides PostgreSQL connection pooling, health checks, and
// migrations for both the central store and tenant DMS databases.
//
// The central store (communication_jobs, tenant_configs, message_templates)
// and each tenant's DMS are separate databases reached through separate
// pools: [Open] with [Config] opens the former at process startup;
// [OpenTenantPool] opens the latter lazily, one pool per tenant, sized
// smaller since a process may hold many of them concurrently.
//
// # Features
//
//   - Connection pooling with configurable limits and timeouts
//   - Automatic retry logic with backoff during startup
//   - Periodic pool health checks (no standalone health check function)
//   - Database migrations using [github.com/pressly/goose/v3]
//   - Environment-based configuration for the central store
//
// # Central Store Configuration
//
//	CENTRAL_DB_URL                - PostgreSQL connection URL (required)
//	CENTRAL_DB_MAX_OPEN_CONNS     - Maximum open connections (default: 20)
//	CENTRAL_DB_MIN_CONNS          - Minimum idle connections (default: 5)
//	CENTRAL_DB_HEALTHCHECK_PERIOD - Health check interval (default: 1m)
//	CENTRAL_DB_MAX_CONN_IDLE_TIME - Maximum connection idle time (default: 10m)
//	CENTRAL_DB_MAX_CONN_LIFETIME  - Maximum connection lifetime (default: 30m)
//	CENTRAL_DB_RETRY_ATTEMPTS     - Connection retry attempts (default: 3)
//	CENTRAL_DB_RETRY_INTERVAL     - Base retry interval (default: 5s)
//	CENTRAL_DB_MIGRATIONS_PATH    - Parsed into Config.MigrationsPath; not read by Migrate
//	CENTRAL_DB_MIGRATIONS_TABLE   - Parsed into Config.MigrationsTable; not read by Migrate
//
// [Migrate] always reads the "migrations" directory of the embedded FS and
// records applied versions in the "schema_migrations" table.
//
// Tenant pools are not environment-configured: their connection string
// comes from the tenant_configs.dms_connection_string column, resolved at
// runtime by the tenant gateway.
//
// # Usage
//
//	pool, err := db.Open(ctx, cfg.ConnectionString,
//		db.WithMaxConns(cfg.MaxOpenConns),
//		db.WithMinConns(cfg.MinConns),
//		db.WithMigrations(migrations),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer pool.Close()
//
//	tenantPool, err := db.OpenTenantPool(ctx, tenantConnString)
//
// # Transactions
//
//	err := db.WithTx(ctx, pool, func(tx pgx.Tx) error {
//		return tx.QueryRow(ctx, "SELECT 1").Scan(&result)
//	})
//
// # Error Handling
//
// The package defines sentinel errors for common failure modes:
//
//   - [ErrFailedToParseDBConfig] - Invalid connection string format
//   - [ErrFailedToOpenDBConnection] - Connection failed after all retries
//   - [ErrHealthcheckFailed] - Database ping failed (no function in this package returns it)
//   - [ErrSetDialect] - Migration dialect configuration error
//   - [ErrApplyMigrations] - Migration execution failed
//
// Errors are wrapped using [errors.Join] to preserve the original error context.
package db
