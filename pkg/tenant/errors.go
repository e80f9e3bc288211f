package tenant

import "errors"

var (
	// ErrUnknownTenant is returned by GetTenantConfig/GetTenantPool when no
	// tenant_configs row exists for the requested tenant.
	ErrUnknownTenant = errors.New("tenant: unknown tenant")

	// ErrNoDMSConnection is returned by GetTenantPool when a tenant's config
	// carries no DMS connection string.
	ErrNoDMSConnection = errors.New("tenant: tenant has no DMS connection configured")

	// ErrCustomerNotFound is returned by FetchCustomerContact when the
	// customer_id does not exist in the tenant's DMS.
	ErrCustomerNotFound = errors.New("tenant: customer not found")
)
