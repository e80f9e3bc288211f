package central

// TenantConfig is a tenant_configs row: provider credentials, quiet hours,
// and the tenant's DMS connection descriptor. Loaded lazily and cached
// indefinitely by pkg/tenant's config cache; there is no invalidation path
// short of a process restart (see DESIGN.md).
type TenantConfig struct {
	TenantID string

	// SMS credentials (Twilio triple). EmailProvider/SMSProvider select
	// which shipped adapter a tenant uses; only one concrete adapter ships
	// per channel today, but the discriminant keeps the port boundary real.
	TwilioSID        string
	TwilioAuthToken  string
	TwilioFromNumber string
	SMSProvider      string

	// Email credentials. SendgridKey/SendgridFrom are retained from the
	// legacy column names; ResendKey/ResendFrom are the fields the shipped
	// Resend adapter actually reads, falling back to the process-level
	// RESEND_API_KEY when empty.
	SendgridKey   string
	SendgridFrom  string
	EmailProvider string
	ResendKey     string
	ResendFrom    string

	// QuietHoursStart/End are wall-clock "HH:MM" strings, minute precision.
	// Empty or unparsable values disable the quiet-hours gate entirely.
	QuietHoursStart string
	QuietHoursEnd   string

	// DMSConnectionString targets the tenant's own operational database,
	// opened lazily by pkg/tenant via db.OpenTenantPool.
	DMSConnectionString string
}

// MessageTemplate is a message_templates row: the tenant-independent
// fallback body a TemplateRenderer consults before a bundled file template.
type MessageTemplate struct {
	EventType       string
	SubjectTemplate string
	BodyTemplate    string
}
