// Package messenger resolves the concrete email/SMS sender a tenant uses.
//
// tenant_configs carries an email_provider/sms_provider discriminant plus
// optional per-tenant credentials (resend_key/resend_from,
// twilio_sid/twilio_auth_token/twilio_from_number). Most tenants use the
// process-wide default credentials; a tenant with its own credentials gets
// its own sender instance, built lazily on first use and cached for the
// life of the process — mirroring how pkg/tenant caches DMS connection
// pools per tenant.
package messenger
