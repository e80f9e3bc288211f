// Package sms defines the outbound SMS port consumed by the queue engine's
// send_sms and notify_customer handlers.
//
// [Sender] is the only symbol handlers depend on; concrete providers (see
// internal/adapter/twilio) implement it and are wired in at startup per
// tenant, keyed by [github.com/fleetreach/commworker/pkg/central.TenantConfig.SMSProvider].
package sms
