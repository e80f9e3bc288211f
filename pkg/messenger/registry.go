package messenger

import (
	"fmt"
	"sync"

	"github.com/fleetreach/commworker/pkg/central"
	"github.com/fleetreach/commworker/pkg/mailer"
	"github.com/fleetreach/commworker/pkg/sms"
)

// EmailCredentials is the resolved set of values an EmailFactory needs to
// build a tenant-specific sender.
type EmailCredentials struct {
	Provider  string
	APIKey    string
	FromEmail string
	FromName  string
}

// SMSCredentials is the resolved set of values an SMSFactory needs to build
// a tenant-specific sender.
type SMSCredentials struct {
	Provider   string
	AccountSID string
	AuthToken  string
	FromNumber string
}

// EmailFactory builds a mailer.Sender for one provider name (e.g. "resend").
type EmailFactory func(EmailCredentials) (mailer.Sender, error)

// SMSFactory builds an sms.Sender for one provider name (e.g. "twilio").
type SMSFactory func(SMSCredentials) (sms.Sender, error)

// Registry resolves and caches per-tenant Messenger port implementations.
// A tenant with no credential overrides gets a sender built from the
// process-default credentials on each call; a tenant with its own
// credentials gets its own instance, built once and reused for the life of
// the process.
type Registry struct {
	defaultEmail EmailCredentials
	defaultSMS   SMSCredentials
	emailFactory EmailFactory
	smsFactory   SMSFactory

	mu           sync.RWMutex
	emailSenders map[string]mailer.Sender
	smsSenders   map[string]sms.Sender
}

// New creates a Registry. defaultEmail/defaultSMS supply process-wide
// fallback credentials (from RESEND_*/TWILIO_* env vars) used whenever a
// tenant's own config fields are empty.
func New(defaultEmail EmailCredentials, defaultSMS SMSCredentials, emailFactory EmailFactory, smsFactory SMSFactory) *Registry {
	return &Registry{
		defaultEmail: defaultEmail,
		defaultSMS:   defaultSMS,
		emailFactory: emailFactory,
		smsFactory:   smsFactory,
		emailSenders: make(map[string]mailer.Sender),
		smsSenders:   make(map[string]sms.Sender),
	}
}

// EmailSender returns the mailer.Sender a tenant should use, building and
// caching a tenant-specific instance if the tenant carries its own
// credentials.
func (r *Registry) EmailSender(cfg central.TenantConfig) (mailer.Sender, error) {
	creds := r.defaultEmail
	if cfg.EmailProvider != "" {
		creds.Provider = cfg.EmailProvider
	}

	overridden := cfg.ResendKey != "" || cfg.ResendFrom != ""
	if cfg.ResendKey != "" {
		creds.APIKey = cfg.ResendKey
	}
	if cfg.ResendFrom != "" {
		creds.FromEmail = cfg.ResendFrom
	}

	if !overridden {
		return r.buildEmail(creds)
	}

	r.mu.RLock()
	cached := r.emailSenders[cfg.TenantID]
	r.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}

	sender, err := r.buildEmail(creds)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing := r.emailSenders[cfg.TenantID]; existing != nil {
		return existing, nil
	}
	r.emailSenders[cfg.TenantID] = sender
	return sender, nil
}

// SMSSender returns the sms.Sender a tenant should use, analogous to
// EmailSender.
func (r *Registry) SMSSender(cfg central.TenantConfig) (sms.Sender, error) {
	creds := r.defaultSMS
	if cfg.SMSProvider != "" {
		creds.Provider = cfg.SMSProvider
	}

	overridden := cfg.TwilioSID != "" || cfg.TwilioAuthToken != "" || cfg.TwilioFromNumber != ""
	if cfg.TwilioSID != "" {
		creds.AccountSID = cfg.TwilioSID
	}
	if cfg.TwilioAuthToken != "" {
		creds.AuthToken = cfg.TwilioAuthToken
	}
	if cfg.TwilioFromNumber != "" {
		creds.FromNumber = cfg.TwilioFromNumber
	}

	if !overridden {
		return r.buildSMS(creds)
	}

	r.mu.RLock()
	cached := r.smsSenders[cfg.TenantID]
	r.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}

	sender, err := r.buildSMS(creds)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing := r.smsSenders[cfg.TenantID]; existing != nil {
		return existing, nil
	}
	r.smsSenders[cfg.TenantID] = sender
	return sender, nil
}

func (r *Registry) buildEmail(creds EmailCredentials) (mailer.Sender, error) {
	if creds.Provider != "resend" {
		return nil, fmt.Errorf("messenger: unsupported email provider %q", creds.Provider)
	}
	return r.emailFactory(creds)
}

func (r *Registry) buildSMS(creds SMSCredentials) (sms.Sender, error) {
	if creds.Provider != "twilio" {
		return nil, fmt.Errorf("messenger: unsupported sms provider %q", creds.Provider)
	}
	return r.smsFactory(creds)
}
