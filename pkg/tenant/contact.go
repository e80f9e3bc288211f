package tenant

import "time"

// Contact preference values. do_not_contact is authoritative: callers must
// treat it as an unconditional suppression regardless of payload hints.
const (
	PreferenceEmail        = "email"
	PreferenceSMS          = "sms"
	PreferencePhone        = "phone"
	PreferenceDoNotContact = "do_not_contact"
)

// ContactInfo is what the queue engine's notify_customer handler and the
// SMS→email fallback path need to know about a DMS customer.
type ContactInfo struct {
	Email             string
	Phone             string
	ContactPreference string // one of the Preference* constants, or "" if unset
	DoNotDisturbUntil *time.Time
}
