package twilio

// Config holds Twilio SMS provider configuration.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	AccountSID string `env:"TWILIO_ACCOUNT_SID"`
	AuthToken  string `env:"TWILIO_AUTH_TOKEN"`
	FromNumber string `env:"TWILIO_FROM_NUMBER"`
}
