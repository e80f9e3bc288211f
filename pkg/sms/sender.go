package sms

import "context"

// Message is a fully-prepared SMS message ready for sending.
type Message struct {
	To   string // E.164 recipient number
	Body string
	From string // override default sender number, if the provider allows
}

// Sender defines the minimal interface SMS providers must implement. It
// mirrors pkg/mailer.Sender so the queue engine's send_sms and
// notify_customer handlers depend on the same shape of port regardless of
// channel.
type Sender interface {
	// Send delivers an SMS message.
	Send(ctx context.Context, msg *Message) error
}
