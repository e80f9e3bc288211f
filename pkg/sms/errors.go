package sms

import "errors"

var (
	// ErrNoRecipient indicates no recipient number was specified.
	ErrNoRecipient = errors.New("sms: message must have a recipient")

	// ErrNoBody indicates no body text was provided.
	ErrNoBody = errors.New("sms: message must have a body")

	// ErrSendFailed indicates the provider rejected or failed to deliver the message.
	ErrSendFailed = errors.New("sms: failed to send message")
)
