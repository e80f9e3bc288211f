package twilio

import (
	"context"
	"fmt"

	twilioapi "github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/fleetreach/commworker/pkg/sms"
)

// Sender implements sms.Sender using the Twilio Messages API.
type Sender struct {
	client *twilioapi.RestClient
	config Config
}

// New creates a new Twilio sender.
func New(cfg Config) *Sender {
	client := twilioapi.NewRestClientWithParams(twilioapi.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	return &Sender{client: client, config: cfg}
}

// Send implements sms.Sender.
func (s *Sender) Send(ctx context.Context, msg *sms.Message) error {
	if msg.To == "" {
		return sms.ErrNoRecipient
	}
	if msg.Body == "" {
		return sms.ErrNoBody
	}

	from := msg.From
	if from == "" {
		from = s.config.FromNumber
	}

	params := &openapi.CreateMessageParams{}
	params.SetTo(msg.To)
	params.SetFrom(from)
	params.SetBody(msg.Body)

	if _, err := s.client.Api.CreateMessageWithContext(ctx, params); err != nil {
		return fmt.Errorf("%w: %w", sms.ErrSendFailed, err)
	}
	return nil
}
