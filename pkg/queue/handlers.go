package queue

import (
	"context"
	"errors"
	"fmt"

	"github.com/fleetreach/commworker/pkg/central"
	"github.com/fleetreach/commworker/pkg/mailer"
	"github.com/fleetreach/commworker/pkg/sms"
	"github.com/fleetreach/commworker/pkg/tenant"
)

// SendEmailHandler delivers a send_email job via deps.EmailSender, resolving
// any storage_key attachments through deps.Attachments first.
func SendEmailHandler(ctx context.Context, job central.Job, deps Deps) (Result, error) {
	payload, err := job.DecodeEmailPayload()
	if err != nil {
		return Result{}, fmt.Errorf("queue: decode send_email payload: %w", err)
	}
	if payload.To == "" || payload.Subject == "" || payload.Body == "" {
		return Result{}, ErrMissingContact
	}

	attachments, err := resolveAttachments(ctx, deps.Attachments, payload.Attachments)
	if err != nil {
		return Result{}, err
	}

	email := &mailer.Email{
		To:          []string{payload.To},
		Subject:     payload.Subject,
		Text:        payload.Body,
		HTML:        payload.HTMLBody,
		From:        payload.From,
		CC:          payload.CC,
		BCC:         payload.BCC,
		ReplyTo:     payload.ReplyTo,
		Attachments: attachments,
	}

	if err := deps.EmailSender.Send(ctx, email); err != nil {
		return Result{}, fmt.Errorf("send email: %w", err)
	}
	return Result{}, nil
}

// SendSMSHandler delivers a send_sms job via deps.SMSSender. An empty From
// lets the tenant-resolved sender apply its own default number.
func SendSMSHandler(ctx context.Context, job central.Job, deps Deps) (Result, error) {
	payload, err := job.DecodeSMSPayload()
	if err != nil {
		return Result{}, fmt.Errorf("queue: decode send_sms payload: %w", err)
	}
	if payload.To == "" || payload.Body == "" {
		return Result{}, ErrMissingContact
	}

	msg := &sms.Message{To: payload.To, Body: payload.Body, From: payload.From}
	if err := deps.SMSSender.Send(ctx, msg); err != nil {
		return Result{}, fmt.Errorf("send sms: %w", err)
	}
	return Result{}, nil
}

// NotifyCustomerHandler resolves a customer's contact channel and delivers
// payload.Body over it. Channel resolution, in order: an authoritative
// do_not_contact preference skips the job (not an error); an explicit
// contact_preference; payload.preferred_channel; a channel derived from
// which of email/phone is on file, when exactly one is; finally
// payload.fallback_channel.
func NotifyCustomerHandler(ctx context.Context, job central.Job, deps Deps) (Result, error) {
	payload, err := job.DecodeNotifyCustomerPayload()
	if err != nil {
		return Result{}, fmt.Errorf("queue: decode notify_customer payload: %w", err)
	}
	if payload.CustomerID == "" || payload.Body == "" {
		return Result{}, ErrMissingContact
	}

	contact, err := deps.Gateway.FetchCustomerContact(ctx, deps.TenantConfig.TenantID, payload.CustomerID)
	if err != nil {
		if errors.Is(err, tenant.ErrCustomerNotFound) {
			return Result{}, ErrMissingContact
		}
		return Result{}, err
	}

	if contact.ContactPreference == tenant.PreferenceDoNotContact {
		return Result{Skipped: true, Reason: "customer opted out (do_not_contact)"}, nil
	}

	channel := resolveChannel(contact, payload)
	if channel == "" {
		return Result{}, ErrMissingContact
	}

	switch channel {
	case tenant.PreferenceSMS, tenant.PreferencePhone:
		if contact.Phone == "" {
			return Result{}, ErrMissingContact
		}
		if err := deps.SMSSender.Send(ctx, &sms.Message{To: contact.Phone, Body: payload.Body}); err != nil {
			return Result{}, fmt.Errorf("notify customer via sms: %w", err)
		}
		return Result{}, nil

	case tenant.PreferenceEmail:
		if contact.Email == "" {
			return Result{}, ErrMissingContact
		}
		subject := payload.Subject
		if subject == "" {
			subject = "Notification"
		}
		email := &mailer.Email{To: []string{contact.Email}, Subject: subject, Text: payload.Body}
		if err := deps.EmailSender.Send(ctx, email); err != nil {
			return Result{}, fmt.Errorf("notify customer via email: %w", err)
		}
		return Result{}, nil

	default:
		return Result{}, ErrMissingContact
	}
}

// resolveChannel implements notify_customer's channel resolution order,
// short-circuiting at the first non-empty candidate. The presence-derived
// step only fires when exactly one of email/phone is on file; with both (or
// neither) present it yields nothing and falls through to fallback_channel.
func resolveChannel(contact tenant.ContactInfo, payload central.NotifyCustomerPayload) string {
	if contact.ContactPreference != "" {
		return contact.ContactPreference
	}
	if payload.PreferredChannel != "" {
		return payload.PreferredChannel
	}

	hasPhone := contact.Phone != ""
	hasEmail := contact.Email != ""
	switch {
	case hasPhone && !hasEmail:
		return tenant.PreferenceSMS
	case hasEmail && !hasPhone:
		return tenant.PreferenceEmail
	}

	return payload.FallbackChannel
}

func resolveAttachments(ctx context.Context, fetcher AttachmentFetcher, atts []central.Attachment) ([]mailer.Attachment, error) {
	if len(atts) == 0 {
		return nil, nil
	}

	out := make([]mailer.Attachment, len(atts))
	for i, a := range atts {
		content := a.Bytes
		if len(content) == 0 && a.StorageKey != "" {
			if fetcher == nil {
				return nil, fmt.Errorf("queue: attachment %q has a storage_key but no AttachmentFetcher is configured", a.StorageKey)
			}
			b, err := fetcher.Fetch(ctx, a.StorageKey)
			if err != nil {
				return nil, err
			}
			content = b
		}
		out[i] = mailer.Attachment{Filename: a.Filename, ContentType: a.ContentType, Content: content}
	}
	return out, nil
}

// DefaultRegistry builds a Registry with send_email, send_sms, and
// notify_customer wired to this package's handlers. Callers that need to
// override or add a job_type can Register further after this call.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(central.JobTypeSendEmail, SendEmailHandler)
	r.Register(central.JobTypeSendSMS, SendSMSHandler)
	r.Register(central.JobTypeNotifyCustomer, NotifyCustomerHandler)
	return r
}
