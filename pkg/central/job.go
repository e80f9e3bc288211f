package central

import (
	"encoding/json"
	"time"
)

// JobType names a handler in the queue engine's dispatch table.
type JobType string

const (
	JobTypeSendEmail      JobType = "send_email"
	JobTypeSendSMS        JobType = "send_sms"
	JobTypeNotifyCustomer JobType = "notify_customer"
)

// Status is a communication_jobs row's lifecycle state. A row transitions
// monotonically: pending -> processing -> {complete, failed,
// failed_fallback_email, pending (retry/defer)}. There is no transition out
// of a terminal state.
type Status string

const (
	StatusPending             Status = "pending"
	StatusProcessing          Status = "processing"
	StatusComplete            Status = "complete"
	StatusFailed              Status = "failed"
	StatusCancelled           Status = "cancelled"
	StatusFailedFallbackEmail Status = "failed_fallback_email"
)

// Job is a row of communication_jobs.
type Job struct {
	ID              int64
	TenantID        string
	JobType         JobType
	Payload         json.RawMessage
	Status          Status
	RetryCount      int
	MaxRetries      int
	LastError       *string
	ProcessAfter    time.Time
	SourceReference *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	CompletedAt     *time.Time
}

// EmailPayload is the payload shape for a send_email job.
type EmailPayload struct {
	To              string       `json:"to"`
	Subject         string       `json:"subject"`
	Body            string       `json:"body"`
	HTMLBody        string       `json:"html_body,omitempty"`
	From            string       `json:"from,omitempty"`
	CC              []string     `json:"cc,omitempty"`
	BCC             []string     `json:"bcc,omitempty"`
	ReplyTo         string       `json:"reply_to,omitempty"`
	Attachments     []Attachment `json:"attachments,omitempty"`
	CustomerID      string       `json:"customer_id,omitempty"`
	SourceReference string       `json:"source_reference,omitempty"`
	Urgent          bool         `json:"urgent,omitempty"`
	SourceJobID     int64        `json:"source_job_id,omitempty"`
}

// Attachment is one entry of EmailPayload.Attachments. Exactly one of
// StorageKey or Bytes is populated; a StorageKey entry is resolved to bytes
// by the AttachmentFetcher port before the handler calls the Messenger.
type Attachment struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	StorageKey  string `json:"storage_key,omitempty"`
	Bytes       []byte `json:"bytes,omitempty"`
}

// SMSPayload is the payload shape for a send_sms job.
type SMSPayload struct {
	To              string `json:"to"`
	Body            string `json:"body"`
	From            string `json:"from,omitempty"`
	Subject         string `json:"subject,omitempty"`
	CustomerID      string `json:"customer_id,omitempty"`
	SourceReference string `json:"source_reference,omitempty"`
	Urgent          bool   `json:"urgent,omitempty"`
}

// NotifyCustomerPayload is the payload shape for a notify_customer job.
type NotifyCustomerPayload struct {
	CustomerID       string `json:"customer_id"`
	Body             string `json:"body"`
	Subject          string `json:"subject,omitempty"`
	PreferredChannel string `json:"preferred_channel,omitempty"`
	FallbackChannel  string `json:"fallback_channel,omitempty"`
	Urgent           bool   `json:"urgent,omitempty"`
}

// IsUrgent reports whether the job's payload carries urgent: true, bypassing
// the quiet-hours gate. Malformed payloads are treated as not urgent.
func (j Job) IsUrgent() bool {
	var probe struct {
		Urgent bool `json:"urgent"`
	}
	if err := json.Unmarshal(j.Payload, &probe); err != nil {
		return false
	}
	return probe.Urgent
}

// DecodeEmailPayload parses Payload as an EmailPayload.
func (j Job) DecodeEmailPayload() (EmailPayload, error) {
	var p EmailPayload
	err := json.Unmarshal(j.Payload, &p)
	return p, err
}

// DecodeSMSPayload parses Payload as an SMSPayload.
func (j Job) DecodeSMSPayload() (SMSPayload, error) {
	var p SMSPayload
	err := json.Unmarshal(j.Payload, &p)
	return p, err
}

// DecodeNotifyCustomerPayload parses Payload as a NotifyCustomerPayload.
func (j Job) DecodeNotifyCustomerPayload() (NotifyCustomerPayload, error) {
	var p NotifyCustomerPayload
	err := json.Unmarshal(j.Payload, &p)
	return p, err
}
