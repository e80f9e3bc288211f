package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fleetreach/commworker/pkg/central"
)

type serviceReminderVars struct {
	CustomerName    string
	EquipmentModel  string
	EquipmentSerial string
	DealerName      string
}

type appointmentConfirmationVars struct {
	CustomerName   string
	ScheduledStart string
}

type invoiceReminderVars struct {
	CustomerName string
	InvoiceID    string
	Balance      string
	DueDate      string
	DaysPastDue  int
	DealerName   string
}

// sweepServiceReminders enqueues a send_email job for every service-reminder
// candidate across every tenant, deduped on
// "service_reminder_{tenant}_{customer_id}".
func (s *Scheduler) sweepServiceReminders(ctx context.Context) error {
	tenants, err := s.store.ListTenants(ctx)
	if err != nil {
		return fmt.Errorf("list tenants: %w", err)
	}

	for _, t := range tenants {
		if err := s.sweepServiceRemindersForTenant(ctx, t.TenantID); err != nil {
			s.opts.logger.Error("service reminder sweep failed for tenant",
				slog.String("tenant_id", t.TenantID), slog.Any("error", err))
		}
	}
	return nil
}

func (s *Scheduler) sweepServiceRemindersForTenant(ctx context.Context, tenantID string) error {
	candidates, err := s.gateway.ServiceReminderCandidates(ctx, tenantID)
	if err != nil {
		return err
	}

	for _, c := range candidates {
		rendered, err := s.renderer.Render(ctx, "service_reminder", serviceReminderVars{
			CustomerName:    c.CustomerName,
			EquipmentModel:  c.EquipmentModel,
			EquipmentSerial: c.EquipmentSerial,
			DealerName:      tenantID,
		})
		if err != nil {
			s.opts.logger.Error("render service_reminder failed",
				slog.String("tenant_id", tenantID), slog.String("customer_id", c.CustomerID), slog.Any("error", err))
			continue
		}

		sourceRef := fmt.Sprintf("service_reminder_%s_%s", tenantID, c.CustomerID)
		if _, _, err := s.store.InsertJob(ctx, central.InsertJobParams{
			TenantID: tenantID,
			JobType:  central.JobTypeSendEmail,
			Payload: central.EmailPayload{
				To:              c.CustomerEmail,
				Subject:         rendered.Subject,
				Body:            rendered.Body,
				HTMLBody:        rendered.HTMLBody,
				CustomerID:      c.CustomerID,
				SourceReference: sourceRef,
			},
			SourceReference: sourceRef,
		}); err != nil {
			s.opts.logger.Error("enqueue service reminder failed",
				slog.String("tenant_id", tenantID), slog.String("customer_id", c.CustomerID), slog.Any("error", err))
		}
	}
	return nil
}

// sweepAppointmentConfirmations enqueues a send_sms job for every
// appointment in the confirmation window across every tenant, deduped on
// "appointment_{tenant}_{appointment_id}".
func (s *Scheduler) sweepAppointmentConfirmations(ctx context.Context) error {
	tenants, err := s.store.ListTenants(ctx)
	if err != nil {
		return fmt.Errorf("list tenants: %w", err)
	}

	for _, t := range tenants {
		if err := s.sweepAppointmentConfirmationsForTenant(ctx, t.TenantID); err != nil {
			s.opts.logger.Error("appointment confirmation sweep failed for tenant",
				slog.String("tenant_id", t.TenantID), slog.Any("error", err))
		}
	}
	return nil
}

func (s *Scheduler) sweepAppointmentConfirmationsForTenant(ctx context.Context, tenantID string) error {
	candidates, err := s.gateway.AppointmentsInConfirmationWindow(ctx, tenantID)
	if err != nil {
		return err
	}

	for _, c := range candidates {
		rendered, err := s.renderer.Render(ctx, "appointment_confirmation", appointmentConfirmationVars{
			CustomerName:   c.CustomerName,
			ScheduledStart: c.ScheduledStart.Format("Jan 2 3:04 PM"),
		})
		if err != nil {
			s.opts.logger.Error("render appointment_confirmation failed",
				slog.String("tenant_id", tenantID), slog.String("appointment_id", c.AppointmentID), slog.Any("error", err))
			continue
		}

		sourceRef := fmt.Sprintf("appointment_%s_%s", tenantID, c.AppointmentID)
		if _, _, err := s.store.InsertJob(ctx, central.InsertJobParams{
			TenantID: tenantID,
			JobType:  central.JobTypeSendSMS,
			Payload: central.SMSPayload{
				To:              c.CustomerPhone,
				Body:            rendered.Body,
				CustomerID:      c.CustomerID,
				SourceReference: sourceRef,
			},
			SourceReference: sourceRef,
		}); err != nil {
			s.opts.logger.Error("enqueue appointment confirmation failed",
				slog.String("tenant_id", tenantID), slog.String("appointment_id", c.AppointmentID), slog.Any("error", err))
		}
	}
	return nil
}

// sweepInvoiceReminders enqueues a send_email job for every past-due invoice
// across every tenant, deduped on "invoice_{tenant}_{invoice_id}".
func (s *Scheduler) sweepInvoiceReminders(ctx context.Context) error {
	tenants, err := s.store.ListTenants(ctx)
	if err != nil {
		return fmt.Errorf("list tenants: %w", err)
	}

	for _, t := range tenants {
		if err := s.sweepInvoiceRemindersForTenant(ctx, t.TenantID); err != nil {
			s.opts.logger.Error("invoice reminder sweep failed for tenant",
				slog.String("tenant_id", t.TenantID), slog.Any("error", err))
		}
	}
	return nil
}

func (s *Scheduler) sweepInvoiceRemindersForTenant(ctx context.Context, tenantID string) error {
	candidates, err := s.gateway.PastDueInvoices(ctx, tenantID)
	if err != nil {
		return err
	}

	for _, c := range candidates {
		daysPastDue := int(time.Since(c.DueDate).Hours() / 24)
		rendered, err := s.renderer.Render(ctx, "invoice_reminder", invoiceReminderVars{
			CustomerName: c.CustomerName,
			InvoiceID:    c.InvoiceID,
			Balance:      fmt.Sprintf("%.2f", c.Balance),
			DueDate:      c.DueDate.Format("Jan 2, 2006"),
			DaysPastDue:  daysPastDue,
			DealerName:   tenantID,
		})
		if err != nil {
			s.opts.logger.Error("render invoice_reminder failed",
				slog.String("tenant_id", tenantID), slog.String("invoice_id", c.InvoiceID), slog.Any("error", err))
			continue
		}

		sourceRef := fmt.Sprintf("invoice_%s_%s", tenantID, c.InvoiceID)
		if _, _, err := s.store.InsertJob(ctx, central.InsertJobParams{
			TenantID: tenantID,
			JobType:  central.JobTypeSendEmail,
			Payload: central.EmailPayload{
				To:              c.CustomerEmail,
				Subject:         rendered.Subject,
				Body:            rendered.Body,
				HTMLBody:        rendered.HTMLBody,
				CustomerID:      c.CustomerID,
				SourceReference: sourceRef,
			},
			SourceReference: sourceRef,
		}); err != nil {
			s.opts.logger.Error("enqueue invoice reminder failed",
				slog.String("tenant_id", tenantID), slog.String("invoice_id", c.InvoiceID), slog.Any("error", err))
		}
	}
	return nil
}

// reclaimStuckJobs returns processing rows whose updated_at is older than
// the configured visibility window back to pending, recovering jobs left
// behind by a worker that crashed mid-handler.
func (s *Scheduler) reclaimStuckJobs(ctx context.Context) error {
	n, err := s.store.ReclaimStuckJobs(ctx, s.opts.stuckJobVisibilityWindow)
	if err != nil {
		return fmt.Errorf("reclaim stuck jobs: %w", err)
	}
	if n > 0 {
		s.opts.logger.Warn("reclaimed stuck jobs", slog.Int64("count", n))
	}
	return nil
}
