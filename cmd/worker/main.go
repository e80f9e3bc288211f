// Command worker runs the communication job queue engine and the proactive
// scheduler as a single long-lived process.
package main

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/fleetreach/commworker/internal/adapter/twilio"
	"github.com/fleetreach/commworker/internal/config"
	"github.com/fleetreach/commworker/internal/supervisor"
	"github.com/fleetreach/commworker/pkg/cache"
	"github.com/fleetreach/commworker/pkg/central"
	"github.com/fleetreach/commworker/pkg/content"
	"github.com/fleetreach/commworker/pkg/db"
	"github.com/fleetreach/commworker/pkg/logger"
	"github.com/fleetreach/commworker/pkg/mailer"
	"github.com/fleetreach/commworker/pkg/mailer/resend"
	"github.com/fleetreach/commworker/pkg/messenger"
	"github.com/fleetreach/commworker/pkg/queue"
	"github.com/fleetreach/commworker/pkg/scheduler"
	"github.com/fleetreach/commworker/pkg/sms"
	"github.com/fleetreach/commworker/pkg/storage"
	"github.com/fleetreach/commworker/pkg/tenant"
)

func main() {
	if err := run(); err != nil {
		slog.Error("worker exited with error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.NewWithSentry(cfg.Sentry, logger.TenantIDExtractor, logger.JobIDExtractor)

	ctx := context.Background()

	pool, err := db.Open(ctx, cfg.CentralDB.ConnectionString,
		db.WithMigrations(central.Migrations),
		db.WithLogger(log),
		db.WithMaxConns(cfg.CentralDB.MaxOpenConns),
		db.WithMinConns(cfg.CentralDB.MinConns),
		db.WithHealthCheckPeriod(cfg.CentralDB.HealthCheckPeriod),
		db.WithMaxConnIdleTime(cfg.CentralDB.MaxConnIdleTime),
		db.WithMaxConnLifetime(cfg.CentralDB.MaxConnLifetime),
		db.WithRetry(cfg.CentralDB.RetryAttempts, cfg.CentralDB.RetryInterval),
	)
	if err != nil {
		return fmt.Errorf("open central database: %w", err)
	}

	store := central.New(pool)
	gateway := tenant.New(store, cache.NewMemory[central.TenantConfig]())

	fallbackTemplates, err := fs.Sub(content.Templates, "templates")
	if err != nil {
		return fmt.Errorf("load bundled templates: %w", err)
	}
	renderer := content.New(store, fallbackTemplates, "Notification")

	registry := messenger.New(
		messenger.EmailCredentials{
			Provider:  "resend",
			APIKey:    cfg.Resend.APIKey,
			FromEmail: cfg.Resend.SenderEmail,
			FromName:  cfg.Resend.SenderName,
		},
		messenger.SMSCredentials{
			Provider:   "twilio",
			AccountSID: cfg.Twilio.AccountSID,
			AuthToken:  cfg.Twilio.AuthToken,
			FromNumber: cfg.Twilio.FromNumber,
		},
		func(creds messenger.EmailCredentials) (mailer.Sender, error) {
			return resend.New(resend.Config{
				APIKey:      creds.APIKey,
				SenderEmail: creds.FromEmail,
				SenderName:  creds.FromName,
			}), nil
		},
		func(creds messenger.SMSCredentials) (sms.Sender, error) {
			return twilio.New(twilio.Config{
				AccountSID: creds.AccountSID,
				AuthToken:  creds.AuthToken,
				FromNumber: creds.FromNumber,
			}), nil
		},
	)

	var attachments queue.AttachmentFetcher
	if cfg.Storage.Bucket != "" {
		objectStore, err := storage.New(storage.Config{
			Bucket:    cfg.Storage.Bucket,
			Region:    cfg.Storage.Region,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			Endpoint:  cfg.Storage.Endpoint,
		})
		if err != nil {
			return fmt.Errorf("open attachment storage: %w", err)
		}
		attachments = queue.NewStorageAttachmentFetcher(objectStore)
	}

	depsFactory := func(tc central.TenantConfig) (queue.Deps, error) {
		emailSender, err := registry.EmailSender(tc)
		if err != nil {
			return queue.Deps{}, err
		}
		smsSender, err := registry.SMSSender(tc)
		if err != nil {
			return queue.Deps{}, err
		}
		return queue.Deps{
			TenantConfig: tc,
			Gateway:      gateway,
			EmailSender:  emailSender,
			SMSSender:    smsSender,
			Attachments:  attachments,
			Logger:       log,
		}, nil
	}

	engine := queue.New(store, gateway, queue.DefaultRegistry(), depsFactory,
		queue.WithPollInterval(cfg.Queue.PollInterval),
		queue.WithMaxConcurrentJobs(cfg.Queue.MaxConcurrentJobs),
		queue.WithRetryDelay(cfg.Queue.RetryDelay),
		queue.WithMaxRetries(cfg.Queue.MaxRetries),
		queue.WithLogger(log),
	)

	sched := scheduler.New(store, gateway, renderer,
		scheduler.WithServiceReminderHourUTC(cfg.Scheduler.ServiceReminderHourUTC),
		scheduler.WithInvoiceReminderHourUTC(cfg.Scheduler.InvoiceReminderHourUTC),
		scheduler.WithAppointmentConfirmationInterval(cfg.Scheduler.AppointmentInterval),
		scheduler.WithStuckJobCheckInterval(cfg.Scheduler.StuckJobCheckInterval),
		scheduler.WithStuckJobVisibilityWindow(cfg.Scheduler.StuckJobVisibilityWindow),
		scheduler.WithLogger(log),
	)

	sup := supervisor.New(
		[]supervisor.Component{engine, sched},
		supervisor.WithLogger(log),
		supervisor.WithShutdownTimeout(cfg.ShutdownTimeout),
		supervisor.WithShutdownHook(func(context.Context) error {
			pool.Close()
			return nil
		}),
	)

	return sup.Run()
}
