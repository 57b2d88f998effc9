package worker

// reminder_cron.go
// Background goroutine that periodically finds invoices past their due
// date with an outstanding balance and enqueues one payment-reminder
// email per invoice. Each invoice is reminded at most once; the
// circuit breaker gates the tick so a downed SMTP relay is not flooded
// with jobs that would only pile up in the DLQ.

import (
	"context"
	"fmt"
	"time"

	"github.com/vamkorsales/DoctorCRM-for-Clinics-sub000/internal/country"
	"github.com/vamkorsales/DoctorCRM-for-Clinics-sub000/internal/infra"
	"github.com/vamkorsales/DoctorCRM-for-Clinics-sub000/internal/repository"

	"github.com/rs/zerolog/log"
)

const (
	reminderTickInterval = 1 * time.Hour
	reminderBatchSize    = 25
)

// ReminderCronConfig holds all dependencies for the reminder goroutine.
type ReminderCronConfig struct {
	InvoiceRepo repository.InvoiceRepository
	Dispatcher  *Dispatcher
	CB          *infra.CircuitBreaker
	ClinicName  string
	Loc         country.Settings
}

// StartReminderCron launches a background goroutine that ticks hourly,
// queries overdue invoices not yet reminded, and enqueues reminder
// emails. It respects the context for graceful shutdown.
func StartReminderCron(ctx context.Context, cfg ReminderCronConfig) {
	go func() {
		ticker := time.NewTicker(reminderTickInterval)
		defer ticker.Stop()

		log.Info().Msg("reminder_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("reminder_cron: shutting down")
				return
			case <-ticker.C:
				processReminders(ctx, cfg)
			}
		}
	}()
}

func processReminders(ctx context.Context, cfg ReminderCronConfig) {
	// If the SMTP breaker is open, skip the whole tick
	if cfg.CB.State() == infra.CBOpen {
		log.Debug().Msg("reminder_cron: circuit breaker is open, skipping tick")
		return
	}

	now := time.Now()
	invoices, err := cfg.InvoiceRepo.ListDueForReminder(ctx, now, reminderBatchSize)
	if err != nil {
		log.Error().Err(err).Msg("reminder_cron: failed to query overdue invoices")
		return
	}
	if len(invoices) == 0 {
		return
	}

	log.Info().Int("count", len(invoices)).Msg("reminder_cron: processing overdue invoices")

	for i := range invoices {
		inv := &invoices[i]

		if inv.Patient == nil || inv.Patient.Email == nil || *inv.Patient.Email == "" {
			// Nothing to send to — mark as reminded so the invoice does
			// not reappear on every tick.
			log.Warn().Str("invoice", inv.Number).Msg("reminder_cron: patient has no email, skipping")
			_ = cfg.InvoiceRepo.SetReminderSent(ctx, inv.ID, now)
			continue
		}

		emailJob := EmailJobPayload{
			ToEmail: *inv.Patient.Email,
			Subject: fmt.Sprintf("%s — Payment reminder for invoice %s", cfg.ClinicName, inv.Number),
			Body: fmt.Sprintf(
				"Dear %s,\n\nThis is a friendly reminder that invoice %s for %s%s was due on %s. "+
					"The outstanding balance is %s%s.\n\nIf you have already arranged payment, please disregard this message.\n\nKind regards,\n%s",
				inv.Patient.FirstName, inv.Number,
				cfg.Loc.CurrencySymbol, inv.Total.StringFixed(2),
				inv.DueDate.Format(cfg.Loc.DateFormat),
				cfg.Loc.CurrencySymbol, inv.Balance.StringFixed(2),
				cfg.ClinicName,
			),
		}
		if err := cfg.Dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
			log.Error().Err(err).Str("invoice", inv.Number).Msg("reminder_cron: failed to enqueue reminder")
			continue
		}
		if err := cfg.InvoiceRepo.SetReminderSent(ctx, inv.ID, now); err != nil {
			log.Error().Err(err).Str("invoice", inv.Number).Msg("reminder_cron: failed to mark reminder sent")
			continue
		}
		log.Info().Str("invoice", inv.Number).Str("to", emailJob.ToEmail).Msg("reminder_cron: reminder enqueued")
	}
}
