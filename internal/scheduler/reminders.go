package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"careconnect-server/internal/repository"
)

// Reminders runs a daily cron job that logs the appointments scheduled
// for the next 24 hours. There is no outbound channel for notifications,
// so the log line is the reminder.
type Reminders struct {
	store  repository.Store
	logger *logrus.Logger
	cron   *cron.Cron
}

// NewReminders creates a new Reminders scheduler.
func NewReminders(store repository.Store, logger *logrus.Logger) *Reminders {
	return &Reminders{store: store, logger: logger, cron: cron.New()}
}

// Start schedules the reminder job with the given cron spec and starts
// the scheduler in the background.
func (r *Reminders) Start(spec string) error {
	if _, err := r.cron.AddFunc(spec, r.Run); err != nil {
		return err
	}
	r.cron.Start()
	return nil
}

// Stop stops the scheduler.
func (r *Reminders) Stop() {
	r.cron.Stop()
}

// Run logs every open appointment starting within the next 24 hours.
func (r *Reminders) Run() {
	now := time.Now()
	appointments, err := r.store.AppointmentsBetween(now, now.Add(24*time.Hour))
	if err != nil {
		r.logger.WithError(err).Error("reminder sweep failed")
		return
	}

	for _, a := range appointments {
		if a.Terminal() {
			continue
		}
		r.logger.WithFields(logrus.Fields{
			"appointmentId": a.ID,
			"patientId":     a.PatientID,
			"caregiverId":   a.CaregiverID,
			"dateTime":      a.DateTime.Format(time.RFC3339),
			"status":        string(a.Status),
			"paymentStatus": string(a.PaymentStatus),
		}).Info("upcoming appointment reminder")
	}

	r.logger.WithField("count", len(appointments)).Info("reminder sweep done")
}
