package service

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"careconnect-server/internal/models"
	"careconnect-server/internal/repository"
)

// Accepted layouts for the date_time form field. The first matches HTML
// datetime-local inputs.
var dateTimeLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	time.RFC3339,
}

// ParseDateTime parses a booking timestamp from its form encoding.
func ParseDateTime(value string) (time.Time, error) {
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: date_time %q is not a valid timestamp", ErrValidation, value)
}

// BookParams carries the validated booking form fields.
type BookParams struct {
	PatientID        string
	CaregiverID      string
	DateTime         string
	DurationMinutes  int
	Location         string
	CareRequirements string
}

// RescheduleParams carries the reschedule form fields.
type RescheduleParams struct {
	DateTime        string
	DurationMinutes int
	Location        string
	Notes           string
}

// AppointmentService owns the appointment lifecycle:
//
//	scheduled -> dispatched -> completed
//
// with cancelled reachable from scheduled or dispatched. Every operation
// runs in a single transaction and guards its transition through the
// appointment's version column, so two concurrent dispatches cannot both
// succeed.
type AppointmentService struct {
	store    repository.Store
	payments PaymentGateway
	policy   SelectionPolicy
	logger   *logrus.Logger
}

// NewAppointmentService creates a new AppointmentService.
func NewAppointmentService(store repository.Store, payments PaymentGateway, policy SelectionPolicy, logger *logrus.Logger) *AppointmentService {
	return &AppointmentService{store: store, payments: payments, policy: policy, logger: logger}
}

// Book persists a new appointment in the scheduled, unpaid state.
func (s *AppointmentService) Book(p BookParams) (*models.Appointment, error) {
	when, err := ParseDateTime(p.DateTime)
	if err != nil {
		return nil, err
	}
	if p.DurationMinutes <= 0 {
		return nil, fmt.Errorf("%w: duration must be greater than zero", ErrValidation)
	}
	if p.Location == "" {
		return nil, fmt.Errorf("%w: location is required", ErrValidation)
	}

	var appointment *models.Appointment
	err = s.store.Atomic(func(tx repository.Store) error {
		if _, err := tx.PatientByID(p.PatientID); err != nil {
			return asNotFound(err, "patient", p.PatientID)
		}
		if _, err := tx.CaregiverByID(p.CaregiverID); err != nil {
			return asNotFound(err, "caregiver", p.CaregiverID)
		}

		a := &models.Appointment{
			PatientID:        p.PatientID,
			CaregiverID:      p.CaregiverID,
			DateTime:         when,
			DurationMinutes:  p.DurationMinutes,
			Location:         p.Location,
			CareRequirements: p.CareRequirements,
			Status:           models.StatusScheduled,
			PaymentStatus:    models.PaymentUnpaid,
		}
		if err := tx.CreateAppointment(a); err != nil {
			return err
		}
		appointment = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"appointmentId": appointment.ID,
		"patientId":     p.PatientID,
		"caregiverId":   p.CaregiverID,
	}).Info("appointment booked")
	return appointment, nil
}

// ConfirmPayment charges the mocked gateway and marks the appointment
// paid. Confirming an already-paid appointment is a no-op.
func (s *AppointmentService) ConfirmPayment(appointmentID string) (*models.Appointment, error) {
	var appointment *models.Appointment
	err := s.store.Atomic(func(tx repository.Store) error {
		a, err := tx.AppointmentByID(appointmentID)
		if err != nil {
			return asNotFound(err, "appointment", appointmentID)
		}
		if a.Status == models.StatusCancelled {
			return fmt.Errorf("cannot pay a cancelled appointment: %w", ErrInvalidTransition)
		}
		if a.PaymentStatus == models.PaymentPaid {
			appointment = a
			return nil
		}

		if err := s.payments.Charge(a); err != nil {
			return err
		}
		a.PaymentStatus = models.PaymentPaid
		if err := tx.SwapAppointment(a, a.Version); err != nil {
			return asConflict(err)
		}
		appointment = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithField("appointmentId", appointmentID).Info("payment confirmed")
	return appointment, nil
}

// Dispatch assigns an available caregiver, chosen by the selection policy,
// and moves the appointment to the dispatched state. When no caregiver is
// available the appointment is left untouched and ErrNoCaregiverAvailable
// is returned.
func (s *AppointmentService) Dispatch(appointmentID string) (*models.Appointment, error) {
	var appointment *models.Appointment
	var assigned *models.Caregiver
	err := s.store.Atomic(func(tx repository.Store) error {
		a, err := tx.AppointmentByID(appointmentID)
		if err != nil {
			return asNotFound(err, "appointment", appointmentID)
		}
		if a.Status != models.StatusScheduled {
			return fmt.Errorf("dispatch requires a scheduled appointment, got %s: %w", a.Status, ErrInvalidTransition)
		}

		candidates, err := tx.AvailableCaregivers()
		if err != nil {
			return err
		}
		chosen := s.policy.Select(candidates)
		if chosen == nil {
			return ErrNoCaregiverAvailable
		}

		a.CaregiverID = chosen.ID
		a.Status = models.StatusDispatched
		if err := tx.SwapAppointment(a, a.Version); err != nil {
			return asConflict(err)
		}

		now := time.Now()
		chosen.LastAssignedAt = &now
		if err := tx.SaveCaregiver(chosen); err != nil {
			return err
		}

		appointment = a
		assigned = chosen
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"appointmentId": appointmentID,
		"caregiverId":   assigned.ID,
	}).Info("caregiver dispatched")
	return appointment, nil
}

// Complete closes a dispatched appointment with the patient's feedback and
// records exactly one review for the assigned caregiver.
func (s *AppointmentService) Complete(appointmentID, feedback string, rating int, comments string) (*models.Appointment, *models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}

	var appointment *models.Appointment
	var review *models.Review
	err := s.store.Atomic(func(tx repository.Store) error {
		a, err := tx.AppointmentByID(appointmentID)
		if err != nil {
			return asNotFound(err, "appointment", appointmentID)
		}
		if a.Status != models.StatusDispatched {
			return fmt.Errorf("complete requires a dispatched appointment, got %s: %w", a.Status, ErrInvalidTransition)
		}

		a.Status = models.StatusCompleted
		a.Feedback = feedback
		if err := tx.SwapAppointment(a, a.Version); err != nil {
			return asConflict(err)
		}

		r := &models.Review{
			AppointmentID: a.ID,
			PatientID:     a.PatientID,
			CaregiverID:   a.CaregiverID,
			Rating:        rating,
			Comments:      comments,
		}
		if err := tx.CreateReview(r); err != nil {
			return err
		}

		appointment = a
		review = r
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"appointmentId": appointmentID,
		"rating":        rating,
	}).Info("appointment completed")
	return appointment, review, nil
}

// Cancel marks the appointment cancelled. The row is kept so reviews and
// history stay intact. Completed or already-cancelled appointments cannot
// be cancelled.
func (s *AppointmentService) Cancel(appointmentID string) error {
	err := s.store.Atomic(func(tx repository.Store) error {
		a, err := tx.AppointmentByID(appointmentID)
		if err != nil {
			return asNotFound(err, "appointment", appointmentID)
		}
		if a.Terminal() {
			return fmt.Errorf("cannot cancel a %s appointment: %w", a.Status, ErrInvalidTransition)
		}

		now := time.Now()
		a.Status = models.StatusCancelled
		a.CancelledAt = &now
		if err := tx.SwapAppointment(a, a.Version); err != nil {
			return asConflict(err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.WithField("appointmentId", appointmentID).Info("appointment cancelled")
	return nil
}

// Reschedule moves an open appointment to a new time slot. A dispatched
// appointment drops back to scheduled and has to be dispatched again.
func (s *AppointmentService) Reschedule(appointmentID string, p RescheduleParams) (*models.Appointment, error) {
	when, err := ParseDateTime(p.DateTime)
	if err != nil {
		return nil, err
	}
	if p.DurationMinutes <= 0 {
		return nil, fmt.Errorf("%w: duration must be greater than zero", ErrValidation)
	}

	var appointment *models.Appointment
	err = s.store.Atomic(func(tx repository.Store) error {
		a, err := tx.AppointmentByID(appointmentID)
		if err != nil {
			return asNotFound(err, "appointment", appointmentID)
		}
		if a.Terminal() {
			return fmt.Errorf("cannot reschedule a %s appointment: %w", a.Status, ErrInvalidTransition)
		}

		a.DateTime = when
		a.DurationMinutes = p.DurationMinutes
		if p.Location != "" {
			a.Location = p.Location
		}
		if p.Notes != "" {
			a.CareRequirements = p.Notes
		}
		a.Status = models.StatusScheduled
		if err := tx.SwapAppointment(a, a.Version); err != nil {
			return asConflict(err)
		}
		appointment = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithField("appointmentId", appointmentID).Info("appointment rescheduled")
	return appointment, nil
}

// ByID fetches one appointment.
func (s *AppointmentService) ByID(appointmentID string) (*models.Appointment, error) {
	a, err := s.store.AppointmentByID(appointmentID)
	if err != nil {
		return nil, asNotFound(err, "appointment", appointmentID)
	}
	return a, nil
}

// ForPatient lists a patient's appointments ordered by date.
func (s *AppointmentService) ForPatient(patientID string) ([]models.Appointment, error) {
	return s.store.AppointmentsByPatient(patientID)
}

// ForCaregiver lists a caregiver's appointments ordered by date.
func (s *AppointmentService) ForCaregiver(caregiverID string) ([]models.Appointment, error) {
	return s.store.AppointmentsByCaregiver(caregiverID)
}

// ReviewsForCaregiver lists the reviews left for a caregiver, newest first.
func (s *AppointmentService) ReviewsForCaregiver(caregiverID string) ([]models.Review, error) {
	if _, err := s.store.CaregiverByID(caregiverID); err != nil {
		return nil, asNotFound(err, "caregiver", caregiverID)
	}
	return s.store.ReviewsByCaregiver(caregiverID)
}
