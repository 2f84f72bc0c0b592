package repository

import (
	"errors"
	"time"

	"careconnect-server/internal/models"
)

// ErrNotFound is returned when a referenced record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrConflict is returned when a compare-and-swap update lost against a
// concurrent writer.
var ErrConflict = errors.New("concurrent modification")

// Store is the persistence boundary for all CareConnect entities. Atomic
// runs fn against a store whose mutations either all commit or all roll
// back, so each lifecycle operation is one transaction.
type Store interface {
	Atomic(fn func(Store) error) error

	CreateUser(u *models.User) error
	UserByID(id string) (*models.User, error)
	UserByEmail(email string) (*models.User, error)

	CreateRefreshToken(t *models.RefreshToken) error
	RefreshTokenByToken(token string) (*models.RefreshToken, error)
	SaveRefreshToken(t *models.RefreshToken) error

	CreatePatient(p *models.Patient) error
	PatientByID(id string) (*models.Patient, error)
	PatientByUserID(userID string) (*models.Patient, error)

	CreateCaregiver(cg *models.Caregiver) error
	CaregiverByID(id string) (*models.Caregiver, error)
	CaregiverByUserID(userID string) (*models.Caregiver, error)
	ListCaregivers() ([]models.Caregiver, error)
	AvailableCaregivers() ([]models.Caregiver, error)
	SaveCaregiver(cg *models.Caregiver) error

	CreateAppointment(a *models.Appointment) error
	AppointmentByID(id string) (*models.Appointment, error)
	AppointmentsByPatient(patientID string) ([]models.Appointment, error)
	AppointmentsByCaregiver(caregiverID string) ([]models.Appointment, error)
	AppointmentsBetween(from, to time.Time) ([]models.Appointment, error)
	// SwapAppointment persists a only if its stored version still equals
	// expectedVersion, bumping the version by one. Returns ErrConflict when
	// the row changed underneath.
	SwapAppointment(a *models.Appointment, expectedVersion int64) error

	CreateReview(r *models.Review) error
	ReviewByAppointment(appointmentID string) (*models.Review, error)
	ReviewsByCaregiver(caregiverID string) ([]models.Review, error)

	CreateLicense(doc *models.LicenseDocument) error
	LicenseByID(id string) (*models.LicenseDocument, error)
	LicensesByCaregiver(caregiverID string) ([]models.LicenseDocument, error)
}
