package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"careconnect-server/internal/models"
)

// GormStore implements Store on top of a gorm database handle.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GormStore.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Atomic runs fn inside a database transaction.
func (s *GormStore) Atomic(fn func(Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *GormStore) CreateUser(u *models.User) error {
	return s.db.Create(u).Error
}

func (s *GormStore) UserByID(id string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *GormStore) UserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "email = ?", email).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *GormStore) CreateRefreshToken(t *models.RefreshToken) error {
	return s.db.Create(t).Error
}

func (s *GormStore) RefreshTokenByToken(token string) (*models.RefreshToken, error) {
	var stored models.RefreshToken
	err := s.db.Where("token = ? AND is_revoked = ? AND expires_at > ?", token, false, time.Now()).
		First(&stored).Error
	if err != nil {
		return nil, translate(err)
	}
	return &stored, nil
}

func (s *GormStore) SaveRefreshToken(t *models.RefreshToken) error {
	return s.db.Save(t).Error
}

func (s *GormStore) CreatePatient(p *models.Patient) error {
	return s.db.Create(p).Error
}

func (s *GormStore) PatientByID(id string) (*models.Patient, error) {
	var patient models.Patient
	if err := s.db.First(&patient, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &patient, nil
}

func (s *GormStore) PatientByUserID(userID string) (*models.Patient, error) {
	var patient models.Patient
	if err := s.db.First(&patient, "user_id = ?", userID).Error; err != nil {
		return nil, translate(err)
	}
	return &patient, nil
}

func (s *GormStore) CreateCaregiver(cg *models.Caregiver) error {
	return s.db.Create(cg).Error
}

func (s *GormStore) CaregiverByID(id string) (*models.Caregiver, error) {
	var caregiver models.Caregiver
	if err := s.db.First(&caregiver, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &caregiver, nil
}

func (s *GormStore) CaregiverByUserID(userID string) (*models.Caregiver, error) {
	var caregiver models.Caregiver
	if err := s.db.First(&caregiver, "user_id = ?", userID).Error; err != nil {
		return nil, translate(err)
	}
	return &caregiver, nil
}

func (s *GormStore) ListCaregivers() ([]models.Caregiver, error) {
	var caregivers []models.Caregiver
	if err := s.db.Order("created_at asc").Find(&caregivers).Error; err != nil {
		return nil, err
	}
	return caregivers, nil
}

func (s *GormStore) AvailableCaregivers() ([]models.Caregiver, error) {
	var caregivers []models.Caregiver
	if err := s.db.Where("available = ?", true).Order("created_at asc").Find(&caregivers).Error; err != nil {
		return nil, err
	}
	return caregivers, nil
}

func (s *GormStore) SaveCaregiver(cg *models.Caregiver) error {
	return s.db.Save(cg).Error
}

func (s *GormStore) CreateAppointment(a *models.Appointment) error {
	return s.db.Create(a).Error
}

func (s *GormStore) AppointmentByID(id string) (*models.Appointment, error) {
	var appointment models.Appointment
	if err := s.db.First(&appointment, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &appointment, nil
}

func (s *GormStore) AppointmentsByPatient(patientID string) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := s.db.Where("patient_id = ?", patientID).Order("date_time asc").Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (s *GormStore) AppointmentsByCaregiver(caregiverID string) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := s.db.Where("caregiver_id = ?", caregiverID).Order("date_time asc").Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (s *GormStore) AppointmentsBetween(from, to time.Time) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := s.db.Where("date_time >= ? AND date_time < ?", from, to).
		Order("date_time asc").Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

// SwapAppointment is the optimistic guard for state transitions: the update
// only lands when the stored version still matches expectedVersion.
func (s *GormStore) SwapAppointment(a *models.Appointment, expectedVersion int64) error {
	a.Version = expectedVersion + 1
	res := s.db.Model(&models.Appointment{}).
		Where("id = ? AND version = ?", a.ID, expectedVersion).
		Select("caregiver_id", "date_time", "duration_minutes", "location",
			"care_requirements", "feedback", "payment_status", "status",
			"cancelled_at", "version").
		Updates(a)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrConflict
	}
	return nil
}

func (s *GormStore) CreateReview(r *models.Review) error {
	return s.db.Create(r).Error
}

func (s *GormStore) ReviewByAppointment(appointmentID string) (*models.Review, error) {
	var review models.Review
	if err := s.db.First(&review, "appointment_id = ?", appointmentID).Error; err != nil {
		return nil, translate(err)
	}
	return &review, nil
}

func (s *GormStore) ReviewsByCaregiver(caregiverID string) ([]models.Review, error) {
	var reviews []models.Review
	err := s.db.Where("caregiver_id = ?", caregiverID).Order("created_at desc").Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (s *GormStore) CreateLicense(doc *models.LicenseDocument) error {
	return s.db.Create(doc).Error
}

func (s *GormStore) LicenseByID(id string) (*models.LicenseDocument, error) {
	var doc models.LicenseDocument
	if err := s.db.First(&doc, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &doc, nil
}

func (s *GormStore) LicensesByCaregiver(caregiverID string) ([]models.LicenseDocument, error) {
	var docs []models.LicenseDocument
	err := s.db.Where("caregiver_id = ?", caregiverID).Order("created_at desc").Find(&docs).Error
	if err != nil {
		return nil, err
	}
	return docs, nil
}
