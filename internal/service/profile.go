package service

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"careconnect-server/internal/models"
	"careconnect-server/internal/repository"
)

// PatientParams carries the patient registration form fields.
type PatientParams struct {
	Name        string
	PhoneNumber string
	Sex         string
	Condition   string
	Location    string
	CareNeeded  string
	Preferences string
}

// CaregiverParams carries the caregiver registration form fields.
type CaregiverParams struct {
	Name            string
	PhoneNumber     string
	Sex             string
	Location        string
	Qualification   string
	Experience      string
	ServicesOffered string
}

// LicenseUpload carries an uploaded license file.
type LicenseUpload struct {
	FileName string
	FileType string
	Data     []byte
}

// ProfileService creates and maintains the role profiles hanging off a
// user account.
type ProfileService struct {
	store    repository.Store
	verifier LicenseVerifier
	logger   *logrus.Logger
}

// NewProfileService creates a new ProfileService.
func NewProfileService(store repository.Store, verifier LicenseVerifier, logger *logrus.Logger) *ProfileService {
	return &ProfileService{store: store, verifier: verifier, logger: logger}
}

// RegisterPatient creates the patient profile for a user with the patient
// role. Each user gets at most one profile.
func (s *ProfileService) RegisterPatient(userID string, p PatientParams) (*models.Patient, error) {
	var patient *models.Patient
	err := s.store.Atomic(func(tx repository.Store) error {
		user, err := tx.UserByID(userID)
		if err != nil {
			return asNotFound(err, "user", userID)
		}
		if user.Role != models.RolePatient {
			return fmt.Errorf("%w: user role is %s, not patient", ErrValidation, user.Role)
		}
		if _, err := tx.PatientByUserID(userID); err == nil {
			return fmt.Errorf("%w: patient profile already exists", ErrValidation)
		} else if !errors.Is(err, repository.ErrNotFound) {
			return err
		}

		patient = &models.Patient{
			UserID:      userID,
			Name:        p.Name,
			PhoneNumber: p.PhoneNumber,
			Sex:         p.Sex,
			Condition:   p.Condition,
			Location:    p.Location,
			CareNeeded:  p.CareNeeded,
			Preferences: p.Preferences,
		}
		return tx.CreatePatient(patient)
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithField("patientId", patient.ID).Info("patient registered")
	return patient, nil
}

// RegisterCaregiver creates the caregiver profile for a user with the
// caregiver role. A license document may be attached; when one is, the
// verification step runs and flips LicenseVerified.
func (s *ProfileService) RegisterCaregiver(userID string, p CaregiverParams, license *LicenseUpload) (*models.Caregiver, error) {
	if license != nil {
		if err := ValidateLicenseFileName(license.FileName); err != nil {
			return nil, err
		}
	}

	var caregiver *models.Caregiver
	err := s.store.Atomic(func(tx repository.Store) error {
		user, err := tx.UserByID(userID)
		if err != nil {
			return asNotFound(err, "user", userID)
		}
		if user.Role != models.RoleCaregiver {
			return fmt.Errorf("%w: user role is %s, not caregiver", ErrValidation, user.Role)
		}
		if _, err := tx.CaregiverByUserID(userID); err == nil {
			return fmt.Errorf("%w: caregiver profile already exists", ErrValidation)
		} else if !errors.Is(err, repository.ErrNotFound) {
			return err
		}

		caregiver = &models.Caregiver{
			UserID:          userID,
			Name:            p.Name,
			PhoneNumber:     p.PhoneNumber,
			Sex:             p.Sex,
			Location:        p.Location,
			Qualification:   p.Qualification,
			Experience:      p.Experience,
			ServicesOffered: p.ServicesOffered,
			Available:       true,
		}
		if err := tx.CreateCaregiver(caregiver); err != nil {
			return err
		}

		if license != nil {
			doc := &models.LicenseDocument{
				CaregiverID: caregiver.ID,
				FileName:    license.FileName,
				FileType:    license.FileType,
				FileData:    license.Data,
			}
			if err := tx.CreateLicense(doc); err != nil {
				return err
			}
			caregiver.LicenseVerified = s.verifier.Verify(doc)
			if err := tx.SaveCaregiver(caregiver); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"caregiverId":     caregiver.ID,
		"licenseVerified": caregiver.LicenseVerified,
	}).Info("caregiver registered")
	return caregiver, nil
}

// SetAvailability toggles whether the caregiver is a dispatch candidate.
func (s *ProfileService) SetAvailability(userID string, available bool) (*models.Caregiver, error) {
	var caregiver *models.Caregiver
	err := s.store.Atomic(func(tx repository.Store) error {
		cg, err := tx.CaregiverByUserID(userID)
		if err != nil {
			return asNotFound(err, "caregiver profile for user", userID)
		}
		cg.Available = available
		if err := tx.SaveCaregiver(cg); err != nil {
			return err
		}
		caregiver = cg
		return nil
	})
	if err != nil {
		return nil, err
	}
	return caregiver, nil
}

// PatientForUser resolves the patient profile of an authenticated user.
func (s *ProfileService) PatientForUser(userID string) (*models.Patient, error) {
	p, err := s.store.PatientByUserID(userID)
	if err != nil {
		return nil, asNotFound(err, "patient profile for user", userID)
	}
	return p, nil
}

// CaregiverForUser resolves the caregiver profile of an authenticated user.
func (s *ProfileService) CaregiverForUser(userID string) (*models.Caregiver, error) {
	cg, err := s.store.CaregiverByUserID(userID)
	if err != nil {
		return nil, asNotFound(err, "caregiver profile for user", userID)
	}
	return cg, nil
}

// LicenseByID fetches an uploaded license document.
func (s *ProfileService) LicenseByID(id string) (*models.LicenseDocument, error) {
	doc, err := s.store.LicenseByID(id)
	if err != nil {
		return nil, asNotFound(err, "license document", id)
	}
	return doc, nil
}
