package service_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"careconnect-server/internal/models"
	"careconnect-server/internal/service"
)

func signUp(f *fixture, t *testing.T, email string, role models.Role) *models.User {
	t.Helper()
	user, err := f.auth.SignUp(service.SignUpParams{
		Name: "User", Email: email, Password: "secret-password", Role: role,
	})
	require.NoError(t, err)
	return user
}

func TestRegisterPatientCreatesProfileOnce(t *testing.T) {
	f := newFixture()
	user := signUp(f, t, "amina@x.com", models.RolePatient)

	params := service.PatientParams{
		Name: "Amina", PhoneNumber: "0700000000", Sex: "F",
		Condition: "Post surgery", Location: "Nairobi", CareNeeded: "Post surgery",
	}
	patient, err := f.profiles.RegisterPatient(user.ID, params)
	require.NoError(t, err)
	require.Equal(t, user.ID, patient.UserID)

	_, err = f.profiles.RegisterPatient(user.ID, params)
	require.ErrorIs(t, err, service.ErrValidation)
}

func TestRegisterPatientRejectsCaregiverRole(t *testing.T) {
	f := newFixture()
	user := signUp(f, t, "charles@x.com", models.RoleCaregiver)

	_, err := f.profiles.RegisterPatient(user.ID, service.PatientParams{Name: "Charles"})
	require.ErrorIs(t, err, service.ErrValidation)
}

func TestRegisterCaregiverWithLicenseVerifies(t *testing.T) {
	f := newFixture()
	user := signUp(f, t, "beatrice@x.com", models.RoleCaregiver)

	caregiver, err := f.profiles.RegisterCaregiver(user.ID, service.CaregiverParams{
		Name: "Beatrice", PhoneNumber: "0711111111", Sex: "F", Location: "Nairobi",
		Qualification: "Registered Nurse", Experience: "5 years",
		ServicesOffered: "Palliative care, Feeding",
	}, &service.LicenseUpload{
		FileName: "license.pdf",
		FileType: "application/pdf",
		Data:     []byte("%PDF-1.4"),
	})
	require.NoError(t, err)
	require.True(t, caregiver.LicenseVerified)
	require.True(t, caregiver.Available)

	docs, err := f.store.LicensesByCaregiver(caregiver.ID)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	require.Equal(t, "license.pdf", docs[0].FileName)
}

func TestRegisterCaregiverWithoutLicenseStaysUnverified(t *testing.T) {
	f := newFixture()
	user := signUp(f, t, "beatrice@x.com", models.RoleCaregiver)

	caregiver, err := f.profiles.RegisterCaregiver(user.ID, service.CaregiverParams{
		Name: "Beatrice", PhoneNumber: "0711111111", Sex: "F", Location: "Nairobi",
		Qualification: "Registered Nurse", Experience: "5 years",
		ServicesOffered: "Palliative care",
	}, nil)
	require.NoError(t, err)
	require.False(t, caregiver.LicenseVerified)
}

func TestRegisterCaregiverRejectsUnsupportedLicenseType(t *testing.T) {
	f := newFixture()
	user := signUp(f, t, "beatrice@x.com", models.RoleCaregiver)

	_, err := f.profiles.RegisterCaregiver(user.ID, service.CaregiverParams{
		Name: "Beatrice", PhoneNumber: "0711111111", Sex: "F", Location: "Nairobi",
		Qualification: "Registered Nurse", Experience: "5 years",
		ServicesOffered: "Palliative care",
	}, &service.LicenseUpload{
		FileName: "license.exe",
		FileType: "application/octet-stream",
		Data:     []byte{0x4d, 0x5a},
	})
	require.ErrorIs(t, err, service.ErrUnsupportedFileType)
}

func TestValidateLicenseFileName(t *testing.T) {
	for _, name := range []string{"a.pdf", "b.doc", "c.docx", "UPPER.PDF"} {
		require.NoError(t, service.ValidateLicenseFileName(name))
	}
	for _, name := range []string{"a.png", "b.txt", "noext", "archive.zip"} {
		require.ErrorIs(t, service.ValidateLicenseFileName(name), service.ErrUnsupportedFileType)
	}
}

func TestSetAvailability(t *testing.T) {
	f := newFixture()
	user := signUp(f, t, "beatrice@x.com", models.RoleCaregiver)
	_, err := f.profiles.RegisterCaregiver(user.ID, service.CaregiverParams{
		Name: "Beatrice", PhoneNumber: "0711111111", Sex: "F", Location: "Nairobi",
		Qualification: "Registered Nurse", Experience: "5 years",
		ServicesOffered: "Palliative care",
	}, nil)
	require.NoError(t, err)

	caregiver, err := f.profiles.SetAvailability(user.ID, false)
	require.NoError(t, err)
	require.False(t, caregiver.Available)

	available, err := f.store.AvailableCaregivers()
	require.NoError(t, err)
	require.Empty(t, available)

	_, err = f.profiles.SetAvailability("missing-user", true)
	require.ErrorIs(t, err, service.ErrNotFound)
}
