package service_test

import (
	"io"

	"github.com/sirupsen/logrus"

	"careconnect-server/internal/models"
	"careconnect-server/internal/repository"
	"careconnect-server/internal/service"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// countingGateway counts charges so idempotency tests can assert no
// duplicate side effects.
type countingGateway struct {
	charges int
}

func (g *countingGateway) Charge(_ *models.Appointment) error {
	g.charges++
	return nil
}

type fixture struct {
	store        *repository.MemoryStore
	gateway      *countingGateway
	appointments *service.AppointmentService
	matching     *service.MatchingService
	auth         *service.AuthService
	profiles     *service.ProfileService
}

func newFixture() *fixture {
	store := repository.NewMemoryStore()
	gateway := &countingGateway{}
	logger := testLogger()
	return &fixture{
		store:        store,
		gateway:      gateway,
		appointments: service.NewAppointmentService(store, gateway, service.LeastRecentlyAssigned{}, logger),
		matching:     service.NewMatchingService(store, logger),
		auth:         service.NewAuthService(store, logger),
		profiles:     service.NewProfileService(store, service.StubVerifier{}, logger),
	}
}

func (f *fixture) seedPatient(name string) *models.Patient {
	p := &models.Patient{Name: name, Location: "Nairobi", CareNeeded: "Palliative care"}
	if err := f.store.CreatePatient(p); err != nil {
		panic(err)
	}
	return p
}

func (f *fixture) seedCaregiver(name string, available bool) *models.Caregiver {
	cg := &models.Caregiver{
		Name:            name,
		Location:        "Nairobi",
		Qualification:   "Registered Nurse",
		ServicesOffered: "Palliative care, Feeding",
		Available:       available,
	}
	if err := f.store.CreateCaregiver(cg); err != nil {
		panic(err)
	}
	return cg
}

func (f *fixture) book(patientID, caregiverID string) *models.Appointment {
	a, err := f.appointments.Book(service.BookParams{
		PatientID:        patientID,
		CaregiverID:      caregiverID,
		DateTime:         "2025-01-01T10:00",
		DurationMinutes:  60,
		Location:         "Nairobi",
		CareRequirements: "Palliative care",
	})
	if err != nil {
		panic(err)
	}
	return a
}
