package service

import (
	"github.com/sirupsen/logrus"

	"careconnect-server/internal/models"
)

// PaymentGateway charges a patient for an appointment. The production
// system has no real payment integration; the gateway is a simulated
// external collaborator.
type PaymentGateway interface {
	Charge(appointment *models.Appointment) error
}

// StubGateway is the mocked payment processor. It always reports success.
type StubGateway struct {
	Logger *logrus.Logger
}

func (g *StubGateway) Charge(appointment *models.Appointment) error {
	if g.Logger != nil {
		g.Logger.WithFields(logrus.Fields{
			"appointmentId": appointment.ID,
			"patientId":     appointment.PatientID,
		}).Info("simulated payment accepted")
	}
	return nil
}
