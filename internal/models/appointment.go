package models

import (
	"time"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusScheduled  AppointmentStatus = "scheduled"
	StatusDispatched AppointmentStatus = "dispatched"
	StatusCompleted  AppointmentStatus = "completed"
	StatusCancelled  AppointmentStatus = "cancelled"
)

// PaymentStatus represents the payment state of an appointment
type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "unpaid"
	PaymentPaid   PaymentStatus = "paid"
)

// Appointment represents a booked caregiving session. Cancellation is a
// status flag, never a row deletion, so review foreign keys and history
// survive. Version is bumped on every state change; dispatch uses it as a
// compare-and-swap guard.
type Appointment struct {
	BaseModel
	PatientID        string            `gorm:"size:36;index" json:"patientId"`
	CaregiverID      string            `gorm:"size:36;index" json:"caregiverId"`
	DateTime         time.Time         `gorm:"not null" json:"dateTime"`
	DurationMinutes  int               `gorm:"not null" json:"durationMinutes"`
	Location         string            `gorm:"size:100;not null" json:"location"`
	CareRequirements string            `gorm:"type:text" json:"careRequirements,omitempty"`
	Feedback         string            `gorm:"type:text" json:"feedback,omitempty"`
	PaymentStatus    PaymentStatus     `gorm:"size:20;default:'unpaid'" json:"paymentStatus"`
	Status           AppointmentStatus `gorm:"size:20;default:'scheduled'" json:"status"`
	CancelledAt      *time.Time        `json:"cancelledAt,omitempty"`
	Version          int64             `gorm:"default:0" json:"-"`

	// Relations
	Patient   Patient   `gorm:"foreignKey:PatientID" json:"-"`
	Caregiver Caregiver `gorm:"foreignKey:CaregiverID" json:"-"`
}

// Terminal reports whether no further status transition is allowed.
func (a *Appointment) Terminal() bool {
	return a.Status == StatusCompleted || a.Status == StatusCancelled
}
