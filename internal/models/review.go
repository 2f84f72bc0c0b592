package models

// Review is a patient's rating of a caregiver for one completed
// appointment. The unique index on AppointmentID keeps it at exactly one
// review per appointment.
type Review struct {
	BaseModel
	AppointmentID string `gorm:"size:36;uniqueIndex" json:"appointmentId"`
	PatientID     string `gorm:"size:36;index" json:"patientId"`
	CaregiverID   string `gorm:"size:36;index" json:"caregiverId"`
	Rating        int    `gorm:"not null" json:"rating"`
	Comments      string `gorm:"type:text" json:"comments,omitempty"`

	// Relations
	Appointment Appointment `gorm:"foreignKey:AppointmentID" json:"-"`
	Patient     Patient     `gorm:"foreignKey:PatientID" json:"-"`
	Caregiver   Caregiver   `gorm:"foreignKey:CaregiverID" json:"-"`
}
