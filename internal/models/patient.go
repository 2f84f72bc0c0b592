package models

// Patient holds the care-seeker profile linked 1:1 to a User with the
// patient role.
type Patient struct {
	BaseModel
	UserID      string `gorm:"size:36;uniqueIndex" json:"userId"`
	Name        string `gorm:"size:100" json:"name"`
	PhoneNumber string `gorm:"size:30" json:"phoneNumber"`
	Sex         string `gorm:"size:10" json:"sex"`
	Condition   string `gorm:"size:255" json:"condition"`
	Location    string `gorm:"size:100" json:"location"`
	CareNeeded  string `gorm:"size:255" json:"careNeeded"`
	Preferences string `gorm:"size:255" json:"preferences,omitempty"`

	// Relations
	User         User          `gorm:"foreignKey:UserID" json:"-"`
	Appointments []Appointment `gorm:"foreignKey:PatientID" json:"-"`
}
