package models

import (
	"time"
)

// Caregiver holds the care-provider profile linked 1:1 to a User with the
// caregiver role. LicenseVerified stays false until a license document has
// been supplied and the verification step has run. LastAssignedAt feeds the
// dispatch selection policy.
type Caregiver struct {
	BaseModel
	UserID          string     `gorm:"size:36;uniqueIndex" json:"userId"`
	Name            string     `gorm:"size:100" json:"name"`
	PhoneNumber     string     `gorm:"size:30" json:"phoneNumber"`
	Sex             string     `gorm:"size:10" json:"sex"`
	Location        string     `gorm:"size:100" json:"location"`
	Qualification   string     `gorm:"size:255" json:"qualification"`
	Experience      string     `gorm:"size:100" json:"experience"`
	ServicesOffered string     `gorm:"type:text" json:"servicesOffered"`
	LicenseVerified bool       `gorm:"default:false" json:"licenseVerified"`
	Available       bool       `gorm:"default:true;index" json:"available"`
	LastAssignedAt  *time.Time `json:"lastAssignedAt,omitempty"`

	// Relations
	User         User              `gorm:"foreignKey:UserID" json:"-"`
	Appointments []Appointment     `gorm:"foreignKey:CaregiverID" json:"-"`
	Reviews      []Review          `gorm:"foreignKey:CaregiverID" json:"-"`
	Licenses     []LicenseDocument `gorm:"foreignKey:CaregiverID" json:"-"`
}
