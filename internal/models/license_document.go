package models

// LicenseDocument stores an uploaded caregiver license as binary data in
// the database. Only PDF/DOC/DOCX uploads are accepted, validated by file
// extension at the service boundary.
type LicenseDocument struct {
	BaseModel
	CaregiverID string `gorm:"size:36;index" json:"caregiverId"`
	FileName    string `gorm:"size:255" json:"fileName"`
	FileType    string `gorm:"size:100" json:"fileType"`
	FileData    []byte `gorm:"type:longblob" json:"-"`

	// Relations
	Caregiver Caregiver `gorm:"foreignKey:CaregiverID" json:"-"`
}
