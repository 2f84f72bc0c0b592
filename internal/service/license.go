package service

import (
	"fmt"
	"path/filepath"
	"strings"

	"careconnect-server/internal/models"
)

// Accepted caregiver license uploads, validated by extension only.
var allowedLicenseExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

// ValidateLicenseFileName rejects uploads that are not PDF/DOC/DOCX.
func ValidateLicenseFileName(name string) error {
	ext := strings.ToLower(filepath.Ext(name))
	if !allowedLicenseExtensions[ext] {
		return fmt.Errorf("%w: %q (allowed: pdf, doc, docx)", ErrUnsupportedFileType, ext)
	}
	return nil
}

// LicenseVerifier decides whether a caregiver's license document passes
// verification.
type LicenseVerifier interface {
	Verify(doc *models.LicenseDocument) bool
}

// StubVerifier is the no-op license check: it reports verified whenever a
// document was actually supplied.
type StubVerifier struct{}

func (StubVerifier) Verify(doc *models.LicenseDocument) bool {
	return doc != nil && len(doc.FileData) > 0
}
