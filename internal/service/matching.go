package service

import (
	"strings"

	"github.com/sirupsen/logrus"

	"careconnect-server/internal/models"
	"careconnect-server/internal/repository"
)

// MatchingService finds caregivers whose offering matches a patient's
// free-text care requirement.
type MatchingService struct {
	store  repository.Store
	logger *logrus.Logger
}

// NewMatchingService creates a new MatchingService.
func NewMatchingService(store repository.Store, logger *logrus.Logger) *MatchingService {
	return &MatchingService{store: store, logger: logger}
}

// FindCaregivers returns every caregiver whose services or qualification
// text contains requirementText, in storage order. The containment test is
// case-sensitive, and an empty requirement matches everyone.
func (s *MatchingService) FindCaregivers(requirementText string) ([]models.Caregiver, error) {
	caregivers, err := s.store.ListCaregivers()
	if err != nil {
		return nil, err
	}

	matches := make([]models.Caregiver, 0, len(caregivers))
	for _, cg := range caregivers {
		if strings.Contains(cg.ServicesOffered, requirementText) ||
			strings.Contains(cg.Qualification, requirementText) {
			matches = append(matches, cg)
		}
	}

	s.logger.WithFields(logrus.Fields{
		"requirement": requirementText,
		"matches":     len(matches),
	}).Debug("caregiver search")

	return matches, nil
}
