package service

import (
	"careconnect-server/internal/models"
)

// SelectionPolicy picks which available caregiver a scheduled appointment
// is dispatched to. Returns nil when candidates is empty.
type SelectionPolicy interface {
	Select(candidates []models.Caregiver) *models.Caregiver
}

// LeastRecentlyAssigned picks the caregiver whose last dispatch lies
// furthest in the past. Caregivers never assigned win over everyone else.
// This is the default policy.
type LeastRecentlyAssigned struct{}

func (LeastRecentlyAssigned) Select(candidates []models.Caregiver) *models.Caregiver {
	var best *models.Caregiver
	for i := range candidates {
		cg := &candidates[i]
		if best == nil {
			best = cg
			continue
		}
		switch {
		case cg.LastAssignedAt == nil && best.LastAssignedAt != nil:
			best = cg
		case cg.LastAssignedAt != nil && best.LastAssignedAt != nil &&
			cg.LastAssignedAt.Before(*best.LastAssignedAt):
			best = cg
		}
	}
	return best
}

// FirstAvailable replicates the legacy behavior of taking whichever
// available caregiver the store lists first.
type FirstAvailable struct{}

func (FirstAvailable) Select(candidates []models.Caregiver) *models.Caregiver {
	if len(candidates) == 0 {
		return nil
	}
	return &candidates[0]
}
