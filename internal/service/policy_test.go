package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"careconnect-server/internal/models"
	"careconnect-server/internal/service"
)

func TestLeastRecentlyAssignedPrefersNeverAssigned(t *testing.T) {
	policy := service.LeastRecentlyAssigned{}
	yesterday := time.Now().Add(-24 * time.Hour)

	candidates := []models.Caregiver{
		{BaseModel: models.BaseModel{ID: "seasoned"}, LastAssignedAt: &yesterday},
		{BaseModel: models.BaseModel{ID: "fresh"}},
	}

	chosen := policy.Select(candidates)
	require.NotNil(t, chosen)
	require.Equal(t, "fresh", chosen.ID)
}

func TestLeastRecentlyAssignedPicksOldestAssignment(t *testing.T) {
	policy := service.LeastRecentlyAssigned{}
	lastWeek := time.Now().Add(-7 * 24 * time.Hour)
	yesterday := time.Now().Add(-24 * time.Hour)

	candidates := []models.Caregiver{
		{BaseModel: models.BaseModel{ID: "recent"}, LastAssignedAt: &yesterday},
		{BaseModel: models.BaseModel{ID: "idle"}, LastAssignedAt: &lastWeek},
	}

	chosen := policy.Select(candidates)
	require.NotNil(t, chosen)
	require.Equal(t, "idle", chosen.ID)
}

func TestSelectionPoliciesHandleEmptyCandidates(t *testing.T) {
	require.Nil(t, service.LeastRecentlyAssigned{}.Select(nil))
	require.Nil(t, service.FirstAvailable{}.Select(nil))
}

func TestFirstAvailableTakesStorageOrder(t *testing.T) {
	candidates := []models.Caregiver{
		{BaseModel: models.BaseModel{ID: "first"}},
		{BaseModel: models.BaseModel{ID: "second"}},
	}

	chosen := service.FirstAvailable{}.Select(candidates)
	require.NotNil(t, chosen)
	require.Equal(t, "first", chosen.ID)
}
