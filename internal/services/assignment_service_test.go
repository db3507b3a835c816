package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/collectflow/collections-campaign-backend/internal/apperrors"
	"github.com/collectflow/collections-campaign-backend/internal/models"
)

func seedCustomers() []models.Customer {
	return []models.Customer{
		{ID: 1, StateID: 1, DpdID: 1, BorrowerType: strPtr("New"), Segment: strPtr("Retail")},
		{ID: 2, StateID: 1, DpdID: 1, BorrowerType: strPtr("Old"), Segment: strPtr("SME")},
		{ID: 3, StateID: 2, DpdID: 1, BorrowerType: strPtr("New")},
		{ID: 4, StateID: 1, DpdID: 2, BorrowerType: strPtr("New")},
	}
}

func newAssignmentFixture(campaign *models.Campaign, customerRepo *fakeCustomerRepo) (*AssignmentService, *fakeCampaignRepo, *fakeAssignmentRepo) {
	campaignRepo := newFakeCampaignRepo()
	campaignRepo.add(campaign)
	assignmentRepo := newFakeAssignmentRepo(campaignRepo)
	service := NewAssignmentService(campaignRepo, customerRepo, assignmentRepo, nil)
	return service, campaignRepo, assignmentRepo
}

func TestAssignCampaign_MandatoryDimensionsOnly(t *testing.T) {
	campaign := &models.Campaign{Status: models.StatusActive, StateID: 1, DpdID: 1}
	service, campaignRepo, assignmentRepo := newAssignmentFixture(campaign, &fakeCustomerRepo{customers: seedCustomers()})

	result, err := service.AssignCampaign(campaign.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Assigned)
	assert.Equal(t, models.StatusAssigned, result.Status)

	stored, _ := campaignRepo.GetByID(campaign.ID)
	assert.Equal(t, models.StatusAssigned, stored.Status)
	assert.Equal(t, 2, stored.AssignedCount)
	assert.ElementsMatch(t, []uint{1, 2}, assignmentRepo.assigned[campaign.ID])
}

func TestAssignCampaign_OptionalScalarNarrowsMatch(t *testing.T) {
	campaign := &models.Campaign{
		Status:       models.StatusActive,
		StateID:      1,
		DpdID:        1,
		BorrowerType: strPtr("New"),
	}
	service, _, assignmentRepo := newAssignmentFixture(campaign, &fakeCustomerRepo{customers: seedCustomers()})

	result, err := service.AssignCampaign(campaign.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Assigned)
	assert.Equal(t, []uint{1}, assignmentRepo.assigned[campaign.ID])
}

func TestAssignCampaign_FreeFormFiltersDoNotAffectMatching(t *testing.T) {
	campaign := &models.Campaign{
		Status:  models.StatusActive,
		StateID: 1,
		DpdID:   1,
		Filters: []models.CampaignFilter{{Key: "region", Value: "nowhere"}},
	}
	service, _, _ := newAssignmentFixture(campaign, &fakeCustomerRepo{customers: seedCustomers()})

	result, err := service.AssignCampaign(campaign.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Assigned)
}

func TestAssignCampaign_NoMatch(t *testing.T) {
	campaign := &models.Campaign{Status: models.StatusActive, StateID: 9, DpdID: 9}
	service, campaignRepo, _ := newAssignmentFixture(campaign, &fakeCustomerRepo{customers: seedCustomers()})

	result, err := service.AssignCampaign(campaign.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Assigned)
	assert.Equal(t, models.StatusNoMatchFound, result.Status)

	stored, _ := campaignRepo.GetByID(campaign.ID)
	assert.Equal(t, models.StatusNoMatchFound, stored.Status)
	assert.Equal(t, 0, stored.AssignedCount)
}

func TestAssignCampaign_RequiresActiveStatus(t *testing.T) {
	for _, status := range []string{
		models.StatusDraft,
		models.StatusPendingApproval,
		models.StatusRejected,
		models.StatusAssigned,
		models.StatusNoMatchFound,
	} {
		t.Run(status, func(t *testing.T) {
			campaign := &models.Campaign{Status: status, StateID: 1, DpdID: 1}
			service, campaignRepo, assignmentRepo := newAssignmentFixture(campaign, &fakeCustomerRepo{customers: seedCustomers()})

			_, err := service.AssignCampaign(campaign.ID)
			require.Error(t, err)
			assert.True(t, apperrors.IsInvalidState(err))

			stored, _ := campaignRepo.GetByID(campaign.ID)
			assert.Equal(t, status, stored.Status)
			assert.Empty(t, assignmentRepo.errorAudits)
		})
	}
}

func TestAssignCampaign_NotFound(t *testing.T) {
	service, _, _ := newAssignmentFixture(&models.Campaign{Status: models.StatusActive}, &fakeCustomerRepo{})

	_, err := service.AssignCampaign(99)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestAssignCampaign_MatchingFailureRecordsErrorAudit(t *testing.T) {
	campaign := &models.Campaign{Status: models.StatusActive, StateID: 1, DpdID: 1}
	service, campaignRepo, assignmentRepo := newAssignmentFixture(campaign, &fakeCustomerRepo{err: errors.New("db down")})

	_, err := service.AssignCampaign(campaign.ID)
	require.Error(t, err)
	require.Len(t, assignmentRepo.errorAudits, 1)
	assert.Contains(t, assignmentRepo.errorAudits[0], "db down")

	// Failed runs leave the campaign Active
	stored, _ := campaignRepo.GetByID(campaign.ID)
	assert.Equal(t, models.StatusActive, stored.Status)
}

func TestAssignCampaign_InsertFailureRecordsErrorAudit(t *testing.T) {
	campaign := &models.Campaign{Status: models.StatusActive, StateID: 1, DpdID: 1}
	service, _, assignmentRepo := newAssignmentFixture(campaign, &fakeCustomerRepo{customers: seedCustomers()})
	assignmentRepo.failInsert = true

	_, err := service.AssignCampaign(campaign.ID)
	require.Error(t, err)
	require.Len(t, assignmentRepo.errorAudits, 1)
	assert.Contains(t, assignmentRepo.errorAudits[0], "insert failed")
}
