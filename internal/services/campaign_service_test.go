package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/collectflow/collections-campaign-backend/internal/apperrors"
	"github.com/collectflow/collections-campaign-backend/internal/models"
)

func strPtr(s string) *string { return &s }

func validCreateRequest() *models.CreateCampaignRequest {
	return &models.CreateCampaignRequest{
		StateID:              1,
		DpdID:                1,
		ChannelID:            1,
		TemplateID:           1,
		LanguageID:           1,
		Retries:              3,
		RetryIntervalMinutes: 60,
		StartDate:            "2026-09-01",
		EndDate:              "2026-09-30",
	}
}

func newCampaignService() (*CampaignService, *fakeCampaignRepo) {
	campaignRepo := newFakeCampaignRepo()
	return NewCampaignService(campaignRepo, newFakeReferenceRepo()), campaignRepo
}

func TestCreateCampaign_DerivesNameAndStartsDraft(t *testing.T) {
	service, _ := newCampaignService()

	response, err := service.CreateCampaign(7, validCreateRequest())
	require.NoError(t, err)

	datestamp := time.Now().Format("20060102")
	assert.Equal(t, fmt.Sprintf("Maharashtra_SMS_T-6_Welcome_English_%s", datestamp), response.Name)
	assert.Equal(t, models.StatusDraft, response.Status)
	assert.Equal(t, 0, response.ConditionCount)
	assert.Equal(t, 0, response.AssignedCount)
	assert.Equal(t, uint(7), response.CreatedBy)
}

func TestCreateCampaign_ConditionCountCountsScalarsAndFilters(t *testing.T) {
	service, _ := newCampaignService()

	req := validCreateRequest()
	req.BorrowerType = strPtr("New")
	req.Segment = strPtr("Retail")
	req.Filters = map[string]string{"region": "west", "priority": "high"}

	response, err := service.CreateCampaign(1, req)
	require.NoError(t, err)
	assert.Equal(t, 4, response.ConditionCount)
	assert.Len(t, response.Filters, 2)
}

func TestCreateCampaign_DuplicateName(t *testing.T) {
	service, _ := newCampaignService()

	_, err := service.CreateCampaign(1, validCreateRequest())
	require.NoError(t, err)

	_, err = service.CreateCampaign(1, validCreateRequest())
	require.Error(t, err)
	assert.True(t, apperrors.IsDuplicateName(err))
}

func TestCreateCampaign_UnknownReference(t *testing.T) {
	service, _ := newCampaignService()

	req := validCreateRequest()
	req.TemplateID = 99

	_, err := service.CreateCampaign(1, req)
	require.Error(t, err)
	assert.True(t, apperrors.IsReferenceNotFound(err))
	assert.Contains(t, err.Error(), "Template with ID 99 not found")
}

func TestCreateCampaign_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.CreateCampaignRequest)
	}{
		{"retries above limit", func(r *models.CreateCampaignRequest) { r.Retries = 11 }},
		{"negative retries", func(r *models.CreateCampaignRequest) { r.Retries = -1 }},
		{"interval above limit", func(r *models.CreateCampaignRequest) { r.RetryIntervalMinutes = 1440 }},
		{"bad borrower type", func(r *models.CreateCampaignRequest) { r.BorrowerType = strPtr("Existing") }},
		{"malformed start date", func(r *models.CreateCampaignRequest) { r.StartDate = "01-09-2026" }},
		{"end before start", func(r *models.CreateCampaignRequest) { r.EndDate = "2026-08-01" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			service, _ := newCampaignService()
			req := validCreateRequest()
			tc.mutate(req)

			_, err := service.CreateCampaign(1, req)
			require.Error(t, err)
			assert.True(t, apperrors.IsValidation(err))
		})
	}
}

func TestUpdateCampaign_DimensionChangeRegeneratesName(t *testing.T) {
	service, _ := newCampaignService()

	created, err := service.CreateCampaign(1, validCreateRequest())
	require.NoError(t, err)

	channelID := uint(2)
	updated, err := service.UpdateCampaign(created.ID, 2, &models.UpdateCampaignRequest{ChannelID: &channelID})
	require.NoError(t, err)

	datestamp := time.Now().Format("20060102")
	assert.Equal(t, fmt.Sprintf("Maharashtra_WhatsApp_T-6_Welcome_English_%s", datestamp), updated.Name)
	assert.Equal(t, uint(2), updated.UpdatedBy)
	assert.Equal(t, uint(1), updated.CreatedBy)
}

func TestUpdateCampaign_NoDimensionChangeKeepsName(t *testing.T) {
	service, _ := newCampaignService()

	created, err := service.CreateCampaign(1, validCreateRequest())
	require.NoError(t, err)

	retries := 5
	updated, err := service.UpdateCampaign(created.ID, 1, &models.UpdateCampaignRequest{Retries: &retries})
	require.NoError(t, err)
	assert.Equal(t, created.Name, updated.Name)
	assert.Equal(t, 5, updated.Retries)
}

func TestUpdateCampaign_DuplicateNameAgainstOtherCampaign(t *testing.T) {
	service, _ := newCampaignService()

	_, err := service.CreateCampaign(1, validCreateRequest())
	require.NoError(t, err)

	otherReq := validCreateRequest()
	otherReq.ChannelID = 2
	other, err := service.CreateCampaign(1, otherReq)
	require.NoError(t, err)

	// Moving the second campaign onto the first one's dimensions collides
	channelID := uint(1)
	_, err = service.UpdateCampaign(other.ID, 1, &models.UpdateCampaignRequest{ChannelID: &channelID})
	require.Error(t, err)
	assert.True(t, apperrors.IsDuplicateName(err))
}

func TestUpdateCampaign_FiltersReplaceSet(t *testing.T) {
	service, _ := newCampaignService()

	req := validCreateRequest()
	req.Filters = map[string]string{"region": "west", "priority": "high"}
	created, err := service.CreateCampaign(1, req)
	require.NoError(t, err)
	assert.Equal(t, 2, created.ConditionCount)

	updated, err := service.UpdateCampaign(created.ID, 1, &models.UpdateCampaignRequest{
		Filters: map[string]string{"region": "south"},
	})
	require.NoError(t, err)
	require.Len(t, updated.Filters, 1)
	assert.Equal(t, "region", updated.Filters[0].Key)
	assert.Equal(t, "south", updated.Filters[0].Value)
	assert.Equal(t, 1, updated.ConditionCount)
}

func TestUpdateCampaign_NilFiltersKeepExistingSet(t *testing.T) {
	service, _ := newCampaignService()

	req := validCreateRequest()
	req.Filters = map[string]string{"region": "west"}
	created, err := service.CreateCampaign(1, req)
	require.NoError(t, err)

	retries := 2
	updated, err := service.UpdateCampaign(created.ID, 1, &models.UpdateCampaignRequest{Retries: &retries})
	require.NoError(t, err)
	assert.Len(t, updated.Filters, 1)
	assert.Equal(t, 1, updated.ConditionCount)
}

func TestUpdateCampaign_NotFound(t *testing.T) {
	service, _ := newCampaignService()

	_, err := service.UpdateCampaign(42, 1, &models.UpdateCampaignRequest{})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestDeleteCampaign(t *testing.T) {
	service, campaignRepo := newCampaignService()

	created, err := service.CreateCampaign(1, validCreateRequest())
	require.NoError(t, err)

	require.NoError(t, service.DeleteCampaign(created.ID))
	stored, err := campaignRepo.GetByID(created.ID)
	require.NoError(t, err)
	assert.Nil(t, stored)

	err = service.DeleteCampaign(created.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestListCampaigns_FiltersByStatus(t *testing.T) {
	service, campaignRepo := newCampaignService()

	campaignRepo.add(&models.Campaign{Name: "a", Status: models.StatusDraft})
	campaignRepo.add(&models.Campaign{Name: "b", Status: models.StatusActive})

	response, err := service.ListCampaigns(models.CampaignListQuery{Status: models.StatusActive})
	require.NoError(t, err)
	require.Len(t, response.Campaigns, 1)
	assert.Equal(t, "b", response.Campaigns[0].Name)
}
