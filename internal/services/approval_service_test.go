package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/collectflow/collections-campaign-backend/internal/apperrors"
	"github.com/collectflow/collections-campaign-backend/internal/models"
)

func newApprovalService(status string) (*ApprovalService, *fakeCampaignRepo, *fakeApprovalRepo, *models.Campaign) {
	campaignRepo := newFakeCampaignRepo()
	campaign := campaignRepo.add(&models.Campaign{Name: "c1", Status: status})
	approvalRepo := &fakeApprovalRepo{campaigns: campaignRepo}
	return NewApprovalService(campaignRepo, approvalRepo), campaignRepo, approvalRepo, campaign
}

func TestSubmitForApproval_FromDraft(t *testing.T) {
	service, campaignRepo, approvalRepo, campaign := newApprovalService(models.StatusDraft)

	require.NoError(t, service.SubmitForApproval(campaign.ID, 3, ""))

	stored, _ := campaignRepo.GetByID(campaign.ID)
	assert.Equal(t, models.StatusPendingApproval, stored.Status)

	require.Len(t, approvalRepo.transitions, 1)
	transition := approvalRepo.transitions[0]
	assert.Equal(t, models.ApprovalActionSubmit, transition.audit.Action)
	assert.Equal(t, uint(3), transition.audit.PerformedBy)
	require.NotNil(t, transition.audit.Remarks)
	assert.Equal(t, "Campaign submitted for approval", *transition.audit.Remarks)
	assert.Contains(t, transition.updates, "submitted_for_approval_at")
}

func TestSubmitForApproval_CustomRemarks(t *testing.T) {
	service, _, approvalRepo, campaign := newApprovalService(models.StatusDraft)

	require.NoError(t, service.SubmitForApproval(campaign.ID, 3, "ready for review"))
	assert.Equal(t, "ready for review", *approvalRepo.transitions[0].audit.Remarks)
}

func TestSubmitForApproval_WrongStatus(t *testing.T) {
	for _, status := range []string{
		models.StatusPendingApproval,
		models.StatusActive,
		models.StatusRejected,
		models.StatusAssigned,
		models.StatusNoMatchFound,
	} {
		t.Run(status, func(t *testing.T) {
			service, campaignRepo, approvalRepo, campaign := newApprovalService(status)

			err := service.SubmitForApproval(campaign.ID, 3, "")
			require.Error(t, err)
			assert.True(t, apperrors.IsInvalidTransition(err))

			// The guard failure leaves the campaign and the audit untouched
			stored, _ := campaignRepo.GetByID(campaign.ID)
			assert.Equal(t, status, stored.Status)
			assert.Empty(t, approvalRepo.transitions)
		})
	}
}

func TestApproveCampaign_FromPending(t *testing.T) {
	service, campaignRepo, approvalRepo, campaign := newApprovalService(models.StatusPendingApproval)

	require.NoError(t, service.ApproveCampaign(campaign.ID, 5, ""))

	stored, _ := campaignRepo.GetByID(campaign.ID)
	assert.Equal(t, models.StatusActive, stored.Status)

	transition := approvalRepo.transitions[0]
	assert.Equal(t, models.ApprovalActionApprove, transition.audit.Action)
	assert.Equal(t, "Campaign approved", *transition.audit.Remarks)
	assert.Contains(t, transition.updates, "approved_at")
	assert.Equal(t, uint(5), transition.updates["approved_by"])
}

func TestApproveCampaign_WrongStatus(t *testing.T) {
	service, _, _, campaign := newApprovalService(models.StatusDraft)

	err := service.ApproveCampaign(campaign.ID, 5, "")
	require.Error(t, err)
	assert.True(t, apperrors.IsInvalidTransition(err))
}

func TestRejectCampaign_RequiresRemarks(t *testing.T) {
	service, campaignRepo, approvalRepo, campaign := newApprovalService(models.StatusPendingApproval)

	err := service.RejectCampaign(campaign.ID, 5, "   ")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	stored, _ := campaignRepo.GetByID(campaign.ID)
	assert.Equal(t, models.StatusPendingApproval, stored.Status)
	assert.Empty(t, approvalRepo.transitions)
}

func TestRejectCampaign_FromPending(t *testing.T) {
	service, campaignRepo, approvalRepo, campaign := newApprovalService(models.StatusPendingApproval)

	require.NoError(t, service.RejectCampaign(campaign.ID, 5, "budget not approved"))

	stored, _ := campaignRepo.GetByID(campaign.ID)
	assert.Equal(t, models.StatusRejected, stored.Status)

	transition := approvalRepo.transitions[0]
	assert.Equal(t, models.ApprovalActionReject, transition.audit.Action)
	assert.Equal(t, "budget not approved", *transition.audit.Remarks)
	assert.Equal(t, "budget not approved", transition.updates["rejection_remarks"])
	assert.Contains(t, transition.updates, "rejected_at")
	assert.Equal(t, uint(5), transition.updates["rejected_by"])
}

func TestApprovalActions_CampaignNotFound(t *testing.T) {
	service, _, _, _ := newApprovalService(models.StatusDraft)

	assert.True(t, apperrors.IsNotFound(service.SubmitForApproval(99, 1, "")))
	assert.True(t, apperrors.IsNotFound(service.ApproveCampaign(99, 1, "")))
	assert.True(t, apperrors.IsNotFound(service.RejectCampaign(99, 1, "nope")))
}

func TestGetCampaignReview_NotFound(t *testing.T) {
	service, _, _, _ := newApprovalService(models.StatusDraft)

	_, err := service.GetCampaignReview(99)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestGetPendingApprovals(t *testing.T) {
	service, _, approvalRepo, _ := newApprovalService(models.StatusPendingApproval)
	approvalRepo.pending = []*models.CampaignReviewResponse{
		{ID: 1, Name: "c1", Status: models.StatusPendingApproval},
	}

	response, err := service.GetPendingApprovals(models.PendingApprovalQuery{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(1), response.Total)
	assert.Len(t, response.Campaigns, 1)
}

func TestGetApprovalHistory_NotFound(t *testing.T) {
	service, _, _, _ := newApprovalService(models.StatusDraft)

	_, err := service.GetApprovalHistory(99)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}
