package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/collectflow/collections-campaign-backend/internal/apperrors"
	"github.com/collectflow/collections-campaign-backend/internal/database/repository"
	"github.com/collectflow/collections-campaign-backend/internal/models"
)

// ApprovalService drives the approval state machine: Draft -> Pending
// Approval -> Active or Rejected. Every transition is recorded in the
// append-only approval audit.
type ApprovalService struct {
	campaignRepo repository.CampaignRepositoryInterface
	approvalRepo repository.ApprovalRepositoryInterface
}

func NewApprovalService(
	campaignRepo repository.CampaignRepositoryInterface,
	approvalRepo repository.ApprovalRepositoryInterface,
) *ApprovalService {
	return &ApprovalService{
		campaignRepo: campaignRepo,
		approvalRepo: approvalRepo,
	}
}

// SubmitForApproval moves a Draft campaign to Pending Approval
func (s *ApprovalService) SubmitForApproval(campaignID, actorID uint, remarks string) error {
	campaign, err := s.campaignRepo.GetByID(campaignID)
	if err != nil {
		return fmt.Errorf("failed to get campaign: %w", err)
	}
	if campaign == nil {
		return apperrors.NewNotFound("campaign", campaignID)
	}
	if campaign.Status != models.StatusDraft {
		return apperrors.NewInvalidTransition("submit", campaign.Status, models.StatusDraft)
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":                    models.StatusPendingApproval,
		"submitted_for_approval_at": now,
		"updated_by":                actorID,
		"updated_at":                now,
	}
	audit := &models.ApprovalAudit{
		CampaignID:  campaignID,
		Action:      models.ApprovalActionSubmit,
		PerformedBy: actorID,
		Remarks:     remarksOrDefault(remarks, "Campaign submitted for approval"),
	}
	if err := s.approvalRepo.ApplyTransition(campaignID, "submit", models.StatusDraft, updates, audit); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"campaign_id": campaignID,
		"actor_id":    actorID,
	}).Info("Campaign submitted for approval")
	return nil
}

// ApproveCampaign moves a Pending Approval campaign to Active
func (s *ApprovalService) ApproveCampaign(campaignID, actorID uint, remarks string) error {
	campaign, err := s.campaignRepo.GetByID(campaignID)
	if err != nil {
		return fmt.Errorf("failed to get campaign: %w", err)
	}
	if campaign == nil {
		return apperrors.NewNotFound("campaign", campaignID)
	}
	if campaign.Status != models.StatusPendingApproval {
		return apperrors.NewInvalidTransition("approve", campaign.Status, models.StatusPendingApproval)
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":      models.StatusActive,
		"approved_at": now,
		"approved_by": actorID,
		"updated_by":  actorID,
		"updated_at":  now,
	}
	audit := &models.ApprovalAudit{
		CampaignID:  campaignID,
		Action:      models.ApprovalActionApprove,
		PerformedBy: actorID,
		Remarks:     remarksOrDefault(remarks, "Campaign approved"),
	}
	if err := s.approvalRepo.ApplyTransition(campaignID, "approve", models.StatusPendingApproval, updates, audit); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"campaign_id": campaignID,
		"actor_id":    actorID,
	}).Info("Campaign approved")
	return nil
}

// RejectCampaign moves a Pending Approval campaign to Rejected. Rejection
// remarks are mandatory.
func (s *ApprovalService) RejectCampaign(campaignID, actorID uint, rejectionRemarks string) error {
	rejectionRemarks = strings.TrimSpace(rejectionRemarks)
	if rejectionRemarks == "" {
		return apperrors.NewValidation("rejection_remarks is required")
	}

	campaign, err := s.campaignRepo.GetByID(campaignID)
	if err != nil {
		return fmt.Errorf("failed to get campaign: %w", err)
	}
	if campaign == nil {
		return apperrors.NewNotFound("campaign", campaignID)
	}
	if campaign.Status != models.StatusPendingApproval {
		return apperrors.NewInvalidTransition("reject", campaign.Status, models.StatusPendingApproval)
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":            models.StatusRejected,
		"rejected_at":       now,
		"rejected_by":       actorID,
		"rejection_remarks": rejectionRemarks,
		"updated_by":        actorID,
		"updated_at":        now,
	}
	audit := &models.ApprovalAudit{
		CampaignID:  campaignID,
		Action:      models.ApprovalActionReject,
		PerformedBy: actorID,
		Remarks:     &rejectionRemarks,
	}
	if err := s.approvalRepo.ApplyTransition(campaignID, "reject", models.StatusPendingApproval, updates, audit); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"campaign_id": campaignID,
		"actor_id":    actorID,
	}).Info("Campaign rejected")
	return nil
}

// GetPendingApprovals returns a page of campaigns awaiting review
func (s *ApprovalService) GetPendingApprovals(q models.PendingApprovalQuery) (*models.PendingApprovalListResponse, error) {
	campaigns, total, err := s.approvalRepo.PendingList(q)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending approvals: %w", err)
	}
	return &models.PendingApprovalListResponse{Campaigns: campaigns, Total: total}, nil
}

// GetCampaignReview returns the full review view of one campaign with
// reference names resolved
func (s *ApprovalService) GetCampaignReview(campaignID uint) (*models.CampaignReviewResponse, error) {
	review, err := s.approvalRepo.GetReview(campaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to get campaign review: %w", err)
	}
	if review == nil {
		return nil, apperrors.NewNotFound("campaign", campaignID)
	}
	return review, nil
}

// GetApprovalHistory returns a campaign's approval audit trail, newest first
func (s *ApprovalService) GetApprovalHistory(campaignID uint) ([]*models.ApprovalHistoryEntry, error) {
	campaign, err := s.campaignRepo.GetByID(campaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to get campaign: %w", err)
	}
	if campaign == nil {
		return nil, apperrors.NewNotFound("campaign", campaignID)
	}
	history, err := s.approvalRepo.History(campaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to get approval history: %w", err)
	}
	return history, nil
}

// ExportPendingApprovals returns every pending campaign flattened for export
func (s *ApprovalService) ExportPendingApprovals() ([]*models.ApprovalExportRow, error) {
	rows, err := s.approvalRepo.ExportPending()
	if err != nil {
		return nil, fmt.Errorf("failed to export pending approvals: %w", err)
	}
	return rows, nil
}

func remarksOrDefault(remarks, fallback string) *string {
	remarks = strings.TrimSpace(remarks)
	if remarks == "" {
		remarks = fallback
	}
	return &remarks
}
