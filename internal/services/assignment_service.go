package services

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/collectflow/collections-campaign-backend/internal/apperrors"
	"github.com/collectflow/collections-campaign-backend/internal/database/repository"
	"github.com/collectflow/collections-campaign-backend/internal/events"
	"github.com/collectflow/collections-campaign-backend/internal/models"
)

// AssignmentService runs the assignment engine: it compiles an Active
// campaign's targeting into a customer predicate, materializes the matched set
// and records the outcome. Each campaign gets exactly one assignment run.
type AssignmentService struct {
	campaignRepo   repository.CampaignRepositoryInterface
	customerRepo   repository.CustomerRepositoryInterface
	assignmentRepo repository.AssignmentRepositoryInterface
	publisher      *events.Publisher
}

func NewAssignmentService(
	campaignRepo repository.CampaignRepositoryInterface,
	customerRepo repository.CustomerRepositoryInterface,
	assignmentRepo repository.AssignmentRepositoryInterface,
	publisher *events.Publisher,
) *AssignmentService {
	return &AssignmentService{
		campaignRepo:   campaignRepo,
		customerRepo:   customerRepo,
		assignmentRepo: assignmentRepo,
		publisher:      publisher,
	}
}

// AssignCampaign matches customers against the campaign's targeting and moves
// it to Assigned or NoMatchFound. Free-form filters are stored metadata and do
// not participate in matching.
func (s *AssignmentService) AssignCampaign(campaignID uint) (*models.AssignResult, error) {
	campaign, err := s.campaignRepo.GetByID(campaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to get campaign: %w", err)
	}
	if campaign == nil {
		return nil, apperrors.NewNotFound("campaign", campaignID)
	}
	if campaign.Status != models.StatusActive {
		return nil, apperrors.NewInvalidState("Campaign must be Active to assign")
	}

	filter := campaign.MatchFilter()
	customerIDs, err := s.customerRepo.FindMatchingIDs(filter)
	if err != nil {
		s.recordFailure(campaignID, fmt.Sprintf("customer matching failed: %v", err))
		return nil, fmt.Errorf("failed to match customers: %w", err)
	}

	if len(customerIDs) == 0 {
		if err := s.assignmentRepo.MarkNoMatch(campaignID); err != nil {
			if apperrors.IsInvalidState(err) {
				return nil, err
			}
			s.recordFailure(campaignID, fmt.Sprintf("no-match update failed: %v", err))
			return nil, fmt.Errorf("failed to record no-match outcome: %w", err)
		}
		s.publishOutcome("campaign.no_match", campaignID, 0)
		logrus.WithField("campaign_id", campaignID).Info("Assignment run found no matching customers")
		return &models.AssignResult{Assigned: 0, Status: models.StatusNoMatchFound}, nil
	}

	if err := s.assignmentRepo.AssignCustomers(campaignID, customerIDs); err != nil {
		if apperrors.IsInvalidState(err) {
			return nil, err
		}
		s.recordFailure(campaignID, fmt.Sprintf("assignment insert failed: %v", err))
		return nil, fmt.Errorf("failed to assign customers: %w", err)
	}

	s.publishOutcome("campaign.assigned", campaignID, len(customerIDs))
	logrus.WithFields(logrus.Fields{
		"campaign_id": campaignID,
		"assigned":    len(customerIDs),
	}).Info("Assignment run completed")
	return &models.AssignResult{Assigned: len(customerIDs), Status: models.StatusAssigned}, nil
}

// recordFailure appends an ERROR audit row outside the failed transaction so
// the failure stays visible after the rollback
func (s *AssignmentService) recordFailure(campaignID uint, details string) {
	if err := s.assignmentRepo.AppendError(campaignID, details); err != nil {
		logrus.WithError(err).WithField("campaign_id", campaignID).Error("Failed to record assignment error audit")
	}
}

func (s *AssignmentService) publishOutcome(event string, campaignID uint, assigned int) {
	err := s.publisher.PublishCampaignEvent(event, campaignID, map[string]interface{}{
		"assigned": assigned,
	})
	if err != nil {
		logrus.WithError(err).WithField("campaign_id", campaignID).Warn("Failed to publish assignment outcome event")
	}
}
