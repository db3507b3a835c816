package services

import (
	"fmt"
	"math"

	"github.com/collectflow/collections-campaign-backend/internal/apperrors"
	"github.com/collectflow/collections-campaign-backend/internal/database/repository"
	"github.com/collectflow/collections-campaign-backend/internal/models"
)

// TargetingService answers read-only planning questions about Active
// campaigns: which ones match a set of criteria, rough coverage estimates and
// per-dimension usage counts
type TargetingService struct {
	campaignRepo  repository.CampaignRepositoryInterface
	referenceRepo repository.ReferenceRepositoryInterface
}

func NewTargetingService(
	campaignRepo repository.CampaignRepositoryInterface,
	referenceRepo repository.ReferenceRepositoryInterface,
) *TargetingService {
	return &TargetingService{
		campaignRepo:  campaignRepo,
		referenceRepo: referenceRepo,
	}
}

// FindMatchingCampaigns returns the Active campaigns whose dimensions fall
// inside the criteria and whose filter set contains every requested custom
// filter pair
func (s *TargetingService) FindMatchingCampaigns(criteria models.TargetingCriteria) ([]*models.TargetingResult, error) {
	campaigns, err := s.campaignRepo.FindActiveByDimensions(criteria)
	if err != nil {
		return nil, fmt.Errorf("failed to find active campaigns: %w", err)
	}

	metrics, err := s.estimateMetrics(criteria)
	if err != nil {
		return nil, err
	}

	results := make([]*models.TargetingResult, 0, len(campaigns))
	for _, campaign := range campaigns {
		if !containsCustomFilters(campaign.Filters, criteria.CustomFilters) {
			continue
		}
		results = append(results, &models.TargetingResult{
			CampaignID:   campaign.ID,
			CampaignName: campaign.Name,
			TargetCount:  estimateTargetCount(criteria),
			Criteria:     criteria,
			Metrics:      *metrics,
		})
	}
	return results, nil
}

// GetTargetingSuggestions returns per-dimension campaign counts for building
// criteria
func (s *TargetingService) GetTargetingSuggestions() (*models.TargetingSuggestions, error) {
	suggestions, err := s.campaignRepo.CountByDimension()
	if err != nil {
		return nil, fmt.Errorf("failed to build targeting suggestions: %w", err)
	}
	return suggestions, nil
}

// AnalyzeCampaignPerformance returns placeholder per-dimension analytics for
// one campaign. Real delivery numbers come from the out-of-scope analytics
// system.
func (s *TargetingService) AnalyzeCampaignPerformance(campaignID uint) (*models.CampaignPerformance, error) {
	campaign, err := s.campaignRepo.GetByID(campaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to get campaign: %w", err)
	}
	if campaign == nil {
		return nil, apperrors.NewNotFound("campaign", campaignID)
	}

	placeholder := map[string]interface{}{
		"delivery_rate":  0.0,
		"response_rate":  0.0,
		"total_messages": 0,
	}
	return &models.CampaignPerformance{
		StatePerformance: []models.DimensionPerformance{
			{ID: campaign.StateID, Metrics: placeholder},
		},
		DpdPerformance: []models.DimensionPerformance{
			{ID: campaign.DpdID, Metrics: placeholder},
		},
		ChannelPerformance: []models.DimensionPerformance{
			{ID: campaign.ChannelID, Metrics: placeholder},
		},
		Recommendations: []string{
			"Connect the analytics pipeline to replace placeholder metrics",
			"Review assigned count against estimated reach before re-running",
		},
	}, nil
}

// estimateMetrics computes coverage percentages from selected vs total
// dimension counts. Empty selection means no constraint, so full coverage.
func (s *TargetingService) estimateMetrics(criteria models.TargetingCriteria) (*models.TargetingMetrics, error) {
	totalStates, totalDpdBuckets, totalChannels, err := s.referenceRepo.CountDimensions()
	if err != nil {
		return nil, fmt.Errorf("failed to count dimensions: %w", err)
	}

	stateCoverage := coverage(len(criteria.StateIDs), totalStates)
	dpdCoverage := coverage(len(criteria.DpdIDs), totalDpdBuckets)
	channelCoverage := coverage(len(criteria.ChannelIDs), totalChannels)

	reach := int(math.Round((stateCoverage + dpdCoverage + channelCoverage) / 3))
	return &models.TargetingMetrics{
		StateCoverage:   stateCoverage,
		DpdCoverage:     dpdCoverage,
		ChannelCoverage: channelCoverage,
		EstimatedReach:  reach,
	}, nil
}

func coverage(selected int, total int64) float64 {
	if selected == 0 || total == 0 {
		return 100
	}
	pct := float64(selected) / float64(total) * 100
	return math.Round(pct*100) / 100
}

// estimateTargetCount scales a base population by a multiplier per
// constrained dimension
func estimateTargetCount(criteria models.TargetingCriteria) int {
	count := 1000.0
	if len(criteria.StateIDs) > 0 {
		count *= float64(len(criteria.StateIDs)) * 0.8
	}
	if len(criteria.DpdIDs) > 0 {
		count *= float64(len(criteria.DpdIDs)) * 0.6
	}
	if len(criteria.ChannelIDs) > 0 {
		count *= float64(len(criteria.ChannelIDs)) * 0.9
	}
	return int(math.Round(count))
}

// containsCustomFilters reports whether the campaign's stored filter set
// contains every requested key/value pair
func containsCustomFilters(filters []models.CampaignFilter, wanted map[string]string) bool {
	if len(wanted) == 0 {
		return true
	}
	stored := make(map[string]string, len(filters))
	for _, filter := range filters {
		stored[filter.Key] = filter.Value
	}
	for key, value := range wanted {
		if stored[key] != value {
			return false
		}
	}
	return true
}
