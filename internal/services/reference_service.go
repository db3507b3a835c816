package services

import (
	"fmt"

	"github.com/collectflow/collections-campaign-backend/internal/database/repository"
	"github.com/collectflow/collections-campaign-backend/internal/models"
)

// ReferenceService serves the read-only lookup tables campaigns are built
// from
type ReferenceService struct {
	referenceRepo repository.ReferenceRepositoryInterface
}

func NewReferenceService(referenceRepo repository.ReferenceRepositoryInterface) *ReferenceService {
	return &ReferenceService{referenceRepo: referenceRepo}
}

func (s *ReferenceService) GetStates() ([]models.State, error) {
	states, err := s.referenceRepo.GetStates()
	if err != nil {
		return nil, fmt.Errorf("failed to get states: %w", err)
	}
	return states, nil
}

func (s *ReferenceService) GetDpdBuckets() ([]models.DpdBucket, error) {
	buckets, err := s.referenceRepo.GetDpdBuckets()
	if err != nil {
		return nil, fmt.Errorf("failed to get dpd buckets: %w", err)
	}
	return buckets, nil
}

func (s *ReferenceService) GetChannels() ([]models.Channel, error) {
	channels, err := s.referenceRepo.GetChannels()
	if err != nil {
		return nil, fmt.Errorf("failed to get channels: %w", err)
	}
	return channels, nil
}

// GetTemplates returns all templates, optionally restricted to one channel
func (s *ReferenceService) GetTemplates(channelID *uint) ([]models.Template, error) {
	templates, err := s.referenceRepo.GetTemplates(channelID)
	if err != nil {
		return nil, fmt.Errorf("failed to get templates: %w", err)
	}
	return templates, nil
}

func (s *ReferenceService) GetLanguages() ([]models.Language, error) {
	languages, err := s.referenceRepo.GetLanguages()
	if err != nil {
		return nil, fmt.Errorf("failed to get languages: %w", err)
	}
	return languages, nil
}
