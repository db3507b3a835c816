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

const dateLayout = "2006-01-02"

// CampaignService owns campaign creation, validation against reference data,
// deterministic name generation and free-form filter storage
type CampaignService struct {
	campaignRepo  repository.CampaignRepositoryInterface
	referenceRepo repository.ReferenceRepositoryInterface
}

func NewCampaignService(
	campaignRepo repository.CampaignRepositoryInterface,
	referenceRepo repository.ReferenceRepositoryInterface,
) *CampaignService {
	return &CampaignService{
		campaignRepo:  campaignRepo,
		referenceRepo: referenceRepo,
	}
}

// CreateCampaign validates the request, derives the campaign name and
// persists the campaign with its filters. New campaigns always start in
// Draft.
func (s *CampaignService) CreateCampaign(actorID uint, req *models.CreateCampaignRequest) (*models.CampaignResponse, error) {
	if err := validateRetryPolicy(req.Retries, req.RetryIntervalMinutes); err != nil {
		return nil, err
	}
	if err := validateBorrowerType(req.BorrowerType); err != nil {
		return nil, err
	}
	startDate, endDate, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	if err := s.validateReferences(req.StateID, req.DpdID, req.ChannelID, req.TemplateID, req.LanguageID); err != nil {
		return nil, err
	}

	name, err := s.generateCampaignName(req.StateID, req.DpdID, req.ChannelID, req.TemplateID, req.LanguageID)
	if err != nil {
		return nil, err
	}
	existing, err := s.campaignRepo.GetByName(name)
	if err != nil {
		return nil, fmt.Errorf("failed to check campaign name: %w", err)
	}
	if existing != nil {
		return nil, apperrors.NewDuplicateName(name)
	}

	campaign := &models.Campaign{
		Name:                 name,
		StateID:              req.StateID,
		DpdID:                req.DpdID,
		ChannelID:            req.ChannelID,
		TemplateID:           req.TemplateID,
		LanguageID:           req.LanguageID,
		Retries:              req.Retries,
		RetryIntervalMinutes: req.RetryIntervalMinutes,
		StartDate:            startDate,
		EndDate:              endDate,
		Status:               models.StatusDraft,
		BorrowerType:         req.BorrowerType,
		Segment:              req.Segment,
		ProductGroup:         req.ProductGroup,
		ProductType:          req.ProductType,
		SubProductType:       req.SubProductType,
		ProductVariant:       req.ProductVariant,
		SchemeName:           req.SchemeName,
		SchemeCode:           req.SchemeCode,
		CreatedBy:            actorID,
		UpdatedBy:            actorID,
	}
	campaign.ConditionCount = conditionCount(campaign, len(req.Filters))

	filters := filtersFromMap(req.Filters)
	if err := s.campaignRepo.CreateWithFilters(campaign, filters); err != nil {
		return nil, fmt.Errorf("failed to create campaign: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"campaign_id": campaign.ID,
		"name":        campaign.Name,
		"created_by":  actorID,
	}).Info("Campaign created")

	return s.GetCampaignByID(campaign.ID)
}

// GetCampaignByID returns one campaign hydrated with its filters
func (s *CampaignService) GetCampaignByID(id uint) (*models.CampaignResponse, error) {
	campaign, err := s.campaignRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get campaign: %w", err)
	}
	if campaign == nil {
		return nil, apperrors.NewNotFound("campaign", id)
	}
	return toCampaignResponse(campaign), nil
}

// ListCampaigns returns a page of campaigns plus the total count
func (s *CampaignService) ListCampaigns(q models.CampaignListQuery) (*models.CampaignListResponse, error) {
	campaigns, total, err := s.campaignRepo.List(q)
	if err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}
	responses := make([]*models.CampaignResponse, len(campaigns))
	for i, campaign := range campaigns {
		responses[i] = toCampaignResponse(campaign)
	}
	return &models.CampaignListResponse{Campaigns: responses, Total: total}, nil
}

// UpdateCampaign applies a partial update. A change to any targeting
// dimension re-validates references and regenerates the name; a supplied
// filter map replaces the existing set wholesale.
func (s *CampaignService) UpdateCampaign(id uint, actorID uint, req *models.UpdateCampaignRequest) (*models.CampaignResponse, error) {
	campaign, err := s.campaignRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get campaign: %w", err)
	}
	if campaign == nil {
		return nil, apperrors.NewNotFound("campaign", id)
	}

	dimensionsChanged := applyDimensions(campaign, req)
	applyScalars(campaign, req)

	if err := validateRetryPolicy(campaign.Retries, campaign.RetryIntervalMinutes); err != nil {
		return nil, err
	}
	if err := validateBorrowerType(campaign.BorrowerType); err != nil {
		return nil, err
	}
	if err := applyDates(campaign, req); err != nil {
		return nil, err
	}

	if dimensionsChanged {
		if err := s.validateReferences(campaign.StateID, campaign.DpdID, campaign.ChannelID, campaign.TemplateID, campaign.LanguageID); err != nil {
			return nil, err
		}
		name, err := s.generateCampaignName(campaign.StateID, campaign.DpdID, campaign.ChannelID, campaign.TemplateID, campaign.LanguageID)
		if err != nil {
			return nil, err
		}
		if name != campaign.Name {
			existing, err := s.campaignRepo.GetByName(name)
			if err != nil {
				return nil, fmt.Errorf("failed to check campaign name: %w", err)
			}
			if existing != nil && existing.ID != campaign.ID {
				return nil, apperrors.NewDuplicateName(name)
			}
			campaign.Name = name
		}
	}

	filterCount := len(campaign.Filters)
	if req.Filters != nil {
		filterCount = len(req.Filters)
	}
	campaign.ConditionCount = conditionCount(campaign, filterCount)
	campaign.UpdatedBy = actorID
	campaign.UpdatedAt = time.Now()

	filters := filtersFromMap(req.Filters)
	if err := s.campaignRepo.UpdateWithFilters(campaign, filters, req.Filters != nil); err != nil {
		return nil, fmt.Errorf("failed to update campaign: %w", err)
	}

	return s.GetCampaignByID(id)
}

// DeleteCampaign cascades filter deletion then removes the campaign
func (s *CampaignService) DeleteCampaign(id uint) error {
	campaign, err := s.campaignRepo.GetByID(id)
	if err != nil {
		return fmt.Errorf("failed to get campaign: %w", err)
	}
	if campaign == nil {
		return apperrors.NewNotFound("campaign", id)
	}
	if err := s.campaignRepo.DeleteWithFilters(id); err != nil {
		return fmt.Errorf("failed to delete campaign: %w", err)
	}
	logrus.WithField("campaign_id", id).Info("Campaign deleted")
	return nil
}

// GetCampaignMetrics returns placeholder delivery metrics; real numbers come
// from the out-of-scope analytics system
func (s *CampaignService) GetCampaignMetrics(id uint) (*models.CampaignMetricsResponse, error) {
	campaign, err := s.campaignRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get campaign: %w", err)
	}
	if campaign == nil {
		return nil, apperrors.NewNotFound("campaign", id)
	}
	return &models.CampaignMetricsResponse{
		CampaignID:   campaign.ID,
		CampaignName: campaign.Name,
		Status:       campaign.Status,
	}, nil
}

// validateReferences checks that every targeting dimension resolves to an
// existing reference-data row
func (s *CampaignService) validateReferences(stateID, dpdID, channelID, templateID, languageID uint) error {
	state, err := s.referenceRepo.GetStateByID(stateID)
	if err != nil {
		return err
	}
	if state == nil {
		return apperrors.NewReferenceNotFound("State", stateID)
	}
	bucket, err := s.referenceRepo.GetDpdBucketByID(dpdID)
	if err != nil {
		return err
	}
	if bucket == nil {
		return apperrors.NewReferenceNotFound("DPD bucket", dpdID)
	}
	channel, err := s.referenceRepo.GetChannelByID(channelID)
	if err != nil {
		return err
	}
	if channel == nil {
		return apperrors.NewReferenceNotFound("Channel", channelID)
	}
	template, err := s.referenceRepo.GetTemplateByID(templateID)
	if err != nil {
		return err
	}
	if template == nil {
		return apperrors.NewReferenceNotFound("Template", templateID)
	}
	language, err := s.referenceRepo.GetLanguageByID(languageID)
	if err != nil {
		return err
	}
	if language == nil {
		return apperrors.NewReferenceNotFound("Language", languageID)
	}
	return nil
}

// generateCampaignName derives the unique campaign name from the resolved
// dimension names and the current calendar date
func (s *CampaignService) generateCampaignName(stateID, dpdID, channelID, templateID, languageID uint) (string, error) {
	state, err := s.referenceRepo.GetStateByID(stateID)
	if err != nil {
		return "", err
	}
	bucket, err := s.referenceRepo.GetDpdBucketByID(dpdID)
	if err != nil {
		return "", err
	}
	channel, err := s.referenceRepo.GetChannelByID(channelID)
	if err != nil {
		return "", err
	}
	template, err := s.referenceRepo.GetTemplateByID(templateID)
	if err != nil {
		return "", err
	}
	language, err := s.referenceRepo.GetLanguageByID(languageID)
	if err != nil {
		return "", err
	}

	stateName := fmt.Sprintf("State%d", stateID)
	if state != nil {
		stateName = state.Name
	}
	dpdName := fmt.Sprintf("DPD%d", dpdID)
	if bucket != nil {
		dpdName = bucket.Name
	}
	channelName := fmt.Sprintf("Channel%d", channelID)
	if channel != nil {
		channelName = channel.Name
	}
	templateName := fmt.Sprintf("Template%d", templateID)
	if template != nil {
		templateName = template.Name
	}
	languageName := fmt.Sprintf("Lang%d", languageID)
	if language != nil {
		languageName = language.Name
	}

	datestamp := time.Now().Format("20060102")
	return fmt.Sprintf("%s_%s_%s_%s_%s_%s", stateName, channelName, dpdName, templateName, languageName, datestamp), nil
}

// conditionCount is the number of non-empty optional scalar filters plus the
// number of free-form filter pairs
func conditionCount(campaign *models.Campaign, filterCount int) int {
	count := filterCount
	for _, field := range campaign.OptionalScalars() {
		if field != nil && strings.TrimSpace(*field) != "" {
			count++
		}
	}
	return count
}

func validateRetryPolicy(retries, intervalMinutes int) error {
	if retries < 0 || retries > models.MaxRetries {
		return apperrors.NewValidation("retries must be between 0 and %d", models.MaxRetries)
	}
	if intervalMinutes < 0 || intervalMinutes > models.MaxRetryIntervalMinutes {
		return apperrors.NewValidation("retry_interval_minutes must be between 0 and %d", models.MaxRetryIntervalMinutes)
	}
	return nil
}

func validateBorrowerType(borrowerType *string) error {
	if borrowerType == nil {
		return nil
	}
	if *borrowerType != models.BorrowerTypeNew && *borrowerType != models.BorrowerTypeOld {
		return apperrors.NewValidation("borrower_type must be %q or %q", models.BorrowerTypeNew, models.BorrowerTypeOld)
	}
	return nil
}

func parseDateRange(start, end string) (time.Time, time.Time, error) {
	startDate, err := time.Parse(dateLayout, start)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.NewValidation("start_date must be a valid date in YYYY-MM-DD format")
	}
	endDate, err := time.Parse(dateLayout, end)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.NewValidation("end_date must be a valid date in YYYY-MM-DD format")
	}
	if endDate.Before(startDate) {
		return time.Time{}, time.Time{}, apperrors.NewValidation("start_date must not be after end_date")
	}
	return startDate, endDate, nil
}

// applyDimensions merges requested dimension changes into the campaign and
// reports whether any of the five changed
func applyDimensions(campaign *models.Campaign, req *models.UpdateCampaignRequest) bool {
	changed := false
	if req.StateID != nil && *req.StateID != campaign.StateID {
		campaign.StateID = *req.StateID
		changed = true
	}
	if req.DpdID != nil && *req.DpdID != campaign.DpdID {
		campaign.DpdID = *req.DpdID
		changed = true
	}
	if req.ChannelID != nil && *req.ChannelID != campaign.ChannelID {
		campaign.ChannelID = *req.ChannelID
		changed = true
	}
	if req.TemplateID != nil && *req.TemplateID != campaign.TemplateID {
		campaign.TemplateID = *req.TemplateID
		changed = true
	}
	if req.LanguageID != nil && *req.LanguageID != campaign.LanguageID {
		campaign.LanguageID = *req.LanguageID
		changed = true
	}
	return changed
}

func applyScalars(campaign *models.Campaign, req *models.UpdateCampaignRequest) {
	if req.Retries != nil {
		campaign.Retries = *req.Retries
	}
	if req.RetryIntervalMinutes != nil {
		campaign.RetryIntervalMinutes = *req.RetryIntervalMinutes
	}
	if req.BorrowerType != nil {
		campaign.BorrowerType = req.BorrowerType
	}
	if req.Segment != nil {
		campaign.Segment = req.Segment
	}
	if req.ProductGroup != nil {
		campaign.ProductGroup = req.ProductGroup
	}
	if req.ProductType != nil {
		campaign.ProductType = req.ProductType
	}
	if req.SubProductType != nil {
		campaign.SubProductType = req.SubProductType
	}
	if req.ProductVariant != nil {
		campaign.ProductVariant = req.ProductVariant
	}
	if req.SchemeName != nil {
		campaign.SchemeName = req.SchemeName
	}
	if req.SchemeCode != nil {
		campaign.SchemeCode = req.SchemeCode
	}
}

// applyDates merges requested date changes and validates the merged pair
func applyDates(campaign *models.Campaign, req *models.UpdateCampaignRequest) error {
	if req.StartDate != nil {
		parsed, err := time.Parse(dateLayout, *req.StartDate)
		if err != nil {
			return apperrors.NewValidation("start_date must be a valid date in YYYY-MM-DD format")
		}
		campaign.StartDate = parsed
	}
	if req.EndDate != nil {
		parsed, err := time.Parse(dateLayout, *req.EndDate)
		if err != nil {
			return apperrors.NewValidation("end_date must be a valid date in YYYY-MM-DD format")
		}
		campaign.EndDate = parsed
	}
	if campaign.EndDate.Before(campaign.StartDate) {
		return apperrors.NewValidation("start_date must not be after end_date")
	}
	return nil
}

// filtersFromMap converts the request's filter map into rows. Map iteration
// order is irrelevant; the filter set is unordered.
func filtersFromMap(filters map[string]string) []models.CampaignFilter {
	if len(filters) == 0 {
		return nil
	}
	rows := make([]models.CampaignFilter, 0, len(filters))
	for key, value := range filters {
		rows = append(rows, models.CampaignFilter{Key: key, Value: value})
	}
	return rows
}

// toCampaignResponse converts a Campaign model to its response DTO
func toCampaignResponse(campaign *models.Campaign) *models.CampaignResponse {
	filters := make([]models.FilterResponse, len(campaign.Filters))
	for i, filter := range campaign.Filters {
		filters[i] = models.FilterResponse{ID: filter.ID, Key: filter.Key, Value: filter.Value}
	}
	return &models.CampaignResponse{
		ID:                   campaign.ID,
		Name:                 campaign.Name,
		StateID:              campaign.StateID,
		DpdID:                campaign.DpdID,
		ChannelID:            campaign.ChannelID,
		TemplateID:           campaign.TemplateID,
		LanguageID:           campaign.LanguageID,
		Retries:              campaign.Retries,
		RetryIntervalMinutes: campaign.RetryIntervalMinutes,
		StartDate:            campaign.StartDate.Format(dateLayout),
		EndDate:              campaign.EndDate.Format(dateLayout),
		Status:               campaign.Status,
		ConditionCount:       campaign.ConditionCount,
		AssignedCount:        campaign.AssignedCount,
		BorrowerType:         campaign.BorrowerType,
		Segment:              campaign.Segment,
		ProductGroup:         campaign.ProductGroup,
		ProductType:          campaign.ProductType,
		SubProductType:       campaign.SubProductType,
		ProductVariant:       campaign.ProductVariant,
		SchemeName:           campaign.SchemeName,
		SchemeCode:           campaign.SchemeCode,
		Filters:              filters,
		CreatedBy:            campaign.CreatedBy,
		UpdatedBy:            campaign.UpdatedBy,
		CreatedAt:            campaign.CreatedAt.Format(time.RFC3339),
		UpdatedAt:            campaign.UpdatedAt.Format(time.RFC3339),
	}
}
