package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/collectflow/collections-campaign-backend/internal/models"
	"github.com/collectflow/collections-campaign-backend/internal/utils"
)

type CampaignRepository struct {
	db *gorm.DB
}

func NewCampaignRepository(db *gorm.DB) *CampaignRepository {
	return &CampaignRepository{db: db}
}

// GetByID retrieves a campaign with its filters, nil when absent
func (r *CampaignRepository) GetByID(id uint) (*models.Campaign, error) {
	var campaign models.Campaign
	err := r.db.Preload("Filters").First(&campaign, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &campaign, nil
}

// GetByName retrieves a campaign by its unique name, nil when absent
func (r *CampaignRepository) GetByName(name string) (*models.Campaign, error) {
	var campaign models.Campaign
	err := r.db.First(&campaign, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &campaign, nil
}

// CreateWithFilters persists the campaign row and its filter rows in one
// transaction
func (r *CampaignRepository) CreateWithFilters(campaign *models.Campaign, filters []models.CampaignFilter) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(campaign).Error; err != nil {
			return err
		}
		for i := range filters {
			filters[i].CampaignID = campaign.ID
		}
		if len(filters) > 0 {
			if err := tx.Create(&filters).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// UpdateWithFilters saves the campaign row and, when replaceFilters is set,
// replaces the whole filter set (delete-all then insert) in one transaction
func (r *CampaignRepository) UpdateWithFilters(campaign *models.Campaign, filters []models.CampaignFilter, replaceFilters bool) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Filters").Save(campaign).Error; err != nil {
			return err
		}
		if !replaceFilters {
			return nil
		}
		if err := tx.Where("campaign_id = ?", campaign.ID).Delete(&models.CampaignFilter{}).Error; err != nil {
			return err
		}
		for i := range filters {
			filters[i].ID = 0
			filters[i].CampaignID = campaign.ID
		}
		if len(filters) > 0 {
			if err := tx.Create(&filters).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteWithFilters cascades filter deletion then removes the campaign row in
// one transaction
func (r *CampaignRepository) DeleteWithFilters(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("campaign_id = ?", id).Delete(&models.CampaignFilter{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Campaign{}, "id = ?", id).Error
	})
}

var campaignSortColumns = map[string]string{
	"createdAt": "created_at",
	"startDate": "start_date",
	"endDate":   "end_date",
	"name":      "name",
	"status":    "status",
}

// List returns one page of campaigns with their filters plus the total count.
// Search is a case-insensitive substring match on the name.
func (r *CampaignRepository) List(q models.CampaignListQuery) ([]*models.Campaign, int64, error) {
	query := r.db.Model(&models.Campaign{})
	if q.Status != "" {
		query = query.Where("status = ?", q.Status)
	}
	if term := strings.TrimSpace(q.Search); term != "" {
		query = query.Where("lower(name) LIKE ?", "%"+strings.ToLower(term)+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column, ok := campaignSortColumns[q.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if strings.EqualFold(q.SortOrder, "asc") {
		direction = "ASC"
	}

	var campaigns []*models.Campaign
	err := query.
		Preload("Filters").
		Order(column + " " + direction).
		Limit(q.Limit).
		Offset(utils.CalculateOffset(q.Page, q.Limit)).
		Find(&campaigns).Error
	if err != nil {
		return nil, 0, err
	}
	return campaigns, total, nil
}

// FindActiveByDimensions retrieves Active campaigns restricted to the given
// candidate id sets, filters preloaded. Empty id sets place no constraint.
func (r *CampaignRepository) FindActiveByDimensions(criteria models.TargetingCriteria) ([]*models.Campaign, error) {
	query := r.db.Where("status = ?", models.StatusActive)
	if len(criteria.StateIDs) > 0 {
		query = query.Where("state_id IN ?", criteria.StateIDs)
	}
	if len(criteria.DpdIDs) > 0 {
		query = query.Where("dpd_id IN ?", criteria.DpdIDs)
	}
	if len(criteria.ChannelIDs) > 0 {
		query = query.Where("channel_id IN ?", criteria.ChannelIDs)
	}
	if len(criteria.TemplateIDs) > 0 {
		query = query.Where("template_id IN ?", criteria.TemplateIDs)
	}
	if len(criteria.LanguageIDs) > 0 {
		query = query.Where("language_id IN ?", criteria.LanguageIDs)
	}

	var campaigns []*models.Campaign
	err := query.Preload("Filters").Find(&campaigns).Error
	return campaigns, err
}

// CountByDimension returns, per reference-data row, the number of Active
// campaigns using it
func (r *CampaignRepository) CountByDimension() (*models.TargetingSuggestions, error) {
	suggestions := &models.TargetingSuggestions{}

	dimensions := []struct {
		table  string
		column string
		out    *[]models.DimensionCount
	}{
		{"states", "state_id", &suggestions.States},
		{"dpd_buckets", "dpd_id", &suggestions.DpdBuckets},
		{"channels", "channel_id", &suggestions.Channels},
		{"templates", "template_id", &suggestions.Templates},
		{"languages", "language_id", &suggestions.Languages},
	}

	for _, dim := range dimensions {
		err := r.db.Raw(`
			SELECT d.id, d.name, count(c.id) AS count
			FROM `+dim.table+` d
			LEFT JOIN campaigns c ON c.`+dim.column+` = d.id AND c.status = ?
			GROUP BY d.id, d.name
			ORDER BY d.name
		`, models.StatusActive).Scan(dim.out).Error
		if err != nil {
			return nil, err
		}
	}
	return suggestions, nil
}
