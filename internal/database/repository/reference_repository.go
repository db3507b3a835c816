package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/collectflow/collections-campaign-backend/internal/models"
)

type ReferenceRepository struct {
	db *gorm.DB
}

func NewReferenceRepository(db *gorm.DB) *ReferenceRepository {
	return &ReferenceRepository{db: db}
}

// GetStates retrieves all states ordered by name
func (r *ReferenceRepository) GetStates() ([]models.State, error) {
	var states []models.State
	err := r.db.Order("name").Find(&states).Error
	return states, err
}

// GetDpdBuckets retrieves all delinquency buckets ordered by name
func (r *ReferenceRepository) GetDpdBuckets() ([]models.DpdBucket, error) {
	var buckets []models.DpdBucket
	err := r.db.Order("name").Find(&buckets).Error
	return buckets, err
}

// GetChannels retrieves all channels ordered by name
func (r *ReferenceRepository) GetChannels() ([]models.Channel, error) {
	var channels []models.Channel
	err := r.db.Order("name").Find(&channels).Error
	return channels, err
}

// GetTemplates retrieves templates, optionally restricted to one channel
func (r *ReferenceRepository) GetTemplates(channelID *uint) ([]models.Template, error) {
	var templates []models.Template
	query := r.db.Order("name")
	if channelID != nil {
		query = query.Where("channel_id = ?", *channelID)
	}
	err := query.Find(&templates).Error
	return templates, err
}

// GetLanguages retrieves all languages ordered by name
func (r *ReferenceRepository) GetLanguages() ([]models.Language, error) {
	var languages []models.Language
	err := r.db.Order("name").Find(&languages).Error
	return languages, err
}

// GetStateByID retrieves a state by ID, nil when absent
func (r *ReferenceRepository) GetStateByID(id uint) (*models.State, error) {
	var state models.State
	err := r.db.First(&state, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &state, nil
}

// GetDpdBucketByID retrieves a delinquency bucket by ID, nil when absent
func (r *ReferenceRepository) GetDpdBucketByID(id uint) (*models.DpdBucket, error) {
	var bucket models.DpdBucket
	err := r.db.First(&bucket, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &bucket, nil
}

// GetChannelByID retrieves a channel by ID, nil when absent
func (r *ReferenceRepository) GetChannelByID(id uint) (*models.Channel, error) {
	var channel models.Channel
	err := r.db.First(&channel, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &channel, nil
}

// GetTemplateByID retrieves a template by ID, nil when absent
func (r *ReferenceRepository) GetTemplateByID(id uint) (*models.Template, error) {
	var template models.Template
	err := r.db.First(&template, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &template, nil
}

// GetLanguageByID retrieves a language by ID, nil when absent
func (r *ReferenceRepository) GetLanguageByID(id uint) (*models.Language, error) {
	var language models.Language
	err := r.db.First(&language, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &language, nil
}

// CountDimensions returns the total row counts of the state, dpd bucket and
// channel tables, used for coverage estimation
func (r *ReferenceRepository) CountDimensions() (int64, int64, int64, error) {
	var states, buckets, channels int64
	if err := r.db.Model(&models.State{}).Count(&states).Error; err != nil {
		return 0, 0, 0, err
	}
	if err := r.db.Model(&models.DpdBucket{}).Count(&buckets).Error; err != nil {
		return 0, 0, 0, err
	}
	if err := r.db.Model(&models.Channel{}).Count(&channels).Error; err != nil {
		return 0, 0, 0, err
	}
	return states, buckets, channels, nil
}
