package repository

import (
	"github.com/collectflow/collections-campaign-backend/internal/models"
)

// Lookup methods return (nil, nil) when the row does not exist; callers decide
// which error that maps to.

// ReferenceRepositoryInterface provides read-only access to the lookup tables
type ReferenceRepositoryInterface interface {
	GetStates() ([]models.State, error)
	GetDpdBuckets() ([]models.DpdBucket, error)
	GetChannels() ([]models.Channel, error)
	GetTemplates(channelID *uint) ([]models.Template, error)
	GetLanguages() ([]models.Language, error)
	GetStateByID(id uint) (*models.State, error)
	GetDpdBucketByID(id uint) (*models.DpdBucket, error)
	GetChannelByID(id uint) (*models.Channel, error)
	GetTemplateByID(id uint) (*models.Template, error)
	GetLanguageByID(id uint) (*models.Language, error)
	CountDimensions() (states, dpdBuckets, channels int64, err error)
}

// CampaignRepositoryInterface persists campaigns and their free-form filters
type CampaignRepositoryInterface interface {
	GetByID(id uint) (*models.Campaign, error)
	GetByName(name string) (*models.Campaign, error)
	CreateWithFilters(campaign *models.Campaign, filters []models.CampaignFilter) error
	UpdateWithFilters(campaign *models.Campaign, filters []models.CampaignFilter, replaceFilters bool) error
	DeleteWithFilters(id uint) error
	List(q models.CampaignListQuery) ([]*models.Campaign, int64, error)
	FindActiveByDimensions(criteria models.TargetingCriteria) ([]*models.Campaign, error)
	CountByDimension() (*models.TargetingSuggestions, error)
}

// ApprovalRepositoryInterface applies guarded status transitions and serves
// the review queries
type ApprovalRepositoryInterface interface {
	// ApplyTransition updates the campaign row conditioned on its current
	// status and appends the audit row in one transaction. A status mismatch
	// (including one raced in after the caller's guard check) fails with
	// InvalidTransition and leaves everything unchanged.
	ApplyTransition(campaignID uint, action, fromStatus string, updates map[string]interface{}, audit *models.ApprovalAudit) error
	PendingList(q models.PendingApprovalQuery) ([]*models.CampaignReviewResponse, int64, error)
	GetReview(campaignID uint) (*models.CampaignReviewResponse, error)
	History(campaignID uint) ([]*models.ApprovalHistoryEntry, error)
	ExportPending() ([]*models.ApprovalExportRow, error)
}

// CustomerRepositoryInterface queries the customer population
type CustomerRepositoryInterface interface {
	FindMatchingIDs(filter models.CustomerFilter) ([]uint, error)
}

// AssignmentRepositoryInterface persists assignment outcomes
type AssignmentRepositoryInterface interface {
	// AssignCustomers inserts one assignment row per customer id, sets the
	// campaign to Assigned with the final count, and appends the ASSIGN audit
	// row, all in one transaction conditioned on the campaign still being
	// Active.
	AssignCustomers(campaignID uint, customerIDs []uint) error
	// MarkNoMatch sets the campaign to NoMatchFound with a zero count and
	// appends the NO_MATCH audit row in one transaction, conditioned on the
	// campaign still being Active.
	MarkNoMatch(campaignID uint) error
	// AppendError records an ERROR audit row. Called outside the assignment
	// transaction so the row survives a rollback.
	AppendError(campaignID uint, details string) error
}

// UserRepositoryInterface persists actors
type UserRepositoryInterface interface {
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Create(user *models.User) error
}
