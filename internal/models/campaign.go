package models

import (
	"time"
)

// Campaign lifecycle statuses. Draft, Pending Approval, Active and Rejected
// are driven by the approval workflow; Assigned and NoMatchFound are terminal
// outcomes written by the assignment engine.
const (
	StatusDraft           = "Draft"
	StatusPendingApproval = "Pending Approval"
	StatusActive          = "Active"
	StatusRejected        = "Rejected"
	StatusAssigned        = "Assigned"
	StatusNoMatchFound    = "NoMatchFound"
)

// Allowed borrower types for the optional borrower_type filter
const (
	BorrowerTypeNew = "New"
	BorrowerTypeOld = "Old"
)

// Retry policy bounds. The values are stored for the dispatch subsystem and
// not consumed here.
const (
	MaxRetries              = 10
	MaxRetryIntervalMinutes = 1439
)

// Campaign represents a collections outreach campaign targeting a cohort of
// borrowers through one channel/template/language combination
type Campaign struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"type:varchar(200);not null;uniqueIndex"`

	// Targeting dimensions, each a reference-data foreign key
	StateID    uint `json:"state_id" gorm:"not null;index"`
	DpdID      uint `json:"dpd_id" gorm:"not null;index"`
	ChannelID  uint `json:"channel_id" gorm:"not null;index"`
	TemplateID uint `json:"template_id" gorm:"not null;index"`
	LanguageID uint `json:"language_id" gorm:"not null;index"`

	// Retry policy, stored for the dispatch subsystem
	Retries              int `json:"retries" gorm:"not null;default:0"`
	RetryIntervalMinutes int `json:"retry_interval_minutes" gorm:"not null;default:0"`

	StartDate time.Time `json:"start_date" gorm:"type:date;not null;index"`
	EndDate   time.Time `json:"end_date" gorm:"type:date;not null;index"`

	Status         string `json:"status" gorm:"type:varchar(20);not null;default:'Draft';index"`
	ConditionCount int    `json:"condition_count" gorm:"not null;default:0"`
	AssignedCount  int    `json:"assigned_count" gorm:"not null;default:0"`

	// Optional scalar filters (nullable)
	BorrowerType   *string `json:"borrower_type" gorm:"type:varchar(50)"`
	Segment        *string `json:"segment" gorm:"type:varchar(100)"`
	ProductGroup   *string `json:"product_group" gorm:"type:varchar(100)"`
	ProductType    *string `json:"product_type" gorm:"type:varchar(100)"`
	SubProductType *string `json:"sub_product_type" gorm:"type:varchar(100)"`
	ProductVariant *string `json:"product_variant" gorm:"type:varchar(100)"`
	SchemeName     *string `json:"scheme_name" gorm:"type:varchar(150)"`
	SchemeCode     *string `json:"scheme_code" gorm:"type:varchar(100)"`

	// Approval workflow fields
	SubmittedForApprovalAt *time.Time `json:"submitted_for_approval_at"`
	ApprovedAt             *time.Time `json:"approved_at"`
	ApprovedBy             *uint      `json:"approved_by"`
	RejectedAt             *time.Time `json:"rejected_at"`
	RejectedBy             *uint      `json:"rejected_by"`
	RejectionRemarks       *string    `json:"rejection_remarks" gorm:"type:text"`

	CreatedBy uint      `json:"created_by" gorm:"not null"`
	UpdatedBy uint      `json:"updated_by" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Filters []CampaignFilter `json:"filters,omitempty" gorm:"foreignKey:CampaignID;references:ID;constraint:OnDelete:CASCADE"`
}

func (Campaign) TableName() string {
	return "campaigns"
}

// OptionalScalars returns the optional scalar filter fields in their canonical
// order. Used for condition counting and predicate compilation.
func (c *Campaign) OptionalScalars() []*string {
	return []*string{
		c.BorrowerType,
		c.Segment,
		c.ProductGroup,
		c.ProductType,
		c.SubProductType,
		c.ProductVariant,
		c.SchemeName,
		c.SchemeCode,
	}
}

// MatchFilter compiles the campaign's structured filters into the predicate
// the assignment engine evaluates against the customer population. Free-form
// key/value filters are informational only and deliberately excluded.
func (c *Campaign) MatchFilter() CustomerFilter {
	return CustomerFilter{
		StateID:        c.StateID,
		DpdID:          c.DpdID,
		BorrowerType:   c.BorrowerType,
		Segment:        c.Segment,
		ProductGroup:   c.ProductGroup,
		ProductType:    c.ProductType,
		SubProductType: c.SubProductType,
		ProductVariant: c.ProductVariant,
		SchemeName:     c.SchemeName,
		SchemeCode:     c.SchemeCode,
	}
}

// CampaignFilter is one free-form (key, value) pair owned by a campaign.
// The set is replaced wholesale on update.
type CampaignFilter struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	CampaignID uint   `json:"campaign_id" gorm:"not null;index"`
	Key        string `json:"key" gorm:"type:varchar(100);not null"`
	Value      string `json:"value" gorm:"type:varchar(255);not null"`
}

func (CampaignFilter) TableName() string {
	return "campaign_filters"
}

// CreateCampaignRequest represents the request to create a new campaign
type CreateCampaignRequest struct {
	StateID              uint              `json:"state_id" binding:"required" example:"1"`
	DpdID                uint              `json:"dpd_id" binding:"required" example:"2"`
	ChannelID            uint              `json:"channel_id" binding:"required" example:"1"`
	TemplateID           uint              `json:"template_id" binding:"required" example:"3"`
	LanguageID           uint              `json:"language_id" binding:"required" example:"1"`
	Retries              int               `json:"retries" example:"3"`
	RetryIntervalMinutes int               `json:"retry_interval_minutes" example:"60"`
	StartDate            string            `json:"start_date" binding:"required" example:"2026-09-01"`
	EndDate              string            `json:"end_date" binding:"required" example:"2026-09-30"`
	Filters              map[string]string `json:"filters"`
	BorrowerType         *string           `json:"borrower_type" example:"New"`
	Segment              *string           `json:"segment" example:"Retail"`
	ProductGroup         *string           `json:"product_group"`
	ProductType          *string           `json:"product_type"`
	SubProductType       *string           `json:"sub_product_type"`
	ProductVariant       *string           `json:"product_variant"`
	SchemeName           *string           `json:"scheme_name"`
	SchemeCode           *string           `json:"scheme_code"`
}

// UpdateCampaignRequest represents a partial update to a campaign. Nil fields
// keep their current values; a non-nil Filters map replaces the whole set.
type UpdateCampaignRequest struct {
	StateID              *uint             `json:"state_id"`
	DpdID                *uint             `json:"dpd_id"`
	ChannelID            *uint             `json:"channel_id"`
	TemplateID           *uint             `json:"template_id"`
	LanguageID           *uint             `json:"language_id"`
	Retries              *int              `json:"retries"`
	RetryIntervalMinutes *int              `json:"retry_interval_minutes"`
	StartDate            *string           `json:"start_date"`
	EndDate              *string           `json:"end_date"`
	Filters              map[string]string `json:"filters"`
	BorrowerType         *string           `json:"borrower_type"`
	Segment              *string           `json:"segment"`
	ProductGroup         *string           `json:"product_group"`
	ProductType          *string           `json:"product_type"`
	SubProductType       *string           `json:"sub_product_type"`
	ProductVariant       *string           `json:"product_variant"`
	SchemeName           *string           `json:"scheme_name"`
	SchemeCode           *string           `json:"scheme_code"`
}

// FilterResponse is one free-form filter pair in API responses
type FilterResponse struct {
	ID    uint   `json:"id"`
	Key   string `json:"key"`
	Value string `json:"value"`
}

// CampaignResponse represents the response for campaign operations
type CampaignResponse struct {
	ID                   uint             `json:"id"`
	Name                 string           `json:"name"`
	StateID              uint             `json:"state_id"`
	DpdID                uint             `json:"dpd_id"`
	ChannelID            uint             `json:"channel_id"`
	TemplateID           uint             `json:"template_id"`
	LanguageID           uint             `json:"language_id"`
	Retries              int              `json:"retries"`
	RetryIntervalMinutes int              `json:"retry_interval_minutes"`
	StartDate            string           `json:"start_date"`
	EndDate              string           `json:"end_date"`
	Status               string           `json:"status"`
	ConditionCount       int              `json:"condition_count"`
	AssignedCount        int              `json:"assigned_count"`
	BorrowerType         *string          `json:"borrower_type"`
	Segment              *string          `json:"segment"`
	ProductGroup         *string          `json:"product_group"`
	ProductType          *string          `json:"product_type"`
	SubProductType       *string          `json:"sub_product_type"`
	ProductVariant       *string          `json:"product_variant"`
	SchemeName           *string          `json:"scheme_name"`
	SchemeCode           *string          `json:"scheme_code"`
	Filters              []FilterResponse `json:"filters"`
	CreatedBy            uint             `json:"created_by"`
	UpdatedBy            uint             `json:"updated_by"`
	CreatedAt            string           `json:"created_at"`
	UpdatedAt            string           `json:"updated_at"`
}

// CampaignListResponse is a page of campaigns plus the total count
type CampaignListResponse struct {
	Campaigns []*CampaignResponse `json:"campaigns"`
	Total     int64               `json:"total"`
}

// CampaignListQuery holds validated list parameters
type CampaignListQuery struct {
	Page      int
	Limit     int
	Status    string
	Search    string
	SortBy    string
	SortOrder string
}

// CampaignMetricsResponse carries placeholder delivery metrics. Real numbers
// come from the out-of-scope analytics system.
type CampaignMetricsResponse struct {
	CampaignID     uint    `json:"campaign_id"`
	CampaignName   string  `json:"campaign_name"`
	Status         string  `json:"status"`
	TotalTargets   int     `json:"total_targets"`
	Delivered      int     `json:"delivered"`
	Opened         int     `json:"opened"`
	Clicked        int     `json:"clicked"`
	ConversionRate float64 `json:"conversion_rate"`
}
