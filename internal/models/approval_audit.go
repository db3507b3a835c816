package models

import (
	"time"
)

// Approval audit actions
const (
	ApprovalActionSubmit  = "SUBMIT"
	ApprovalActionApprove = "APPROVE"
	ApprovalActionReject  = "REJECT"
)

// ApprovalAudit is an append-only log row for one approval-workflow action.
// Rows are never mutated or deleted; Campaign is a weak back-reference by id.
type ApprovalAudit struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	CampaignID  uint      `json:"campaign_id" gorm:"not null;index"`
	Action      string    `json:"action" gorm:"type:varchar(20);not null"`
	PerformedBy uint      `json:"performed_by" gorm:"not null"`
	Remarks     *string   `json:"remarks" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`
}

func (ApprovalAudit) TableName() string {
	return "approval_audit"
}

// SubmitForApprovalRequest carries optional submission remarks
type SubmitForApprovalRequest struct {
	Remarks string `json:"remarks"`
}

// ApproveCampaignRequest carries optional approval remarks
type ApproveCampaignRequest struct {
	Remarks string `json:"remarks"`
}

// RejectCampaignRequest carries the mandatory rejection remarks
type RejectCampaignRequest struct {
	RejectionRemarks string `json:"rejection_remarks" binding:"required"`
}

// CampaignReviewResponse is a campaign hydrated with resolved reference-data
// names for the checker review view
type CampaignReviewResponse struct {
	ID                     uint       `json:"id"`
	Name                   string     `json:"name"`
	Status                 string     `json:"status"`
	ConditionCount         int        `json:"condition_count"`
	AssignedCount          int        `json:"assigned_count"`
	StartDate              string     `json:"start_date"`
	EndDate                string     `json:"end_date"`
	Retries                int        `json:"retries"`
	RetryIntervalMinutes   int        `json:"retry_interval_minutes"`
	BorrowerType           *string    `json:"borrower_type"`
	Segment                *string    `json:"segment"`
	ProductGroup           *string    `json:"product_group"`
	ProductType            *string    `json:"product_type"`
	SubProductType         *string    `json:"sub_product_type"`
	ProductVariant         *string    `json:"product_variant"`
	SchemeName             *string    `json:"scheme_name"`
	SchemeCode             *string    `json:"scheme_code"`
	SubmittedForApprovalAt *time.Time `json:"submitted_for_approval_at"`
	ApprovedAt             *time.Time `json:"approved_at"`
	ApprovedBy             *uint      `json:"approved_by"`
	RejectedAt             *time.Time `json:"rejected_at"`
	RejectedBy             *uint      `json:"rejected_by"`
	RejectionRemarks       *string    `json:"rejection_remarks"`
	StateName              string     `json:"state_name"`
	DpdName                string     `json:"dpd_name"`
	ChannelName            string     `json:"channel_name"`
	TemplateName           string     `json:"template_name"`
	LanguageName           string     `json:"language_name"`
	CreatedByName          string     `json:"created_by_name,omitempty"`
	CreatedBy              uint       `json:"created_by"`
	UpdatedBy              uint       `json:"updated_by"`
	CreatedAt              time.Time  `json:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at"`
}

// PendingApprovalListResponse is a page of campaigns awaiting review
type PendingApprovalListResponse struct {
	Campaigns []*CampaignReviewResponse `json:"campaigns"`
	Total     int64                     `json:"total"`
}

// PendingApprovalQuery holds validated pending-list parameters
type PendingApprovalQuery struct {
	Page      int
	Limit     int
	Search    string
	SortBy    string
	SortOrder string
}

// ApprovalHistoryEntry is one row of a campaign's approval history
type ApprovalHistoryEntry struct {
	ID              uint      `json:"id"`
	Action          string    `json:"action"`
	Remarks         *string   `json:"remarks"`
	PerformedAt     time.Time `json:"performed_at"`
	PerformedByName string    `json:"performed_by_name"`
}

// ApprovalExportRow is one flattened pending-approval campaign for export.
// Column order is fixed: ID, Name, Status, State, DPD, Channel, Template,
// Language, Condition Count, Assigned Count, Start Date, End Date,
// Submitted At, Created By.
type ApprovalExportRow struct {
	ID                     uint       `json:"id"`
	Name                   string     `json:"name"`
	Status                 string     `json:"status"`
	StateName              string     `json:"state_name"`
	DpdName                string     `json:"dpd_name"`
	ChannelName            string     `json:"channel_name"`
	TemplateName           string     `json:"template_name"`
	LanguageName           string     `json:"language_name"`
	ConditionCount         int        `json:"condition_count"`
	AssignedCount          int        `json:"assigned_count"`
	StartDate              string     `json:"start_date"`
	EndDate                string     `json:"end_date"`
	SubmittedForApprovalAt *time.Time `json:"submitted_for_approval_at"`
	CreatedByName          string     `json:"created_by_name"`
}
