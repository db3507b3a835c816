package models

import (
	"time"
)

// Customer is the minimal borrower profile used for assignment matching.
// Rows are immutable once seeded.
type Customer struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	StateID        uint      `json:"state_id" gorm:"not null;index"`
	DpdID          uint      `json:"dpd_id" gorm:"not null;index"`
	BorrowerType   *string   `json:"borrower_type" gorm:"type:varchar(50)"`
	Segment        *string   `json:"segment" gorm:"type:varchar(100)"`
	ProductGroup   *string   `json:"product_group" gorm:"type:varchar(100)"`
	ProductType    *string   `json:"product_type" gorm:"type:varchar(100)"`
	SubProductType *string   `json:"sub_product_type" gorm:"type:varchar(100)"`
	ProductVariant *string   `json:"product_variant" gorm:"type:varchar(100)"`
	SchemeName     *string   `json:"scheme_name" gorm:"type:varchar(150)"`
	SchemeCode     *string   `json:"scheme_code" gorm:"type:varchar(100)"`
	CreatedAt      time.Time `json:"created_at"`
}

func (Customer) TableName() string {
	return "customers"
}

// CampaignAssignment is one persisted (campaign, customer) match produced by
// the assignment engine. Append-only.
type CampaignAssignment struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	CampaignID uint      `json:"campaign_id" gorm:"not null;index"`
	CustomerID uint      `json:"customer_id" gorm:"not null;index"`
	AssignedAt time.Time `json:"assigned_at" gorm:"autoCreateTime"`
}

func (CampaignAssignment) TableName() string {
	return "campaign_assignments"
}

// Assignment audit actions
const (
	AssignmentActionAssign  = "ASSIGN"
	AssignmentActionNoMatch = "NO_MATCH"
	AssignmentActionError   = "ERROR"
)

// AssignmentAudit is an append-only log row describing one assignment run
// outcome. Campaign is a weak back-reference by id.
type AssignmentAudit struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	CampaignID uint      `json:"campaign_id" gorm:"not null;index"`
	Action     string    `json:"action" gorm:"type:varchar(50);not null"`
	Details    string    `json:"details" gorm:"type:varchar(2000)"`
	CreatedAt  time.Time `json:"created_at"`
}

func (AssignmentAudit) TableName() string {
	return "assignment_audit"
}

// CustomerFilter is the compiled match predicate of a campaign: a conjunction
// of state and dpd equality plus one equality clause per non-nil optional
// field.
type CustomerFilter struct {
	StateID        uint
	DpdID          uint
	BorrowerType   *string
	Segment        *string
	ProductGroup   *string
	ProductType    *string
	SubProductType *string
	ProductVariant *string
	SchemeName     *string
	SchemeCode     *string
}

// scalarClauses pairs each optional clause with the customer column it
// constrains, keeping SQL building and in-memory evaluation in sync.
func (f CustomerFilter) scalarClauses() []struct {
	Column string
	Value  *string
} {
	return []struct {
		Column string
		Value  *string
	}{
		{"borrower_type", f.BorrowerType},
		{"segment", f.Segment},
		{"product_group", f.ProductGroup},
		{"product_type", f.ProductType},
		{"sub_product_type", f.SubProductType},
		{"product_variant", f.ProductVariant},
		{"scheme_name", f.SchemeName},
		{"scheme_code", f.SchemeCode},
	}
}

// Conditions renders the predicate as a SQL fragment plus arguments for a
// WHERE clause over the customers table.
func (f CustomerFilter) Conditions() (string, []interface{}) {
	query := "state_id = ? AND dpd_id = ?"
	args := []interface{}{f.StateID, f.DpdID}
	for _, clause := range f.scalarClauses() {
		if clause.Value != nil {
			query += " AND " + clause.Column + " = ?"
			args = append(args, *clause.Value)
		}
	}
	return query, args
}

// Matches evaluates the predicate against a single customer in memory. A nil
// filter value places no constraint on that field; a nil customer value never
// satisfies a set constraint.
func (f CustomerFilter) Matches(c *Customer) bool {
	if c.StateID != f.StateID || c.DpdID != f.DpdID {
		return false
	}
	fields := []struct {
		want *string
		have *string
	}{
		{f.BorrowerType, c.BorrowerType},
		{f.Segment, c.Segment},
		{f.ProductGroup, c.ProductGroup},
		{f.ProductType, c.ProductType},
		{f.SubProductType, c.SubProductType},
		{f.ProductVariant, c.ProductVariant},
		{f.SchemeName, c.SchemeName},
		{f.SchemeCode, c.SchemeCode},
	}
	for _, field := range fields {
		if field.want == nil {
			continue
		}
		if field.have == nil || *field.have != *field.want {
			return false
		}
	}
	return true
}

// AssignResult is the outcome of one assignment run
type AssignResult struct {
	Assigned int    `json:"assigned"`
	Status   string `json:"status"`
}
