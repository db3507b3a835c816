package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/collectflow/collections-campaign-backend/internal/apperrors"
	"github.com/collectflow/collections-campaign-backend/internal/models"
	"github.com/collectflow/collections-campaign-backend/internal/utils"
)

type ApprovalRepository struct {
	db *gorm.DB
}

func NewApprovalRepository(db *gorm.DB) *ApprovalRepository {
	return &ApprovalRepository{db: db}
}

// ApplyTransition performs one state-machine transition atomically: the
// campaign row update is conditioned on the expected current status, so a
// transition raced in between the caller's guard check and this write makes
// the UPDATE touch zero rows and the whole transaction fails with
// InvalidTransition. The audit row is appended in the same transaction.
func (r *ApprovalRepository) ApplyTransition(campaignID uint, action, fromStatus string, updates map[string]interface{}, audit *models.ApprovalAudit) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Campaign{}).
			Where("id = ? AND status = ?", campaignID, fromStatus).
			Updates(updates)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var current models.Campaign
			if err := tx.Select("status").First(&current, "id = ?", campaignID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperrors.NewNotFound("campaign", campaignID)
				}
				return err
			}
			return apperrors.NewInvalidTransition(action, current.Status, fromStatus)
		}
		return tx.Create(audit).Error
	})
}

const reviewSelect = `
	c.id, c.name, c.status, c.condition_count, c.assigned_count,
	to_char(c.start_date, 'YYYY-MM-DD') AS start_date,
	to_char(c.end_date, 'YYYY-MM-DD') AS end_date,
	c.retries, c.retry_interval_minutes,
	c.borrower_type, c.segment, c.product_group, c.product_type,
	c.sub_product_type, c.product_variant, c.scheme_name, c.scheme_code,
	c.submitted_for_approval_at, c.approved_at, c.approved_by,
	c.rejected_at, c.rejected_by, c.rejection_remarks,
	c.created_by, c.updated_by, c.created_at, c.updated_at,
	s.name AS state_name, d.name AS dpd_name, ch.name AS channel_name,
	t.name AS template_name, l.name AS language_name`

const reviewJoins = `
	FROM campaigns c
	LEFT JOIN states s ON c.state_id = s.id
	LEFT JOIN dpd_buckets d ON c.dpd_id = d.id
	LEFT JOIN channels ch ON c.channel_id = ch.id
	LEFT JOIN templates t ON c.template_id = t.id
	LEFT JOIN languages l ON c.language_id = l.id`

var pendingSortColumns = map[string]string{
	"createdAt":              "c.created_at",
	"submittedForApprovalAt": "c.submitted_for_approval_at",
	"name":                   "c.name",
}

// PendingList returns one page of campaigns awaiting review, hydrated with
// reference-data names, plus the total pending count
func (r *ApprovalRepository) PendingList(q models.PendingApprovalQuery) ([]*models.CampaignReviewResponse, int64, error) {
	where := "WHERE c.status = ?"
	args := []interface{}{models.StatusPendingApproval}
	if term := strings.TrimSpace(q.Search); term != "" {
		where += " AND lower(c.name) LIKE ?"
		args = append(args, "%"+strings.ToLower(term)+"%")
	}

	var total int64
	if err := r.db.Raw("SELECT count(*) FROM campaigns c "+where, args...).Scan(&total).Error; err != nil {
		return nil, 0, err
	}

	column, ok := pendingSortColumns[q.SortBy]
	if !ok {
		column = "c.submitted_for_approval_at"
	}
	direction := "DESC"
	if strings.EqualFold(q.SortOrder, "asc") {
		direction = "ASC"
	}

	var campaigns []*models.CampaignReviewResponse
	query := "SELECT " + reviewSelect + reviewJoins + " " + where +
		" ORDER BY " + column + " " + direction + " LIMIT ? OFFSET ?"
	args = append(args, q.Limit, utils.CalculateOffset(q.Page, q.Limit))
	if err := r.db.Raw(query, args...).Scan(&campaigns).Error; err != nil {
		return nil, 0, err
	}
	return campaigns, total, nil
}

// GetReview returns one campaign hydrated with reference names and the
// creator's name, nil when absent
func (r *ApprovalRepository) GetReview(campaignID uint) (*models.CampaignReviewResponse, error) {
	var review models.CampaignReviewResponse
	query := "SELECT " + reviewSelect + `, u.full_name AS created_by_name` +
		reviewJoins + `
	LEFT JOIN users u ON c.created_by = u.id
	WHERE c.id = ?`
	result := r.db.Raw(query, campaignID).Scan(&review)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &review, nil
}

// History returns the full approval audit trail of a campaign, newest first
func (r *ApprovalRepository) History(campaignID uint) ([]*models.ApprovalHistoryEntry, error) {
	var entries []*models.ApprovalHistoryEntry
	err := r.db.Raw(`
		SELECT a.id, a.action, a.remarks, a.created_at AS performed_at,
		       u.full_name AS performed_by_name
		FROM approval_audit a
		LEFT JOIN users u ON a.performed_by = u.id
		WHERE a.campaign_id = ?
		ORDER BY a.created_at DESC
	`, campaignID).Scan(&entries).Error
	return entries, err
}

// ExportPending returns all pending-approval campaigns flattened with
// resolved names, newest submission first
func (r *ApprovalRepository) ExportPending() ([]*models.ApprovalExportRow, error) {
	var rows []*models.ApprovalExportRow
	err := r.db.Raw(`
		SELECT c.id, c.name, c.status,
		       s.name AS state_name, d.name AS dpd_name, ch.name AS channel_name,
		       t.name AS template_name, l.name AS language_name,
		       c.condition_count, c.assigned_count,
		       to_char(c.start_date, 'YYYY-MM-DD') AS start_date,
		       to_char(c.end_date, 'YYYY-MM-DD') AS end_date,
		       c.submitted_for_approval_at, u.full_name AS created_by_name
		`+reviewJoins+`
		LEFT JOIN users u ON c.created_by = u.id
		WHERE c.status = ?
		ORDER BY c.submitted_for_approval_at DESC
	`, models.StatusPendingApproval).Scan(&rows).Error
	return rows, err
}
