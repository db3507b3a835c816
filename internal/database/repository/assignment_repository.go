package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/collectflow/collections-campaign-backend/internal/apperrors"
	"github.com/collectflow/collections-campaign-backend/internal/models"
)

type AssignmentRepository struct {
	db *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// AssignCustomers materializes one assignment run: a single multi-row insert
// of the matched set, the counter/status update and the ASSIGN audit row, all
// in one transaction. The status update is conditioned on the campaign still
// being Active so two racing runs cannot both commit.
func (r *AssignmentRepository) AssignCustomers(campaignID uint, customerIDs []uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Campaign{}).
			Where("id = ? AND status = ?", campaignID, models.StatusActive).
			Updates(map[string]interface{}{
				"status":         models.StatusAssigned,
				"assigned_count": len(customerIDs),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperrors.NewInvalidState("Campaign must be Active to assign")
		}

		assignments := make([]models.CampaignAssignment, len(customerIDs))
		for i, customerID := range customerIDs {
			assignments[i] = models.CampaignAssignment{
				CampaignID: campaignID,
				CustomerID: customerID,
			}
		}
		if err := tx.Create(&assignments).Error; err != nil {
			return err
		}

		audit := models.AssignmentAudit{
			CampaignID: campaignID,
			Action:     models.AssignmentActionAssign,
			Details:    fmt.Sprintf("Assigned %d customers", len(customerIDs)),
		}
		return tx.Create(&audit).Error
	})
}

// MarkNoMatch records an empty assignment run: status NoMatchFound, zero
// count and the NO_MATCH audit row in one transaction, conditioned on the
// campaign still being Active
func (r *AssignmentRepository) MarkNoMatch(campaignID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Campaign{}).
			Where("id = ? AND status = ?", campaignID, models.StatusActive).
			Updates(map[string]interface{}{
				"status":         models.StatusNoMatchFound,
				"assigned_count": 0,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperrors.NewInvalidState("Campaign must be Active to assign")
		}

		audit := models.AssignmentAudit{
			CampaignID: campaignID,
			Action:     models.AssignmentActionNoMatch,
			Details:    "No customers matched campaign filters",
		}
		return tx.Create(&audit).Error
	})
}

// AppendError records a failed assignment run. Runs outside the assignment
// transaction so the row survives its rollback.
func (r *AssignmentRepository) AppendError(campaignID uint, details string) error {
	audit := models.AssignmentAudit{
		CampaignID: campaignID,
		Action:     models.AssignmentActionError,
		Details:    details,
	}
	return r.db.Create(&audit).Error
}
