package repository

import (
	"gorm.io/gorm"

	"github.com/collectflow/collections-campaign-backend/internal/models"
)

type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// FindMatchingIDs evaluates a compiled campaign predicate against the
// customer population and returns the matching customer ids
func (r *CustomerRepository) FindMatchingIDs(filter models.CustomerFilter) ([]uint, error) {
	conditions, args := filter.Conditions()
	var ids []uint
	err := r.db.Model(&models.Customer{}).
		Where(conditions, args...).
		Pluck("id", &ids).Error
	return ids, err
}
