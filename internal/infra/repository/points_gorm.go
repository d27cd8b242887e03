package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/fidelize/loyalty-admin/internal/models"
)

// PointsGormRepository persists the points ledger. There is no update path
// on purpose: entries are appended and the balance is always recomputed.
type PointsGormRepository struct {
	db *gorm.DB
}

func NewPointsGormRepository(db *gorm.DB) *PointsGormRepository {
	return &PointsGormRepository{db: db}
}

// --------------------------------------------------
// Customer
// --------------------------------------------------

func (r *PointsGormRepository) GetCustomerByID(
	ctx context.Context,
	customerID string,
) (*models.Customer, error) {

	var customer models.Customer
	if err := r.db.WithContext(ctx).
		Where("id = ?", customerID).
		First(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// --------------------------------------------------
// Ledger
// --------------------------------------------------

func (r *PointsGormRepository) AppendEntry(
	ctx context.Context,
	entry *models.PointsEntry,
) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *PointsGormRepository) SumBalance(
	ctx context.Context,
	customerID string,
) (int64, error) {

	var balance int64
	err := r.db.WithContext(ctx).
		Model(&models.PointsEntry{}).
		Where("customer_id = ?", customerID).
		Select("COALESCE(SUM(delta), 0)").
		Scan(&balance).Error
	return balance, err
}

func (r *PointsGormRepository) ListEntries(
	ctx context.Context,
	customerID string,
	limit int,
	offset int,
) ([]models.PointsEntry, error) {

	var entries []models.PointsEntry
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
