package points

import (
	"context"

	"github.com/fidelize/loyalty-admin/internal/models"
)

type Repository interface {
	// -------- Customer --------
	GetCustomerByID(
		ctx context.Context,
		customerID string,
	) (*models.Customer, error)

	// -------- Ledger (append-only) --------
	AppendEntry(
		ctx context.Context,
		entry *models.PointsEntry,
	) error

	SumBalance(
		ctx context.Context,
		customerID string,
	) (int64, error)

	ListEntries(
		ctx context.Context,
		customerID string,
		limit int,
		offset int,
	) ([]models.PointsEntry, error)
}
