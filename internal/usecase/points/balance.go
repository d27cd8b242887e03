package points

import (
	"context"

	domain "github.com/fidelize/loyalty-admin/internal/domain/points"
	"github.com/fidelize/loyalty-admin/internal/httperr"
	"github.com/fidelize/loyalty-admin/internal/models"
)

// GetBalance recomputes a customer's balance as the sum of their ledger
// entries. The balance is never stored, so it can't drift from the ledger.
type GetBalance struct {
	repo domain.Repository
}

func NewGetBalance(repo domain.Repository) *GetBalance {
	return &GetBalance{repo: repo}
}

type BalanceResult struct {
	Customer *models.Customer
	Balance  int64
	Entries  []models.PointsEntry
}

func (uc *GetBalance) Execute(
	ctx context.Context,
	customerID string,
	limit int,
	offset int,
) (*BalanceResult, error) {

	customer, err := uc.repo.GetCustomerByID(ctx, customerID)
	if err != nil {
		return nil, httperr.ErrBusiness("customer_not_found")
	}

	balance, err := uc.repo.SumBalance(ctx, customerID)
	if err != nil {
		return nil, err
	}

	entries, err := uc.repo.ListEntries(ctx, customerID, limit, offset)
	if err != nil {
		return nil, err
	}

	return &BalanceResult{
		Customer: customer,
		Balance:  balance,
		Entries:  entries,
	}, nil
}
