package points

import (
	"context"
	"errors"
	"strings"

	domain "github.com/fidelize/loyalty-admin/internal/domain/points"
	"github.com/fidelize/loyalty-admin/internal/httperr"
	"github.com/fidelize/loyalty-admin/internal/models"
	"github.com/fidelize/loyalty-admin/internal/session"
)

// GrantPoints appends one signed delta to a customer's ledger.
//
// The append is fail-closed: a lost ledger write would corrupt the
// balance, so persistence failures surface to the caller. The audit entry
// for the grant is recorded by the handler after this succeeds.
type GrantPoints struct {
	repo domain.Repository
}

func NewGrantPoints(repo domain.Repository) *GrantPoints {
	return &GrantPoints{repo: repo}
}

func (uc *GrantPoints) Execute(
	ctx context.Context,
	actor *session.Session,
	customerID string,
	delta int,
	reason string,
) (*models.PointsEntry, error) {

	// O gate já rodou; actor ausente aqui é bug de wiring, não 4xx.
	if actor == nil || actor.UserID == 0 {
		return nil, errors.New("points grant without acting admin")
	}

	if delta == 0 {
		return nil, httperr.ErrBusiness("invalid_delta")
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, httperr.ErrBusiness("missing_reason")
	}

	if _, err := uc.repo.GetCustomerByID(ctx, customerID); err != nil {
		return nil, httperr.ErrBusiness("customer_not_found")
	}

	entry := &models.PointsEntry{
		CustomerID: customerID,
		Delta:      delta,
		Reason:     reason,
		AdminID:    actor.UserID,
	}

	if err := uc.repo.AppendEntry(ctx, entry); err != nil {
		return nil, err
	}

	return entry, nil
}
