package points

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/fidelize/loyalty-admin/internal/httperr"
	"github.com/fidelize/loyalty-admin/internal/models"
	"github.com/fidelize/loyalty-admin/internal/session"
)

// fakeRepo is an in-memory ledger: append-only slice, balance derived by
// summing, mirroring the persistence contract.
type fakeRepo struct {
	mu         sync.Mutex
	customers  map[string]*models.Customer
	entries    []models.PointsEntry
	failAppend error
	nextID     uint
}

func newFakeRepo(customerIDs ...string) *fakeRepo {
	r := &fakeRepo{customers: make(map[string]*models.Customer)}
	for _, id := range customerIDs {
		r.customers[id] = &models.Customer{ID: id, Name: "Customer " + id}
	}
	return r
}

func (r *fakeRepo) GetCustomerByID(_ context.Context, customerID string) (*models.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	customer, ok := r.customers[customerID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return customer, nil
}

func (r *fakeRepo) AppendEntry(_ context.Context, entry *models.PointsEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAppend != nil {
		return r.failAppend
	}
	r.nextID++
	entry.ID = r.nextID
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *fakeRepo) SumBalance(_ context.Context, customerID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var sum int64
	for _, entry := range r.entries {
		if entry.CustomerID == customerID {
			sum += int64(entry.Delta)
		}
	}
	return sum, nil
}

func (r *fakeRepo) ListEntries(_ context.Context, customerID string, limit, offset int) ([]models.PointsEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.PointsEntry
	for _, entry := range r.entries {
		if entry.CustomerID == customerID {
			out = append(out, entry)
		}
	}
	return out, nil
}

func (r *fakeRepo) entryCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func adminSession() *session.Session {
	return &session.Session{UserID: 7, Username: "alice", Name: "Alice", Role: models.RoleAdmin}
}

func TestGrantAppendsEntry(t *testing.T) {
	repo := newFakeRepo("c-1")
	uc := NewGrantPoints(repo)

	entry, err := uc.Execute(context.Background(), adminSession(), "c-1", 50, "promo")
	require.NoError(t, err)

	assert.Equal(t, "c-1", entry.CustomerID)
	assert.Equal(t, 50, entry.Delta)
	assert.Equal(t, "promo", entry.Reason)
	assert.Equal(t, uint(7), entry.AdminID)
	assert.NotZero(t, entry.ID)
}

func TestGrantZeroDeltaFailsBeforeWrite(t *testing.T) {
	repo := newFakeRepo("c-1")
	uc := NewGrantPoints(repo)

	_, err := uc.Execute(context.Background(), adminSession(), "c-1", 0, "promo")
	assert.True(t, httperr.IsBusiness(err, "invalid_delta"))
	assert.Zero(t, repo.entryCount())
}

func TestGrantEmptyReasonFailsBeforeWrite(t *testing.T) {
	repo := newFakeRepo("c-1")
	uc := NewGrantPoints(repo)

	_, err := uc.Execute(context.Background(), adminSession(), "c-1", 50, "   ")
	assert.True(t, httperr.IsBusiness(err, "missing_reason"))
	assert.Zero(t, repo.entryCount())
}

func TestGrantUnknownCustomer(t *testing.T) {
	repo := newFakeRepo()
	uc := NewGrantPoints(repo)

	_, err := uc.Execute(context.Background(), adminSession(), "ghost", 50, "promo")
	assert.True(t, httperr.IsBusiness(err, "customer_not_found"))
	assert.Zero(t, repo.entryCount())
}

func TestGrantWithoutActorIsNotBusiness(t *testing.T) {
	repo := newFakeRepo("c-1")
	uc := NewGrantPoints(repo)

	// o gate deveria ter barrado antes; isso é erro interno, não 4xx
	_, err := uc.Execute(context.Background(), nil, "c-1", 50, "promo")
	require.Error(t, err)
	assert.False(t, httperr.IsAnyBusiness(err))
	assert.Zero(t, repo.entryCount())
}

func TestGrantLedgerFailureSurfaces(t *testing.T) {
	repo := newFakeRepo("c-1")
	repo.failAppend = errors.New("ledger down")
	uc := NewGrantPoints(repo)

	_, err := uc.Execute(context.Background(), adminSession(), "c-1", 50, "promo")
	require.Error(t, err)
	assert.False(t, httperr.IsAnyBusiness(err))
}

func TestGrantNegativeDeltaDebitsBalance(t *testing.T) {
	repo := newFakeRepo("c-1")
	uc := NewGrantPoints(repo)

	_, err := uc.Execute(context.Background(), adminSession(), "c-1", 100, "promo")
	require.NoError(t, err)
	_, err = uc.Execute(context.Background(), adminSession(), "c-1", -30, "resgate")
	require.NoError(t, err)

	balance, err := repo.SumBalance(context.Background(), "c-1")
	require.NoError(t, err)
	assert.Equal(t, int64(70), balance)
}

// Concurrent grants never lose entries: the balance equals the sum of all
// deltas because the ledger is append-only, never read-modify-write.
func TestConcurrentGrantsSumExactly(t *testing.T) {
	repo := newFakeRepo("c-1")
	uc := NewGrantPoints(repo)

	const n = 50
	var wg sync.WaitGroup
	var expected int64

	for i := 1; i <= n; i++ {
		expected += int64(i)
		wg.Add(1)
		go func(delta int) {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), adminSession(), "c-1", delta, "carga")
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	balance, err := repo.SumBalance(context.Background(), "c-1")
	require.NoError(t, err)
	assert.Equal(t, expected, balance)
	assert.Equal(t, n, repo.entryCount())
}
