package handlers

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/fidelize/loyalty-admin/internal/audit"
	"github.com/fidelize/loyalty-admin/internal/config"
	"github.com/fidelize/loyalty-admin/internal/middleware"
	"github.com/fidelize/loyalty-admin/internal/models"
	"github.com/fidelize/loyalty-admin/internal/session"
	"github.com/fidelize/loyalty-admin/internal/tokens"
	ucPoints "github.com/fidelize/loyalty-admin/internal/usecase/points"
)

// ------------------------------
// config / tokens
// ------------------------------

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:      "test-secret",
		JWTExpireHours: 1,
		CookieName:     "loyalty_token",
		AuditQueueSize: 32,
	}
}

func signTestToken(t *testing.T, cfg *config.Config, userID uint, username, role string) string {
	t.Helper()

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      float64(userID),
		"username": username,
		"name":     username,
		"role":     role,
		"jti":      uuid.NewString(),
		"exp":      now.Add(time.Hour).Unix(),
		"iat":      now.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.JWTSecret))
	require.NoError(t, err)
	return token
}

// ------------------------------
// audit sink de teste
// ------------------------------

type testSink struct {
	mu      sync.Mutex
	entries []models.AuditLog
	err     error
}

func (s *testSink) Write(entry models.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.entries = append(s.entries, entry)
	return nil
}

func (s *testSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *testSink) last() models.AuditLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries[len(s.entries)-1]
}

// ------------------------------
// ledger fake (in-memory, append-only)
// ------------------------------

type testLedger struct {
	mu         sync.Mutex
	customers  map[string]*models.Customer
	entries    []models.PointsEntry
	failAppend error
	nextID     uint
}

func newTestLedger(customerIDs ...string) *testLedger {
	l := &testLedger{customers: make(map[string]*models.Customer)}
	for _, id := range customerIDs {
		l.customers[id] = &models.Customer{ID: id, Name: "Customer " + id}
	}
	return l
}

func (l *testLedger) GetCustomerByID(_ context.Context, customerID string) (*models.Customer, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	customer, ok := l.customers[customerID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return customer, nil
}

func (l *testLedger) AppendEntry(_ context.Context, entry *models.PointsEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.failAppend != nil {
		return l.failAppend
	}
	l.nextID++
	entry.ID = l.nextID
	l.entries = append(l.entries, *entry)
	return nil
}

func (l *testLedger) SumBalance(_ context.Context, customerID string) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var sum int64
	for _, entry := range l.entries {
		if entry.CustomerID == customerID {
			sum += int64(entry.Delta)
		}
	}
	return sum, nil
}

func (l *testLedger) ListEntries(_ context.Context, customerID string, limit, offset int) ([]models.PointsEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []models.PointsEntry
	for _, entry := range l.entries {
		if entry.CustomerID == customerID {
			out = append(out, entry)
		}
	}
	return out, nil
}

func (l *testLedger) entryCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// ------------------------------
// router de teste (pipeline completo)
// ------------------------------

type testEnv struct {
	router   *gin.Engine
	cfg      *config.Config
	ledger   *testLedger
	sink     *testSink
	denylist tokens.Denylist
}

func newTestEnv(t *testing.T, ledger *testLedger, sink *testSink) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := testConfig()
	denylist := tokens.NewMemoryDenylist()
	resolver := session.NewResolver([]byte(cfg.JWTSecret), denylist)

	dispatcher := audit.NewDispatcher(sink, cfg.AuditQueueSize)
	t.Cleanup(dispatcher.Close)
	recorder := audit.NewRecorder(dispatcher)

	grantUC := ucPoints.NewGrantPoints(ledger)
	balanceUC := ucPoints.NewGetBalance(ledger)

	pointsHandler := NewPointsHandler(grantUC, balanceUC, recorder)
	authHandler := NewAuthHandler(nil, cfg, denylist, recorder)

	r := gin.New()
	api := r.Group("/api")

	secured := api.Group("/")
	secured.Use(middleware.AuthMiddleware(cfg, resolver))
	{
		secured.POST("/auth/logout", authHandler.Logout)

		managed := secured.Group("/")
		managed.Use(middleware.Require(session.Managers(cfg.DiagUsername)))
		{
			managed.POST("/customers/:id/points", pointsHandler.Grant)
			managed.GET("/customers/:id/points", pointsHandler.Balance)
		}
	}

	return &testEnv{
		router:   r,
		cfg:      cfg,
		ledger:   ledger,
		sink:     sink,
		denylist: denylist,
	}
}
