package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fidelize/loyalty-admin/internal/audit"
	"github.com/fidelize/loyalty-admin/internal/httperr"
	"github.com/fidelize/loyalty-admin/internal/httpresp"
	"github.com/fidelize/loyalty-admin/internal/models"
	"github.com/fidelize/loyalty-admin/internal/session"
	ucPoints "github.com/fidelize/loyalty-admin/internal/usecase/points"
)

// ======================================================
// HANDLER
// ======================================================

type PointsHandler struct {
	grantUC   *ucPoints.GrantPoints
	balanceUC *ucPoints.GetBalance
	recorder  *audit.Recorder
}

func NewPointsHandler(
	grantUC *ucPoints.GrantPoints,
	balanceUC *ucPoints.GetBalance,
	recorder *audit.Recorder,
) *PointsHandler {
	return &PointsHandler{
		grantUC:   grantUC,
		balanceUC: balanceUC,
		recorder:  recorder,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type GrantPointsRequest struct {
	Points int    `json:"points"`
	Reason string `json:"reason"`
}

// ======================================================
// GRANT
// ======================================================

func (h *PointsHandler) Grant(c *gin.Context) {
	customerID := c.Param("id")

	var req GrantPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Points and reason are required")
		return
	}

	actor := session.FromContext(c)

	entry, err := h.grantUC.Execute(
		c.Request.Context(),
		actor,
		customerID,
		req.Points,
		req.Reason,
	)
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "invalid_delta"):
			httperr.BadRequest(c, "Points must be non-zero")
		case httperr.IsBusiness(err, "missing_reason"):
			httperr.BadRequest(c, "Reason is required")
		case httperr.IsBusiness(err, "customer_not_found"):
			httperr.NotFound(c, "Customer not found")
		default:
			// falha no append do ledger → a operação falha (fail-closed)
			httperr.Internal(c)
		}
		return
	}

	// audit só depois do ledger persistido; nunca altera o resultado HTTP
	h.recorder.FromRequest(c, models.ActionPointsGrant, "customers", customerID, gin.H{
		"entry_id": entry.ID,
		"delta":    entry.Delta,
		"reason":   entry.Reason,
	})

	httpresp.OK(c, "Points updated successfully", gin.H{
		"entry_id":    entry.ID,
		"customer_id": entry.CustomerID,
		"delta":       entry.Delta,
	})
}

// ======================================================
// BALANCE + HISTORY
// ======================================================

func (h *PointsHandler) Balance(c *gin.Context) {
	customerID := c.Param("id")

	limitStr := c.DefaultQuery("limit", "50")
	limit, _ := strconv.Atoi(limitStr)
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	offsetStr := c.DefaultQuery("offset", "0")
	offset, _ := strconv.Atoi(offsetStr)
	if offset < 0 {
		offset = 0
	}

	result, err := h.balanceUC.Execute(c.Request.Context(), customerID, limit, offset)
	if err != nil {
		if httperr.IsBusiness(err, "customer_not_found") {
			httperr.NotFound(c, "Customer not found")
			return
		}
		httperr.Internal(c)
		return
	}

	c.JSON(200, gin.H{
		"customer_id": result.Customer.ID,
		"balance":     result.Balance,
		"entries":     result.Entries,
	})
}
