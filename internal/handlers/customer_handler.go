package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fidelize/loyalty-admin/internal/audit"
	domain "github.com/fidelize/loyalty-admin/internal/domain/points"
	"github.com/fidelize/loyalty-admin/internal/httperr"
	"github.com/fidelize/loyalty-admin/internal/httpresp"
	"github.com/fidelize/loyalty-admin/internal/models"
	"github.com/fidelize/loyalty-admin/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

type CustomerHandler struct {
	db       *gorm.DB
	repo     domain.Repository
	recorder *audit.Recorder
}

func NewCustomerHandler(
	db *gorm.DB,
	repo domain.Repository,
	recorder *audit.Recorder,
) *CustomerHandler {
	return &CustomerHandler{
		db:       db,
		repo:     repo,
		recorder: recorder,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateCustomerRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// ======================================================
// LIST
// ======================================================

func (h *CustomerHandler) List(c *gin.Context) {
	var customers []models.Customer
	if err := h.db.Order("name ASC").Find(&customers).Error; err != nil {
		httperr.Internal(c)
		return
	}
	httpresp.List(c, customers)
}

// ======================================================
// CREATE
// ======================================================

func (h *CustomerHandler) Create(c *gin.Context) {
	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Name is required")
		return
	}

	if req.Email != "" && !validators.IsValidEmail(req.Email) {
		httperr.BadRequest(c, "Invalid email")
		return
	}

	customer := models.Customer{
		ID:    uuid.NewString(),
		Name:  req.Name,
		Phone: req.Phone,
		Email: req.Email,
	}

	if err := h.db.Create(&customer).Error; err != nil {
		httperr.Internal(c)
		return
	}

	h.recorder.FromRequest(c, models.ActionCreate, "customers", customer.ID, gin.H{
		"name": customer.Name,
	})

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Customer created",
		"id":      customer.ID,
	})
}

// ======================================================
// GET (inclui saldo derivado)
// ======================================================

func (h *CustomerHandler) Get(c *gin.Context) {
	customerID := c.Param("id")

	customer, err := h.repo.GetCustomerByID(c.Request.Context(), customerID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "Customer not found")
			return
		}
		httperr.Internal(c)
		return
	}

	balance, err := h.repo.SumBalance(c.Request.Context(), customerID)
	if err != nil {
		httperr.Internal(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"customer": customer,
		"balance":  balance,
	})
}
