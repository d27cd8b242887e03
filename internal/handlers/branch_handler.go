package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fidelize/loyalty-admin/internal/audit"
	"github.com/fidelize/loyalty-admin/internal/httperr"
	"github.com/fidelize/loyalty-admin/internal/httpresp"
	"github.com/fidelize/loyalty-admin/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type BranchHandler struct {
	db       *gorm.DB
	recorder *audit.Recorder
}

func NewBranchHandler(db *gorm.DB, recorder *audit.Recorder) *BranchHandler {
	return &BranchHandler{db: db, recorder: recorder}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBranchRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

type UpdateBranchRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
	Active  *bool   `json:"active"`
}

// ======================================================
// LIST
// ======================================================

func (h *BranchHandler) List(c *gin.Context) {
	var branches []models.Branch
	if err := h.db.Order("name ASC").Find(&branches).Error; err != nil {
		httperr.Internal(c)
		return
	}
	httpresp.List(c, branches)
}

// ======================================================
// CREATE
// ======================================================

func (h *BranchHandler) Create(c *gin.Context) {
	var req CreateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Name is required")
		return
	}

	branch := models.Branch{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		Active:  true,
	}

	if err := h.db.Create(&branch).Error; err != nil {
		httperr.Internal(c)
		return
	}

	h.recorder.FromRequest(c, models.ActionCreate, "branches", branch.ID, gin.H{
		"name": branch.Name,
	})

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Branch created",
		"id":      branch.ID,
	})
}

// ======================================================
// UPDATE
// ======================================================

func (h *BranchHandler) Update(c *gin.Context) {
	branch, ok := h.loadBranch(c)
	if !ok {
		return
	}

	var req UpdateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Invalid request body")
		return
	}

	changes := gin.H{}
	if req.Name != nil {
		if *req.Name == "" {
			httperr.BadRequest(c, "Name cannot be empty")
			return
		}
		changes["name"] = gin.H{"from": branch.Name, "to": *req.Name}
		branch.Name = *req.Name
	}
	if req.Address != nil {
		changes["address"] = gin.H{"from": branch.Address, "to": *req.Address}
		branch.Address = *req.Address
	}
	if req.Phone != nil {
		changes["phone"] = gin.H{"from": branch.Phone, "to": *req.Phone}
		branch.Phone = *req.Phone
	}
	if req.Active != nil {
		changes["active"] = gin.H{"from": branch.Active, "to": *req.Active}
		branch.Active = *req.Active
	}

	if len(changes) == 0 {
		httperr.BadRequest(c, "Nothing to update")
		return
	}

	if err := h.db.Save(branch).Error; err != nil {
		httperr.Internal(c)
		return
	}

	h.recorder.FromRequest(c, models.ActionUpdate, "branches", branch.ID, changes)

	httpresp.OK(c, "Branch updated", gin.H{"id": branch.ID})
}

// ======================================================
// DELETE (soft) / RESTORE
// ======================================================

func (h *BranchHandler) Delete(c *gin.Context) {
	branch, ok := h.loadBranch(c)
	if !ok {
		return
	}

	branch.Active = false
	if err := h.db.Save(branch).Error; err != nil {
		httperr.Internal(c)
		return
	}

	h.recorder.FromRequest(c, models.ActionDelete, "branches", branch.ID, nil)

	httpresp.OK(c, "Branch deactivated", gin.H{"id": branch.ID})
}

func (h *BranchHandler) Restore(c *gin.Context) {
	branch, ok := h.loadBranch(c)
	if !ok {
		return
	}

	branch.Active = true
	if err := h.db.Save(branch).Error; err != nil {
		httperr.Internal(c)
		return
	}

	h.recorder.FromRequest(c, models.ActionRestore, "branches", branch.ID, nil)

	httpresp.OK(c, "Branch restored", gin.H{"id": branch.ID})
}

// ======================================================
// HELPERS
// ======================================================

func (h *BranchHandler) loadBranch(c *gin.Context) (*models.Branch, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		httperr.BadRequest(c, "Invalid branch id")
		return nil, false
	}

	var branch models.Branch
	if err := h.db.First(&branch, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "Branch not found")
			return nil, false
		}
		httperr.Internal(c)
		return nil, false
	}
	return &branch, true
}
