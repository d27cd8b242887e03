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

type TerminalHandler struct {
	db       *gorm.DB
	recorder *audit.Recorder
}

func NewTerminalHandler(db *gorm.DB, recorder *audit.Recorder) *TerminalHandler {
	return &TerminalHandler{db: db, recorder: recorder}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateTerminalRequest struct {
	BranchID uint   `json:"branch_id" binding:"required"`
	Code     string `json:"code" binding:"required"`
	Label    string `json:"label"`
}

type UpdateTerminalRequest struct {
	Code   *string `json:"code"`
	Label  *string `json:"label"`
	Active *bool   `json:"active"`
}

// ======================================================
// LIST
// ======================================================

func (h *TerminalHandler) List(c *gin.Context) {
	q := h.db.Order("id ASC")

	if branchIDStr := c.Query("branch_id"); branchIDStr != "" {
		branchID, err := strconv.Atoi(branchIDStr)
		if err != nil || branchID <= 0 {
			httperr.BadRequest(c, "Invalid branch id")
			return
		}
		q = q.Where("branch_id = ?", branchID)
	}

	var terminals []models.Terminal
	if err := q.Find(&terminals).Error; err != nil {
		httperr.Internal(c)
		return
	}
	httpresp.List(c, terminals)
}

// ======================================================
// CREATE
// ======================================================

func (h *TerminalHandler) Create(c *gin.Context) {
	var req CreateTerminalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Branch id and code are required")
		return
	}

	// terminal sempre pertence a uma filial ativa
	var branch models.Branch
	if err := h.db.Where("id = ? AND active = ?", req.BranchID, true).
		First(&branch).Error; err != nil {
		httperr.BadRequest(c, "Branch not found or inactive")
		return
	}

	terminal := models.Terminal{
		BranchID: req.BranchID,
		Code:     req.Code,
		Label:    req.Label,
		Active:   true,
	}

	if err := h.db.Create(&terminal).Error; err != nil {
		httperr.Internal(c)
		return
	}

	h.recorder.FromRequest(c, models.ActionCreate, "terminals", terminal.ID, gin.H{
		"branch_id": terminal.BranchID,
		"code":      terminal.Code,
	})

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Terminal created",
		"id":      terminal.ID,
	})
}

// ======================================================
// UPDATE
// ======================================================

func (h *TerminalHandler) Update(c *gin.Context) {
	terminal, ok := h.loadTerminal(c)
	if !ok {
		return
	}

	var req UpdateTerminalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Invalid request body")
		return
	}

	changes := gin.H{}
	if req.Code != nil {
		if *req.Code == "" {
			httperr.BadRequest(c, "Code cannot be empty")
			return
		}
		changes["code"] = gin.H{"from": terminal.Code, "to": *req.Code}
		terminal.Code = *req.Code
	}
	if req.Label != nil {
		changes["label"] = gin.H{"from": terminal.Label, "to": *req.Label}
		terminal.Label = *req.Label
	}
	if req.Active != nil {
		changes["active"] = gin.H{"from": terminal.Active, "to": *req.Active}
		terminal.Active = *req.Active
	}

	if len(changes) == 0 {
		httperr.BadRequest(c, "Nothing to update")
		return
	}

	if err := h.db.Save(terminal).Error; err != nil {
		httperr.Internal(c)
		return
	}

	h.recorder.FromRequest(c, models.ActionUpdate, "terminals", terminal.ID, changes)

	httpresp.OK(c, "Terminal updated", gin.H{"id": terminal.ID})
}

// ======================================================
// DELETE (soft) / RESTORE
// ======================================================

func (h *TerminalHandler) Delete(c *gin.Context) {
	terminal, ok := h.loadTerminal(c)
	if !ok {
		return
	}

	terminal.Active = false
	if err := h.db.Save(terminal).Error; err != nil {
		httperr.Internal(c)
		return
	}

	h.recorder.FromRequest(c, models.ActionDelete, "terminals", terminal.ID, nil)

	httpresp.OK(c, "Terminal deactivated", gin.H{"id": terminal.ID})
}

func (h *TerminalHandler) Restore(c *gin.Context) {
	terminal, ok := h.loadTerminal(c)
	if !ok {
		return
	}

	terminal.Active = true
	if err := h.db.Save(terminal).Error; err != nil {
		httperr.Internal(c)
		return
	}

	h.recorder.FromRequest(c, models.ActionRestore, "terminals", terminal.ID, nil)

	httpresp.OK(c, "Terminal restored", gin.H{"id": terminal.ID})
}

// ======================================================
// HELPERS
// ======================================================

func (h *TerminalHandler) loadTerminal(c *gin.Context) (*models.Terminal, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		httperr.BadRequest(c, "Invalid terminal id")
		return nil, false
	}

	var terminal models.Terminal
	if err := h.db.First(&terminal, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "Terminal not found")
			return nil, false
		}
		httperr.Internal(c)
		return nil, false
	}
	return &terminal, true
}
