package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/fidelize/loyalty-admin/internal/audit"
	"github.com/fidelize/loyalty-admin/internal/httperr"
	"github.com/fidelize/loyalty-admin/internal/httpresp"
	"github.com/fidelize/loyalty-admin/internal/models"
	"github.com/fidelize/loyalty-admin/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

type UserHandler struct {
	db       *gorm.DB
	recorder *audit.Recorder
}

func NewUserHandler(db *gorm.DB, recorder *audit.Recorder) *UserHandler {
	return &UserHandler{db: db, recorder: recorder}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateUserRequest struct {
	Username string `json:"username" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

type UpdatePasswordRequest struct {
	Password string `json:"password" binding:"required,min=6"`
}

// ======================================================
// LIST
// ======================================================

func (h *UserHandler) List(c *gin.Context) {
	var users []models.User
	if err := h.db.Order("username ASC").Find(&users).Error; err != nil {
		httperr.Internal(c)
		return
	}
	httpresp.List(c, users)
}

// ======================================================
// CREATE
// ======================================================

func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Invalid request body")
		return
	}

	role := req.Role
	if role == "" {
		role = models.RoleCashier
	}
	if !models.IsValidRole(role) {
		httperr.BadRequest(c, "Invalid role")
		return
	}

	if req.Email != "" && !validators.IsValidEmail(req.Email) {
		httperr.BadRequest(c, "Invalid email")
		return
	}

	username := strings.ToLower(strings.TrimSpace(req.Username))

	var count int64
	h.db.Model(&models.User{}).Where("username = ?", username).Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "Username already exists")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c)
		return
	}

	user := models.User{
		Username:     username,
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hashed),
		Role:         role,
		Active:       true,
	}

	if err := h.db.Create(&user).Error; err != nil {
		httperr.Internal(c)
		return
	}

	h.recorder.FromRequest(c, models.ActionCreate, "users", user.ID, gin.H{
		"username": user.Username,
		"role":     user.Role,
	})

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User created",
		"id":      user.ID,
	})
}

// ======================================================
// UPDATE ROLE
// ======================================================

func (h *UserHandler) UpdateRole(c *gin.Context) {
	user, ok := h.loadUser(c)
	if !ok {
		return
	}

	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Role is required")
		return
	}
	if !models.IsValidRole(req.Role) {
		httperr.BadRequest(c, "Invalid role")
		return
	}

	oldRole := user.Role
	user.Role = req.Role

	if err := h.db.Save(user).Error; err != nil {
		httperr.Internal(c)
		return
	}

	h.recorder.FromRequest(c, models.ActionUpdate, "users", user.ID, gin.H{
		"field": "role",
		"from":  oldRole,
		"to":    user.Role,
	})

	httpresp.OK(c, "Role updated", gin.H{"id": user.ID})
}

// ======================================================
// UPDATE PASSWORD
// ======================================================

func (h *UserHandler) UpdatePassword(c *gin.Context) {
	user, ok := h.loadUser(c)
	if !ok {
		return
	}

	var req UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Password must have at least 6 characters")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c)
		return
	}

	user.PasswordHash = string(hashed)
	if err := h.db.Save(user).Error; err != nil {
		httperr.Internal(c)
		return
	}

	// detalhe nunca inclui o hash
	h.recorder.FromRequest(c, models.ActionUpdate, "users", user.ID, gin.H{
		"field": "password",
	})

	httpresp.OK(c, "Password updated", gin.H{"id": user.ID})
}

// ======================================================
// DELETE (soft)
// ======================================================

func (h *UserHandler) Delete(c *gin.Context) {
	user, ok := h.loadUser(c)
	if !ok {
		return
	}

	user.Active = false
	if err := h.db.Save(user).Error; err != nil {
		httperr.Internal(c)
		return
	}

	h.recorder.FromRequest(c, models.ActionDelete, "users", user.ID, nil)

	httpresp.OK(c, "User deactivated", gin.H{"id": user.ID})
}

// ======================================================
// HELPERS
// ======================================================

func (h *UserHandler) loadUser(c *gin.Context) (*models.User, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		httperr.BadRequest(c, "Invalid user id")
		return nil, false
	}

	var user models.User
	if err := h.db.First(&user, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "User not found")
			return nil, false
		}
		httperr.Internal(c)
		return nil, false
	}
	return &user, true
}
