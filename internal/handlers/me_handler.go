package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fidelize/loyalty-admin/internal/httperr"
	"github.com/fidelize/loyalty-admin/internal/models"
	"github.com/fidelize/loyalty-admin/internal/session"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	s := session.FromContext(c)
	if s == nil {
		httperr.Unauthorized(c)
		return
	}

	var user models.User
	if err := h.db.First(&user, s.UserID).Error; err != nil {
		httperr.Internal(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"name":     user.Name,
			"email":    user.Email,
			"role":     user.Role,
			"active":   user.Active,
		},
	})
}
