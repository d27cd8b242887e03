package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/fidelize/loyalty-admin/internal/audit"
	"github.com/fidelize/loyalty-admin/internal/config"
	"github.com/fidelize/loyalty-admin/internal/httperr"
	"github.com/fidelize/loyalty-admin/internal/httpresp"
	"github.com/fidelize/loyalty-admin/internal/models"
	"github.com/fidelize/loyalty-admin/internal/session"
	"github.com/fidelize/loyalty-admin/internal/tokens"
)

type AuthHandler struct {
	db       *gorm.DB
	config   *config.Config
	denylist tokens.Denylist
	recorder *audit.Recorder
}

func NewAuthHandler(
	db *gorm.DB,
	cfg *config.Config,
	denylist tokens.Denylist,
	recorder *audit.Recorder,
) *AuthHandler {
	return &AuthHandler{
		db:       db,
		config:   cfg,
		denylist: denylist,
		recorder: recorder,
	}
}

// --------- Requests ---------

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Username and password are required")
		return
	}

	username := strings.ToLower(strings.TrimSpace(req.Username))

	var user models.User
	if err := h.db.Where("username = ? AND active = ?", username, true).
		First(&user).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.Write(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		httperr.Internal(c)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Write(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := h.generateToken(&user)
	if err != nil {
		httperr.Internal(c)
		return
	}

	maxAge := h.config.JWTExpireHours * 3600
	c.SetCookie(h.config.CookieName, token, maxAge, "/", "", false, true)

	h.recorder.FromRequest(c, models.ActionLogin, "users", user.ID, gin.H{
		"username": user.Username,
	})

	httpresp.OK(c, "Logged in", gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"name":     user.Name,
			"role":     user.Role,
		},
	})
}

// Logout revokes the current token for its remaining lifetime and clears
// the cookie. Revocation is the domain mutation here: if the denylist
// write fails the request fails; the audit entry stays best-effort.
func (h *AuthHandler) Logout(c *gin.Context) {
	s := session.FromContext(c)
	if s == nil {
		httperr.Unauthorized(c)
		return
	}

	ttl := time.Until(s.ExpiresAt)
	if err := h.denylist.Revoke(c.Request.Context(), s.JTI, ttl); err != nil {
		httperr.Internal(c)
		return
	}

	c.SetCookie(h.config.CookieName, "", -1, "/", "", false, true)

	h.recorder.FromRequest(c, models.ActionLogout, "users", s.UserID, nil)

	httpresp.OK(c, "Logged out", nil)
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"name":     user.Name,
		"role":     user.Role,
		"jti":      uuid.NewString(),
		"exp":      now.Add(time.Duration(h.config.JWTExpireHours) * time.Hour).Unix(),
		"iat":      now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}
