package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/DaniilChichenkov/abik/internal/config"
	"github.com/DaniilChichenkov/abik/internal/models"
)

type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// Login checks the admin credentials and returns a bearer token
// POST /api/v1/auth/login
func Login(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "errors": gin.H{"invalidBody": true}})
			return
		}

		errs := gin.H{}
		if req.Login == "" {
			errs["noLoginProvided"] = true
		}
		if req.Password == "" {
			errs["noPasswordProvided"] = true
		}
		if len(errs) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "errors": errs})
			return
		}

		var user models.User
		if err := db.First(&user, "username = ?", req.Login).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "errors": gin.H{"noUserFound": true}})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "errors": gin.H{"errorDuringUserRequest": true}})
			}
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "errors": gin.H{"wrongCredentials": true}})
			return
		}

		token, err := generateToken(user.ID, user.Role, cfg.JWTSecret, cfg.JWTExpiry)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "errors": gin.H{"errorDuringUserRequest": true}})
			return
		}

		c.JSON(http.StatusOK, gin.H{"ok": true, "token": token, "user": user})
	}
}

// GetCurrentUser returns the authenticated admin
// GET /api/v1/admin/auth/me
func GetCurrentUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := adminID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "errors": gin.H{"unauthorized": true}})
			return
		}

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "errors": gin.H{"noUserFound": true}})
			return
		}

		c.JSON(http.StatusOK, gin.H{"ok": true, "user": user})
	}
}

func generateToken(userID uuid.UUID, role models.UserRole, secret, expiry string) (string, error) {
	duration, err := time.ParseDuration(expiry)
	if err != nil {
		duration = 24 * time.Hour
	}

	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"role":    string(role),
		"exp":     time.Now().Add(duration).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
