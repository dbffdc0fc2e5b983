package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/marinhotg/satshack24/internal/apperr"
	"github.com/marinhotg/satshack24/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const tokenTTL = 72 * time.Hour

type Handler struct {
	users     *service.Users
	jwtSecret string
}

func NewHandler(users *service.Users, jwtSecret string) *Handler {
	return &Handler{users: users, jwtSecret: jwtSecret}
}

func (h *Handler) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Authenticate(input.Email, input.Password)
	if err != nil {
		// failed credentials surface as 401, not the taxonomy's 400
		var validation *apperr.ValidationError
		if errors.As(err, &validation) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": validation.Msg})
			return
		}
		apperr.WriteJSON(c, err)
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"exp":     time.Now().Add(tokenTTL).Unix(),
	})
	signed, err := token.SignedString([]byte(h.jwtSecret))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":  user,
		"token": signed,
	})
}
