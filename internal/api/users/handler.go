package users

import (
	"net/http"
	"strconv"

	"github.com/marinhotg/satshack24/internal/apperr"
	"github.com/marinhotg/satshack24/internal/service"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	users *service.Users
}

func NewHandler(users *service.Users) *Handler {
	return &Handler{users: users}
}

// Create handles POST /api/user. 409 on duplicate email.
func (h *Handler) Create(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
		Name     string `json:"name" binding:"required"`
		NodeID   string `json:"nodeId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Register(service.RegisterParams{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
		NodeID:   input.NodeID,
	})
	if err != nil {
		apperr.WriteJSON(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"user":    user,
	})
}

// CheckEmail handles GET /api/user?email= and reports existence only.
func (h *Handler) CheckEmail(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email parameter is required"})
		return
	}

	exists, err := h.users.EmailExists(email)
	if err != nil {
		apperr.WriteJSON(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"exists": exists})
}

// Get handles GET /api/user/:id, the profile with aggregates.
func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	user, err := h.users.GetByID(uint(id))
	if err != nil {
		apperr.WriteJSON(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
