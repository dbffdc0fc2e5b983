package ratings

import (
	"net/http"

	"github.com/marinhotg/satshack24/internal/apperr"
	"github.com/marinhotg/satshack24/internal/service"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	ratings *service.Ratings
}

func NewHandler(ratingSvc *service.Ratings) *Handler {
	return &Handler{ratings: ratingSvc}
}

// Create handles POST /api/rating. Only paid bills can be rated, once.
func (h *Handler) Create(c *gin.Context) {
	var input struct {
		BillID  uint    `json:"billId" binding:"required"`
		Rating  int     `json:"rating" binding:"required"`
		Comment *string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "billId and rating are required"})
		return
	}

	rating, err := h.ratings.Create(service.CreateRatingParams{
		BillID:  input.BillID,
		RaterID: c.GetUint("user_id"),
		Rating:  input.Rating,
		Comment: input.Comment,
	})
	if err != nil {
		apperr.WriteJSON(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Rating created successfully",
		"rating":  rating,
	})
}
