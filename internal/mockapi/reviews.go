package mockapi

import (
	"errors"
	"net/http"
	"strings"

	"boutique-client/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (h *handlers) listReviews(c *gin.Context) {
	productID := c.Query("productId")
	if productID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "productId required"})
		return
	}
	reviews, err := h.store.ReviewsByProduct(c.Request.Context(), productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
		return
	}
	c.JSON(http.StatusOK, reviews)
}

func (h *handlers) myReviews(c *gin.Context) {
	reviews, err := h.store.ReviewsByUser(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
		return
	}
	c.JSON(http.StatusOK, reviews)
}

type reviewRequest struct {
	ProductID string `json:"productId"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

func (h *handlers) createReview(c *gin.Context) {
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "rating must be between 1 and 5"})
		return
	}
	if _, err := h.store.ProductByID(c.Request.Context(), req.ProductID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
		return
	}

	user := currentUser(c)
	review := domain.Review{
		ID:        uuid.NewString(),
		ProductID: req.ProductID,
		UserID:    user.ID,
		UserName:  user.Name,
		Rating:    req.Rating,
		Comment:   strings.TrimSpace(req.Comment),
	}
	if err := h.store.CreateReview(c.Request.Context(), review); err != nil {
		h.logger.Printf("create review: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
		return
	}
	c.JSON(http.StatusCreated, review)
}

func (h *handlers) updateReview(c *gin.Context) {
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "rating must be between 1 and 5"})
		return
	}
	err := h.store.UpdateReview(c.Request.Context(), c.Param("id"), currentUser(c).ID, req.Rating, strings.TrimSpace(req.Comment))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "review not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "review updated"})
}

func (h *handlers) deleteReview(c *gin.Context) {
	err := h.store.DeleteReview(c.Request.Context(), c.Param("id"), currentUser(c).ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "review not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "review deleted"})
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

func (h *handlers) contact(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "email and message are required"})
		return
	}
	if err := h.store.InsertContactMessage(c.Request.Context(), req.Name, req.Email, req.Message); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "message sent"})
}

type subscribeRequest struct {
	Email string `json:"email"`
}

func (h *handlers) subscribe(c *gin.Context) {
	var req subscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "email is required"})
		return
	}
	if err := h.store.InsertSubscriber(c.Request.Context(), strings.ToLower(strings.TrimSpace(req.Email))); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "subscribed"})
}
