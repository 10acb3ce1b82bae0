package mockapi

import (
	"errors"
	"net/http"
	"strings"

	"boutique-client/internal/domain"

	"github.com/gin-gonic/gin"
)

func (h *handlers) getCart(c *gin.Context) {
	h.respondCart(c, http.StatusOK)
}

type addToCartRequest struct {
	ProductID string  `json:"productId"`
	Size      string  `json:"size"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

func (h *handlers) addToCart(c *gin.Context) {
	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}
	if req.Quantity < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "quantity must be positive"})
		return
	}

	product, err := h.store.ProductByID(c.Request.Context(), req.ProductID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
		return
	}

	size := strings.TrimSpace(req.Size)
	if product.HasSizes() {
		if size == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "size required"})
			return
		}
	} else {
		size = domain.OneSize
	}
	if req.Quantity > product.Stock {
		c.JSON(http.StatusBadRequest, gin.H{"message": "insufficient stock"})
		return
	}

	item := domain.CartItem{
		ProductID: product.ID,
		Name:      product.Name,
		// Unit price is snapshotted from the catalog at add time; the
		// client-sent price is advisory only.
		Price:    product.Price,
		Size:     size,
		Quantity: req.Quantity,
	}
	if err := h.store.AddCartItem(c.Request.Context(), currentUser(c).ID, item); err != nil {
		h.logger.Printf("add cart item: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
		return
	}
	h.respondCart(c, http.StatusCreated)
}

type updateCartRequest struct {
	Quantity int `json:"quantity"`
}

func (h *handlers) updateCartItem(c *gin.Context) {
	var req updateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}
	if req.Quantity < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "quantity must be positive"})
		return
	}

	err := h.store.SetCartItemQuantity(c.Request.Context(), currentUser(c).ID, c.Param("itemId"), req.Quantity)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "cart item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
		return
	}
	h.respondCart(c, http.StatusOK)
}

func (h *handlers) removeCartItem(c *gin.Context) {
	err := h.store.DeleteCartItem(c.Request.Context(), currentUser(c).ID, c.Param("itemId"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "cart item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
		return
	}
	h.respondCart(c, http.StatusOK)
}

// respondCart always returns the full cart shape; the client replaces its
// mirror wholesale from it.
func (h *handlers) respondCart(c *gin.Context, status int) {
	items, err := h.store.CartItems(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		h.logger.Printf("load cart: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
		return
	}
	c.JSON(status, gin.H{"items": items})
}
