package mockapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"boutique-client/internal/domain"
	"boutique-client/internal/mockapi/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (h *handlers) createOrder(c *gin.Context) {
	var order domain.Order
	if err := c.ShouldBindJSON(&order); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}
	if len(order.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "order has no items"})
		return
	}
	addr := order.ShippingAddress
	if strings.TrimSpace(addr.Address) == "" || strings.TrimSpace(addr.City) == "" ||
		strings.TrimSpace(addr.Country) == "" || strings.TrimSpace(addr.PostalCode) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "shipping address incomplete"})
		return
	}

	ctx := c.Request.Context()
	for _, item := range order.Items {
		product, err := h.store.ProductByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"message": fmt.Sprintf("product %s no longer available", item.Name)})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
			return
		}
		if item.Quantity > product.Stock {
			c.JSON(http.StatusBadRequest, gin.H{"message": fmt.Sprintf("insufficient stock for %s", product.Name)})
			return
		}
	}

	// All lines are available; commit the stock decrements.
	for _, item := range order.Items {
		product, err := h.store.ProductByID(ctx, item.ProductID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
			return
		}
		product.Stock -= item.Quantity
		if err := h.store.UpdateProduct(ctx, *product); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
			return
		}
	}

	payload, err := json.Marshal(order)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
		return
	}

	user := currentUser(c)
	rec := store.OrderRecord{
		ID:         uuid.NewString(),
		UserID:     user.ID,
		Payload:    payload,
		TotalPrice: order.TotalPrice,
		Status:     "pending",
	}
	if err := h.store.CreateOrder(ctx, rec); err != nil {
		h.logger.Printf("create order: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
		return
	}

	// The cart empties here; the client's mirror catches up whenever it next
	// refreshes.
	if err := h.store.ClearCart(ctx, user.ID); err != nil {
		h.logger.Printf("clear cart after order: %v", err)
	}

	c.JSON(http.StatusCreated, gin.H{"order": domain.PlacedOrder{
		ID:         rec.ID,
		TotalPrice: rec.TotalPrice,
		Status:     rec.Status,
	}})
}

type paymentContactRequest struct {
	PaymentContact string `json:"paymentContact"`
}

func (h *handlers) paymentContact(c *gin.Context) {
	var req paymentContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}
	if strings.TrimSpace(req.PaymentContact) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "paymentContact required"})
		return
	}

	rec, err := h.store.OrderByID(c.Request.Context(), c.Param("id"))
	if err != nil || rec.UserID != currentUser(c).ID {
		c.JSON(http.StatusNotFound, gin.H{"message": "order not found"})
		return
	}
	if err := h.store.SetPaymentContact(c.Request.Context(), rec.ID, req.PaymentContact); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "payment contact saved"})
}
