package mockapi

import (
	"errors"
	"net/http"
	"strings"

	"boutique-client/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const placeholderImage = "https://via.placeholder.com/600x800?text=Boutique"

func (h *handlers) listProducts(c *gin.Context) {
	products, err := h.store.Products(c.Request.Context())
	if err != nil {
		h.logger.Printf("list products: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *handlers) getProduct(c *gin.Context) {
	product, err := h.store.ProductByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
		return
	}
	c.JSON(http.StatusOK, product)
}

type productRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	Stock       int      `json:"stock"`
	Images      []string `json:"images"`
	Sizes       []string `json:"sizes"`
}

func (req *productRequest) validate() string {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return "name required"
	}
	if req.Price <= 0 {
		return "price must be positive"
	}
	if req.Stock < 0 {
		return "stock must not be negative"
	}
	if !domain.ValidCategory(req.Category) {
		return "unknown category"
	}
	return ""
}

// product fills defaults the same way the real backend does: no images means
// exactly one placeholder URL.
func (req productRequest) product(id string) domain.Product {
	images := make([]string, 0, len(req.Images))
	for _, u := range req.Images {
		if trimmed := strings.TrimSpace(u); trimmed != "" {
			images = append(images, trimmed)
		}
	}
	if len(images) == 0 {
		images = []string{placeholderImage}
	}
	return domain.Product{
		ID:          id,
		Name:        req.Name,
		Description: strings.TrimSpace(req.Description),
		Price:       req.Price,
		Category:    req.Category,
		Stock:       req.Stock,
		Images:      images,
		Sizes:       req.Sizes,
	}
}

func (h *handlers) createProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}
	if msg := req.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": msg})
		return
	}

	product := req.product(uuid.NewString())
	if err := h.store.CreateProduct(c.Request.Context(), product); err != nil {
		h.logger.Printf("create product: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *handlers) updateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}
	if msg := req.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": msg})
		return
	}

	product := req.product(c.Param("id"))
	if err := h.store.UpdateProduct(c.Request.Context(), product); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "product not found"})
			return
		}
		h.logger.Printf("update product: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *handlers) deleteProduct(c *gin.Context) {
	if err := h.store.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
}
