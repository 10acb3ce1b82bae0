// Package admin is the product-management client behind the storefront's
// admin panel. All calls require an admin session.
package admin

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"boutique-client/internal/api"
	"boutique-client/internal/domain"
)

// PlaceholderImage backfills products created with no image URLs.
const PlaceholderImage = "https://via.placeholder.com/600x800?text=Boutique"

// maxImages caps how many image URLs a product carries.
const maxImages = 3

type Client struct {
	api *api.Client
}

func New(apiClient *api.Client) *Client {
	return &Client{api: apiClient}
}

// ProductInput is the admin form payload. Normalisation and validation run
// client-side before any network call.
type ProductInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	Stock       int      `json:"stock"`
	Images      []string `json:"images"`
	Sizes       []string `json:"sizes"`
}

func (in *ProductInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)

	var images []string
	for _, u := range in.Images {
		if trimmed := strings.TrimSpace(u); trimmed != "" {
			images = append(images, trimmed)
		}
	}
	if len(images) == 0 {
		images = []string{PlaceholderImage}
	}
	if len(images) > maxImages {
		images = images[:maxImages]
	}
	in.Images = images

	var sizes []string
	for _, s := range in.Sizes {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			sizes = append(sizes, trimmed)
		}
	}
	in.Sizes = sizes
}

func (in ProductInput) validate() error {
	if in.Name == "" {
		return errors.New("name required")
	}
	if in.Price <= 0 {
		return errors.New("price must be positive")
	}
	if in.Stock < 0 {
		return errors.New("stock must not be negative")
	}
	if !domain.ValidCategory(in.Category) {
		return fmt.Errorf("unknown category %q", in.Category)
	}
	return nil
}

// List fetches every product, admin view.
func (c *Client) List(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := c.api.Do(ctx, http.MethodGet, "/admin/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Create validates, normalises and posts a new product.
func (c *Client) Create(ctx context.Context, in ProductInput) (*domain.Product, error) {
	in.normalize()
	if err := in.validate(); err != nil {
		return nil, err
	}
	var product domain.Product
	if err := c.api.Do(ctx, http.MethodPost, "/admin/products", in, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// Update replaces a product's fields.
func (c *Client) Update(ctx context.Context, id string, in ProductInput) (*domain.Product, error) {
	in.normalize()
	if err := in.validate(); err != nil {
		return nil, err
	}
	var product domain.Product
	if err := c.api.Do(ctx, http.MethodPut, "/admin/products/"+url.PathEscape(id), in, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// Delete removes a product.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.api.Do(ctx, http.MethodDelete, "/admin/products/"+url.PathEscape(id), nil, nil)
}
