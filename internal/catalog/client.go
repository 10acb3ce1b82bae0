// Package catalog is the storefront's read side: products and reviews.
// Product data is owned by the backend; the storefront never mutates it.
package catalog

import (
	"context"
	"net/http"
	"net/url"

	"boutique-client/internal/api"
	"boutique-client/internal/domain"
)

type Client struct {
	api *api.Client
}

func New(apiClient *api.Client) *Client {
	return &Client{api: apiClient}
}

// Products fetches the full product array.
func (c *Client) Products(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := c.api.Do(ctx, http.MethodGet, "/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Product fetches one product by id.
func (c *Client) Product(ctx context.Context, id string) (*domain.Product, error) {
	var product domain.Product
	if err := c.api.Do(ctx, http.MethodGet, "/products/"+url.PathEscape(id), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// FilterByCategory narrows a fetched array client-side. Empty category means
// no filter.
func FilterByCategory(products []domain.Product, category string) []domain.Product {
	if category == "" {
		return products
	}
	var out []domain.Product
	for _, p := range products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// Reviews fetches the public reviews for a product.
func (c *Client) Reviews(ctx context.Context, productID string) ([]domain.Review, error) {
	var reviews []domain.Review
	path := "/reviews?productId=" + url.QueryEscape(productID)
	if err := c.api.Do(ctx, http.MethodGet, path, nil, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// MyReviews fetches the authenticated user's reviews.
func (c *Client) MyReviews(ctx context.Context) ([]domain.Review, error) {
	var reviews []domain.Review
	if err := c.api.Do(ctx, http.MethodGet, "/reviews/my-reviews", nil, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// Result mirrors the store result shape for review mutations.
type Result struct {
	Success bool
	Message string
}

// AddReview posts a review for a product.
func (c *Client) AddReview(ctx context.Context, productID string, rating int, comment string) Result {
	if rating < 1 || rating > 5 {
		return Result{Message: "rating must be between 1 and 5"}
	}
	err := c.api.Do(ctx, http.MethodPost, "/reviews", map[string]interface{}{
		"productId": productID,
		"rating":    rating,
		"comment":   comment,
	}, nil)
	if err != nil {
		return Result{Message: api.UserMessage(err)}
	}
	return Result{Success: true, Message: "review submitted"}
}

// UpdateReview edits one of the user's reviews.
func (c *Client) UpdateReview(ctx context.Context, reviewID string, rating int, comment string) Result {
	if rating < 1 || rating > 5 {
		return Result{Message: "rating must be between 1 and 5"}
	}
	err := c.api.Do(ctx, http.MethodPut, "/reviews/"+url.PathEscape(reviewID), map[string]interface{}{
		"rating":  rating,
		"comment": comment,
	}, nil)
	if err != nil {
		return Result{Message: api.UserMessage(err)}
	}
	return Result{Success: true, Message: "review updated"}
}

// DeleteReview removes one of the user's reviews.
func (c *Client) DeleteReview(ctx context.Context, reviewID string) Result {
	err := c.api.Do(ctx, http.MethodDelete, "/reviews/"+url.PathEscape(reviewID), nil, nil)
	if err != nil {
		return Result{Message: api.UserMessage(err)}
	}
	return Result{Success: true, Message: "review deleted"}
}
