// Package forms covers the unauthenticated contact and newsletter
// submissions.
package forms

import (
	"context"
	"net/http"
	"strings"

	"boutique-client/internal/api"
)

type Client struct {
	api *api.Client
}

func New(apiClient *api.Client) *Client {
	return &Client{api: apiClient}
}

type Result struct {
	Success bool
	Message string
}

// Contact sends a contact-form message.
func (c *Client) Contact(ctx context.Context, name, email, message string) Result {
	if strings.TrimSpace(email) == "" {
		return Result{Message: "email is required"}
	}
	if strings.TrimSpace(message) == "" {
		return Result{Message: "message is required"}
	}
	err := c.api.Do(ctx, http.MethodPost, "/contact", map[string]string{
		"name":    name,
		"email":   email,
		"message": message,
	}, nil)
	if err != nil {
		return Result{Message: api.UserMessage(err)}
	}
	return Result{Success: true, Message: "message sent"}
}

// Subscribe joins the newsletter.
func (c *Client) Subscribe(ctx context.Context, email string) Result {
	if strings.TrimSpace(email) == "" {
		return Result{Message: "email is required"}
	}
	err := c.api.Do(ctx, http.MethodPost, "/subscribe", map[string]string{"email": email}, nil)
	if err != nil {
		return Result{Message: api.UserMessage(err)}
	}
	return Result{Success: true, Message: "subscribed"}
}
