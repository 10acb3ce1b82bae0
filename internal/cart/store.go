// Package cart mirrors the server-authoritative cart. Every successful
// mutation replaces the whole local item list with the server's response, so
// the mirror never drifts; rapid conflicting mutations resolve to whichever
// response lands last.
package cart

import (
	"context"
	"log"
	"net/http"
	"sync"

	"boutique-client/internal/api"
	"boutique-client/internal/domain"
	"boutique-client/internal/session"
)

// Sessions is the slice of the session store the cart depends on.
type Sessions interface {
	State() session.State
	Invalidate()
	Subscribe(fn func(session.State))
}

// Result reports a cart operation outcome. Callers render Message inline
// rather than handling error values.
type Result struct {
	Success bool
	Message string
}

type Store struct {
	client   *api.Client
	sessions Sessions
	logger   *log.Logger

	mu    sync.Mutex
	items []domain.CartItem
}

// New builds the store and couples it to the session lifecycle: the local
// mirror empties whenever the session ends.
func New(client *api.Client, sessions Sessions, logger *log.Logger) *Store {
	s := &Store{client: client, sessions: sessions, logger: logger}
	sessions.Subscribe(func(st session.State) {
		if st != session.StateAuthenticated {
			s.replace(nil)
		}
	})
	return s
}

type cartResponse struct {
	Items []domain.CartItem `json:"items"`
}

// Refresh replaces the mirror from the backend. Without a session it empties
// the mirror locally and makes no network call.
func (s *Store) Refresh(ctx context.Context) Result {
	if s.sessions.State() != session.StateAuthenticated {
		s.replace(nil)
		return Result{Success: true}
	}

	var resp cartResponse
	if err := s.client.Do(ctx, http.MethodGet, "/cart", nil, &resp); err != nil {
		return s.failure(err)
	}
	s.replace(resp.Items)
	return Result{Success: true}
}

// Add puts a product into the server cart, then refetches the whole cart.
// price is the unit price snapshotted by the caller at add time.
func (s *Store) Add(ctx context.Context, productID, size string, quantity int, price float64) Result {
	if s.sessions.State() != session.StateAuthenticated {
		return Result{Message: "sign in to add items to your cart"}
	}
	if quantity < 1 {
		return Result{Message: "quantity must be positive"}
	}

	err := s.client.Do(ctx, http.MethodPost, "/cart", map[string]interface{}{
		"productId": productID,
		"size":      size,
		"quantity":  quantity,
		"price":     price,
	}, nil)
	if err != nil {
		return s.failure(err)
	}
	return s.Refresh(ctx)
}

// SetQuantity updates one line. A quantity below 1 is a removal, never a
// zero-quantity item.
func (s *Store) SetQuantity(ctx context.Context, itemID string, quantity int) Result {
	if quantity < 1 {
		return s.Remove(ctx, itemID)
	}
	if s.sessions.State() != session.StateAuthenticated {
		return Result{Message: "sign in to update your cart"}
	}

	var resp cartResponse
	err := s.client.Do(ctx, http.MethodPut, "/cart/"+itemID, map[string]int{"quantity": quantity}, &resp)
	if err != nil {
		return s.failure(err)
	}
	s.replace(resp.Items)
	return Result{Success: true}
}

// Remove deletes one line server-side and replaces the mirror from the
// response.
func (s *Store) Remove(ctx context.Context, itemID string) Result {
	if s.sessions.State() != session.StateAuthenticated {
		return Result{Message: "sign in to update your cart"}
	}

	var resp cartResponse
	err := s.client.Do(ctx, http.MethodDelete, "/cart/"+itemID, nil, &resp)
	if err != nil {
		return s.failure(err)
	}
	s.replace(resp.Items)
	return Result{Success: true}
}

// Items returns a copy of the mirrored lines.
func (s *Store) Items() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]domain.CartItem, len(s.items))
	copy(items, s.items)
	return items
}

// TotalItems recomputes the quantity sum on every read.
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.TotalItems(s.items)
}

// TotalPrice recomputes the price sum on every read.
func (s *Store) TotalPrice() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.TotalPrice(s.items)
}

func (s *Store) replace(items []domain.CartItem) {
	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
}

func (s *Store) failure(err error) Result {
	if api.IsUnauthorized(err) {
		s.sessions.Invalidate()
	}
	s.logger.Printf("cart request failed: %v", err)
	return Result{Message: api.UserMessage(err)}
}
