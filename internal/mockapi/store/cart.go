package store

import (
	"context"
	"database/sql"
	"errors"

	"boutique-client/internal/domain"

	"github.com/google/uuid"
)

func (s *Store) CartItems(ctx context.Context, userID string) ([]domain.CartItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, product_id, name, price, size, quantity FROM cart_items WHERE user_id = ? ORDER BY created_at, id`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.CartItem{}
	for rows.Next() {
		var it domain.CartItem
		if err := rows.Scan(&it.ID, &it.ProductID, &it.Name, &it.Price, &it.Size, &it.Quantity); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// AddCartItem inserts a line, or bumps the quantity when the same product and
// size is already in the cart.
func (s *Store) AddCartItem(ctx context.Context, userID string, item domain.CartItem) error {
	var existingID string
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM cart_items WHERE user_id = ? AND product_id = ? AND size = ?`,
		userID, item.ProductID, item.Size).Scan(&existingID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if item.ID == "" {
			item.ID = uuid.NewString()
		}
		_, err = s.db.ExecContext(ctx,
			`INSERT INTO cart_items (id, user_id, product_id, name, price, size, quantity) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			item.ID, userID, item.ProductID, item.Name, item.Price, item.Size, item.Quantity)
		return err
	case err != nil:
		return err
	default:
		_, err = s.db.ExecContext(ctx,
			`UPDATE cart_items SET quantity = quantity + ? WHERE id = ?`, item.Quantity, existingID)
		return err
	}
}

func (s *Store) SetCartItemQuantity(ctx context.Context, userID, itemID string, quantity int) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE cart_items SET quantity = ? WHERE id = ? AND user_id = ?`, quantity, itemID, userID)
	if err != nil {
		return err
	}
	if rowsAffected(res) == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteCartItem(ctx context.Context, userID, itemID string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM cart_items WHERE id = ? AND user_id = ?`, itemID, userID)
	if err != nil {
		return err
	}
	if rowsAffected(res) == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Store) ClearCart(ctx context.Context, userID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = ?`, userID)
	return err
}
