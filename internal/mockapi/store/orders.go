package store

import (
	"context"
	"database/sql"
	"errors"

	"boutique-client/internal/domain"
)

type OrderRecord struct {
	ID             string
	UserID         string
	Payload        []byte
	TotalPrice     float64
	Status         string
	PaymentContact string
}

func (s *Store) CreateOrder(ctx context.Context, rec OrderRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO orders (id, user_id, payload, total_price, status) VALUES (?, ?, ?, ?, ?)`,
		rec.ID, rec.UserID, rec.Payload, rec.TotalPrice, rec.Status)
	return err
}

func (s *Store) OrderByID(ctx context.Context, id string) (*OrderRecord, error) {
	var rec OrderRecord
	err := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, payload, total_price, status, payment_contact FROM orders WHERE id = ?`, id).
		Scan(&rec.ID, &rec.UserID, &rec.Payload, &rec.TotalPrice, &rec.Status, &rec.PaymentContact)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *Store) SetPaymentContact(ctx context.Context, orderID, contact string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE orders SET payment_contact = ? WHERE id = ?`, contact, orderID)
	if err != nil {
		return err
	}
	if rowsAffected(res) == 0 {
		return domain.ErrNotFound
	}
	return nil
}
