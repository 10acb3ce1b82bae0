package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"boutique-client/internal/domain"
)

func (s *Store) ReviewsByProduct(ctx context.Context, productID string) ([]domain.Review, error) {
	return s.queryReviews(ctx,
		`SELECT id, product_id, user_id, user_name, rating, comment, created_at FROM reviews WHERE product_id = ? ORDER BY created_at DESC`,
		productID)
}

func (s *Store) ReviewsByUser(ctx context.Context, userID string) ([]domain.Review, error) {
	return s.queryReviews(ctx,
		`SELECT id, product_id, user_id, user_name, rating, comment, created_at FROM reviews WHERE user_id = ? ORDER BY created_at DESC`,
		userID)
}

func (s *Store) ReviewByID(ctx context.Context, id string) (*domain.Review, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, product_id, user_id, user_name, rating, comment, created_at FROM reviews WHERE id = ?`, id)
	var r domain.Review
	var created string
	err := row.Scan(&r.ID, &r.ProductID, &r.UserID, &r.UserName, &r.Rating, &r.Comment, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	r.CreatedAt = parseTimestamp(created)
	return &r, nil
}

func (s *Store) CreateReview(ctx context.Context, r domain.Review) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO reviews (id, product_id, user_id, user_name, rating, comment) VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID, r.ProductID, r.UserID, r.UserName, r.Rating, r.Comment)
	return err
}

func (s *Store) UpdateReview(ctx context.Context, id, userID string, rating int, comment string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE reviews SET rating = ?, comment = ? WHERE id = ? AND user_id = ?`, rating, comment, id, userID)
	if err != nil {
		return err
	}
	if rowsAffected(res) == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteReview(ctx context.Context, id, userID string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM reviews WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}
	if rowsAffected(res) == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Store) InsertContactMessage(ctx context.Context, name, email, message string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO contact_messages (name, email, message) VALUES (?, ?, ?)`, name, email, message)
	return err
}

// InsertSubscriber is idempotent; subscribing twice is not an error.
func (s *Store) InsertSubscriber(ctx context.Context, email string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO subscribers (email) VALUES (?)`, email)
	return err
}

func (s *Store) queryReviews(ctx context.Context, query string, arg string) ([]domain.Review, error) {
	rows, err := s.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := []domain.Review{}
	for rows.Next() {
		var r domain.Review
		var created string
		if err := rows.Scan(&r.ID, &r.ProductID, &r.UserID, &r.UserName, &r.Rating, &r.Comment, &created); err != nil {
			return nil, err
		}
		r.CreatedAt = parseTimestamp(created)
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}

func parseTimestamp(raw string) time.Time {
	for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}
