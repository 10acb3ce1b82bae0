package store

import (
	"context"
	"database/sql"
	"errors"

	"boutique-client/internal/domain"
)

// User is a stored account. PasswordHash never leaves this package's
// callers; Identity() is the shape handed to clients.
type User struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	IsAdmin      bool
}

func (u User) Identity() domain.Identity {
	return domain.Identity{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		Phone:   u.Phone,
		IsAdmin: u.IsAdmin,
	}
}

func (s *Store) CreateUser(ctx context.Context, u User) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, name, email, phone, password_hash, is_admin) VALUES (?, ?, ?, ?, ?, ?)`,
		u.ID, u.Name, u.Email, u.Phone, u.PasswordHash, u.IsAdmin)
	return err
}

func (s *Store) UserByEmail(ctx context.Context, email string) (*User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx,
		`SELECT id, name, email, phone, password_hash, is_admin FROM users WHERE email = ?`, email))
}

func (s *Store) UserByID(ctx context.Context, id string) (*User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx,
		`SELECT id, name, email, phone, password_hash, is_admin FROM users WHERE id = ?`, id))
}

// SaveUser writes back every mutable field.
func (s *Store) SaveUser(ctx context.Context, u User) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET name = ?, email = ?, phone = ?, password_hash = ? WHERE id = ?`,
		u.Name, u.Email, u.Phone, u.PasswordHash, u.ID)
	if err != nil {
		return err
	}
	if rowsAffected(res) == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Store) scanUser(row *sql.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.PasswordHash, &u.IsAdmin)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
