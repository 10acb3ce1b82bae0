package store

import (
	"context"
	"database/sql"
	"errors"

	"boutique-client/internal/domain"
)

func (s *Store) Products(ctx context.Context) ([]domain.Product, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, description, price, category, stock, images, sizes FROM products ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (s *Store) ProductByID(ctx context.Context, id string) (*domain.Product, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, description, price, category, stock, images, sizes FROM products WHERE id = ?`, id)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) CreateProduct(ctx context.Context, p domain.Product) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO products (id, name, description, price, category, stock, images, sizes) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Description, p.Price, p.Category, p.Stock, encodeStrings(p.Images), encodeStrings(p.Sizes))
	return err
}

func (s *Store) UpdateProduct(ctx context.Context, p domain.Product) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE products SET name = ?, description = ?, price = ?, category = ?, stock = ?, images = ?, sizes = ? WHERE id = ?`,
		p.Name, p.Description, p.Price, p.Category, p.Stock, encodeStrings(p.Images), encodeStrings(p.Sizes), p.ID)
	if err != nil {
		return err
	}
	if rowsAffected(res) == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if rowsAffected(res) == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Store) CountProducts(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&n)
	return n, err
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row scanner) (domain.Product, error) {
	var (
		p      domain.Product
		images string
		sizes  string
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Category, &p.Stock, &images, &sizes); err != nil {
		return domain.Product{}, err
	}
	p.Images = decodeStrings(images)
	p.Sizes = decodeStrings(sizes)
	return p, nil
}
