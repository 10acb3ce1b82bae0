package store

import (
	"context"
	"fmt"

	"boutique-client/internal/domain"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Seed inserts a starter catalog and an admin account for manual testing.
// It is a no-op when products already exist.
func (s *Store) Seed(ctx context.Context) error {
	count, err := s.CountProducts(ctx)
	if err != nil {
		return fmt.Errorf("count products: %w", err)
	}
	if count > 0 {
		return nil
	}

	products := []domain.Product{
		{
			Name:        "Ankara Print Maxi Dress",
			Description: "Flowing maxi dress in a bold ankara print",
			Price:       3500,
			Category:    domain.CategoryWomen,
			Stock:       12,
			Images:      []string{"https://images.boutique.test/ankara-maxi-1.jpg"},
			Sizes:       []string{"S", "M", "L", "XL"},
		},
		{
			Name:        "Linen Safari Shirt",
			Description: "Breathable linen shirt, relaxed cut",
			Price:       2200,
			Category:    domain.CategoryMen,
			Stock:       20,
			Images:      []string{"https://images.boutique.test/safari-shirt-1.jpg"},
			Sizes:       []string{"M", "L", "XL"},
		},
		{
			Name:        "High-Waist Denim Trousers",
			Description: "Stretch denim, high waist",
			Price:       2800,
			Category:    domain.CategoryBottomWear,
			Stock:       15,
			Images:      []string{"https://images.boutique.test/denim-trousers-1.jpg"},
			Sizes:       []string{"S", "M", "L"},
		},
		{
			Name:        "Beaded Maasai Clutch",
			Description: "Hand-beaded clutch bag",
			Price:       1500,
			Category:    domain.CategoryAccessories,
			Stock:       8,
			Images:      []string{"https://images.boutique.test/maasai-clutch-1.jpg"},
		},
	}

	for _, p := range products {
		p.ID = uuid.NewString()
		if err := s.CreateProduct(ctx, p); err != nil {
			return fmt.Errorf("seed product %s: %w", p.Name, err)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("Admin1234"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := User{
		ID:           uuid.NewString(),
		Name:         "Boutique Admin",
		Email:        "admin@boutique.test",
		Phone:        "0700000000",
		PasswordHash: string(hash),
		IsAdmin:      true,
	}
	if err := s.CreateUser(ctx, admin); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	return nil
}
