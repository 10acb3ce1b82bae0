package domain

// Product categories understood by the storefront.
const (
	CategoryMen         = "Men"
	CategoryWomen       = "Women"
	CategoryTopWear     = "Top Wear"
	CategoryBottomWear  = "Bottom Wear"
	CategoryAccessories = "Accessories"
)

// OneSize is the sentinel size for products with no explicit size options.
const OneSize = "One Size"

// Categories lists every valid product category.
var Categories = []string{
	CategoryMen,
	CategoryWomen,
	CategoryTopWear,
	CategoryBottomWear,
	CategoryAccessories,
}

// ValidCategory reports whether c is a known category.
func ValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

type Product struct {
	ID          string   `json:"_id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	Stock       int      `json:"stock"`
	Images      []string `json:"images"`
	Sizes       []string `json:"sizes"`
}

// HasSizes reports whether the product requires a size to be chosen.
// An empty size set means "one size".
func (p Product) HasSizes() bool {
	return len(p.Sizes) > 0
}
