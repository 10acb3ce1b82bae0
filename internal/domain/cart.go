package domain

// CartItem is one line of the server-authoritative cart. Price is the unit
// price snapshotted when the item was added, not the product's live price.
type CartItem struct {
	ID        string  `json:"_id"`
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Size      string  `json:"size"`
	Quantity  int     `json:"quantity"`
}

// TotalItems sums quantities across items.
func TotalItems(items []CartItem) int {
	total := 0
	for _, it := range items {
		total += it.Quantity
	}
	return total
}

// TotalPrice sums price x quantity across items. Always recomputed from the
// item list, never cached.
func TotalPrice(items []CartItem) float64 {
	total := 0.0
	for _, it := range items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}
