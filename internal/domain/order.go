package domain

// TaxRate is the flat VAT applied to the cart subtotal at checkout.
const TaxRate = 0.16

// ShippingAddress is the destination collected by the checkout wizard.
type ShippingAddress struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
	Phone      string `json:"phone"`
}

// Order is the submission payload sent once to the backend. Items are a
// snapshot of the cart at submit time.
type Order struct {
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	ShippingMethod  string          `json:"shippingMethod"`
	PaymentMethod   string          `json:"paymentMethod"`
	Items           []CartItem      `json:"items"`
	ItemsPrice      float64         `json:"itemsPrice"`
	TaxPrice        float64         `json:"taxPrice"`
	ShippingPrice   float64         `json:"shippingPrice"`
	TotalPrice      float64         `json:"totalPrice"`
	Phone           string          `json:"phone"`
}

// PlacedOrder is what the backend returns once an order is accepted.
type PlacedOrder struct {
	ID         string  `json:"_id"`
	TotalPrice float64 `json:"totalPrice"`
	Status     string  `json:"status,omitempty"`
}
