// Package checkout runs the fixed four-step wizard: address, shipping
// method, payment method, review. Transitions are linear and guarded; later
// steps never discard earlier answers. The wizard is transient state owned by
// one flow and is discarded once the confirmation is dismissed.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"boutique-client/internal/api"
	"boutique-client/internal/cart"
	"boutique-client/internal/domain"
)

type Step int

const (
	StepAddress Step = iota
	StepShipping
	StepPayment
	StepReview
)

func (s Step) String() string {
	switch s {
	case StepAddress:
		return "address"
	case StepShipping:
		return "shipping method"
	case StepPayment:
		return "payment method"
	case StepReview:
		return "review"
	}
	return "unknown"
}

type ShippingMethod string

const (
	ShippingStandard ShippingMethod = "standard"
	ShippingExpress  ShippingMethod = "express"
	ShippingFree     ShippingMethod = "free"
)

var shippingCosts = map[ShippingMethod]float64{
	ShippingStandard: 300,
	ShippingExpress:  500,
	ShippingFree:     0,
}

type PaymentMethod string

const (
	PaymentMpesa PaymentMethod = "mpesa"
	PaymentCard  PaymentMethod = "card"
	PaymentBank  PaymentMethod = "bank"
)

var paymentMethods = map[PaymentMethod]bool{
	PaymentMpesa: true,
	PaymentCard:  true,
	PaymentBank:  true,
}

// Till the storefront directs M-Pesa payments to.
const mpesaTill = "5763422"

var (
	ErrAtFirstStep = errors.New("already at the first step")
	ErrAtLastStep  = errors.New("already at review")
)

// ValidationError reports address fields that block advancing, keyed by
// field name so callers can render each message inline.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	return "invalid address: " + strings.Join(parts, "; ")
}

// Result reports wizard operation outcomes in the same shape the stores use.
type Result struct {
	Success bool
	Message string
}

// Cart is the slice of the cart store the wizard reads from.
type Cart interface {
	Items() []domain.CartItem
	TotalPrice() float64
	Refresh(ctx context.Context) cart.Result
}

// Wizard holds the cumulative checkout state. The subtotal is captured once
// at construction so the review total stays stable even if the cart mutates
// underneath.
type Wizard struct {
	client *api.Client
	cart   Cart
	logger *log.Logger

	step     Step
	address  domain.ShippingAddress
	shipping ShippingMethod
	payment  PaymentMethod
	subtotal float64

	placed    *domain.PlacedOrder
	lastError string
}

// New starts a wizard at the address step with the default selections
// pre-filled.
func New(client *api.Client, c Cart, logger *log.Logger) *Wizard {
	return &Wizard{
		client:   client,
		cart:     c,
		logger:   logger,
		step:     StepAddress,
		shipping: ShippingStandard,
		payment:  PaymentMpesa,
		subtotal: c.TotalPrice(),
	}
}

// ValidateAddress checks the required fields and returns one message per
// failing field, empty when the address is complete.
func ValidateAddress(a domain.ShippingAddress) map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(a.Address) == "" {
		errs["address"] = "address is required"
	}
	if strings.TrimSpace(a.City) == "" {
		errs["city"] = "city is required"
	}
	if strings.TrimSpace(a.PostalCode) == "" {
		errs["postalCode"] = "postal code is required"
	}
	if strings.TrimSpace(a.Country) == "" {
		errs["country"] = "country is required"
	}
	if len(strings.TrimSpace(a.Phone)) < 10 {
		errs["phone"] = "phone must be at least 10 digits"
	}
	return errs
}

// SetAddress records the destination. Validation happens on Continue, not
// here, so partial input can be held between edits.
func (w *Wizard) SetAddress(a domain.ShippingAddress) {
	w.address = a
}

func (w *Wizard) SetShipping(m ShippingMethod) error {
	if _, ok := shippingCosts[m]; !ok {
		return fmt.Errorf("unknown shipping method %q", m)
	}
	w.shipping = m
	return nil
}

func (w *Wizard) SetPayment(m PaymentMethod) error {
	if !paymentMethods[m] {
		return fmt.Errorf("unknown payment method %q", m)
	}
	w.payment = m
	return nil
}

// Continue advances exactly one step. From the address step it is blocked
// until every required field validates.
func (w *Wizard) Continue() error {
	switch w.step {
	case StepAddress:
		if errs := ValidateAddress(w.address); len(errs) > 0 {
			return &ValidationError{Fields: errs}
		}
		w.step = StepShipping
	case StepShipping:
		w.step = StepPayment
	case StepPayment:
		w.step = StepReview
	case StepReview:
		return ErrAtLastStep
	}
	return nil
}

// Back steps backward without discarding anything.
func (w *Wizard) Back() error {
	if w.step == StepAddress {
		return ErrAtFirstStep
	}
	w.step--
	return nil
}

func (w *Wizard) Step() Step { return w.step }

func (w *Wizard) Address() domain.ShippingAddress { return w.address }

func (w *Wizard) Shipping() ShippingMethod { return w.shipping }

func (w *Wizard) Payment() PaymentMethod { return w.payment }

// Subtotal is the cart total captured when the wizard started.
func (w *Wizard) Subtotal() float64 { return w.subtotal }

func (w *Wizard) ShippingCost() float64 { return shippingCosts[w.shipping] }

func (w *Wizard) Tax() float64 { return w.subtotal * domain.TaxRate }

// Total is subtotal + tax + shipping.
func (w *Wizard) Total() float64 {
	return w.subtotal + w.Tax() + w.ShippingCost()
}

// LastError is the message from the most recent failed submission, empty
// otherwise. It persists until a retry, mirroring a blocking banner.
func (w *Wizard) LastError() string { return w.lastError }

// Placed returns the accepted order while the payment-instructions sub-state
// is visible, nil before submission.
func (w *Wizard) Placed() *domain.PlacedOrder { return w.placed }

type orderResponse struct {
	Order domain.PlacedOrder `json:"order"`
}

// PlaceOrder submits the composed payload once. Failure keeps the wizard at
// review with the message set; the user retries manually. Success enters the
// payment-instructions sub-state without touching the cart, so the displayed
// total stays stable until the confirmation is dismissed.
func (w *Wizard) PlaceOrder(ctx context.Context) Result {
	if w.step != StepReview {
		return Result{Message: "complete the checkout steps first"}
	}
	if w.placed != nil {
		return Result{Message: "order already placed"}
	}
	items := w.cart.Items()
	if len(items) == 0 {
		return Result{Message: "your cart is empty"}
	}

	payload := domain.Order{
		ShippingAddress: w.address,
		ShippingMethod:  string(w.shipping),
		PaymentMethod:   string(w.payment),
		Items:           items,
		ItemsPrice:      w.subtotal,
		TaxPrice:        w.Tax(),
		ShippingPrice:   w.ShippingCost(),
		TotalPrice:      w.Total(),
		Phone:           w.address.Phone,
	}

	var resp orderResponse
	if err := w.client.Do(ctx, http.MethodPost, "/orders", payload, &resp); err != nil {
		w.lastError = api.UserMessage(err)
		w.logger.Printf("order submission failed: %v", err)
		return Result{Message: w.lastError}
	}

	w.lastError = ""
	w.placed = &resp.Order
	return Result{Success: true}
}

// Instructions renders the out-of-band M-Pesa payment text for the placed
// order.
func (w *Wizard) Instructions() string {
	if w.placed == nil {
		return ""
	}
	return fmt.Sprintf("Pay KES %.2f to M-Pesa till %s. Quote order %s as the reference.", w.Total(), mpesaTill, w.placed.ID)
}

// SubmitPaymentContact records the phone number the customer will pay from,
// available only while the instructions are visible.
func (w *Wizard) SubmitPaymentContact(ctx context.Context, phone string) Result {
	if w.placed == nil {
		return Result{Message: "no order awaiting payment"}
	}
	err := w.client.Do(ctx, http.MethodPut, "/orders/"+w.placed.ID+"/payment-contact", map[string]string{"paymentContact": phone}, nil)
	if err != nil {
		return Result{Message: api.UserMessage(err)}
	}
	return Result{Success: true, Message: "payment contact saved"}
}

// DismissInstructions closes the confirmation and only then lets the cart
// mirror catch up with the backend, which emptied the cart when it accepted
// the order.
func (w *Wizard) DismissInstructions(ctx context.Context) Result {
	if w.placed == nil {
		return Result{Message: "no order confirmation to dismiss"}
	}
	res := w.cart.Refresh(ctx)
	return Result{Success: res.Success, Message: res.Message}
}
