package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"boutique-client/internal/api"
	"boutique-client/internal/cart"
	"boutique-client/internal/domain"
)

type stubCart struct {
	items     []domain.CartItem
	total     float64
	refreshes int
}

func (c *stubCart) Items() []domain.CartItem { return c.items }

func (c *stubCart) TotalPrice() float64 { return c.total }

func (c *stubCart) Refresh(ctx context.Context) cart.Result {
	c.refreshes++
	c.items = nil
	c.total = 0
	return cart.Result{Success: true}
}

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func validAddress() domain.ShippingAddress {
	return domain.ShippingAddress{
		Address:    "12 Biashara Street",
		City:       "Nairobi",
		PostalCode: "00100",
		Country:    "Kenya",
		Phone:      "0712345678",
	}
}

func seededCart() *stubCart {
	return &stubCart{
		items: []domain.CartItem{
			{ID: "c1", ProductID: "p1", Name: "Ankara Print Maxi Dress", Price: 500, Size: "M", Quantity: 2},
		},
		total: 1000,
	}
}

func newTestWizard(srvURL string, c Cart) *Wizard {
	return New(api.New(srvURL, nil), c, testLogger())
}

func walkToReview(t *testing.T, w *Wizard) {
	t.Helper()
	w.SetAddress(validAddress())
	for i := 0; i < 3; i++ {
		if err := w.Continue(); err != nil {
			t.Fatalf("continue %d: %v", i, err)
		}
	}
	if w.Step() != StepReview {
		t.Fatalf("expected review, got %s", w.Step())
	}
}

func TestContinueBlockedByIncompleteAddress(t *testing.T) {
	w := newTestWizard("http://127.0.0.1:0", seededCart())
	w.SetAddress(domain.ShippingAddress{City: "Nairobi", Phone: "0712"})

	err := w.Continue()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	for _, field := range []string{"address", "postalCode", "country", "phone"} {
		if verr.Fields[field] == "" {
			t.Fatalf("expected message for %s, got %v", field, verr.Fields)
		}
	}
	if verr.Fields["city"] != "" {
		t.Fatalf("did not expect city failure, got %v", verr.Fields)
	}
	if w.Step() != StepAddress {
		t.Fatalf("expected wizard held at address, got %s", w.Step())
	}
}

func TestContinueAdvancesExactlyOneStep(t *testing.T) {
	w := newTestWizard("http://127.0.0.1:0", seededCart())
	w.SetAddress(validAddress())

	steps := []Step{StepShipping, StepPayment, StepReview}
	for _, want := range steps {
		if err := w.Continue(); err != nil {
			t.Fatalf("continue: %v", err)
		}
		if w.Step() != want {
			t.Fatalf("expected %s, got %s", want, w.Step())
		}
	}
	if err := w.Continue(); !errors.Is(err, ErrAtLastStep) {
		t.Fatalf("expected ErrAtLastStep, got %v", err)
	}
}

func TestBackKeepsAnswers(t *testing.T) {
	w := newTestWizard("http://127.0.0.1:0", seededCart())
	walkToReview(t, w)
	if err := w.SetShipping(ShippingExpress); err != nil {
		t.Fatalf("set shipping: %v", err)
	}

	if err := w.Back(); err != nil {
		t.Fatalf("back: %v", err)
	}
	if w.Step() != StepPayment {
		t.Fatalf("expected payment, got %s", w.Step())
	}
	if w.Shipping() != ShippingExpress {
		t.Fatalf("expected express preserved, got %s", w.Shipping())
	}
	if w.Address() != validAddress() {
		t.Fatalf("expected address preserved, got %+v", w.Address())
	}

	w.Back()
	w.Back()
	if err := w.Back(); !errors.Is(err, ErrAtFirstStep) {
		t.Fatalf("expected ErrAtFirstStep, got %v", err)
	}
}

func TestTotals(t *testing.T) {
	w := newTestWizard("http://127.0.0.1:0", seededCart())
	if w.Subtotal() != 1000 {
		t.Fatalf("expected subtotal 1000, got %v", w.Subtotal())
	}
	if w.ShippingCost() != 300 {
		t.Fatalf("expected standard shipping 300, got %v", w.ShippingCost())
	}
	if w.Tax() != 160 {
		t.Fatalf("expected tax 160, got %v", w.Tax())
	}
	if w.Total() != 1460 {
		t.Fatalf("expected total 1460, got %v", w.Total())
	}

	if err := w.SetShipping(ShippingExpress); err != nil {
		t.Fatalf("set shipping: %v", err)
	}
	if w.Total() != 1660 {
		t.Fatalf("expected total 1660 with express, got %v", w.Total())
	}
}

func TestSubtotalCapturedOnce(t *testing.T) {
	c := seededCart()
	w := newTestWizard("http://127.0.0.1:0", c)
	c.total = 9999
	if w.Subtotal() != 1000 {
		t.Fatalf("expected subtotal frozen at 1000, got %v", w.Subtotal())
	}
	if w.Total() != 1460 {
		t.Fatalf("expected total frozen at 1460, got %v", w.Total())
	}
}

func TestSetShippingRejectsUnknownMethod(t *testing.T) {
	w := newTestWizard("http://127.0.0.1:0", seededCart())
	if err := w.SetShipping(ShippingMethod("drone")); err == nil {
		t.Fatal("expected error")
	}
	if w.Shipping() != ShippingStandard {
		t.Fatalf("expected default kept, got %s", w.Shipping())
	}
	if err := w.SetPayment(PaymentMethod("barter")); err == nil {
		t.Fatal("expected error")
	}
}

func TestPlaceOrderRequiresReviewStep(t *testing.T) {
	w := newTestWizard("http://127.0.0.1:0", seededCart())
	res := w.PlaceOrder(context.Background())
	if res.Success || res.Message != "complete the checkout steps first" {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestPlaceOrderRejectsEmptyCart(t *testing.T) {
	c := &stubCart{}
	w := newTestWizard("http://127.0.0.1:0", c)
	walkToReview(t, w)
	res := w.PlaceOrder(context.Background())
	if res.Success || res.Message != "your cart is empty" {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestPlaceOrderPayload(t *testing.T) {
	var got domain.Order
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/orders" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"order":{"_id":"o1","totalPrice":1460,"status":"pending"}}`))
	}))
	defer srv.Close()

	w := newTestWizard(srv.URL, seededCart())
	walkToReview(t, w)
	res := w.PlaceOrder(context.Background())
	if !res.Success {
		t.Fatalf("place order failed: %q", res.Message)
	}

	if got.ItemsPrice != 1000 || got.TaxPrice != 160 || got.ShippingPrice != 300 || got.TotalPrice != 1460 {
		t.Fatalf("unexpected totals %+v", got)
	}
	if got.ShippingMethod != "standard" || got.PaymentMethod != "mpesa" {
		t.Fatalf("unexpected selections %+v", got)
	}
	if got.Phone != "0712345678" || got.ShippingAddress.City != "Nairobi" {
		t.Fatalf("unexpected address %+v", got)
	}
	if len(got.Items) != 1 || got.Items[0].ProductID != "p1" {
		t.Fatalf("unexpected items %v", got.Items)
	}
}

func TestPlaceOrderFailureStaysOnReview(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"insufficient stock for Ankara Print Maxi Dress"}`))
	}))
	defer srv.Close()

	c := seededCart()
	w := newTestWizard(srv.URL, c)
	walkToReview(t, w)

	res := w.PlaceOrder(context.Background())
	if res.Success {
		t.Fatal("expected failure")
	}
	if w.LastError() != "insufficient stock for Ankara Print Maxi Dress" {
		t.Fatalf("unexpected last error %q", w.LastError())
	}
	if w.Step() != StepReview {
		t.Fatalf("expected wizard held at review, got %s", w.Step())
	}
	if w.Placed() != nil {
		t.Fatal("expected no placed order")
	}
	if c.refreshes != 0 || len(c.items) != 1 {
		t.Fatalf("expected cart untouched, refreshes=%d items=%v", c.refreshes, c.items)
	}
}

func TestPlaceOrderSuccessDefersCartClear(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"order":{"_id":"o1","totalPrice":1460,"status":"pending"}}`))
	}))
	defer srv.Close()

	c := seededCart()
	w := newTestWizard(srv.URL, c)
	walkToReview(t, w)

	res := w.PlaceOrder(context.Background())
	if !res.Success {
		t.Fatalf("place order failed: %q", res.Message)
	}
	if w.Placed() == nil || w.Placed().ID != "o1" {
		t.Fatalf("unexpected placed order %+v", w.Placed())
	}
	if c.refreshes != 0 {
		t.Fatalf("expected cart untouched until dismissal, refreshes=%d", c.refreshes)
	}
	if w.Total() != 1460 {
		t.Fatalf("expected displayed total stable, got %v", w.Total())
	}
	if w.Instructions() == "" {
		t.Fatal("expected payment instructions")
	}

	again := w.PlaceOrder(context.Background())
	if again.Success || again.Message != "order already placed" {
		t.Fatalf("unexpected resubmission result %+v", again)
	}

	dismiss := w.DismissInstructions(context.Background())
	if !dismiss.Success {
		t.Fatalf("dismiss failed: %q", dismiss.Message)
	}
	if c.refreshes != 1 {
		t.Fatalf("expected one refresh after dismissal, got %d", c.refreshes)
	}
}

func TestSubmitPaymentContact(t *testing.T) {
	var contact string
	mux := http.NewServeMux()
	mux.HandleFunc("/orders", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"order":{"_id":"o1","status":"pending"}}`))
	})
	mux.HandleFunc("/orders/o1/payment-contact", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		contact = body["paymentContact"]
		w.Write([]byte(`{"message":"payment contact saved"}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	w := newTestWizard(srv.URL, seededCart())

	res := w.SubmitPaymentContact(context.Background(), "0712345678")
	if res.Success || res.Message != "no order awaiting payment" {
		t.Fatalf("unexpected result before placing %+v", res)
	}

	walkToReview(t, w)
	if res := w.PlaceOrder(context.Background()); !res.Success {
		t.Fatalf("place order failed: %q", res.Message)
	}
	res = w.SubmitPaymentContact(context.Background(), "0712345678")
	if !res.Success {
		t.Fatalf("submit contact failed: %q", res.Message)
	}
	if contact != "0712345678" {
		t.Fatalf("expected contact recorded, got %q", contact)
	}
}
