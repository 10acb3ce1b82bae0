package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"boutique-client/internal/api"
	"boutique-client/internal/domain"
)

func TestProductsFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/products" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`[
			{"_id":"p1","name":"Ankara Print Maxi Dress","price":4500,"category":"Women","sizes":["S","M"]},
			{"_id":"p2","name":"Beaded Maasai Clutch","price":1800,"category":"Accessories","sizes":[]}
		]`))
	}))
	defer srv.Close()

	client := New(api.New(srv.URL, nil))
	products, err := client.Products(context.Background())
	if err != nil {
		t.Fatalf("products: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}
	if !products[0].HasSizes() {
		t.Fatal("expected sized product")
	}
	if products[1].HasSizes() {
		t.Fatal("expected one-size product")
	}
}

func TestFilterByCategory(t *testing.T) {
	products := []domain.Product{
		{ID: "p1", Category: domain.CategoryWomen},
		{ID: "p2", Category: domain.CategoryAccessories},
		{ID: "p3", Category: domain.CategoryWomen},
	}

	women := FilterByCategory(products, domain.CategoryWomen)
	if len(women) != 2 || women[0].ID != "p1" || women[1].ID != "p3" {
		t.Fatalf("unexpected filtered set %v", women)
	}
	if got := FilterByCategory(products, ""); len(got) != 3 {
		t.Fatalf("expected empty filter to pass everything, got %v", got)
	}
	if got := FilterByCategory(products, domain.CategoryMen); len(got) != 0 {
		t.Fatalf("expected no matches, got %v", got)
	}
}

func TestReviewsQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/reviews" || r.URL.Query().Get("productId") != "p1" {
			t.Errorf("unexpected request %s", r.URL.String())
		}
		w.Write([]byte(`[{"_id":"r1","productId":"p1","rating":5,"comment":"lovely fabric"}]`))
	}))
	defer srv.Close()

	client := New(api.New(srv.URL, nil))
	reviews, err := client.Reviews(context.Background(), "p1")
	if err != nil {
		t.Fatalf("reviews: %v", err)
	}
	if len(reviews) != 1 || reviews[0].Rating != 5 {
		t.Fatalf("unexpected reviews %v", reviews)
	}
}

func TestAddReviewValidatesRating(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	client := New(api.New(srv.URL, nil))
	for _, rating := range []int{0, 6, -1} {
		res := client.AddReview(context.Background(), "p1", rating, "nope")
		if res.Success || res.Message != "rating must be between 1 and 5" {
			t.Fatalf("unexpected result for rating %d: %+v", rating, res)
		}
	}
	if calls != 0 {
		t.Fatalf("expected no network calls, got %d", calls)
	}
}

func TestAddReviewPassesServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"product not found"}`))
	}))
	defer srv.Close()

	client := New(api.New(srv.URL, nil))
	res := client.AddReview(context.Background(), "ghost", 4, "fine")
	if res.Success || res.Message != "product not found" {
		t.Fatalf("unexpected result %+v", res)
	}
}
