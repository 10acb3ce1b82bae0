package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"boutique-client/internal/api"
	"boutique-client/internal/domain"
)

func validInput() ProductInput {
	return ProductInput{
		Name:     "Ankara Print Maxi Dress",
		Price:    4500,
		Category: domain.CategoryWomen,
		Stock:    10,
		Sizes:    []string{"S", "M", "L"},
	}
}

func TestCreateBackfillsPlaceholderImage(t *testing.T) {
	var got ProductInput
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"_id":"p1"}`))
	}))
	defer srv.Close()

	client := New(api.New(srv.URL, nil))
	in := validInput()
	in.Images = []string{"", "   "}
	if _, err := client.Create(context.Background(), in); err != nil {
		t.Fatalf("create: %v", err)
	}
	if !reflect.DeepEqual(got.Images, []string{PlaceholderImage}) {
		t.Fatalf("expected exactly one placeholder image, got %v", got.Images)
	}
}

func TestCreateCapsImages(t *testing.T) {
	var got ProductInput
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"_id":"p1"}`))
	}))
	defer srv.Close()

	client := New(api.New(srv.URL, nil))
	in := validInput()
	in.Images = []string{"https://a/1.jpg", "https://a/2.jpg", " https://a/3.jpg ", "https://a/4.jpg", "https://a/5.jpg"}
	if _, err := client.Create(context.Background(), in); err != nil {
		t.Fatalf("create: %v", err)
	}
	want := []string{"https://a/1.jpg", "https://a/2.jpg", "https://a/3.jpg"}
	if !reflect.DeepEqual(got.Images, want) {
		t.Fatalf("expected first three trimmed images, got %v", got.Images)
	}
}

func TestCreateValidatesBeforeSending(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	client := New(api.New(srv.URL, nil))

	cases := []struct {
		name string
		in   ProductInput
		want string
	}{
		{"missing name", ProductInput{Price: 100, Category: domain.CategoryMen}, "name required"},
		{"zero price", ProductInput{Name: "Kitenge Shirt", Category: domain.CategoryMen}, "price must be positive"},
		{"negative stock", ProductInput{Name: "Kitenge Shirt", Price: 100, Stock: -1, Category: domain.CategoryMen}, "stock must not be negative"},
		{"unknown category", ProductInput{Name: "Kitenge Shirt", Price: 100, Category: "Footwear"}, `unknown category "Footwear"`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := client.Create(context.Background(), tc.in)
			if err == nil || err.Error() != tc.want {
				t.Fatalf("expected %q, got %v", tc.want, err)
			}
		})
	}
	if calls != 0 {
		t.Fatalf("expected no network calls on invalid input, got %d", calls)
	}
}

func TestUpdateTargetsProduct(t *testing.T) {
	var gotPath, gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		w.Write([]byte(`{"_id":"p1","name":"Kitenge Shirt"}`))
	}))
	defer srv.Close()

	client := New(api.New(srv.URL, nil))
	in := validInput()
	product, err := client.Update(context.Background(), "p1", in)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if gotMethod != http.MethodPut || gotPath != "/admin/products/p1" {
		t.Fatalf("unexpected request %s %s", gotMethod, gotPath)
	}
	if product.ID != "p1" {
		t.Fatalf("unexpected product %+v", product)
	}
}

func TestDelete(t *testing.T) {
	var gotPath, gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		w.Write([]byte(`{"message":"product deleted"}`))
	}))
	defer srv.Close()

	client := New(api.New(srv.URL, nil))
	if err := client.Delete(context.Background(), "p1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/admin/products/p1" {
		t.Fatalf("unexpected request %s %s", gotMethod, gotPath)
	}
}
