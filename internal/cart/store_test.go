package cart

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"boutique-client/internal/api"
	"boutique-client/internal/session"
)

type stubSessions struct {
	state       session.State
	invalidated bool
	listeners   []func(session.State)
}

func (s *stubSessions) State() session.State { return s.state }

func (s *stubSessions) Invalidate() {
	s.invalidated = true
	s.transition(session.StateUnauthenticated)
}

func (s *stubSessions) Subscribe(fn func(session.State)) {
	s.listeners = append(s.listeners, fn)
}

func (s *stubSessions) transition(st session.State) {
	s.state = st
	for _, fn := range s.listeners {
		fn(st)
	}
}

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func newTestStore(srvURL string, state session.State) (*Store, *stubSessions) {
	sessions := &stubSessions{state: state}
	return New(api.New(srvURL, nil), sessions, testLogger()), sessions
}

func TestRefreshWithoutSessionEmptiesLocally(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"items":[]}`))
	}))
	defer srv.Close()

	store, _ := newTestStore(srv.URL, session.StateUnauthenticated)
	res := store.Refresh(context.Background())
	if !res.Success {
		t.Fatalf("expected success, got %q", res.Message)
	}
	if calls != 0 {
		t.Fatalf("expected no network calls, got %d", calls)
	}
	if len(store.Items()) != 0 {
		t.Fatalf("expected empty mirror, got %v", store.Items())
	}
}

func TestRefreshReplacesMirror(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items":[
			{"_id":"c1","productId":"p1","name":"Ankara Print Maxi Dress","price":500,"size":"M","quantity":2},
			{"_id":"c2","productId":"p2","name":"Beaded Maasai Clutch","price":300,"size":"One Size","quantity":1}
		]}`))
	}))
	defer srv.Close()

	store, _ := newTestStore(srv.URL, session.StateAuthenticated)
	if res := store.Refresh(context.Background()); !res.Success {
		t.Fatalf("refresh failed: %q", res.Message)
	}
	if got := store.TotalItems(); got != 3 {
		t.Fatalf("expected 3 items total, got %d", got)
	}
	if got := store.TotalPrice(); got != 1300 {
		t.Fatalf("expected total 1300, got %v", got)
	}
	items := store.Items()
	if len(items) != 2 || items[0].ID != "c1" || items[1].ID != "c2" {
		t.Fatalf("unexpected mirror %v", items)
	}
}

func TestAddRequiresSession(t *testing.T) {
	store, _ := newTestStore("http://127.0.0.1:0", session.StateUnauthenticated)
	res := store.Add(context.Background(), "p1", "M", 1, 500)
	if res.Success || res.Message != "sign in to add items to your cart" {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestAddRejectsNonPositiveQuantity(t *testing.T) {
	store, _ := newTestStore("http://127.0.0.1:0", session.StateAuthenticated)
	res := store.Add(context.Background(), "p1", "M", 0, 500)
	if res.Success || res.Message != "quantity must be positive" {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestAddThenFullRefetch(t *testing.T) {
	var paths []string
	mux := http.NewServeMux()
	mux.HandleFunc("/cart", func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		if r.Method == http.MethodPost {
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"items":[]}`))
			return
		}
		w.Write([]byte(`{"items":[{"_id":"c1","productId":"p1","price":500,"quantity":1}]}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	store, _ := newTestStore(srv.URL, session.StateAuthenticated)
	res := store.Add(context.Background(), "p1", "M", 1, 500)
	if !res.Success {
		t.Fatalf("add failed: %q", res.Message)
	}
	if len(paths) != 2 || paths[0] != "POST /cart" || paths[1] != "GET /cart" {
		t.Fatalf("expected add then refetch, got %v", paths)
	}
	if store.TotalItems() != 1 {
		t.Fatalf("expected mirror refreshed, got %d items", store.TotalItems())
	}
}

func TestSetQuantityBelowOneIsRemoval(t *testing.T) {
	var seen []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Method+" "+r.URL.Path)
		w.Write([]byte(`{"items":[]}`))
	}))
	defer srv.Close()

	store, _ := newTestStore(srv.URL, session.StateAuthenticated)
	res := store.SetQuantity(context.Background(), "c1", 0)
	if !res.Success {
		t.Fatalf("expected success, got %q", res.Message)
	}
	if len(seen) != 1 || seen[0] != "DELETE /cart/c1" {
		t.Fatalf("expected a delete, got %v", seen)
	}
}

func TestSetQuantityReplacesFromResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/cart/c1" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Write([]byte(`{"items":[{"_id":"c1","productId":"p1","price":500,"quantity":5}]}`))
	}))
	defer srv.Close()

	store, _ := newTestStore(srv.URL, session.StateAuthenticated)
	res := store.SetQuantity(context.Background(), "c1", 5)
	if !res.Success {
		t.Fatalf("expected success, got %q", res.Message)
	}
	items := store.Items()
	if len(items) != 1 || items[0].Quantity != 5 {
		t.Fatalf("expected mirror to match response, got %v", items)
	}
	if store.TotalPrice() != 2500 {
		t.Fatalf("expected total 2500, got %v", store.TotalPrice())
	}
}

func TestFailedMutationKeepsMirror(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/cart", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items":[{"_id":"c1","productId":"p1","price":500,"quantity":1}]}`))
	})
	mux.HandleFunc("/cart/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"insufficient stock"}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	store, _ := newTestStore(srv.URL, session.StateAuthenticated)
	store.Refresh(context.Background())

	res := store.SetQuantity(context.Background(), "c1", 99)
	if res.Success || res.Message != "insufficient stock" {
		t.Fatalf("unexpected result %+v", res)
	}
	if len(store.Items()) != 1 {
		t.Fatalf("expected mirror untouched, got %v", store.Items())
	}
}

func TestMalformedResponseGetsGenericMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>`))
	}))
	defer srv.Close()

	store, _ := newTestStore(srv.URL, session.StateAuthenticated)
	res := store.Refresh(context.Background())
	if res.Success || res.Message != "server error, please try again" {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestUnauthorizedResponseInvalidatesSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"not authorized"}`))
	}))
	defer srv.Close()

	store, sessions := newTestStore(srv.URL, session.StateAuthenticated)
	res := store.Refresh(context.Background())
	if res.Success {
		t.Fatal("expected failure")
	}
	if !sessions.invalidated {
		t.Fatal("expected session invalidated")
	}
}

func TestSessionEndEmptiesMirror(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items":[{"_id":"c1","productId":"p1","price":500,"quantity":1}]}`))
	}))
	defer srv.Close()

	store, sessions := newTestStore(srv.URL, session.StateAuthenticated)
	store.Refresh(context.Background())
	if store.TotalItems() != 1 {
		t.Fatalf("expected seeded mirror, got %d", store.TotalItems())
	}

	sessions.transition(session.StateUnauthenticated)
	if len(store.Items()) != 0 {
		t.Fatalf("expected empty mirror after session end, got %v", store.Items())
	}
}
