// Package session tracks the authenticated-identity lifecycle bound to the
// single stored credential. Every authenticated operation in the client is
// gated on this store's state.
package session

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"boutique-client/internal/api"
	"boutique-client/internal/domain"
)

// State is where the session machine currently is. The only transition back
// to StateChecking is constructing a fresh store.
type State int

const (
	StateChecking State = iota
	StateAuthenticated
	StateUnauthenticated
)

func (s State) String() string {
	switch s {
	case StateChecking:
		return "checking"
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	}
	return "unknown"
}

// Credentials is the single-slot token store the session owns.
type Credentials interface {
	Token() string
	Set(token string) error
	Clear() error
}

// Result reports an operation outcome without throwing across package
// boundaries.
type Result struct {
	Success bool
	Message string
}

// LoginResult carries the identity on success.
type LoginResult struct {
	Success  bool
	Message  string
	Identity *domain.Identity
}

// ProfileUpdate lists mutable identity fields; empty strings are left
// untouched server-side.
type ProfileUpdate struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password,omitempty"`
}

// Store is the session store. It fails closed: any doubt about the
// credential resolves to StateUnauthenticated with the slot cleared.
type Store struct {
	client       *api.Client
	creds        Credentials
	logger       *log.Logger
	checkTimeout time.Duration

	mu        sync.Mutex
	state     State
	identity  *domain.Identity
	listeners []func(State)
}

// New builds a Store in StateChecking. checkTimeout bounds CheckSession; the
// deadline fires even if the validation request never resolves.
func New(client *api.Client, creds Credentials, logger *log.Logger, checkTimeout time.Duration) *Store {
	return &Store{
		client:       client,
		creds:        creds,
		logger:       logger,
		checkTimeout: checkTimeout,
		state:        StateChecking,
	}
}

// Subscribe registers fn to run on every state transition. Used by the cart
// store to couple its lifecycle to the session without sharing state.
func (s *Store) Subscribe(fn func(State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// State returns the current machine state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Identity returns the authenticated identity, or nil.
func (s *Store) Identity() *domain.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil {
		return nil
	}
	id := *s.identity
	return &id
}

type loginResponse struct {
	Token string `json:"token"`
	domain.Identity
}

// Login exchanges credentials for a token. Rejections come back as
// {Success: false, Message}, never as a panic or error escaping the store.
func (s *Store) Login(ctx context.Context, email, password string) LoginResult {
	var resp loginResponse
	err := s.client.Do(ctx, http.MethodPost, "/users/login", map[string]string{
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		return LoginResult{Message: api.UserMessage(err)}
	}

	if err := s.creds.Set(resp.Token); err != nil {
		s.logger.Printf("persist token: %v", err)
	}
	identity := resp.Identity
	s.setIdentity(&identity)
	s.setState(StateAuthenticated)
	return LoginResult{Success: true, Identity: &identity}
}

// Register creates an account. It does not log the new user in; the
// storefront sends them to the login screen afterwards.
func (s *Store) Register(ctx context.Context, name, email, phone, password string) Result {
	err := s.client.Do(ctx, http.MethodPost, "/users/register", map[string]string{
		"name":     name,
		"email":    email,
		"phone":    phone,
		"password": password,
	}, nil)
	if err != nil {
		return Result{Message: api.UserMessage(err)}
	}
	return Result{Success: true, Message: "account created"}
}

// Logout drops the credential and identity. Purely local; it succeeds even
// with the backend unreachable.
func (s *Store) Logout() {
	if err := s.creds.Clear(); err != nil {
		s.logger.Printf("clear token: %v", err)
	}
	s.setIdentity(nil)
	s.setState(StateUnauthenticated)
}

type meResponse struct {
	User domain.Identity `json:"user"`
}

// CheckSession resolves StateChecking on startup. No token means
// unauthenticated with zero network calls. With a token, the backend must
// confirm the identity within the check timeout; a 401, a timeout and a
// connection failure all land in the same place: slot cleared,
// unauthenticated.
func (s *Store) CheckSession(ctx context.Context) State {
	if s.creds.Token() == "" {
		s.setIdentity(nil)
		s.setState(StateUnauthenticated)
		return StateUnauthenticated
	}

	ctx, cancel := context.WithTimeout(ctx, s.checkTimeout)
	defer cancel()

	var resp meResponse
	if err := s.client.Do(ctx, http.MethodGet, "/users/me", nil, &resp); err != nil {
		s.logger.Printf("session check failed, logging out: %v", err)
		s.Invalidate()
		return StateUnauthenticated
	}

	identity := resp.User
	s.setIdentity(&identity)
	s.setState(StateAuthenticated)
	return StateAuthenticated
}

// Invalidate clears the credential after a rejection observed elsewhere, e.g.
// a 401 on a cart call.
func (s *Store) Invalidate() {
	if err := s.creds.Clear(); err != nil {
		s.logger.Printf("clear token: %v", err)
	}
	s.setIdentity(nil)
	s.setState(StateUnauthenticated)
}

// UpdateProfile sends mutable identity fields and merges the confirmed
// subset back into the local identity.
func (s *Store) UpdateProfile(ctx context.Context, in ProfileUpdate) Result {
	var updated domain.Identity
	err := s.client.Do(ctx, http.MethodPut, "/users/profile", in, &updated)
	if err != nil {
		if api.IsUnauthorized(err) {
			s.Invalidate()
		}
		return Result{Message: api.UserMessage(err)}
	}
	s.mergeIdentity(updated)
	return Result{Success: true, Message: "profile updated"}
}

func (s *Store) mergeIdentity(updated domain.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil {
		s.identity = &updated
		return
	}
	if updated.Name != "" {
		s.identity.Name = updated.Name
	}
	if updated.Email != "" {
		s.identity.Email = updated.Email
	}
	if updated.Phone != "" {
		s.identity.Phone = updated.Phone
	}
}

func (s *Store) setIdentity(id *domain.Identity) {
	s.mu.Lock()
	s.identity = id
	s.mu.Unlock()
}

func (s *Store) setState(next State) {
	s.mu.Lock()
	changed := s.state != next
	s.state = next
	listeners := make([]func(State), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	if !changed {
		return
	}
	for _, fn := range listeners {
		fn(next)
	}
}
