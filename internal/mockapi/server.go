// Package mockapi implements the boutique backend's REST surface against an
// embedded database. It exists so the client has something real to talk to in
// development and in integration tests, with business rules only as deep as a
// client can observe them.
package mockapi

import (
	"context"
	"log"
	"net/http"
	"time"

	"boutique-client/internal/mockapi/store"

	"github.com/gin-gonic/gin"
)

// Server wraps the HTTP server setup.
type Server struct {
	httpServer *http.Server
	logger     *log.Logger
}

// Options collects the pieces New needs.
type Options struct {
	Addr      string
	Store     *store.Store
	JWTSecret string
	TokenTTL  time.Duration
	Logger    *log.Logger
}

// New builds a Server with the full route set mounted.
func New(opts Options) *Server {
	router := BuildRouter(opts.Logger, opts.Store, opts.JWTSecret, opts.TokenTTL)

	httpSrv := &http.Server{
		Addr:              opts.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &Server{
		httpServer: httpSrv,
		logger:     opts.Logger,
	}
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
