// Package httpapi exposes the authentication service over JSON HTTP:
// POST /register-user, POST /login-user, POST /validate-user, GET /metrics.
// The access token travels in a configurable request header.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/credgate/credgate/internal/common"
	"github.com/credgate/credgate/internal/logging"
	"github.com/credgate/credgate/internal/server/users"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	address     string
	logger      logging.Logger
	users       *users.Service
	tokenHeader string
}

func NewServer(address string, logger logging.Logger, us *users.Service, tokenHeader string) *Server {
	if tokenHeader == "" {
		tokenHeader = common.DefaultAccessTokenHeader
	}
	return &Server{
		address:     address,
		logger:      logger.With("module", "httpapi"),
		users:       us,
		tokenHeader: tokenHeader,
	}
}

// Handler builds the route table. Exposed separately so tests can drive the
// mux without a listener.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /register-user", s.handleRegister)
	mux.HandleFunc("POST /login-user", s.handleLogin)
	mux.HandleFunc("POST /validate-user", s.handleValidate)
	mux.Handle("GET /metrics", promhttp.Handler())
	return mux
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{Addr: s.address, Handler: s.Handler()}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
