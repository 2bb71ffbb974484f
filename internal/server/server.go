// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sirseerhq/hacktoberfest-checker/internal/config"
	"github.com/sirseerhq/hacktoberfest-checker/internal/eligibility"
	"github.com/sirseerhq/hacktoberfest-checker/internal/metrics"
)

// Checker runs an eligibility check. *eligibility.Checker implements it.
type Checker interface {
	Check(ctx context.Context, username string) (*eligibility.Result, error)
}

// Server is the HTTP front end of the checker.
type Server struct {
	checker Checker
	metrics *metrics.Metrics
	log     *zap.SugaredLogger
	cfg     config.ServerConfig
	router  *gin.Engine
}

// New builds a Server and its routes. m may be nil, in which case /metrics
// is not served.
func New(checker Checker, m *metrics.Metrics, log *zap.SugaredLogger, cfg config.ServerConfig) *Server {
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	s := &Server{
		checker: checker,
		metrics: m,
		log:     log,
		cfg:     cfg,
	}

	router := gin.New()
	router.Use(recovery(log), requestID(), requestLogger(log), instrument(m))

	router.GET("/prs", s.handleGetPRs)
	router.GET("/healthz", s.handleHealthz)
	if m != nil {
		router.GET("/metrics", gin.WrapH(m.Handler()))
	}
	router.NoRoute(func(c *gin.Context) {
		writeError(c, http.StatusNotFound, errors.New("not found"))
	})

	s.router = router
	return s
}

// Handler returns the router, e.g. for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens on the configured address until ctx is cancelled, then shuts
// down gracefully within the configured timeout.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      s.cfg.RequestTimeout + 5*time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Infow("http server listening", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	s.log.Infow("shutting down http server", "timeout", s.cfg.ShutdownTimeout.String())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.log.Warnw("http server shutdown timeout", "timeout", s.cfg.ShutdownTimeout.String(), "error", err)
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return nil
}
