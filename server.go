package bikeflow

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/theoremus-urban-solutions/bikeflow/config"
)

// Server exposes a Service over HTTP
type Server struct {
	svc        *Service
	logger     *zap.SugaredLogger
	httpServer *http.Server
	errs       chan error
}

// NewServer wires the routes for svc and prepares (but does not start) the listener
func NewServer(svc *Service, cfg config.ServerConfig, logger *zap.SugaredLogger) *Server {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	srv := &Server{svc: svc, logger: logger, errs: make(chan error, 1)}
	srv.httpServer = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.ListenAddr, cfg.Port),
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return srv
}

// Router builds the route table
func (srv *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(srv.logRequests)
	// registered on the root router so a method mismatch answers 405, not 404
	r.HandleFunc("/api/health", srv.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/api/traffic.{format:json|pb}", srv.handleTraffic).Methods(http.MethodGet)
	r.HandleFunc("/api/stations/{shortName}/traffic.{format:json|pb}", srv.handleStationTraffic).Methods(http.MethodGet)
	return r
}

func (srv *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		srv.logger.Debugw("request", "method", r.Method, "path", r.URL.Path, "query", r.URL.RawQuery, "elapsed", time.Since(start))
	})
}

// Start begins serving in the background
func (srv *Server) Start() {
	go func() {
		if err := srv.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			srv.logger.Errorw("server error", "error", err)
			srv.errs <- err
		}
	}()
	srv.logger.Infow("server listening", "addr", srv.httpServer.Addr)
}

// Shutdown stops accepting connections and waits for in-flight requests
func (srv *Server) Shutdown(ctx context.Context) error {
	return srv.httpServer.Shutdown(ctx)
}

// HandleGracefulShutdown blocks until SIGINT/SIGTERM or a listener failure,
// then shuts the server down
func (srv *Server) HandleGracefulShutdown() error {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	select {
	case <-sigs:
		srv.logger.Infow("shutdown signal received")
	case err := <-srv.errs:
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		srv.logger.Errorw("server shutdown error", "error", err)
		return err
	}
	srv.logger.Infow("server shut down successfully")
	return nil
}
