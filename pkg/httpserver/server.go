package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

type config struct {
	addr            string
	readTimeout     time.Duration
	writeTimeout    time.Duration
	idleTimeout     time.Duration
	shutdownTimeout time.Duration
	logger          *slog.Logger
	drainHooks      []func(context.Context)
}

func defaultConfig() *config {
	return &config{
		addr:            ":8080",
		readTimeout:     30 * time.Second,
		writeTimeout:    30 * time.Second,
		idleTimeout:     120 * time.Second,
		shutdownTimeout: 10 * time.Second,
		logger:          slog.Default(),
	}
}

// Server wraps http.Server with signal-driven graceful shutdown. Drain
// hooks run after in-flight requests finish, so resources the handlers
// depend on (per-tenant connections in particular) stay alive until the
// last response is written.
type Server struct {
	cfg  *config
	srv  *http.Server
	once sync.Once
}

// New returns a configured Server.
func New(opts ...Option) *Server {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return &Server{cfg: cfg}
}

// Run starts listening and blocks until the context is cancelled, a
// termination signal arrives, or the listener fails.
func (s *Server) Run(ctx context.Context, handler http.Handler) error {
	s.srv = &http.Server{
		Addr:         s.cfg.addr,
		Handler:      handler,
		ReadTimeout:  s.cfg.readTimeout,
		WriteTimeout: s.cfg.writeTimeout,
		IdleTimeout:  s.cfg.idleTimeout,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- s.srv.ListenAndServe() }()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	s.cfg.logger.Info("http server listening", slog.String("addr", s.cfg.addr))

	var runErr error
	select {
	case <-ctx.Done():
		runErr = s.Shutdown(context.Background())
		<-errCh
	case sig := <-stop:
		s.cfg.logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		runErr = s.Shutdown(context.Background())
		<-errCh
	case runErr = <-errCh:
		if runErr != nil && !errors.Is(runErr, http.ErrServerClosed) {
			runErr = errors.Join(ErrStart, runErr)
		}
	}
	return runErr
}

// Shutdown drains in-flight requests within the shutdown timeout, then runs
// the drain hooks. Safe for repeated calls.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.once.Do(func() {
		if s.srv == nil {
			return
		}
		sctx, cancel := context.WithTimeout(ctx, s.cfg.shutdownTimeout)
		defer cancel()

		err = s.srv.Shutdown(sctx)
		for _, h := range s.cfg.drainHooks {
			h(sctx)
		}
	})

	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Join(ErrShutdown, err)
	}
	return nil
}
