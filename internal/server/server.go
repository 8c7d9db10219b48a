// Package server exposes the conversion pipeline over HTTP together with the
// upload form and documentation pages.
//
// # Routes
//
//	POST /api/html-to-pdf   JSON batch in, single PDF or ZIP out
//	GET  /                  upload form
//	GET  /docs/filename     batch rename documentation
//	GET  /static/site.css   stylesheet shared by the pages
//	GET  /healthz           liveness probe
//
// Other methods on these paths get 405 Method Not Allowed.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/felixgeelhaar/bolt/v3"

	html2pdf "github.com/alnah/go-html2pdf"
	"github.com/alnah/go-html2pdf/internal/assets"
	"github.com/alnah/go-html2pdf/internal/logging"
)

// Sentinel errors for server operations.
var (
	ErrListen   = errors.New("failed to listen")
	ErrShutdown = errors.New("graceful shutdown failed")
	ErrPages    = errors.New("failed to load pages")
)

// Defaults applied to zero Config fields.
const (
	DefaultMaxBodyBytes      = 64 << 20
	DefaultShutdownTimeout   = 30 * time.Second
	DefaultReadHeaderTimeout = 10 * time.Second
)

// Converter runs one batch. *html2pdf.Converter implements it.
type Converter interface {
	Convert(ctx context.Context, req *html2pdf.Request) (*html2pdf.Bundle, error)
}

// ConverterFactory returns the Converter for one request. It is called once
// per request so no browser or session outlives the request that opened it.
type ConverterFactory func(requestID string) Converter

// Config defines the HTTP listener.
type Config struct {
	Addr            string
	MaxBodyBytes    int64
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	TrustProxy      bool
	Compress        bool
}

// Server serves the conversion API and the web UI.
type Server struct {
	cfg          Config
	newConverter ConverterFactory
	logger       *bolt.Logger
	loader       assets.Loader
	version      string
	pages        *pages
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger for access and error logs.
func WithLogger(l *bolt.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithAssets sets where page templates, styles and docs are loaded from.
func WithAssets(l assets.Loader) Option {
	return func(s *Server) {
		if l != nil {
			s.loader = l
		}
	}
}

// WithVersion sets the version shown in the page footer.
func WithVersion(v string) Option {
	return func(s *Server) {
		s.version = v
	}
}

// New creates a Server. Pages are parsed and the documentation is rendered
// once here; a broken custom template fails fast.
func New(cfg Config, newConverter ConverterFactory, opts ...Option) (*Server, error) {
	if newConverter == nil {
		return nil, errors.New("server: nil converter factory")
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = DefaultShutdownTimeout
	}

	s := &Server{
		cfg:          cfg,
		newConverter: newConverter,
		logger:       logging.Nop(),
		loader:       assets.NewEmbeddedLoader(),
		version:      "dev",
	}
	for _, opt := range opts {
		opt(s)
	}

	p, err := loadPages(s.loader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPages, err)
	}
	s.pages = p

	return s, nil
}

// Handler returns the routed handler wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	return s.middleware(s.routes())
}

// ListenAndServe listens on cfg.Addr and serves until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrListen, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done, then stops accepting
// and waits up to cfg.ShutdownTimeout for in-flight batches to finish.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadTimeout:       s.cfg.ReadTimeout,
		ReadHeaderTimeout: DefaultReadHeaderTimeout,
		WriteTimeout:      s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	s.logger.Info().Str("addr", ln.Addr().String()).Str("version", s.version).Msg("listening")

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrListen, err)
	case <-ctx.Done():
	}

	s.logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("%w: %v", ErrShutdown, err)
	}
	return nil
}

// Compile-time interface check.
var _ Converter = (*html2pdf.Converter)(nil)
