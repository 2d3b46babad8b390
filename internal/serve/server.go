// Package serve exposes a web build output directory over HTTP.
//
// The server has no application logic: it serves files, labels .wasm with
// the MIME type browsers require for streaming instantiation, and disables
// caching so a rebuild is picked up on reload.
package serve

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path"
	"strings"
	"time"

	"golife/internal/config"
	"golife/internal/logging"

	"github.com/gorilla/handlers"
	"go.uber.org/zap"
)

// MetricsPath is where Prometheus metrics are exposed when enabled.
const MetricsPath = "/metrics"

// WasmContentType is required by WebAssembly.instantiateStreaming.
const WasmContentType = "application/wasm"

// ErrRootNotFound is returned by New when the served directory is missing.
var ErrRootNotFound = errors.New("serve root does not exist")

// Server serves one directory.
type Server struct {
	Config *config.Config
	Logger *zap.SugaredLogger

	root    string
	metrics *metrics
}

// New returns a Server for root. Root must be an existing directory; run a
// web build first if it is not.
func New(cfg *config.Config, root string) (*Server, error) {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s (run `life build web` first)", ErrRootNotFound, root)
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("serve root %s is not a directory", root)
	}

	s := &Server{
		Config: cfg,
		Logger: logging.Get(logging.CategoryServe),
		root:   root,
	}
	if cfg.Serve.Metrics {
		s.metrics = newMetrics()
	}
	return s, nil
}

// Root returns the served directory.
func (s *Server) Root() string { return s.root }

// Handler returns the full middleware chain.
func (s *Server) Handler() (http.Handler, error) {
	mux := http.NewServeMux()

	var files http.Handler = staticHandler(http.FileServer(http.Dir(s.root)))
	if s.Config.Serve.Compress {
		files = handlers.CompressHandler(files)
	}
	if s.metrics != nil {
		files = s.metrics.instrument(files)
		mux.Handle(MetricsPath, s.metrics.handler())
	}
	mux.Handle("/", files)

	var h http.Handler = mux
	if cors := s.Config.Serve.CORS; cors.Enabled {
		if len(cors.AllowedOrigins) == 0 {
			return nil, errors.New("cors enabled but no allowed origins given")
		}
		h = handlers.CORS(
			handlers.AllowedOrigins(cors.AllowedOrigins),
			handlers.AllowedMethods([]string{http.MethodGet, http.MethodHead, http.MethodOptions}),
		)(h)
	}
	return handlers.CustomLoggingHandler(io.Discard, h, s.logRequest), nil
}

// staticHandler sets the headers every served file gets.
func staticHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.EqualFold(path.Ext(r.URL.Path), ".wasm") {
			w.Header().Set("Content-Type", WasmContentType)
		}
		w.Header().Set("Cache-Control", "no-cache")
		next.ServeHTTP(w, r)
	})
}

func (s *Server) logRequest(_ io.Writer, p handlers.LogFormatterParams) {
	s.Logger.Debugw("request",
		"method", p.Request.Method,
		"path", p.URL.Path,
		"status", p.StatusCode,
		"size", p.Size,
		"remote", p.Request.RemoteAddr,
	)
}

// ListenAndServe listens on the configured address and serves until ctx is
// done.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.Config.Serve.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.Config.Serve.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done, then shuts down gracefully within
// the configured timeout. ln is closed on return.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	h, err := s.Handler()
	if err != nil {
		ln.Close()
		return err
	}
	srv := &http.Server{
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.Logger.Infow("serving", "root", s.root, "url", URL(ln.Addr()))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.Config.GetShutdownTimeout())
	defer cancel()
	s.Logger.Infow("shutting down", "timeout", s.Config.GetShutdownTimeout())
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// URL returns a browsable address for addr, substituting localhost for an
// unspecified host.
func URL(addr net.Addr) string {
	host, port, err := net.SplitHostPort(addr.String())
	if err != nil {
		return "http://" + addr.String()
	}
	if ip := net.ParseIP(host); host == "" || (ip != nil && ip.IsUnspecified()) {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port)
}
