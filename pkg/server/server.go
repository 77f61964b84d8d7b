// Package server exposes the editor over HTTP: a browser page that round-trips
// the whole editor through form posts, plus a small JSON API for converting
// between item lists and blobs.
package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"strings"

	"github.com/go-kit/log/level"
	"github.com/gorilla/mux"

	"github.com/goliatone/go-formblob/pkg/render"
	"github.com/goliatone/go-formblob/pkg/renderers/text"
	"github.com/goliatone/go-formblob/pkg/renderers/vanilla"
)

type Server struct {
	opts    Options
	handler http.Handler
}

// New builds the router. It fails when the embedded OpenAPI document does not
// load or validate.
func New(ctx context.Context, fns ...OptionFn) (*Server, error) {
	opts := NewOptions(fns...)

	if opts.Registry == nil {
		html, err := vanilla.New()
		if err != nil {
			return nil, fmt.Errorf("server: %w", err)
		}
		registry, err := render.NewRegistry(html, text.New())
		if err != nil {
			return nil, fmt.Errorf("server: %w", err)
		}
		opts.Registry = registry
	}

	doc, err := loadDocument(ctx)
	if err != nil {
		return nil, err
	}
	validator, err := validateRequests(doc)
	if err != nil {
		return nil, err
	}

	s := &Server{opts: opts}
	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	})

	router.HandleFunc("/", s.handlePage).Methods(http.MethodGet, http.MethodHead, http.MethodPost)
	router.HandleFunc("/openapi.yaml", handleOpenAPI).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.Use(validator)
	api.HandleFunc("/serialize", s.handleSerialize).Methods(http.MethodPost)
	api.HandleFunc("/deserialize", s.handleDeserialize).Methods(http.MethodPost)

	prefix := strings.TrimRight(opts.AssetPrefix, "/")
	router.PathPrefix(prefix + "/").Handler(http.StripPrefix(prefix, assetHandler(vanilla.AssetsFS())))

	s.handler = logRequests(opts.Logger)(router)
	return s, nil
}

// Handler returns the root handler, request logging included.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves on the configured address until ctx is cancelled, then shuts
// down within the grace period.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("server: listen %s: %w", s.opts.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:     s.handler,
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	level.Info(s.opts.Logger).Log("msg", "server listening", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownGrace)
	defer cancel()
	level.Info(s.opts.Logger).Log("msg", "server shutting down", "grace", s.opts.ShutdownGrace.String())
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server: serve: %w", err)
	}
	return nil
}

func assetHandler(files fs.FS) http.Handler {
	return http.FileServer(http.FS(files))
}

func handleOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(openAPIDocument)
}
