// Package server exposes the schema and path resolution of one graph
// archive over a read-only HTTP API.
//
// Routes:
//
//	GET /healthz
//	GET /version
//	GET /graph                                              schema summary
//	GET /graph.yml                                          canonical YAML
//	GET /vertices/{label}                                   vertex summary
//	GET /vertices/{label}/properties/{property}/chunks      walk (?seek=&limit=)
//	GET /vertices/{label}/properties/{property}/chunks/{chunk}
//	GET /edges/{src}/{edge}/{dst}                           edge summary
//	GET /edges/{src}/{edge}/{dst}/{type}/chunks             walk (?property=&seek_src=&seek_dst=&limit=)
//	GET /edges/{src}/{edge}/{dst}/{type}/adj/{part}/{chunk}
//	GET /edges/{src}/{edge}/{dst}/{type}/offset/{chunk}
//	GET /edges/{src}/{edge}/{dst}/{type}/properties/{property}/{part}/{chunk}
//
// Path endpoints answer {"path": "..."}. Errors answer
// {"code": "NOT_FOUND", "error": "..."} with a matching status.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/graphar/pkg/info"
	"github.com/matzehuels/graphar/pkg/reader"
)

// Server serves one graph info.
type Server struct {
	graph  *info.GraphInfo
	counts reader.CountSource
	logger *log.Logger
}

// New returns a server for g. counts backs the chunk walking endpoints.
func New(g *info.GraphInfo, counts reader.CountSource, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{graph: g, counts: counts, logger: logger}
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})
	r.Get("/version", s.handleVersion)
	r.Get("/graph", s.handleGraph)
	r.Get("/graph.yml", s.handleGraphYAML)

	r.Route("/vertices/{label}", func(r chi.Router) {
		r.Get("/", s.handleVertex)
		r.Get("/properties/{property}/chunks", s.handleVertexChunks)
		r.Get("/properties/{property}/chunks/{chunk}", s.handleVertexChunk)
	})

	r.Route("/edges/{src}/{edge}/{dst}", func(r chi.Router) {
		r.Get("/", s.handleEdge)
		r.Route("/{type}", func(r chi.Router) {
			r.Get("/chunks", s.handleEdgeChunks)
			r.Get("/adj/{part}/{chunk}", s.handleAdjListChunk)
			r.Get("/offset/{chunk}", s.handleOffsetChunk)
			r.Get("/properties/{property}/{part}/{chunk}", s.handleEdgePropertyChunk)
		})
	})

	return r
}

// Run serves on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string, readTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("serving graph", "name", s.graph.Name(), "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Info("server stopped")
	return nil
}

// logRequests logs every request at debug level, and server errors at
// error level.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		fields := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).Round(time.Microsecond),
			"request_id", middleware.GetReqID(r.Context()),
		}
		if ww.Status() >= http.StatusInternalServerError {
			s.logger.Error("request failed", fields...)
			return
		}
		s.logger.Debug("request", fields...)
	})
}
