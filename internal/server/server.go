// Package server exposes a read-only HTTP inspection service over a
// snapshot store.
//
// The service exists for debugging shared deployments: it lists stored
// snapshots and serves each one as raw JSON, as the debug pretty rendering,
// or as a Graphviz DOT digraph of its reference topology.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/refgraph/refgraph/pkg/encoding"
	"github.com/refgraph/refgraph/pkg/errors"
	"github.com/refgraph/refgraph/pkg/render"
	"github.com/refgraph/refgraph/pkg/serial"
	"github.com/refgraph/refgraph/pkg/store"
)

// Server serves snapshot inspection endpoints over a store.
type Server struct {
	store  store.Store
	logger *log.Logger
}

// New creates an inspection server over the given store.
// A nil logger disables request logging.
func New(st store.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(nil)
		logger.SetLevel(log.FatalLevel)
	}
	return &Server{store: st, logger: logger}
}

// Router builds the HTTP routes:
//
//	GET /healthz                  liveness probe
//	GET /snapshots                snapshot id listing
//	GET /snapshots/{id}           full snapshot document (JSON)
//	GET /snapshots/{id}/pretty    debug rendering of the graph (text)
//	GET /snapshots/{id}/dot       Graphviz DOT of the reference topology
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Get("/snapshots", s.handleList)
	r.Get("/snapshots/{id}", s.handleGet)
	r.Get("/snapshots/{id}/pretty", s.handlePretty)
	r.Get("/snapshots/{id}/dot", s.handleDOT)

	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request",
			"method", r.Method, "path", r.URL.Path, "elapsed", time.Since(start))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok\n"))
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	ids, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	s.writeJSON(w, map[string]any{"snapshots": ids})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	snap, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, snap)
}

func (s *Server) handlePretty(w http.ResponseWriter, r *http.Request) {
	value, err := s.loadGraph(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(value.String() + "\n"))
}

func (s *Server) handleDOT(w http.ResponseWriter, r *http.Request) {
	value, err := s.loadGraph(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	dot, err := render.ToDOT(value, render.Options{Detailed: true})
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/vnd.graphviz; charset=utf-8")
	w.Write([]byte(dot))
}

func (s *Server) loadGraph(r *http.Request) (*serial.Value, error) {
	snap, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return nil, err
	}
	return encoding.Unmarshal(snap.Graph)
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		s.logger.Error("encode response", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeInvalidInput, errors.ErrCodeCorruptData:
		status = http.StatusUnprocessableEntity
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": errors.UserMessage(err)})
}
