package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/hamed0406/netmonitor/internal/domain"
	apimw "github.com/hamed0406/netmonitor/internal/httpapi/middleware"
	"github.com/hamed0406/netmonitor/internal/metrics"
	"github.com/hamed0406/netmonitor/internal/repo"
)

// Options tunes the public surface of the status API.
type Options struct {
	AllowedOrigins []string // empty = allow any origin
	PublicRPM      int      // per client IP; 0 disables limiting
	PublicBurst    int
}

// Server is a read-only view over the status store. Handlers never probe.
type Server struct {
	Logger  *zap.Logger
	Reader  repo.StatusReader
	Metrics *metrics.Metrics
}

func NewServer(l *zap.Logger, rd repo.StatusReader, m *metrics.Metrics) *Server {
	if l == nil {
		l = zap.NewNop()
	}
	return &Server{Logger: l, Reader: rd, Metrics: m}
}

func (s *Server) Router(opts Options) http.Handler {
	r := chi.NewRouter()
	r.Use(apimw.Recover(s.Logger))
	r.Use(apimw.RequestLog(s.Logger, s.Metrics))

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", s.Metrics.Handler())

	r.Group(func(r chi.Router) {
		r.Use(apimw.RateLimit(opts.PublicRPM, opts.PublicBurst))
		r.Get("/api/status", s.handleStatus)
		r.Get("/api/status/{ip}", s.handleHostStatus)
		r.Get("/api/unreachable", s.handleUnreachable)
	})

	return r
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Reader.Snapshot())
}

func (s *Server) handleHostStatus(w http.ResponseWriter, r *http.Request) {
	ip := chi.URLParam(r, "ip")
	for _, row := range s.Reader.Snapshot() {
		if row.IP == ip {
			writeJSON(w, http.StatusOK, row)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown host"})
}

func (s *Server) handleUnreachable(w http.ResponseWriter, r *http.Request) {
	down := s.Reader.Unreachable()
	if down == nil {
		down = []domain.Host{}
	}
	writeJSON(w, http.StatusOK, down)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
