// Package server exposes the evaluation pipeline over HTTP so browser
// clients can reach the evaluation service without CORS trouble.
package server

import (
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/maverickalo/check-my-code/internal/metrics"
	"github.com/maverickalo/check-my-code/internal/submit"
	"github.com/maverickalo/check-my-code/internal/suggest"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// Options configures a Server.
type Options struct {
	Pipeline *submit.Pipeline
	Metrics  *metrics.Recorder
	// Gatherer backs /metrics. Defaults to the default registry.
	Gatherer       prometheus.Gatherer
	AllowedOrigins []string
	Rules          *suggest.Rules
}

// Server serves the HTTP API.
type Server struct {
	pipeline *submit.Pipeline
	metrics  *metrics.Recorder
	gatherer prometheus.Gatherer
	origins  []string
	rules    *suggest.Rules
}

// New creates a server.
func New(opts Options) *Server {
	s := &Server{
		pipeline: opts.Pipeline,
		metrics:  opts.Metrics,
		gatherer: opts.Gatherer,
		origins:  opts.AllowedOrigins,
		rules:    opts.Rules,
	}
	if s.gatherer == nil {
		s.gatherer = prometheus.DefaultGatherer
	}
	if s.rules == nil {
		s.rules = suggest.MustBuiltin()
	}
	if len(s.origins) == 0 {
		s.origins = []string{"*"}
	}
	return s
}

// Handler returns the routed handler wrapped with CORS and compression.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(s.requestID, s.observe)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/evaluate", s.evaluate).Methods(http.MethodPost)
	api.HandleFunc("/normalize", s.normalize).Methods(http.MethodPost)
	api.HandleFunc("/schema", s.schema).Methods(http.MethodGet)

	r.HandleFunc("/healthz", s.health).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	var corsOptions []handlers.CORSOption
	corsOptions = append(corsOptions, handlers.AllowedHeaders([]string{"Accept-Encoding", "Content-Encoding", "X-Requested-With", "Content-Type", requestIDHeader}))
	corsOptions = append(corsOptions, handlers.AllowedOrigins(s.origins))
	corsOptions = append(corsOptions, handlers.AllowedMethods([]string{"GET", "HEAD", "POST", "OPTIONS"}))
	corsOptions = append(corsOptions, handlers.ExposedHeaders([]string{requestIDHeader}))

	return handlers.CompressHandler(handlers.CORS(corsOptions...)(r))
}

// HTTPServer returns an http.Server for addr.
func (s *Server) HTTPServer(addr string) *http.Server {
	return &http.Server{
		Handler:           s.Handler(),
		Addr:              addr,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		// Evaluations can take minutes upstream.
		WriteTimeout: 300 * time.Second,
	}
}
