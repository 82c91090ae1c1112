package service

import (
	"log/slog"
	"net/http"
	"time"

	"compute-service/service/application"
	"compute-service/service/domain"
	"compute-service/service/infra"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Options controla a montagem do Server. Campos zerados recebem padrões em NewServer.
type Options struct {
	Counters domain.Counters
	Start    time.Time
	Engine   application.ComputeEngine

	// Hits recebe uma cópia de cada contagem (opcional, best-effort).
	Hits domain.HitSink
	// HitTimeout limita quanto cada request espera pelo espelho. Padrão 100ms.
	HitTimeout time.Duration

	// Registry é exposto em /metrics/prometheus. nil cria um registry privado.
	Registry *prometheus.Registry
	Metrics  *infra.Metrics

	RequestTimeout     time.Duration
	CORSAllowedOrigins []string
	Compression        bool
	MaxBodyBytes       int64
	// TrustXForwardedFor faz o access log usar o X-Forwarded-For como cliente.
	TrustXForwardedFor bool

	Logger *slog.Logger
}

type Server struct {
	counters domain.Counters
	reporter application.MetricsReporter
	engine   application.ComputeEngine
	hits     domain.HitSink
	registry *prometheus.Registry
	metrics  *infra.Metrics
	opts     Options
	logger   *slog.Logger
}

func NewServer(opts Options) *Server {
	if opts.Counters == nil {
		opts.Counters = infra.NewAtomicCounters()
	}
	if opts.Start.IsZero() {
		opts.Start = time.Now()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Registry == nil {
		opts.Registry, opts.Metrics = infra.NewRegistry(opts.Counters, opts.Start)
	}
	if opts.Engine.Observer == nil && opts.Metrics != nil {
		opts.Engine.Observer = opts.Metrics
	}
	if opts.Engine.Logger == nil {
		opts.Engine.Logger = opts.Logger
	}
	if opts.HitTimeout <= 0 {
		opts.HitTimeout = 100 * time.Millisecond
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 1 << 20
	}

	return &Server{
		counters: opts.Counters,
		reporter: application.NewMetricsReporter(opts.Counters, opts.Start),
		engine:   opts.Engine,
		hits:     opts.Hits,
		registry: opts.Registry,
		metrics:  opts.Metrics,
		opts:     opts,
		logger:   opts.Logger,
	}
}

// Routes monta o roteador sem middlewares.
func (s *Server) Routes() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/", s.handleRoot).Methods(http.MethodGet)
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/sum", s.handleSum).Methods(http.MethodGet)
	r.HandleFunc("/echo", s.handleEcho).Methods(http.MethodPost)
	r.HandleFunc("/parallel", s.handleParallel).Methods(http.MethodGet)
	r.HandleFunc("/metrics", s.handleMetrics).Methods(http.MethodGet)
	r.Handle("/metrics/prometheus", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	return r
}

// Handler devolve as rotas com a cadeia completa de middlewares.
func (s *Server) Handler() http.Handler {
	h := http.Handler(s.Routes())
	h = TimeoutMiddleware(s.opts.RequestTimeout)(h)
	if s.opts.Compression {
		h = CompressionMiddleware()(h)
	}
	h = CORSMiddleware(s.opts.CORSAllowedOrigins)(h)
	h = TracingMiddleware()(h)
	h = AccessLogMiddleware(s.logger, s.opts.TrustXForwardedFor)(h)
	return h
}
