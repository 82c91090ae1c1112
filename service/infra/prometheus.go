package infra

import (
	"time"

	"compute-service/service/domain"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "compute_service"

// Collector expõe os contadores do processo no formato Prometheus.
//
// Os valores são lidos de domain.Counters a cada scrape; não existe uma segunda
// contagem paralela.
type Collector struct {
	counters domain.Counters
	start    time.Time

	hitsDesc   *prometheus.Desc
	uptimeDesc *prometheus.Desc
}

func NewCollector(counters domain.Counters, start time.Time) *Collector {
	return &Collector{
		counters: counters,
		start:    start,
		hitsDesc: prometheus.NewDesc(
			prometheus.BuildFQName(metricsNamespace, "", "hits_total"),
			"Total number of requests per endpoint",
			[]string{"endpoint"}, nil,
		),
		uptimeDesc: prometheus.NewDesc(
			prometheus.BuildFQName(metricsNamespace, "", "uptime_seconds"),
			"Seconds since process start",
			nil, nil,
		),
	}
}

// Describe implementa prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.hitsDesc
	ch <- c.uptimeDesc
}

// Collect implementa prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	for _, ep := range domain.Endpoints() {
		ch <- prometheus.MustNewConstMetric(c.hitsDesc, prometheus.CounterValue, float64(c.counters.Load(ep)), string(ep))
	}
	ch <- prometheus.MustNewConstMetric(c.uptimeDesc, prometheus.GaugeValue, time.Since(c.start).Seconds())
}

// Metrics agrupa as métricas alimentadas pelos handlers e pelo motor de computação.
type Metrics struct {
	ErrorsTotal  *prometheus.CounterVec
	TaskDuration prometheus.Histogram
}

// NewMetrics cria e registra as métricas em reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "errors",
				Name:      "total",
				Help:      "Total number of error responses by kind",
			},
			[]string{"kind"},
		),
		TaskDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: "compute",
				Name:      "task_duration_seconds",
				Help:      "Wall time of each parallel compute task",
				Buckets:   prometheus.LinearBuckets(0.05, 0.1, 11),
			},
		),
	}
	if reg != nil {
		reg.MustRegister(m.ErrorsTotal, m.TaskDuration)
	}
	return m
}

// RecordError incrementa o total de erros do tipo informado.
func (m *Metrics) RecordError(kind domain.ErrorKind) {
	if m == nil {
		return
	}
	m.ErrorsTotal.WithLabelValues(kind.String()).Inc()
}

// ObserveTask implementa application.TaskObserver.
func (m *Metrics) ObserveTask(_ domain.ComputeResult, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.TaskDuration.Observe(elapsed.Seconds())
}

// NewRegistry monta um registry privado com o Collector e as Metrics do serviço.
func NewRegistry(counters domain.Counters, start time.Time) (*prometheus.Registry, *Metrics) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(NewCollector(counters, start))
	return reg, NewMetrics(reg)
}
