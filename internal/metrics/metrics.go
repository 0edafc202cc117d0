package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks one generation run. It owns its registry so that a run can
// be dumped to a node-exporter textfile without process-wide state.
type Metrics struct {
	Registry *prometheus.Registry

	RowsGenerated     *prometheus.CounterVec
	FallbacksTotal    *prometheus.CounterVec
	DomainDuration    *prometheus.HistogramVec
	DomainsLoaded     prometheus.Counter
	IntegrityFailures prometheus.Counter
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		RowsGenerated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dataforge_rows_generated_total",
			Help: "Rows generated per domain table",
		}, []string{"domain", "table"}),
		FallbacksTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dataforge_fallbacks_total",
			Help: "Entity types materialized from a synthetic fallback",
		}, []string{"entity"}),
		DomainDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dataforge_domain_duration_seconds",
			Help:    "Time spent generating and writing one domain",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"domain"}),
		DomainsLoaded: factory.NewCounter(prometheus.CounterOpts{
			Name: "dataforge_domains_loaded_total",
			Help: "Unselected domains read back from an earlier run",
		}),
		IntegrityFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "dataforge_integrity_failures_total",
			Help: "Domains rejected because of foreign key violations",
		}),
	}
}

func (m *Metrics) AddRows(domain, table string, n int) {
	m.RowsGenerated.WithLabelValues(domain, table).Add(float64(n))
}

func (m *Metrics) IncFallback(entity string) {
	m.FallbacksTotal.WithLabelValues(entity).Inc()
}

// ObserveDomain records the duration of one domain. Call with time.Now() at
// the start of the domain.
func (m *Metrics) ObserveDomain(domain string, start time.Time) {
	m.DomainDuration.WithLabelValues(domain).Observe(time.Since(start).Seconds())
}

func (m *Metrics) IncLoaded() {
	m.DomainsLoaded.Inc()
}

func (m *Metrics) IncIntegrityFailure() {
	m.IntegrityFailures.Inc()
}

// WriteTextfile writes the registry in the Prometheus text format.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}
