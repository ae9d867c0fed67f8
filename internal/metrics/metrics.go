package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the prometheus instruments for the schedule pipeline.
type Collector struct {
	registry *prometheus.Registry

	PreviewsTotal     prometheus.Counter
	RowIssuesTotal    prometheus.Counter
	BatchesTotal      prometheus.Counter
	DocumentsTotal    prometheus.Counter
	SideWriteFailures prometheus.Counter
}

// NewCollector registers the pipeline counters on a fresh registry.
func NewCollector() *Collector {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	factory := promauto.With(registry)

	return &Collector{
		registry: registry,
		PreviewsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "bridgesched_previews_total",
			Help: "Number of preview calls processed.",
		}),
		RowIssuesTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "bridgesched_row_issues_total",
			Help: "Number of pasted rows rejected during preview.",
		}),
		BatchesTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "bridgesched_batches_total",
			Help: "Number of schedule batches generated.",
		}),
		DocumentsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "bridgesched_documents_total",
			Help: "Number of weekly schedule workbooks rendered.",
		}),
		SideWriteFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "bridgesched_side_write_failures_total",
			Help: "Number of best-effort directory writes that failed.",
		}),
	}
}

// Handler serves the registry in prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
