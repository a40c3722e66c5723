// Package metrics exposes lint run statistics in Prometheus format.
package metrics

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	tt "github.com/gnolang/solint/internal/types"
)

// Metrics owns its registry so several engines (and tests) never collide
// on the default one.
type Metrics struct {
	registry *prometheus.Registry

	FilesAnalyzed    prometheus.Counter
	CacheHits        prometheus.Counter
	Findings         *prometheus.CounterVec
	AnalysisDuration prometheus.Histogram
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		FilesAnalyzed: factory.NewCounter(prometheus.CounterOpts{
			Name: "solint_files_analyzed_total",
			Help: "Total number of syntax trees analyzed.",
		}),
		CacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "solint_cache_hits_total",
			Help: "Total number of syntax trees served from the result cache.",
		}),
		Findings: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "solint_findings_total",
			Help: "Total number of naming findings reported.",
		}, []string{"rule", "severity"}),
		AnalysisDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "solint_analysis_seconds",
			Help:    "Time spent analyzing a single syntax tree.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// ObserveFile records one analyzed tree.
func (m *Metrics) ObserveFile(d time.Duration) {
	m.FilesAnalyzed.Inc()
	m.AnalysisDuration.Observe(d.Seconds())
}

// ObserveCached records a tree whose issues came from the cache. It counts
// toward the analyzed files and findings but not the analysis time.
func (m *Metrics) ObserveCached(issues []tt.Issue) {
	m.FilesAnalyzed.Inc()
	m.CacheHits.Inc()
	m.AddIssues(issues)
}

// AddIssues counts findings by rule and severity.
func (m *Metrics) AddIssues(issues []tt.Issue) {
	for _, issue := range issues {
		m.Findings.WithLabelValues(issue.Rule, strings.ToLower(issue.Severity.String())).Inc()
	}
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteFile writes all metrics to path in the text exposition format.
func (m *Metrics) WriteFile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
