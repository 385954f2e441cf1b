package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics holds the collectors for the extraction pipeline. Each instance owns
// its registry so tests can build as many as they like.
type Metrics struct {
	Registry *prometheus.Registry

	requests      *prometheus.CounterVec
	stageDuration *prometheus.HistogramVec
	emptyText     *prometheus.CounterVec
	pdfPages      prometheus.Counter
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "receipts",
				Name:      "extract_requests_total",
				Help:      "Extraction requests by branch and outcome.",
			},
			[]string{"branch", "outcome"},
		),
		stageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "receipts",
				Name:      "stage_duration_seconds",
				Help:      "Time spent in each pipeline stage.",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
			},
			[]string{"stage"},
		),
		emptyText: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "receipts",
				Name:      "empty_text_total",
				Help:      "Documents where OCR produced no text.",
			},
			[]string{"branch"},
		),
		pdfPages: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "receipts",
				Name:      "pdf_pages_total",
				Help:      "PDF pages rasterized and OCRed.",
			},
		),
	}

	m.Registry.MustRegister(
		m.requests,
		m.stageDuration,
		m.emptyText,
		m.pdfPages,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// The methods below are nil-safe so callers may run without metrics.

func (m *Metrics) ObserveRequest(branch, outcome string) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(branch, outcome).Inc()
}

func (m *Metrics) ObserveStage(stage string, started time.Time) {
	if m == nil {
		return
	}
	m.stageDuration.WithLabelValues(stage).Observe(time.Since(started).Seconds())
}

func (m *Metrics) ObserveEmptyText(branch string) {
	if m == nil {
		return
	}
	m.emptyText.WithLabelValues(branch).Inc()
}

func (m *Metrics) ObservePDFPages(n int) {
	if m == nil {
		return
	}
	m.pdfPages.Add(float64(n))
}
