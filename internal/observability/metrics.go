// Package observability exposes Prometheus metrics describing discovery and
// generation activity.
package observability

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ojiudezue/frigate-config-builder/internal/errors"
	"github.com/ojiudezue/frigate-config-builder/internal/logging"
)

var logger = logging.ForService("observability")

// Metrics holds the collectors for discovery and generation activity.
type Metrics struct {
	registry *prometheus.Registry

	discoveryDuration *prometheus.HistogramVec
	discoveryCameras  *prometheus.GaugeVec
	discoveryErrors   *prometheus.CounterVec

	generationDuration prometheus.Histogram
	generationErrors   prometheus.Counter
	catalogSize        prometheus.Gauge
	lastGenerated      prometheus.Gauge
}

// NewMetrics creates and registers the collectors on a fresh registry.
func NewMetrics() (*Metrics, error) {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.discoveryDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "fcb_discovery_duration_seconds",
		Help:    "Duration of a discovery pass per adapter.",
		Buckets: prometheus.DefBuckets,
	}, []string{"source"})

	m.discoveryCameras = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "fcb_discovery_cameras",
		Help: "Cameras found in the last discovery pass per adapter.",
	}, []string{"source"})

	m.discoveryErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "fcb_discovery_errors_total",
		Help: "Discovery failures per adapter.",
	}, []string{"source"})

	m.generationDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "fcb_generation_duration_seconds",
		Help:    "Duration of configuration generation.",
		Buckets: prometheus.DefBuckets,
	})

	m.generationErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "fcb_generation_errors_total",
		Help: "Configuration generation failures.",
	})

	m.catalogSize = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "fcb_catalog_cameras",
		Help: "Cameras in the current catalog after selection.",
	})

	m.lastGenerated = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "fcb_last_generated_timestamp_seconds",
		Help: "Unix timestamp of the last successful generation.",
	})

	collectors := []prometheus.Collector{
		m.discoveryDuration,
		m.discoveryCameras,
		m.discoveryErrors,
		m.generationDuration,
		m.generationErrors,
		m.catalogSize,
		m.lastGenerated,
	}
	for _, c := range collectors {
		if err := m.registry.Register(c); err != nil {
			return nil, errors.New(err).
				Component("observability").
				Category(errors.CategoryGeneric).
				Context("operation", "register-collector").
				Build()
		}
	}
	return m, nil
}

// ObserveAdapter records the outcome of one adapter's discovery pass.
func (m *Metrics) ObserveAdapter(source string, elapsed time.Duration, cameras int, failed bool) {
	m.discoveryDuration.WithLabelValues(source).Observe(elapsed.Seconds())
	m.discoveryCameras.WithLabelValues(source).Set(float64(cameras))
	if failed {
		m.discoveryErrors.WithLabelValues(source).Inc()
	}
}

// ObserveGeneration records the outcome of one generation pass.
func (m *Metrics) ObserveGeneration(elapsed time.Duration, catalogSize int, err error) {
	if err != nil {
		m.generationErrors.Inc()
		return
	}
	m.generationDuration.Observe(elapsed.Seconds())
	m.catalogSize.Set(float64(catalogSize))
	m.lastGenerated.SetToCurrentTime()
}

// Serve exposes the /metrics endpoint until the context is cancelled.
func (m *Metrics) Serve(ctx context.Context, listen string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              listen,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("metrics endpoint listening", "addr", listen)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return errors.New(err).
			Component("observability").
			Category(errors.CategoryHTTP).
			Context("addr", listen).
			Build()
	}
	return nil
}
