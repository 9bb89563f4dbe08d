// Package metrics exposes controller state and fault counters to prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"icecream_controller/internal/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "icecream"

// Metrics owns its registry so several instances can coexist in tests.
// All methods are safe on a nil receiver.
type Metrics struct {
	registry *prometheus.Registry

	temperature       prometheus.Gauge
	target            prometheus.Gauge
	compressorRunning prometheus.Gauge
	timeToTarget      prometheus.Gauge

	sensorFaults      prometheus.Counter
	autoStops         prometheus.Counter
	relayErrors       prometheus.Counter
	persistenceErrors *prometheus.CounterVec

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		temperature: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "temperature_celsius",
			Help:      "Last good sensor reading.",
		}),
		target: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "target_temperature_celsius",
			Help:      "Configured target temperature.",
		}),
		compressorRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "compressor_running",
			Help:      "1 while the compressor relays are energised.",
		}),
		timeToTarget: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "time_to_target_minutes",
			Help:      "Forecast minutes to target, -1 when indeterminate.",
		}),
		sensorFaults: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sensor_faults_total",
			Help:      "Sensor reads rejected as faulty.",
		}),
		autoStops: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auto_stops_total",
			Help:      "Compressor runs ended by the timer.",
		}),
		relayErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "relay_errors_total",
			Help:      "Failed relay line writes.",
		}),
		persistenceErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "persistence_errors_total",
			Help:      "Failed database writes by operation.",
		}, []string{"op"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status.",
		}, []string{"route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.temperature,
		m.target,
		m.compressorRunning,
		m.timeToTarget,
		m.sensorFaults,
		m.autoStops,
		m.relayErrors,
		m.persistenceErrors,
		m.httpRequests,
		m.httpDuration,
	)
	m.timeToTarget.Set(models.NoEstimate)
	return m
}

// ObserveStatus mirrors a status snapshot into the gauges. The temperature
// gauge keeps its last value while the sensor is faulted.
func (m *Metrics) ObserveStatus(st models.Status) {
	if m == nil {
		return
	}
	if st.TempC != nil {
		m.temperature.Set(*st.TempC)
	}
	m.target.Set(st.TargetTempC)
	if st.Compressor {
		m.compressorRunning.Set(1)
	} else {
		m.compressorRunning.Set(0)
	}
	m.timeToTarget.Set(float64(st.TimeToTarget))
}

func (m *Metrics) SensorFault() {
	if m == nil {
		return
	}
	m.sensorFaults.Inc()
}

func (m *Metrics) AutoStop() {
	if m == nil {
		return
	}
	m.autoStops.Inc()
}

func (m *Metrics) RelayError() {
	if m == nil {
		return
	}
	m.relayErrors.Inc()
}

// PersistenceError counts a failed write; op is "settings" or "event".
func (m *Metrics) PersistenceError(op string) {
	if m == nil {
		return
	}
	m.persistenceErrors.WithLabelValues(op).Inc()
}

func (m *Metrics) ObserveHTTP(route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the exposition format for this instance's registry.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
