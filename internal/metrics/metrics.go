// Package metrics instruments the mining kernel with Prometheus counters
// and gauges. It never opens a network listener itself — the /metrics HTTP
// exposition, if wanted, is wired up by cmd/miner, since spec.md places
// networking out of scope for the core.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder tracks gate outcomes and the most recent accepted Φ_total across
// mining runs. It is adapted from the teacher's generic
// PrometheusClientImpl (internal/monitoring/prometheus.go in the source
// repo) down to the small set of concrete series this kernel actually
// emits, rather than a name-any-metric registry.
type Recorder struct {
	registry *prometheus.Registry

	attempts *prometheus.CounterVec
	rejected *prometheus.CounterVec
	accepted prometheus.Counter
	lastPhi  prometheus.Gauge
	lastQG   prometheus.Gauge
}

// NewRecorder builds a Recorder with its own private registry so multiple
// Kernel instances in the same process (e.g. in tests) never collide.
func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()

	r := &Recorder{
		registry: registry,
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "qgminer_nonce_attempts_total",
			Help: "Total nonces evaluated by the mining loop.",
		}, nil),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "qgminer_gate_rejected_total",
			Help: "Nonces rejected, partitioned by which gate failed.",
		}, []string{"gate"}),
		accepted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "qgminer_blocks_accepted_total",
			Help: "Valid candidates found across all mining runs.",
		}),
		lastPhi: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "qgminer_last_phi_total",
			Help: "Φ_total of the most recently accepted candidate.",
		}),
		lastQG: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "qgminer_last_qg_score",
			Help: "Φ_qg of the most recently accepted candidate.",
		}),
	}

	registry.MustRegister(r.attempts, r.rejected, r.accepted, r.lastPhi, r.lastQG)
	return r
}

// RecordAttempt increments the total nonce-attempt counter.
func (r *Recorder) RecordAttempt() {
	r.attempts.WithLabelValues().Inc()
}

// RecordRejection increments the per-gate rejection counter for gate.
func (r *Recorder) RecordRejection(gate string) {
	r.rejected.WithLabelValues(gate).Inc()
}

// RecordAccepted marks a successful mining run and records its scores.
func (r *Recorder) RecordAccepted(phiTotal, qgScore float64) {
	r.accepted.Inc()
	r.lastPhi.Set(phiTotal)
	r.lastQG.Set(qgScore)
}

// Handler returns an HTTP handler exposing the recorder's series in the
// Prometheus exposition format. Callers decide whether and where to serve
// it — the Recorder itself never listens.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
