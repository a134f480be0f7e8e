package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Selection outcomes.
const (
	OutcomeSuccess          = "success"
	OutcomeInvalidStructure = "invalid_structure"
	OutcomeInvalidHandle    = "invalid_handle"
	OutcomeError            = "error"
)

// Metrics holds the domain Prometheus metrics of the service.
type Metrics struct {
	ClaimSelections       *prometheus.CounterVec
	ClaimSelectionLatency prometheus.Histogram
	ClaimsMatched         *prometheus.CounterVec
	ClaimsStored          prometheus.Counter
	WalletsOpen           prometheus.Gauge
	LedgerRequestsBuilt   *prometheus.CounterVec
}

// New creates the metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ClaimSelections: f.NewCounterVec(prometheus.CounterOpts{
			Name: "prover_claim_selections_total",
			Help: "Total number of proof request selections, labeled by outcome",
		}, []string{"outcome"}),
		ClaimSelectionLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "prover_claim_selection_latency_seconds",
			Help:    "Latency of claim selection for a proof request in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		ClaimsMatched: f.NewCounterVec(prometheus.CounterOpts{
			Name: "prover_claims_matched_total",
			Help: "Total number of candidate claims returned, labeled by attr or predicate",
		}, []string{"kind"}),
		ClaimsStored: f.NewCounter(prometheus.CounterOpts{
			Name: "prover_claims_stored_total",
			Help: "Total number of claims stored",
		}),
		WalletsOpen: f.NewGauge(prometheus.GaugeOpts{
			Name: "prover_wallets_open",
			Help: "Current number of open wallet handles",
		}),
		LedgerRequestsBuilt: f.NewCounterVec(prometheus.CounterOpts{
			Name: "prover_ledger_requests_built_total",
			Help: "Total number of ledger requests built, labeled by transaction type",
		}, []string{"type"}),
	}
}

// ObserveSelection records one proof request selection.
func (m *Metrics) ObserveSelection(outcome string, durationSeconds float64) {
	m.ClaimSelections.WithLabelValues(outcome).Inc()
	m.ClaimSelectionLatency.Observe(durationSeconds)
}

// AddClaimsMatched counts candidates returned for attributes ("attr") or predicates ("predicate").
func (m *Metrics) AddClaimsMatched(kind string, count int) {
	m.ClaimsMatched.WithLabelValues(kind).Add(float64(count))
}

// IncrementClaimsStored increments the stored claims counter by 1
func (m *Metrics) IncrementClaimsStored() {
	m.ClaimsStored.Inc()
}

func (m *Metrics) IncrementWalletsOpen() {
	m.WalletsOpen.Inc()
}

func (m *Metrics) DecrementWalletsOpen() {
	m.WalletsOpen.Dec()
}

// IncrementLedgerRequests counts a built ledger request by transaction type.
func (m *Metrics) IncrementLedgerRequests(txnType string) {
	m.LedgerRequestsBuilt.WithLabelValues(txnType).Inc()
}
