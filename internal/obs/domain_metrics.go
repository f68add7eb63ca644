package obs

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// PremiumComputeTotal counts premium computations by species, tier and result.
	PremiumComputeTotal *prometheus.CounterVec
	// PremiumDriftRepairedTotal counts stored premiums rewritten after drift detection.
	PremiumDriftRepairedTotal *prometheus.CounterVec
	// BreakdownFallbackTotal counts breakdowns rendered with the flat fallback split.
	BreakdownFallbackTotal prometheus.Counter
	// ContractRegenerationTotal counts contract document regeneration outcomes.
	ContractRegenerationTotal *prometheus.CounterVec
	// QuoteLatency records quote endpoint latency in milliseconds.
	QuoteLatency prometheus.Histogram
)

// MustRegisterDomainMetrics initialises and registers domain-specific Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		PremiumComputeTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "premium_compute_total",
			Help:      "Count of premium computations by outcome.",
		}, []string{"species", "tier", "result"})
		PremiumDriftRepairedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "premium_drift_repaired_total",
			Help:      "Count of stored premium triples repaired on read.",
		}, []string{"slot"})
		BreakdownFallbackTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "breakdown_fallback_total",
			Help:      "Count of premium breakdowns that used the flat fallback split.",
		})
		ContractRegenerationTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "contract_regeneration_total",
			Help:      "Count of contract document regeneration outcomes.",
		}, []string{"result"})
		QuoteLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "quote_duration_ms",
			Help:      "Latency of quote computations in milliseconds.",
			Buckets:   []float64{1, 2, 5, 10, 25, 50, 100, 250},
		})

		mustRegisterCollector(reg, PremiumComputeTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				PremiumComputeTotal = v
			}
		})
		mustRegisterCollector(reg, PremiumDriftRepairedTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				PremiumDriftRepairedTotal = v
			}
		})
		mustRegisterCollector(reg, BreakdownFallbackTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(prometheus.Counter); ok {
				BreakdownFallbackTotal = v
			}
		})
		mustRegisterCollector(reg, ContractRegenerationTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				ContractRegenerationTotal = v
			}
		})
		mustRegisterCollector(reg, QuoteLatency, func(existing prometheus.Collector) {
			if v, ok := existing.(prometheus.Histogram); ok {
				QuoteLatency = v
			}
		})
	})
}
