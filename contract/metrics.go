package contract

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// unknownActionLabel stands in for any action name the router doesn't know.
const unknownActionLabel = "unknown"

// metricAction bounds the action label to the routed action names.
func metricAction(action string) string {
	if _, ok := handlers[action]; ok {
		return action
	}
	return unknownActionLabel
}

type contractMetrics struct {
	calls     *prometheus.CounterVec
	failures  *prometheus.CounterVec
	deposited prometheus.Counter
	claimed   prometheus.Counter
}

// init registers on promRegistry; a nil registry builds unregistered
// collectors that still count.
func (m *contractMetrics) init(promRegistry prometheus.Registerer) {
	promautoFactory := promauto.With(promRegistry)
	m.calls = promautoFactory.NewCounterVec(prometheus.CounterOpts{
		Name: "community_fund_calls_total",
		Help: "contract calls by action and result",
	}, []string{"action", "result"})
	m.failures = promautoFactory.NewCounterVec(prometheus.CounterOpts{
		Name: "community_fund_failures_total",
		Help: "failed contract calls by action and error code",
	}, []string{"action", "code"})
	m.deposited = promautoFactory.NewCounter(prometheus.CounterOpts{
		Name: "community_fund_vault_deposited_lamports_total",
		Help: "lamports deposited into the vault",
	})
	m.claimed = promautoFactory.NewCounter(prometheus.CounterOpts{
		Name: "community_fund_vault_claimed_lamports_total",
		Help: "lamports claimed out of the vault",
	})
}
