package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/darmiel/vouch/internal/voucher"
)

const outcomeValid = "valid"

type metrics struct {
	registry      *prometheus.Registry
	verifications *prometheus.CounterVec
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		verifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vouch",
			Name:      "verifications_total",
			Help:      "Number of verified vouchers by outcome (valid or the failure kind).",
		}, []string{"outcome"}),
	}
	m.registry.MustRegister(
		m.verifications,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *metrics) observe(res *voucher.Result) {
	outcome := outcomeValid
	if !res.Valid {
		outcome = string(res.Kind())
	}
	m.verifications.WithLabelValues(outcome).Inc()
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
