// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package host

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "hoprelay_host"

type metrics struct {
	transactions *prometheus.CounterVec
	frames       prometheus.Counter
	reverts      prometheus.Counter
	deployments  prometheus.Counter
	terminations prometheus.Counter
	gasUsed      prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		transactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "transactions_total",
			Help:      "Executed transactions by outcome.",
		}, []string{"status"}),
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "frames_total",
			Help:      "Call and constructor frames entered.",
		}),
		reverts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "frame_reverts_total",
			Help:      "Frames whose effects were reverted.",
		}),
		deployments: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "deployments_total",
			Help:      "Contracts instantiated.",
		}),
		terminations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "terminations_total",
			Help:      "Contracts removed by self-destruct.",
		}),
		gasUsed: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "transaction_gas_used",
			Help:      "Gas used per transaction.",
			Buckets:   prometheus.ExponentialBuckets(10_000, 4, 8),
		}),
	}
	if reg == nil {
		return m, nil
	}

	var errs []error
	for _, c := range []prometheus.Collector{
		m.transactions, m.frames, m.reverts, m.deployments, m.terminations, m.gasUsed,
	} {
		errs = append(errs, reg.Register(c))
	}
	return m, errors.Join(errs...)
}
