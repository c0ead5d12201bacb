/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package metrics

import (
	"time"

	"github.com/hyperledger/fabric-lib-go/common/metrics"
	"github.com/hyperledger/fabric-lib-go/common/metrics/disabled"
)

const (
	Namespace = "wrapper"

	FunctionLabel = "function"
	SuccessLabel  = "success"
)

var SuccessValues = map[bool]string{
	true:  "success",
	false: "failure",
}

// Metrics tracks the chaincode functions invoked on the wrapper
type Metrics struct {
	Invocations  metrics.Counter
	Duration     metrics.Histogram
	ForeignCalls metrics.Counter
}

func NewMetrics(p metrics.Provider) *Metrics {
	if p == nil {
		p = &disabled.Provider{}
	}
	return &Metrics{
		Invocations: p.NewCounter(metrics.CounterOpts{
			Namespace:    Namespace,
			Name:         "invocations",
			Help:         "Total chaincode functions invoked on the wrapper",
			LabelNames:   []string{FunctionLabel, SuccessLabel},
			StatsdFormat: "%{#fqname}.%{function}.%{success}",
		}),
		Duration: p.NewHistogram(metrics.HistogramOpts{
			Namespace:    Namespace,
			Name:         "duration",
			Help:         "Duration of chaincode functions invoked on the wrapper",
			Buckets:      []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			LabelNames:   []string{FunctionLabel, SuccessLabel},
			StatsdFormat: "%{#fqname}.%{function}.%{success}",
		}),
		ForeignCalls: p.NewCounter(metrics.CounterOpts{
			Namespace:    Namespace,
			Name:         "foreign_calls",
			Help:         "Foreign contract invocations issued by the dispatcher",
			LabelNames:   []string{SuccessLabel},
			StatsdFormat: "%{#fqname}.%{success}",
		}),
	}
}

// Observe records one invocation of the given function
func (m *Metrics) Observe(function string, success bool, started time.Time) {
	labels := []string{FunctionLabel, function, SuccessLabel, SuccessValues[success]}
	m.Invocations.With(labels...).Add(1)
	m.Duration.With(labels...).Observe(time.Since(started).Seconds())
}

// ObserveForeignCall records one foreign contract invocation
func (m *Metrics) ObserveForeignCall(success bool) {
	m.ForeignCalls.With(SuccessLabel, SuccessValues[success]).Add(1)
}
