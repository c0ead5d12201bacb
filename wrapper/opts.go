/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package wrapper

import (
	"github.com/hyperledger-labs/fabric-token-wrapper/wrapper/services/metrics"
	"go.opentelemetry.io/otel/trace"
)

// Options is used to configure the wrapper
type Options struct {
	// TracerProvider provides the tracer used for foreign calls, noop if nil
	TracerProvider trace.TracerProvider
	// Metrics receives foreign call outcomes, disabled if nil
	Metrics *metrics.Metrics
}

// Option is a function that configures the wrapper
type Option func(*Options)

func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *Options) {
		o.TracerProvider = tp
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(o *Options) {
		o.Metrics = m
	}
}

func compileOptions(opts ...Option) *Options {
	o := &Options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
