/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package metrics

import (
	"strings"
	"sync"

	"github.com/hyperledger/fabric-lib-go/common/metrics"
)

// NewMemoryProvider returns a provider keeping counters and histograms in memory,
// indexed by metric name and label values.
func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{values: map[string]*value{}}
}

type MemoryProvider struct {
	m      sync.Mutex
	values map[string]*value
}

type value struct {
	sum float64
	n   uint64
}

func (p *MemoryProvider) NewCounter(o metrics.CounterOpts) metrics.Counter {
	return &counter{p: p, name: o.Name}
}

func (p *MemoryProvider) NewGauge(o metrics.GaugeOpts) metrics.Gauge {
	return &gauge{p: p, name: o.Name}
}

func (p *MemoryProvider) NewHistogram(o metrics.HistogramOpts) metrics.Histogram {
	return &histogram{p: p, name: o.Name}
}

// Sum returns the accumulated value of the metric with the given label values
func (p *MemoryProvider) Sum(name string, labelValues ...string) float64 {
	p.m.Lock()
	defer p.m.Unlock()
	if v, ok := p.values[key(name, labelValues)]; ok {
		return v.sum
	}
	return 0
}

// Count returns how many observations the metric with the given label values received
func (p *MemoryProvider) Count(name string, labelValues ...string) uint64 {
	p.m.Lock()
	defer p.m.Unlock()
	if v, ok := p.values[key(name, labelValues)]; ok {
		return v.n
	}
	return 0
}

func (p *MemoryProvider) update(name string, labels []string, f func(v *value)) {
	p.m.Lock()
	defer p.m.Unlock()
	k := key(name, labelValues(labels))
	v, ok := p.values[k]
	if !ok {
		v = &value{}
		p.values[k] = v
	}
	f(v)
}

// labelValues keeps the values of a name/value label list
func labelValues(labels []string) []string {
	values := make([]string, 0, len(labels)/2)
	for i := 1; i < len(labels); i += 2 {
		values = append(values, labels[i])
	}
	return values
}

func key(name string, labelValues []string) string {
	return strings.Join(append([]string{name}, labelValues...), "|")
}

type counter struct {
	p      *MemoryProvider
	name   string
	labels []string
}

func (c *counter) With(labels ...string) metrics.Counter {
	return &counter{p: c.p, name: c.name, labels: append(append([]string{}, c.labels...), labels...)}
}

func (c *counter) Add(delta float64) {
	c.p.update(c.name, c.labels, func(v *value) { v.sum += delta; v.n++ })
}

type gauge struct {
	p      *MemoryProvider
	name   string
	labels []string
}

func (g *gauge) With(labels ...string) metrics.Gauge {
	return &gauge{p: g.p, name: g.name, labels: append(append([]string{}, g.labels...), labels...)}
}

func (g *gauge) Add(delta float64) {
	g.p.update(g.name, g.labels, func(v *value) { v.sum += delta; v.n++ })
}

func (g *gauge) Set(val float64) {
	g.p.update(g.name, g.labels, func(v *value) { v.sum = val; v.n++ })
}

type histogram struct {
	p      *MemoryProvider
	name   string
	labels []string
}

func (h *histogram) With(labels ...string) metrics.Histogram {
	return &histogram{p: h.p, name: h.name, labels: append(append([]string{}, h.labels...), labels...)}
}

func (h *histogram) Observe(val float64) {
	h.p.update(h.name, h.labels, func(v *value) { v.sum += val; v.n++ })
}
