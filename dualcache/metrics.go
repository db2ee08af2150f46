// metrics.go is a thin Prometheus abstraction: a metricsSink interface with
// a no-op implementation used when the caller does not opt into metrics,
// and a Prometheus-backed implementation used when they do. Every metric
// carries a "shard" label so a ShardedCache's per-shard Handles aggregate
// cleanly with sum()/rate() on the Prometheus side; an unsharded Handle
// just uses the label "0".
//
// © 2025 DualCache authors. MIT License.
package dualcache

import "github.com/prometheus/client_golang/prometheus"

type metricsSink interface {
	incHit(shard string)
	incMiss(shard string)
	incInsert(shard string)
	incUpdate(shard string)
	incDelete(shard string)
	incPromotion(shard string)
	incMirrorPublish(shard string)
	setLen(shard string, n int)
	setEvictPoint(shard string, n int)
	setCounterSum(shard string, n uint64)
	setSignalDropped(shard string, n uint64)
}

type noopMetrics struct{}

func (noopMetrics) incHit(string)                  {}
func (noopMetrics) incMiss(string)                 {}
func (noopMetrics) incInsert(string)                {}
func (noopMetrics) incUpdate(string)                {}
func (noopMetrics) incDelete(string)                {}
func (noopMetrics) incPromotion(string)             {}
func (noopMetrics) incMirrorPublish(string)         {}
func (noopMetrics) setLen(string, int)              {}
func (noopMetrics) setEvictPoint(string, int)       {}
func (noopMetrics) setCounterSum(string, uint64)    {}
func (noopMetrics) setSignalDropped(string, uint64) {}

type promMetrics struct {
	hits, misses, inserts, updates, deletes *prometheus.CounterVec
	promotions, mirrorPublications          *prometheus.CounterVec
	length, evictPoint, counterSum          *prometheus.GaugeVec
	signalDropped                          *prometheus.GaugeVec
}

func newPromMetrics(reg *prometheus.Registry) *promMetrics {
	label := []string{"shard"}
	pm := &promMetrics{
		hits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dualcache", Name: "hits_total", Help: "Get calls resolved from the mirror.",
		}, label),
		misses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dualcache", Name: "misses_total", Help: "Get calls that found no entry in the mirror.",
		}, label),
		inserts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dualcache", Name: "inserts_total", Help: "Insert calls applied to the master.",
		}, label),
		updates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dualcache", Name: "updates_total", Help: "Update calls applied to the master.",
		}, label),
		deletes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dualcache", Name: "deletes_total", Help: "Delete calls applied to the master.",
		}, label),
		promotions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dualcache", Name: "promotions_total", Help: "Signalled promotions the worker applied to the master.",
		}, label),
		mirrorPublications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dualcache", Name: "mirror_publications_total", Help: "Times a fresh mirror snapshot was published.",
		}, label),
		length: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "dualcache", Name: "len", Help: "Live entries in the master as of the last publication.",
		}, label),
		evictPoint: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "dualcache", Name: "evict_point", Help: "Eviction membrane position as of the last publication.",
		}, label),
		counterSum: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "dualcache", Name: "counter_sum", Help: "Sum of live entry counters as of the last publication.",
		}, label),
		signalDropped: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "dualcache", Name: "signal_dropped_total", Help: "Cumulative promotion signals dropped because the queue was full.",
		}, label),
	}
	reg.MustRegister(pm.hits, pm.misses, pm.inserts, pm.updates, pm.deletes,
		pm.promotions, pm.mirrorPublications, pm.length, pm.evictPoint, pm.counterSum, pm.signalDropped)
	return pm
}

func (m *promMetrics) incHit(shard string)          { m.hits.WithLabelValues(shard).Inc() }
func (m *promMetrics) incMiss(shard string)         { m.misses.WithLabelValues(shard).Inc() }
func (m *promMetrics) incInsert(shard string)        { m.inserts.WithLabelValues(shard).Inc() }
func (m *promMetrics) incUpdate(shard string)        { m.updates.WithLabelValues(shard).Inc() }
func (m *promMetrics) incDelete(shard string)        { m.deletes.WithLabelValues(shard).Inc() }
func (m *promMetrics) incPromotion(shard string)     { m.promotions.WithLabelValues(shard).Inc() }
func (m *promMetrics) incMirrorPublish(shard string) { m.mirrorPublications.WithLabelValues(shard).Inc() }
func (m *promMetrics) setLen(shard string, n int)    { m.length.WithLabelValues(shard).Set(float64(n)) }
func (m *promMetrics) setEvictPoint(shard string, n int) {
	m.evictPoint.WithLabelValues(shard).Set(float64(n))
}
func (m *promMetrics) setCounterSum(shard string, n uint64) {
	m.counterSum.WithLabelValues(shard).Set(float64(n))
}
func (m *promMetrics) setSignalDropped(shard string, n uint64) {
	m.signalDropped.WithLabelValues(shard).Set(float64(n))
}

// newMetricsSink picks noopMetrics when reg is nil (the default), otherwise
// registers and returns a Prometheus-backed sink.
func newMetricsSink(reg *prometheus.Registry) metricsSink {
	if reg == nil {
		return noopMetrics{}
	}
	return newPromMetrics(reg)
}
