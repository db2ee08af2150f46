// config.go defines Handle's internal configuration object and the
// functional options that can be passed to New and NewSharded: a private
// config struct, a defaultConfig constructor, and Option[K,V] closures
// that mutate it.
//
// © 2025 DualCache authors. MIT License.
package dualcache

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Option configures a Handle or ShardedCache at construction time.
type Option[K comparable, V any] func(*config[K, V])

type config[K comparable, V any] struct {
	capacity          int
	signalCapacity    int
	publishEveryN     int
	membraneStep      int
	membraneWatermark int
	registry          *prometheus.Registry
	logger            *zap.Logger
}

// defaultConfig fills in every knob per the defaults: signal channel
// capacity 10000, publish every max(1, capacity/100) promotions, membrane
// step max(1, capacity/10), membrane watermark capacity/2.
func defaultConfig[K comparable, V any](capacity int) *config[K, V] {
	return &config[K, V]{
		capacity:          capacity,
		signalCapacity:    10000,
		publishEveryN:     max(1, capacity/100),
		membraneStep:      max(1, capacity/10),
		membraneWatermark: capacity / 2,
		logger:            zap.NewNop(),
	}
}

// WithMetrics registers Prometheus collectors against reg. Passing nil
// (the default) leaves metrics disabled and the hot path pays nothing for
// them.
func WithMetrics[K comparable, V any](reg *prometheus.Registry) Option[K, V] {
	return func(c *config[K, V]) { c.registry = reg }
}

// WithLogger plugs an external zap.Logger. Logging only happens off the hot
// path: mirror publications and worker shutdown.
func WithLogger[K comparable, V any](l *zap.Logger) Option[K, V] {
	return func(c *config[K, V]) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithSignalCapacity overrides the promotion signal channel's capacity.
func WithSignalCapacity[K comparable, V any](n int) Option[K, V] {
	return func(c *config[K, V]) { c.signalCapacity = n }
}

// WithPublishEveryN overrides how many applied promotions the worker waits
// for before publishing a fresh Mirror snapshot.
func WithPublishEveryN[K comparable, V any](n int) Option[K, V] {
	return func(c *config[K, V]) { c.publishEveryN = n }
}

// WithMembraneStep overrides how far the eviction membrane advances each
// time the boundary entry is judged weak.
func WithMembraneStep[K comparable, V any](step int) Option[K, V] {
	return func(c *config[K, V]) { c.membraneStep = step }
}

// WithMembraneWatermark overrides the length at or below which the membrane
// rests at capacity instead of adjusting.
func WithMembraneWatermark[K comparable, V any](watermark int) Option[K, V] {
	return func(c *config[K, V]) { c.membraneWatermark = watermark }
}

func applyOptions[K comparable, V any](cfg *config[K, V], opts []Option[K, V]) error {
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.capacity <= 0 {
		return errInvalidCapacity
	}
	if cfg.signalCapacity <= 0 {
		return errInvalidSignalCapacity
	}
	if cfg.publishEveryN <= 0 {
		return errInvalidPublishEveryN
	}
	if cfg.membraneStep <= 0 {
		return errInvalidMembraneStep
	}
	if cfg.membraneWatermark < 0 {
		return errInvalidMembraneWatermark
	}
	return nil
}

func (c *config[K, V]) metricsSink() metricsSink {
	return newMetricsSink(c.registry)
}

var (
	errInvalidCapacity          = errors.New("dualcache: capacity must be > 0")
	errInvalidSignalCapacity    = errors.New("dualcache: signal channel capacity must be > 0")
	errInvalidPublishEveryN     = errors.New("dualcache: publish_every_n_promotions must be > 0")
	errInvalidMembraneStep      = errors.New("dualcache: membrane step must be > 0")
	errInvalidMembraneWatermark = errors.New("dualcache: membrane watermark must be >= 0")
	errInvalidShardCount        = errors.New("dualcache: shard count must be a power of two")
)
