// cache.go is DualCache's public surface: Handle[K,V], the type readers and
// writers actually hold. Reads go straight to the Mirror and never block;
// writes go straight to the Master under its own lock; a Get that hits also
// fires a non-blocking signal so the maintenance worker can promote the key
// later.
//
// © 2025 DualCache authors. MIT License.
package dualcache

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/hianova/dualcache/internal/keyhash"
	"github.com/hianova/dualcache/internal/signalqueue"
)

// Handle is a single DualCache instance: one Master, one Mirror, one
// Signal Channel, one Maintenance Worker. Safe for concurrent use by any
// number of goroutines.
type Handle[K comparable, V any] struct {
	master     *master[K, V]
	mirror     *mirror[K, V]
	signals    *signalqueue.Queue[K]
	worker     *maintenanceWorker[K, V]
	loaders    *loaderGroup[K, V]
	hasher     keyhash.Hasher[K]
	metrics    metricsSink
	shardLabel string
	tick       atomic.Uint64
	closeOnce  sync.Once
}

// New constructs a Handle with room for capacity entries and starts its
// maintenance worker goroutine. Call Close when done with it.
func New[K comparable, V any](capacity int, opts ...Option[K, V]) (*Handle[K, V], error) {
	cfg := defaultConfig[K, V](capacity)
	if err := applyOptions(cfg, opts); err != nil {
		return nil, err
	}
	return newHandle[K, V](cfg, "0"), nil
}

func newHandle[K comparable, V any](cfg *config[K, V], shardLabel string) *Handle[K, V] {
	m := newMaster[K, V](cfg.capacity, cfg.membraneStep, cfg.membraneWatermark)
	mir := newMirror[K, V](m.snapshot())
	signals := signalqueue.New[K](cfg.signalCapacity)
	metrics := cfg.metricsSink()
	worker := newMaintenanceWorker[K, V](m, mir, signals, metrics, cfg.logger, shardLabel, cfg.publishEveryN)

	h := &Handle[K, V]{
		master:     m,
		mirror:     mir,
		signals:    signals,
		worker:     worker,
		loaders:    newLoaderGroup[K, V](),
		hasher:     keyhash.NewHasher[K](),
		metrics:    metrics,
		shardLabel: shardLabel,
	}
	go worker.run()
	return h
}

// Get resolves key against the Mirror without ever blocking on the Master's
// lock. A hit fires a non-blocking promotion signal; it is never delivered
// synchronously and may be dropped under load.
func (h *Handle[K, V]) Get(key K) (V, bool) {
	val, ok := h.mirror.get(key)
	if ok {
		h.metrics.incHit(h.shardLabel)
		h.signals.TrySend(key)
	} else {
		h.metrics.incMiss(h.shardLabel)
	}
	return val, ok
}

// Insert writes key/value into the Master directly. An existing key is
// treated as an update: its counter and rank are untouched. The new value
// is not visible to Get until the worker next publishes the Mirror; use
// InsertAndPublish for the synchronous alternative.
func (h *Handle[K, V]) Insert(key K, value V) {
	h.master.insert(key, value, h.tick.Add(1))
	h.metrics.incInsert(h.shardLabel)
}

// InsertAndPublish inserts key/value and immediately publishes a fresh
// Mirror snapshot, bypassing the worker's usual cadence. This is the
// synchronous read-your-writes escape hatch for callers who can't wait on
// the worker's cadence; it costs a snapshot copy on the calling goroutine.
func (h *Handle[K, V]) InsertAndPublish(key K, value V) {
	h.Insert(key, value)
	h.SyncMirror()
}

// SyncMirror snapshots the Master and publishes it to the Mirror
// immediately, independent of any write. Use it after Update, Delete, or
// DecayAll to make those changes visible to Get without waiting on the
// worker's usual publish_every_n_promotions cadence.
func (h *Handle[K, V]) SyncMirror() {
	h.mirror.publish(h.master.snapshot())
	h.metrics.incMirrorPublish(h.shardLabel)
}

// Update overwrites the value for an existing key without affecting its
// rank. Reports false if key is absent from the Master.
func (h *Handle[K, V]) Update(key K, value V) bool {
	ok := h.master.update(key, value)
	if ok {
		h.metrics.incUpdate(h.shardLabel)
	}
	return ok
}

// Delete removes key from the Master. Reports false if key was absent. The
// deletion is not visible to Get until the next Mirror publication.
func (h *Handle[K, V]) Delete(key K) bool {
	ok := h.master.delete(key)
	if ok {
		h.metrics.incDelete(h.shardLabel)
	}
	return ok
}

// DecayAll halves every live entry's counter. The core leaves the decision
// of when to call this to an external scheduler.
func (h *Handle[K, V]) DecayAll() { h.master.decay() }

// GetOrLoad returns the cached value for key, or runs loader exactly once
// across all concurrent callers racing on the same key and inserts the
// result before returning it.
func (h *Handle[K, V]) GetOrLoad(ctx context.Context, key K, loader LoaderFunc[K, V]) (V, error) {
	if val, ok := h.Get(key); ok {
		return val, nil
	}
	val, err, _ := h.loaders.load(ctx, h.hasher.Of(key), key, loader)
	if err != nil {
		var zero V
		return zero, err
	}
	h.Insert(key, val)
	return val, nil
}

// Len returns the Master's current live entry count. It may momentarily
// disagree with what Get can see, since the Mirror publishes on its own
// cadence.
func (h *Handle[K, V]) Len() int {
	n, _, _ := h.master.stats()
	return n
}

// Close stops the maintenance worker and waits for it to publish a final
// Mirror snapshot. Safe to call more than once.
func (h *Handle[K, V]) Close() {
	h.closeOnce.Do(func() {
		h.signals.Close()
		h.worker.wait()
	})
}
