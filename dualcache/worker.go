// worker.go is the Maintenance Worker: the single consumer draining the
// promotion Signal Channel, applying each promotion to the
// Master, and republishing the Mirror every publish_every_n_promotions
// applied promotions. It batches drains under a single lock acquisition,
// trading a little promotion latency for fewer Master lock round-trips.
//
// © 2025 DualCache authors. MIT License.
package dualcache

import (
	"go.uber.org/zap"

	"github.com/hianova/dualcache/internal/signalqueue"
)

// drainBatch bounds how many signals the worker pulls off the queue before
// it re-checks the publish threshold; it is not a correctness constant, just
// an amortization knob.
const drainBatch = 64

type maintenanceWorker[K comparable, V any] struct {
	master        *master[K, V]
	mirror        *mirror[K, V]
	signals       *signalqueue.Queue[K]
	metrics       metricsSink
	logger        *zap.Logger
	shardLabel    string
	publishEveryN int
	applied       int
	done          chan struct{}
}

func newMaintenanceWorker[K comparable, V any](
	m *master[K, V],
	mir *mirror[K, V],
	q *signalqueue.Queue[K],
	metrics metricsSink,
	logger *zap.Logger,
	shardLabel string,
	publishEveryN int,
) *maintenanceWorker[K, V] {
	return &maintenanceWorker[K, V]{
		master: m, mirror: mir, signals: q, metrics: metrics, logger: logger,
		shardLabel: shardLabel, publishEveryN: publishEveryN, done: make(chan struct{}),
	}
}

// run drains signals until the queue is closed, publishing a final mirror
// before returning. One goroutine per Handle runs this.
func (w *maintenanceWorker[K, V]) run() {
	defer close(w.done)

	batch := make([]K, 0, drainBatch)
	for {
		key, ok := w.signals.Receive()
		if !ok {
			w.publish()
			return
		}

		batch = append(batch[:0], key)
		batch = w.signals.DrainUpTo(batch, drainBatch-1)

		for _, k := range batch {
			if w.master.promote(k) {
				w.metrics.incPromotion(w.shardLabel)
				w.applied++
			}
		}

		if w.applied >= w.publishEveryN {
			w.publish()
			w.applied = 0
		}
	}
}

func (w *maintenanceWorker[K, V]) publish() {
	snap := w.master.snapshot()
	w.mirror.publish(snap)
	w.metrics.incMirrorPublish(w.shardLabel)

	length, evictPoint, counterSum := w.master.stats()
	w.metrics.setLen(w.shardLabel, length)
	w.metrics.setEvictPoint(w.shardLabel, evictPoint)
	w.metrics.setCounterSum(w.shardLabel, counterSum)
	w.metrics.setSignalDropped(w.shardLabel, w.signals.Dropped())

	w.logger.Debug("mirror published",
		zap.String("shard", w.shardLabel),
		zap.Int("len", length),
		zap.Int("evict_point", evictPoint),
	)
}

func (w *maintenanceWorker[K, V]) wait() { <-w.done }
