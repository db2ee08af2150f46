// sharded.go supplements the core with N independent Handles behind a
// single key-routed facade. Each shard is a complete DualCache (own
// Master, Mirror, Signal Channel, worker goroutine) rather than a slice of
// one shared structure, since the core's per-instance protocol does not
// decompose any finer than that.
//
// © 2025 DualCache authors. MIT License.
package dualcache

import (
	"context"
	"fmt"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/hianova/dualcache/internal/keyhash"
)

// ShardedCache routes keys across shardCount independent Handles, each with
// its own capacity and maintenance worker, to spread Master lock contention
// across goroutines.
type ShardedCache[K comparable, V any] struct {
	shards []*Handle[K, V]
	hasher keyhash.Hasher[K]
}

// NewSharded constructs a ShardedCache with shardCount shards, each sized
// perShardCapacity. shardCount must be a power of two — rejected at
// construction rather than silently rounded, per the rest of this package's
// fail-at-startup convention — so shardFor can route with a bitmask instead
// of a modulo. Options apply identically to every shard.
func NewSharded[K comparable, V any](shardCount, perShardCapacity int, opts ...Option[K, V]) (*ShardedCache[K, V], error) {
	if shardCount <= 0 || shardCount > 1<<31 || !keyhash.IsPowerOfTwo(uint32(shardCount)) {
		suggestion := keyhash.NextPow2(uint32(max(shardCount, 0)))
		return nil, fmt.Errorf("%w: got %d, nearest valid value is %d", errInvalidShardCount, shardCount, suggestion)
	}
	cfg := defaultConfig[K, V](perShardCapacity)
	if err := applyOptions(cfg, opts); err != nil {
		return nil, err
	}

	sc := &ShardedCache[K, V]{
		shards: make([]*Handle[K, V], shardCount),
		hasher: keyhash.NewHasher[K](),
	}
	for i := range sc.shards {
		sc.shards[i] = newHandle[K, V](cfg, strconv.Itoa(i))
	}
	return sc, nil
}

func (sc *ShardedCache[K, V]) shardFor(key K) *Handle[K, V] {
	mask := uint64(len(sc.shards) - 1)
	return sc.shards[sc.hasher.Of(key)&mask]
}

// Get routes to the owning shard's Get.
func (sc *ShardedCache[K, V]) Get(key K) (V, bool) { return sc.shardFor(key).Get(key) }

// Insert routes to the owning shard's Insert.
func (sc *ShardedCache[K, V]) Insert(key K, value V) { sc.shardFor(key).Insert(key, value) }

// Update routes to the owning shard's Update.
func (sc *ShardedCache[K, V]) Update(key K, value V) bool { return sc.shardFor(key).Update(key, value) }

// Delete routes to the owning shard's Delete.
func (sc *ShardedCache[K, V]) Delete(key K) bool { return sc.shardFor(key).Delete(key) }

// GetOrLoad routes to the owning shard's GetOrLoad.
func (sc *ShardedCache[K, V]) GetOrLoad(ctx context.Context, key K, loader LoaderFunc[K, V]) (V, error) {
	return sc.shardFor(key).GetOrLoad(ctx, key, loader)
}

// DecayAll decays every shard.
func (sc *ShardedCache[K, V]) DecayAll() {
	for _, h := range sc.shards {
		h.DecayAll()
	}
}

// SyncMirror publishes a fresh Mirror snapshot on every shard, independent
// of any write.
func (sc *ShardedCache[K, V]) SyncMirror() {
	for _, h := range sc.shards {
		h.SyncMirror()
	}
}

// Len sums every shard's live entry count.
func (sc *ShardedCache[K, V]) Len() int {
	total := 0
	for _, h := range sc.shards {
		total += h.Len()
	}
	return total
}

// Close stops every shard's maintenance worker concurrently and waits for
// all of them to finish.
func (sc *ShardedCache[K, V]) Close() error {
	g := new(errgroup.Group)
	for _, h := range sc.shards {
		g.Go(func() error {
			h.Close()
			return nil
		})
	}
	return g.Wait()
}
