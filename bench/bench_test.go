// Package bench provides reproducible micro-benchmarks for dualcache.
// Run via:  go test ./bench -bench=. -benchmem -cpu 1,4,16
//
// All benchmarks share one key/value shape so results are comparable across
// versions:
//   - Key   – uint64 (cheap hashing, fits in a register)
//   - Value – 64-byte struct (large enough to matter, small enough to cache)
//
// We measure:
//  1. Insert         – write-only workload
//  2. Get            – read-only workload after warm-up
//  3. GetParallel    – highly concurrent reads (b.RunParallel)
//  4. GetOrLoad      – 90% hits, 10% misses with loader cost
//  5. SignalSaturation – Get-heavy workload with a deliberately undersized
//     signal channel, to measure the cost of dropped promotions under load.
//
// © 2025 DualCache authors. MIT License.
package bench

import (
	"context"
	"math/rand"
	"sync/atomic"
	"testing"

	"github.com/hianova/dualcache/dualcache"
)

type value64 struct {
	_ [64]byte
}

const (
	capacity = 1 << 16 // 65536 entries
	keys     = 1 << 20 // 1M keys for dataset
)

func newTestCache(opts ...dualcache.Option[uint64, value64]) *dualcache.Handle[uint64, value64] {
	c, err := dualcache.New[uint64, value64](capacity, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

var ds = func() []uint64 {
	rnd := rand.New(rand.NewSource(42))
	arr := make([]uint64, keys)
	for i := range arr {
		arr[i] = rnd.Uint64()
	}
	return arr
}()

func BenchmarkInsert(b *testing.B) {
	c := newTestCache()
	defer c.Close()
	val := value64{}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		key := ds[i&(keys-1)]
		c.Insert(key, val)
	}
}

func BenchmarkGet(b *testing.B) {
	c := newTestCache()
	defer c.Close()
	val := value64{}
	for _, k := range ds[:capacity] {
		c.InsertAndPublish(k, val)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		k := ds[i&(capacity-1)]
		c.Get(k)
	}
}

func BenchmarkGetParallel(b *testing.B) {
	c := newTestCache()
	defer c.Close()
	val := value64{}
	for _, k := range ds[:capacity] {
		c.InsertAndPublish(k, val)
	}
	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		idx := rand.Intn(capacity)
		for pb.Next() {
			idx = (idx + 1) & (capacity - 1)
			c.Get(ds[idx])
		}
	})
}

func BenchmarkGetOrLoad(b *testing.B) {
	c := newTestCache()
	defer c.Close()
	val := value64{}
	for i, k := range ds[:capacity] {
		if i%10 != 0 { // 90% fill
			c.InsertAndPublish(k, val)
		}
	}
	var loaderCnt atomic.Uint64
	loader := func(ctx context.Context, key uint64) (value64, error) {
		loaderCnt.Add(1)
		return val, nil
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		k := ds[i&(capacity-1)]
		_, _ = c.GetOrLoad(context.Background(), k, loader)
	}
	b.ReportMetric(float64(loaderCnt.Load())/float64(b.N)*100, "miss-%")
}

// BenchmarkSignalSaturation measures Get throughput when the signal channel
// is sized far below what a Get-heavy parallel workload would want to send,
// exercising the bounded-queue's lossy-under-saturation backpressure path
// instead of the default generous capacity.
func BenchmarkSignalSaturation(b *testing.B) {
	c := newTestCache(dualcache.WithSignalCapacity[uint64, value64](8))
	defer c.Close()
	val := value64{}
	for _, k := range ds[:capacity] {
		c.InsertAndPublish(k, val)
	}
	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		idx := rand.Intn(capacity)
		for pb.Next() {
			idx = (idx + 1) & (capacity - 1)
			c.Get(ds[idx])
		}
	})
}
