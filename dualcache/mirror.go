// mirror.go is the Mirror side of the read/write split: an
// atomically-swapped, immutable snapshot that every reader consults without
// ever taking the Master's lock. Publication races with reads by design —
// the worker swaps the pointer, readers that already hold the old one keep
// using it until their next Get.
//
// © 2025 DualCache authors. MIT License.
package dualcache

import (
	"sync/atomic"

	"github.com/hianova/dualcache/internal/arena"
)

type mirror[K comparable, V any] struct {
	snap atomic.Pointer[arena.Snapshot[K, V]]
}

func newMirror[K comparable, V any](initial *arena.Snapshot[K, V]) *mirror[K, V] {
	m := &mirror[K, V]{}
	m.snap.Store(initial)
	return m
}

func (m *mirror[K, V]) publish(s *arena.Snapshot[K, V]) { m.snap.Store(s) }

func (m *mirror[K, V]) get(key K) (V, bool) { return m.snap.Load().Get(key) }
