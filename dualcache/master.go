// master.go is the Master side of the read/write split: the single
// mutex-guarded source of truth, wrapping internal/arena's ranking
// engine and internal/membrane's eviction rule. Every method here takes the
// lock itself; callers never see the lock.
//
// © 2025 DualCache authors. MIT License.
package dualcache

import (
	"sync"

	"github.com/hianova/dualcache/internal/arena"
	"github.com/hianova/dualcache/internal/membrane"
)

type master[K comparable, V any] struct {
	mu       sync.Mutex
	arena    *arena.Arena[K, V]
	membrane *membrane.Membrane
}

func newMaster[K comparable, V any](capacity, membraneStep, membraneWatermark int) *master[K, V] {
	return &master[K, V]{
		arena:    arena.New[K, V](capacity),
		membrane: membrane.New(membraneStep, membraneWatermark),
	}
}

// promote applies a single Viscous Climb and lets the membrane reconsider
// its position. Called only by the maintenance worker draining signals,
// never from a reader goroutine directly.
func (m *master[K, V]) promote(key K) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.arena.Promote(key) {
		return false
	}
	m.membrane.Adjust(m.arena)
	return true
}

func (m *master[K, V]) insert(key K, value V, ts uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.arena.Insert(key, value, ts)
	m.membrane.Adjust(m.arena)
}

func (m *master[K, V]) update(key K, value V) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.arena.Update(key, value)
}

func (m *master[K, V]) delete(key K) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.arena.Delete(key) {
		return false
	}
	m.membrane.Adjust(m.arena)
	return true
}

func (m *master[K, V]) decay() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.arena.Decay()
}

func (m *master[K, V]) snapshot() *arena.Snapshot[K, V] {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.arena.Snapshot()
}

func (m *master[K, V]) stats() (length, evictPoint int, counterSum uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.arena.Len(), m.arena.EvictPoint(), m.arena.CounterSum()
}
