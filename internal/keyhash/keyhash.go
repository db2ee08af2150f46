// Package keyhash centralises the hashing used to route keys to shards: the
// zero-copy byte/string conversions and the per-owner hash.Hash64 wiring
// live together here since neither is large enough to warrant its own
// package, and both exist only to make Of() allocation-free for the common
// key shapes.
//
// © 2025 DualCache authors. MIT License.
package keyhash

import (
	"hash/maphash"
	"unsafe"
)

// Hasher computes a 64-bit hash of keys of type K using a seed private to
// one owner (typically one shard), so that no global lock is needed to
// protect a shared hash.Hash64.
type Hasher[K comparable] struct {
	seed maphash.Seed
}

// NewHasher constructs a Hasher with a freshly generated seed.
func NewHasher[K comparable]() Hasher[K] {
	return Hasher[K]{seed: maphash.MakeSeed()}
}

// Of hashes key. string and []byte keys are written directly into the hash
// without an intermediate allocation; every other comparable type is hashed
// via its in-memory representation, which is safe because the bytes are
// only ever read, never retained.
func (h Hasher[K]) Of(key K) uint64 {
	var mh maphash.Hash
	mh.SetSeed(h.seed)

	switch k := any(key).(type) {
	case string:
		mh.WriteString(k)
	case []byte:
		mh.Write(k)
	default:
		ptr := unsafe.Pointer(&key)
		size := unsafe.Sizeof(key)
		mh.Write(unsafe.Slice((*byte)(ptr), size))
	}
	return mh.Sum64()
}

// BytesToString converts a byte slice to a string without allocating. The
// caller must guarantee b is never mutated afterwards; used when hashing or
// comparing []byte keys against string-keyed structures.
func BytesToString(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(&b[0], len(b))
}

// IsPowerOfTwo reports whether x has exactly one bit set. Used to validate
// shard counts before constructing a shard slice.
func IsPowerOfTwo(x uint32) bool {
	return x != 0 && x&(x-1) == 0
}

// NextPow2 rounds x up to the next power of two, or 1 if x is 0.
func NextPow2(x uint32) uint32 {
	if x == 0 {
		return 1
	}
	x--
	x |= x >> 1
	x |= x >> 2
	x |= x >> 4
	x |= x >> 8
	x |= x >> 16
	x++
	return x
}
