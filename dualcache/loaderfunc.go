// © 2025 DualCache authors. MIT License.
package dualcache

import "context"

// LoaderFunc is invoked by Handle.GetOrLoad when a key is absent from the
// mirror. Implementations should return the value to insert or an error. The
// same LoaderFunc may be invoked concurrently for different keys and must be
// safe for that; it must not call back into the same Handle it serves.
type LoaderFunc[K comparable, V any] func(ctx context.Context, key K) (V, error)
