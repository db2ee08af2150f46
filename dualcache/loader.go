// loader.go de-duplicates concurrent GetOrLoad calls for the same key via
// golang.org/x/sync/singleflight. A key's hash (stable per Handle, from
// internal/keyhash) stands in for singleflight's string key.
//
// © 2025 DualCache authors. MIT License.
package dualcache

import (
	"context"
	"strconv"

	"golang.org/x/sync/singleflight"
)

type loaderGroup[K comparable, V any] struct {
	g singleflight.Group
}

func newLoaderGroup[K comparable, V any]() *loaderGroup[K, V] {
	return &loaderGroup[K, V]{}
}

// load executes fn exactly once per in-flight keyHash; every concurrent
// caller for the same key receives the same value and error.
func (lg *loaderGroup[K, V]) load(ctx context.Context, keyHash uint64, key K, fn LoaderFunc[K, V]) (val V, err error, shared bool) {
	k := strconv.FormatUint(keyHash, 16)
	res, err, shared := lg.g.Do(k, func() (any, error) {
		return fn(ctx, key)
	})
	if err != nil {
		return val, err, shared
	}
	if ctx.Err() != nil {
		return val, ctx.Err(), shared
	}
	return res.(V), nil, shared
}
