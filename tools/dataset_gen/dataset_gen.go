package main

// dataset_gen.go generates deterministic key datasets for standalone
// benchmarking of dualcache (outside `go test`). By default it emits
// newline-separated uint64 numbers that bench/bench_test.go-style load
// generators or external tooling can replay. A Zipfian distribution is the
// realistic case: it produces the skewed access pattern (a hot head, a long
// cold tail) that the eviction membrane is meant to separate; uniform is the
// control.
//
// Passing -fill replays the generated stream directly against a live
// dualcache.Handle instead of writing it out, so the distribution's shape
// can be checked against the membrane's actual behavior rather than just
// inspected as numbers in a file.
//
// Usage:
//
//	go run ./tools/dataset_gen -n 1000000 -dist=zipf -seed=42 -out keys.txt
//	go run ./tools/dataset_gen -n 1000000 -dist=zipf -fill -capacity=20000
//
// Flags:
//
//	-n         number of keys to generate (default 1e6)
//	-dist      distribution: "uniform" or "zipf" (default uniform)
//	-zipfs     Zipf s parameter (>1)  (default 1.2)
//	-zipfv     Zipf v parameter (>=1) (default 1.0)
//	-seed      RNG seed (default current time)
//	-out       output file (default stdout), ignored when -fill is set
//	-fill      replay the stream against a dualcache.Handle and report stats
//	-capacity  Handle capacity when -fill is set (default 10000)
//
// © 2025 DualCache authors. MIT License.

import (
	"bufio"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/hianova/dualcache/dualcache"
)

func newGenerator(dist string, zipfS, zipfV float64, seed int64) (func() uint64, error) {
	rnd := rand.New(rand.NewSource(seed))
	switch dist {
	case "uniform":
		return rnd.Uint64, nil
	case "zipf":
		if zipfS <= 1.0 || zipfV < 1.0 {
			return nil, fmt.Errorf("zipfs must be >1 and zipfv >=1")
		}
		z := rand.NewZipf(rnd, zipfS, zipfV, ^uint64(0))
		return z.Uint64, nil
	default:
		return nil, fmt.Errorf("unknown dist: %s", dist)
	}
}

// fillStats summarizes one replay of a key stream against a live Handle.
type fillStats struct {
	keys   int
	hits   int
	misses int
	len    int
}

// fill replays n keys from gen against a fresh dualcache.Handle of the given
// capacity: a Get miss triggers an Insert, a Get hit only fires the usual
// promotion signal. Insert alone is not visible to Get, so the Mirror is
// synced after every capacity misses and once more at the end. Len is read
// from the Master and counts every insert applied during the run.
func fill(capacity int, n int, gen func() uint64) (fillStats, error) {
	h, err := dualcache.New[uint64, uint64](capacity)
	if err != nil {
		return fillStats{}, err
	}
	defer h.Close()

	var stats fillStats
	for i := 0; i < n; i++ {
		key := gen()
		stats.keys++
		if _, ok := h.Get(key); ok {
			stats.hits++
			continue
		}
		stats.misses++
		h.Insert(key, key)
		if stats.misses%capacity == 0 {
			h.SyncMirror()
		}
	}
	h.SyncMirror()
	stats.len = h.Len()
	return stats, nil
}

func emit(out *os.File, n int, gen func() uint64) {
	w := bufio.NewWriterSize(out, 1<<20)
	defer w.Flush()
	for i := 0; i < n; i++ {
		fmt.Fprintln(w, gen())
	}
}

func main() {
	var (
		n        = flag.Int("n", 1_000_000, "number of keys to generate")
		dist     = flag.String("dist", "uniform", "distribution: uniform or zipf")
		zipfS    = flag.Float64("zipfs", 1.2, "zipf s parameter (>1)")
		zipfV    = flag.Float64("zipfv", 1.0, "zipf v parameter (>=1)")
		seedVal  = flag.Int64("seed", time.Now().UnixNano(), "PRNG seed")
		outPath  = flag.String("out", "", "output file (default stdout), ignored with -fill")
		doFill   = flag.Bool("fill", false, "replay the stream against a dualcache.Handle and report stats")
		capacity = flag.Int("capacity", 10_000, "Handle capacity when -fill is set")
	)
	flag.Parse()

	gen, err := newGenerator(*dist, *zipfS, *zipfV, *seedVal)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *doFill {
		stats, err := fill(*capacity, *n, gen)
		if err != nil {
			fmt.Fprintln(os.Stderr, "fill:", err)
			os.Exit(1)
		}
		fmt.Printf("keys=%d hits=%d misses=%d hit_rate=%.4f final_len=%d capacity=%d\n",
			stats.keys, stats.hits, stats.misses,
			float64(stats.hits)/float64(stats.keys), stats.len, *capacity)
		return
	}

	out := os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "cannot create file:", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}
	emit(out, *n, gen)
}
