package main

import "testing"

func TestNewGeneratorRejectsUnknownDistribution(t *testing.T) {
	if _, err := newGenerator("gaussian", 1.2, 1.0, 1); err == nil {
		t.Fatalf("newGenerator(gaussian) error = nil; want error")
	}
}

func TestNewGeneratorRejectsBadZipfParameters(t *testing.T) {
	if _, err := newGenerator("zipf", 0.5, 1.0, 1); err == nil {
		t.Fatalf("newGenerator(zipf, s=0.5) error = nil; want error")
	}
	if _, err := newGenerator("zipf", 1.2, 0, 1); err == nil {
		t.Fatalf("newGenerator(zipf, v=0) error = nil; want error")
	}
}

func TestNewGeneratorUniformIsDeterministicForAFixedSeed(t *testing.T) {
	genA, err := newGenerator("uniform", 1.2, 1.0, 42)
	if err != nil {
		t.Fatalf("newGenerator() error = %v", err)
	}
	genB, err := newGenerator("uniform", 1.2, 1.0, 42)
	if err != nil {
		t.Fatalf("newGenerator() error = %v", err)
	}
	for i := 0; i < 100; i++ {
		if a, b := genA(), genB(); a != b {
			t.Fatalf("same seed diverged at step %d: %d != %d", i, a, b)
		}
	}
}

func TestFillReportsConsistentTotalsAndRespectsCapacity(t *testing.T) {
	gen, err := newGenerator("zipf", 1.2, 1.0, 7)
	if err != nil {
		t.Fatalf("newGenerator() error = %v", err)
	}

	const capacity = 64
	stats, err := fill(capacity, 5000, gen)
	if err != nil {
		t.Fatalf("fill() error = %v", err)
	}
	if stats.keys != 5000 {
		t.Fatalf("keys = %d; want 5000", stats.keys)
	}
	if stats.hits+stats.misses != stats.keys {
		t.Fatalf("hits %d + misses %d != keys %d", stats.hits, stats.misses, stats.keys)
	}
	if stats.len > capacity {
		t.Fatalf("final_len %d exceeds capacity %d", stats.len, capacity)
	}
	if stats.hits == 0 {
		t.Fatalf("hits = 0 for a skewed zipf stream; expected the hot head to repeat")
	}
}

func TestFillUniformStreamStaysNearCapacity(t *testing.T) {
	gen, err := newGenerator("uniform", 1.2, 1.0, 9)
	if err != nil {
		t.Fatalf("newGenerator() error = %v", err)
	}

	const capacity = 32
	stats, err := fill(capacity, 10_000, gen)
	if err != nil {
		t.Fatalf("fill() error = %v", err)
	}
	if stats.len != capacity {
		t.Fatalf("final_len = %d; want %d after 10000 near-unique uniform keys", stats.len, capacity)
	}
}
