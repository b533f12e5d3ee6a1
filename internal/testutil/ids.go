package testutil

import (
	"fmt"
	"sync"
)

// FixedIDGenerator returns run ids from a fixed, predictable sequence:
// 00000000-0000-7000-8000-000000000001, ...002, and so on.
//
// This enables deterministic test execution and stable golden output. It
// implements store.IDGenerator.
//
// Thread-safety: FixedIDGenerator is safe for concurrent use.
type FixedIDGenerator struct {
	mu sync.Mutex
	n  int
}

// NewFixedIDGenerator creates a generator whose first id ends in 1.
func NewFixedIDGenerator() *FixedIDGenerator {
	return &FixedIDGenerator{}
}

// Generate returns the next id in the sequence.
func (g *FixedIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return FixedID(g.n)
}

// Reset restarts the sequence. After Reset the next id ends in 1.
func (g *FixedIDGenerator) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n = 0
}

// FixedID returns the n-th id produced by a FixedIDGenerator.
func FixedID(n int) string {
	return fmt.Sprintf("00000000-0000-7000-8000-%012d", n)
}
