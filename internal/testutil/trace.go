package testutil

import (
	"fmt"
	"sync"
)

// FixedTraceGenerator returns the same trace ID every time.
//
// This makes CLI JSON output byte-identical across runs so it can be
// compared against golden files.
//
// Thread-safety: FixedTraceGenerator is stateless and safe for concurrent use.
type FixedTraceGenerator struct {
	id string
}

// NewFixedTraceGenerator creates a new fixed trace ID generator.
// If id is empty, Generate() returns "test-trace-default".
func NewFixedTraceGenerator(id string) *FixedTraceGenerator {
	if id == "" {
		id = "test-trace-default"
	}
	return &FixedTraceGenerator{id: id}
}

// Generate returns the fixed trace ID.
func (g *FixedTraceGenerator) Generate() string {
	return g.id
}

// SequenceTraceGenerator returns "<prefix>-0001", "<prefix>-0002", ...
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type SequenceTraceGenerator struct {
	mu     sync.Mutex
	prefix string
	seq    int
}

// NewSequenceTraceGenerator creates a generator whose first ID ends in 0001.
func NewSequenceTraceGenerator(prefix string) *SequenceTraceGenerator {
	if prefix == "" {
		prefix = "trace"
	}
	return &SequenceTraceGenerator{prefix: prefix}
}

// Generate returns the next ID in the sequence.
func (g *SequenceTraceGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq++
	return fmt.Sprintf("%s-%04d", g.prefix, g.seq)
}

// Reset restarts the sequence. The next call to Generate() ends in 0001.
func (g *SequenceTraceGenerator) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq = 0
}
