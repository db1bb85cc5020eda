// Package tracing records lab transitions so a session can be replayed or
// inspected after the fact.
//
// A LabTracer is a hook that turns lab hook contexts into Records and hands
// them to a Writer. SQLiteWriter batches records into a SQLite file and
// flushes whatever is left when the process exits.
package tracing

import (
	"sync"

	"github.com/KomalYerkal/Preparation-of-Soap/timing"
)

// Record is one lab transition.
type Record struct {
	Session     string
	Pos         string
	Time        timing.VTime
	Status      string
	Fill        int
	Ingredients string
	Generation  uint64
	Revision    uint64
}

// Writer stores records.
type Writer interface {
	Write(r Record)
	Flush() error
}

// MemoryWriter keeps records in memory.
type MemoryWriter struct {
	mu      sync.Mutex
	records []Record
}

// NewMemoryWriter creates an empty MemoryWriter.
func NewMemoryWriter() *MemoryWriter {
	return &MemoryWriter{}
}

// Write appends r.
func (w *MemoryWriter) Write(r Record) {
	w.mu.Lock()
	w.records = append(w.records, r)
	w.mu.Unlock()
}

// Flush does nothing.
func (w *MemoryWriter) Flush() error {
	return nil
}

// Records returns a copy of everything written so far.
func (w *MemoryWriter) Records() []Record {
	w.mu.Lock()
	defer w.mu.Unlock()

	return append([]Record(nil), w.records...)
}
