// Package idgen generates session identifiers.
package idgen

import (
	"strconv"
	"sync/atomic"

	"github.com/rs/xid"
)

// Generator produces unique identifiers.
type Generator interface {
	Generate() string
}

// NewSequential returns a generator whose first emitted ID is "1". The
// output is deterministic, which is what tests and offline runs want.
func NewSequential() Generator {
	return &sequentialGenerator{}
}

// NewXID returns a generator of globally unique, sortable IDs. Use it when
// IDs are exposed to browsers.
func NewXID() Generator {
	return xidGenerator{}
}

type sequentialGenerator struct {
	next uint64
}

func (g *sequentialGenerator) Generate() string {
	return strconv.FormatUint(atomic.AddUint64(&g.next, 1), 10)
}

type xidGenerator struct{}

func (xidGenerator) Generate() string {
	return xid.New().String()
}
