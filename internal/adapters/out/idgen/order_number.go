// Package idgen assigns business-unique document numbers.
package idgen

import (
	"fmt"
	"math/rand/v2"
	"sync/atomic"
	"time"
)

// TimeSeededOrderNumberGenerator produces order numbers of the form
// PO-YYYYMMDD-NNNNRRR, where NNNN is a process-local sequence and RRR a
// random suffix. Uniqueness across processes is probabilistic; the database
// unique index on order_number is the final arbiter.
type TimeSeededOrderNumberGenerator struct {
	sequence atomic.Uint64
	now      func() time.Time
}

// NewTimeSeededOrderNumberGenerator creates a generator stamping numbers
// with the current date.
func NewTimeSeededOrderNumberGenerator() *TimeSeededOrderNumberGenerator {
	return &TimeSeededOrderNumberGenerator{now: time.Now}
}

// Next returns the next order number.
func (g *TimeSeededOrderNumberGenerator) Next() string {
	seq := g.sequence.Add(1) % 10000
	return fmt.Sprintf("PO-%s-%04d%03d", g.now().Format("20060102"), seq, rand.IntN(1000))
}
