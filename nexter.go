package starlake

import (
	"sync/atomic"
)

// Nexter is a threadsafe monotonic unique id generator. Ids are strictly
// increasing within a run, may have gaps, and are not stable across runs.
type Nexter struct {
	id *uint64
}

// NexterOption is a functional option for a Nexter.
type NexterOption func(n *Nexter)

// NexterStartFrom sets the first id the Nexter will generate.
func NexterStartFrom(id uint64) NexterOption {
	return func(n *Nexter) {
		atomic.StoreUint64(n.id, id)
	}
}

// NewNexter creates a new id generator starting at 0.
func NewNexter(opts ...NexterOption) *Nexter {
	var id uint64
	n := &Nexter{
		id: &id,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Next generates a new id and returns it
func (n *Nexter) Next() (nextID uint64) {
	nextID = atomic.AddUint64(n.id, 1)
	return nextID - 1
}

// Last returns the most recently generated id
func (n *Nexter) Last() (lastID uint64) {
	lastID = atomic.LoadUint64(n.id) - 1
	return
}
