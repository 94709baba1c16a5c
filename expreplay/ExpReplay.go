// Package expreplay implements a bounded experience replay buffer.
//
// The buffer is a FIFO ring: once at capacity, every insert evicts
// the single oldest experience. Sampling draws uniformly with
// replacement, so a batch may contain duplicates.
package expreplay

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/yyc3/adaptive/transition"
)

// Buffer is a bounded, insertion-ordered store of experiences. Stored
// experiences are never mutated after insertion.
type Buffer struct {
	experiences []transition.Experience

	// currentInUsePos is the ring index at which the next experience
	// is inserted. Once isFull, it is also the index of the oldest
	// experience.
	currentInUsePos int
	isFull          bool

	capacity int
	rng      *rand.Rand
}

// New creates a Buffer holding at most capacity experiences. The seed
// fixes the sampling stream.
func New(capacity int, seed uint64) (*Buffer, error) {
	if capacity < 1 {
		return nil, fmt.Errorf("new: capacity must be >= 1")
	}

	return &Buffer{
		experiences: make([]transition.Experience, 0, capacity),
		capacity:    capacity,
		rng:         rand.New(rand.NewSource(seed)),
	}, nil
}

// Add inserts an experience, evicting the oldest one first when the
// buffer is at capacity.
func (b *Buffer) Add(e transition.Experience) {
	if !b.isFull {
		b.experiences = append(b.experiences, e)
		b.currentInUsePos = (b.currentInUsePos + 1) % b.capacity
		b.isFull = len(b.experiences) == b.capacity && b.currentInUsePos == 0
		return
	}

	// Overwriting the oldest slot evicts it
	b.experiences[b.currentInUsePos] = e
	b.currentInUsePos = (b.currentInUsePos + 1) % b.capacity
}

// Sample draws n experiences uniformly with replacement. If the buffer
// holds fewer than n experiences, at most Len() are returned. Sampling
// an empty buffer returns an empty batch.
func (b *Buffer) Sample(n int) []transition.Experience {
	size := len(b.experiences)
	if size == 0 {
		return nil
	}
	if n > size {
		n = size
	}

	batch := make([]transition.Experience, n)
	for i := 0; i < n; i++ {
		batch[i] = b.experiences[b.rng.Intn(size)]
	}
	return batch
}

// Recent returns the n most recently inserted experiences in
// chronological order. If fewer than n exist, all are returned.
func (b *Buffer) Recent(n int) []transition.Experience {
	size := len(b.experiences)
	if n > size {
		n = size
	}

	recent := make([]transition.Experience, 0, n)
	for i := size - n; i < size; i++ {
		// Before the ring wraps, chronological order is slice order;
		// afterwards the oldest element sits at currentInUsePos.
		index := i
		if b.isFull {
			index = (b.currentInUsePos + i) % size
		}
		recent = append(recent, b.experiences[index])
	}
	return recent
}

// Len returns the number of experiences currently stored.
func (b *Buffer) Len() int {
	return len(b.experiences)
}

// Capacity returns the maximum number of experiences the buffer holds.
func (b *Buffer) Capacity() int {
	return b.capacity
}

// Clear removes every stored experience, keeping the capacity and the
// sampling stream.
func (b *Buffer) Clear() {
	b.experiences = b.experiences[:0]
	b.currentInUsePos = 0
	b.isFull = false
}

// String returns the string representation of the buffer.
func (b *Buffer) String() string {
	return fmt.Sprintf("Buffer | %d/%d experiences", len(b.experiences),
		b.capacity)
}
