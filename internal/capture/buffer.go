// Package capture owns the raw audio capture buffer and the contract between
// sample producers (device callbacks, subprocesses, synthesizers) and the
// game loop that reads them.
package capture

import (
	"sync"
	"sync/atomic"
)

// Sink receives interleaved signed 16-bit samples from a producer.
type Sink interface {
	// Write stores as many samples as fit and returns how many were kept.
	Write(samples []int16) int
}

// Buffer is a fixed-capacity capture window with a single writer and a
// single reader. The writer appends while the buffer is running. The reader
// may poll Len at any time, but must Pause before touching Samples: Pause
// waits for an in-flight Write to finish and blocks further writes.
type Buffer struct {
	mu     sync.Mutex // Held by Write and by Pause/Resume, never by Len
	data   []int16
	cursor atomic.Int64
	paused bool
}

// NewBuffer creates a paused buffer holding up to capacity samples.
func NewBuffer(capacity int) *Buffer {
	if capacity < 0 {
		capacity = 0
	}
	return &Buffer{
		data:   make([]int16, capacity),
		paused: true,
	}
}

// Write implements Sink. Samples beyond capacity, or written while paused,
// are dropped.
func (b *Buffer) Write(samples []int16) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.paused {
		return 0
	}
	pos := int(b.cursor.Load())
	n := copy(b.data[pos:], samples)
	b.cursor.Store(int64(pos + n))
	return n
}

// Pause stops the writer. After Pause returns, Samples is safe to read.
func (b *Buffer) Pause() {
	b.mu.Lock()
	b.paused = true
	b.mu.Unlock()
}

// Resume rewinds the cursor to zero and lets the writer continue.
func (b *Buffer) Resume() {
	b.mu.Lock()
	b.cursor.Store(0)
	b.paused = false
	b.mu.Unlock()
}

// Paused reports whether the writer is blocked.
func (b *Buffer) Paused() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.paused
}

// Len returns the number of samples captured in the current window.
func (b *Buffer) Len() int {
	return int(b.cursor.Load())
}

// Cap returns the buffer capacity in samples.
func (b *Buffer) Cap() int {
	return len(b.data)
}

// Samples returns the captured window. Only valid while paused; the slice
// aliases the buffer and is overwritten after Resume.
func (b *Buffer) Samples() []int16 {
	return b.data[:b.Len()]
}
