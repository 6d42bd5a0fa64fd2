// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package msgq

import "sync"

// Options configures queue creation.
type Options struct {
	// Backing region
	capacity int
	buffer   []byte // nil: allocate capacity bytes

	// Atomic section (nil: *SpinLock)
	locker sync.Locker

	// Keep cursors where they are when the queue drains
	keepOffsets bool
}

// Builder creates queues with fluent configuration.
//
// Example:
//
//	// Message queue over a caller-allocated region
//	region := make([]byte, 512)
//	q := msgq.New(len(region)).Buffer(region).Build()
//
//	// Byte ring guarded by a mutex instead of the default SpinLock
//	r := msgq.New(64).Locker(&sync.Mutex{}).BuildRing()
type Builder struct {
	opts Options
}

// New creates a builder for a queue with a capacity-byte backing region.
//
// Capacity is used as given; there is no rounding. One byte is reserved to
// tell full from empty, so at most capacity-1 bytes are queued.
//
// Panics if capacity < 2.
func New(capacity int) *Builder {
	if capacity < 2 {
		panic("msgq: capacity must be >= 2")
	}
	return &Builder{opts: Options{capacity: capacity}}
}

// Buffer makes the queue use p as its backing region instead of allocating
// one. The queue owns p from then on; the caller must not touch it.
//
// Panics if len(p) differs from the builder capacity.
func (b *Builder) Buffer(p []byte) *Builder {
	if len(p) != b.opts.capacity {
		panic("msgq: buffer length must equal capacity")
	}
	b.opts.buffer = p
	return b
}

// Locker supplies the atomic section mechanism.
//
// The default is a *SpinLock. A *sync.Mutex suits hosts where the
// producer and consumer are ordinary goroutines; on bare metal, pass a
// Locker that masks and restores interrupts.
func (b *Builder) Locker(l sync.Locker) *Builder {
	b.opts.locker = l
	return b
}

// KeepOffsets disables returning both cursors to 0 when ReadAndDelete
// empties the queue.
func (b *Builder) KeepOffsets() *Builder {
	b.opts.keepOffsets = true
	return b
}

// Build creates a message Queue.
func (b *Builder) Build() *Queue {
	return newQueue(b.opts)
}

// BuildRing creates a byte-stream Ring without message framing.
func (b *Builder) BuildRing() *Ring {
	return newRing(b.opts)
}
