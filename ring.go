// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package msgq

import "sync"

// core is the cursor pair over a fixed backing region shared by Ring and
// Queue.
//
// One byte of the region is never used so that write == read always means
// empty: usable capacity is capacity-1. Methods with a Locked suffix, and
// the small unexported helpers, assume the caller holds mu.
type core struct {
	mu          sync.Locker
	buf         []byte
	capacity    int
	write       int // next byte to be written
	read        int // next byte to be read
	reserved    bool
	keepOffsets bool
}

func (c *core) init(opts Options) {
	c.capacity = opts.capacity
	c.buf = opts.buffer
	if c.buf == nil {
		c.buf = make([]byte, opts.capacity)
	}
	c.mu = opts.locker
	if c.mu == nil {
		c.mu = new(SpinLock)
	}
	c.keepOffsets = opts.keepOffsets
}

// Cap returns the size of the backing region in bytes.
// At most Cap()-1 bytes can be queued.
func (c *core) Cap() int {
	return c.capacity
}

// Free returns the number of bytes that can still be written.
func (c *core) Free() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.free()
}

// Used returns the number of bytes currently queued.
func (c *core) Used() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.used()
}

// IsFull reports whether no byte can be written.
func (c *core) IsFull() bool {
	return c.Free() == 0
}

// IsEmpty reports whether nothing is queued.
func (c *core) IsEmpty() bool {
	return c.Free() == c.capacity-1
}

// Discard releases the outstanding reservation without writing.
// Returns ErrNotReserved if no reservation is active.
func (c *core) Discard() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.reserved {
		return ErrNotReserved
	}
	c.reserved = false
	return nil
}

// Reset empties the queue and clears any reservation.
// The backing region is kept and its contents are not zeroed.
func (c *core) Reset() {
	c.mu.Lock()
	c.write, c.read, c.reserved = 0, 0, false
	c.mu.Unlock()
}

// State is a consistent snapshot of the cursor pair.
type State struct {
	Capacity int  // Backing region size in bytes
	Write    int  // Write cursor
	Read     int  // Read cursor
	Used     int  // Queued bytes
	Free     int  // Writable bytes
	Reserved bool // A reservation is outstanding
}

// State returns a snapshot taken inside the atomic section.
func (c *core) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{
		Capacity: c.capacity,
		Write:    c.write,
		Read:     c.read,
		Used:     c.used(),
		Free:     c.free(),
		Reserved: c.reserved,
	}
}

func (c *core) free() int {
	if c.write >= c.read {
		return (c.capacity - 1) - (c.write - c.read)
	}
	return c.read - c.write - 1
}

func (c *core) used() int {
	return (c.capacity - 1) - c.free()
}

// advance returns pos moved forward by n bytes in circular address space.
func (c *core) advance(pos, n int) int {
	return (pos + n) % c.capacity
}

// distance returns the number of bytes from pos forward to end.
func (c *core) distance(pos, end int) int {
	return (end - pos + c.capacity) % c.capacity
}

// copyIn writes p at off, continuing at offset 0 if p crosses the end of
// the region.
func (c *core) copyIn(off int, p []byte) {
	n := copy(c.buf[off:], p)
	if n < len(p) {
		copy(c.buf, p[n:])
	}
}

// copyOut fills p from off, continuing at offset 0 if needed.
func (c *core) copyOut(p []byte, off int) {
	n := copy(p, c.buf[off:])
	if n < len(p) {
		copy(p[n:], c.buf)
	}
}

func (c *core) reserveLocked(n int) error {
	if c.reserved {
		return ErrReserved
	}
	if n < 0 || c.free() < n {
		return ErrWouldBlock
	}
	c.reserved = true
	return nil
}

// consume moves the read cursor past n bytes.
func (c *core) consume(n int) {
	c.read = c.advance(c.read, n)
}

// Ring is a byte-stream ring buffer with a reserve/commit write discipline.
//
// Ring carries no framing: it moves undifferentiated bytes. Use Queue for
// discrete length-prefixed messages.
//
// One producer and one consumer are supported. Each of them may run in an
// interrupt-like context: every operation executes inside the atomic
// section and none of them blocks beyond it.
//
// Memory: exactly the backing region, capacity bytes
type Ring struct {
	core
}

// NewRing creates a Ring with a capacity-byte backing region.
// Panics if capacity < 2.
func NewRing(capacity int) *Ring {
	return New(capacity).BuildRing()
}

func newRing(opts Options) *Ring {
	r := &Ring{}
	r.init(opts)
	return r
}

// Reserve claims the right to write n bytes.
//
// Reserve succeeds only if no reservation is outstanding and at least n
// bytes are free. There is no partial reservation.
// Returns ErrReserved or ErrWouldBlock otherwise.
func (r *Ring) Reserve(n int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reserveLocked(n)
}

// Commit copies p at the write cursor and advances it.
//
// Commit requires an active reservation and len(p) free bytes. The
// reservation is released whether or not the commit succeeds, so a failed
// commit never locks the ring.
func (r *Ring) Commit(p []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.reserved {
		return ErrNotReserved
	}
	r.reserved = false
	if r.free() < len(p) {
		return ErrWouldBlock
	}
	r.copyIn(r.write, p)
	r.write = r.advance(r.write, len(p))
	return nil
}

// Read copies the next len(p) bytes without consuming them.
// Returns ErrWouldBlock if fewer than len(p) bytes are queued.
func (r *Ring) Read(p []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.used() < len(p) {
		return ErrWouldBlock
	}
	r.copyOut(p, r.read)
	return nil
}

// ReadAndDelete copies the next len(p) bytes and consumes them.
//
// When the ring becomes empty both cursors return to 0 unless the ring was
// built with KeepOffsets.
func (r *Ring) ReadAndDelete(p []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.used() < len(p) {
		return ErrWouldBlock
	}
	r.copyOut(p, r.read)
	r.consume(len(p))
	r.rewindIfEmpty()
	return nil
}

// Delete consumes the next n bytes without copying them.
func (r *Ring) Delete(n int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n < 0 || r.used() < n {
		return ErrWouldBlock
	}
	r.consume(n)
	return nil
}

// rewindIfEmpty parks both cursors at 0 on an empty ring.
func (c *core) rewindIfEmpty() {
	if !c.keepOffsets && c.read == c.write {
		c.read, c.write = 0, 0
	}
}
