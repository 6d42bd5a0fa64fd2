// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package msgq

import "io"

// MaxPayload is the largest payload a single message can carry.
const MaxPayload = 254

// headerSize is the length prefix stored in front of every payload.
const headerSize = 1

// Queue is a ring buffer of discrete variable-length messages.
//
// Every message is stored as a one-byte length followed by its payload:
//
//	[length:1][payload:length]
//
// A message may straddle the end of the backing region and continue at
// offset 0. Producers write with Reserve + Commit (or Enqueue); consumers
// inspect the head with PeekSize, then Read, ReadAndDelete or Delete it.
// Any queued message can also be read or removed by its ordinal position
// (1 = oldest) without disturbing the order of the others.
//
// Read and delete calls take the size the caller expects. A size that does
// not match the stored length byte fails with ErrSizeMismatch, so a caller
// that lost track of the framing fails loudly instead of misreading bytes.
//
// One producer and one consumer are supported; either may run in an
// interrupt-like context.
type Queue struct {
	core
}

// NewQueue creates a Queue with a capacity-byte backing region.
// Panics if capacity < 2.
func NewQueue(capacity int) *Queue {
	return New(capacity).Build()
}

func newQueue(opts Options) *Queue {
	q := &Queue{}
	q.init(opts)
	return q
}

// Reserve claims space for one message with a size-byte payload.
//
// Reserve succeeds only if no reservation is outstanding and size+1 bytes
// are free; a successful Reserve guarantees that a following Commit of at
// most size bytes cannot fail for lack of space. A size outside
// [0, MaxPayload] returns ErrTooLarge.
func (q *Queue) Reserve(size int) error {
	if size < 0 || size > MaxPayload {
		return ErrTooLarge
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.reserveLocked(headerSize + size)
}

// Commit writes payload as one message and releases the reservation.
//
// The reservation is released whether or not the commit succeeds.
func (q *Queue) Commit(payload []byte) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.reserved {
		return ErrNotReserved
	}
	q.reserved = false
	return q.commitLocked(payload)
}

// Enqueue reserves and commits payload in a single atomic section.
func (q *Queue) Enqueue(payload []byte) error {
	if len(payload) > MaxPayload {
		return ErrTooLarge
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if err := q.reserveLocked(headerSize + len(payload)); err != nil {
		return err
	}
	q.reserved = false
	return q.commitLocked(payload)
}

func (q *Queue) commitLocked(payload []byte) error {
	if len(payload) > MaxPayload {
		return ErrTooLarge
	}
	if q.free() < headerSize+len(payload) {
		return ErrWouldBlock
	}
	q.buf[q.write] = byte(len(payload))
	q.copyIn(q.advance(q.write, headerSize), payload)
	q.write = q.advance(q.write, headerSize+len(payload))
	return nil
}

// PeekSize returns the payload size of the oldest message without
// consuming it. Returns 0 on an empty queue; use IsEmpty to tell an empty
// queue from a zero-length message.
func (q *Queue) PeekSize() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.used() == 0 {
		return 0
	}
	return int(q.buf[q.read])
}

// Read copies the payload of the oldest message into buf without
// consuming it and returns the payload size.
//
// size must equal the stored length (see PeekSize).
// Returns ErrWouldBlock on an empty queue, ErrSizeMismatch on a wrong
// size, and io.ErrShortBuffer if buf cannot hold the payload.
func (q *Queue) Read(buf []byte, size int) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if err := q.readHeadLocked(buf, size); err != nil {
		return 0, err
	}
	return size, nil
}

// ReadAndDelete is Read followed by removal of the message.
//
// When the queue becomes empty both cursors return to 0 unless the queue
// was built with KeepOffsets.
func (q *Queue) ReadAndDelete(buf []byte, size int) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if err := q.readHeadLocked(buf, size); err != nil {
		return 0, err
	}
	q.consume(headerSize + size)
	q.rewindIfEmpty()
	return size, nil
}

// Delete removes the oldest message. size must equal its stored length.
func (q *Queue) Delete(size int) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if err := q.checkHeadLocked(size); err != nil {
		return err
	}
	q.consume(headerSize + size)
	return nil
}

func (q *Queue) checkHeadLocked(size int) error {
	if q.used() == 0 {
		return ErrWouldBlock
	}
	if int(q.buf[q.read]) != size {
		return ErrSizeMismatch
	}
	return nil
}

func (q *Queue) readHeadLocked(buf []byte, size int) error {
	if err := q.checkHeadLocked(size); err != nil {
		return err
	}
	if len(buf) < size {
		return io.ErrShortBuffer
	}
	q.copyOut(buf[:size], q.advance(q.read, headerSize))
	return nil
}
