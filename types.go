// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package msgq

// MessageQueue is the combined producer, consumer and query interface of a
// message queue.
//
// Queue is the in-memory implementation. A store that keeps the same
// framing on another medium (for example external flash behind a storage
// driver) implements MessageQueue too, and callers remain unaware of which
// backing store is active.
//
// Example:
//
//	var q msgq.MessageQueue = msgq.NewQueue(256)
//
//	// Producer
//	if err := q.Enqueue([]byte("hr=72")); msgq.IsWouldBlock(err) {
//	    // Queue full - retry on the next sample
//	}
//
//	// Consumer
//	if !q.IsEmpty() {
//	    n := q.PeekSize()
//	    buf := make([]byte, n)
//	    q.ReadAndDelete(buf, n)
//	}
type MessageQueue interface {
	Producer
	Consumer
	Querier
	Cap() int
	Free() int
	Used() int
	IsFull() bool
	IsEmpty() bool
}

// Producer is the interface for writing messages.
//
// Writes are two-phase: Reserve claims space, Commit fills it. Exactly one
// reservation can be outstanding; Discard abandons it.
type Producer interface {
	// Reserve claims space for a size-byte payload.
	// Returns ErrWouldBlock if there is not enough free space,
	// ErrReserved if a reservation is already outstanding.
	Reserve(size int) error

	// Commit writes payload and releases the reservation, even on failure.
	// Returns ErrNotReserved without an active reservation.
	Commit(payload []byte) error

	// Discard releases the reservation without writing.
	Discard() error

	// Enqueue reserves and commits payload in one call.
	Enqueue(payload []byte) error
}

// Consumer is the interface for reading messages from the head.
//
// Every read and delete takes the size the caller expects the head message
// to have, obtained from PeekSize. A mismatch returns ErrSizeMismatch.
type Consumer interface {
	// PeekSize returns the payload size of the oldest message, 0 if empty.
	PeekSize() int

	// Read copies the oldest payload into buf without consuming it.
	Read(buf []byte, size int) (int, error)

	// ReadAndDelete copies the oldest payload into buf and removes it.
	ReadAndDelete(buf []byte, size int) (int, error)

	// Delete removes the oldest message.
	Delete(size int) error
}

// Querier addresses queued messages by ordinal position (1 = oldest).
type Querier interface {
	Count() int
	CountUntilSize(budget int) int
	PeekFrames(dst []byte) (count, n int)
	PayloadSizeOfFirst(n int) int
	SizeByOrdinal(k int) int
	ReadByOrdinal(k int, buf []byte, size int) (int, error)
	DeleteByOrdinal(k, size int) error
}

var (
	_ MessageQueue = (*Queue)(nil)
)
