// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package uplink

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/msgq"
)

// Acks carries delivery confirmations from the transmitter to the
// consumer loop.
//
// The transmitter's completion callback (often an interrupt handler or a
// radio driver goroutine) posts the ordinal and payload size of each
// delivered message; the consumer loop hands the ring to Packer.ApplyAcks,
// which removes the messages from the queue. The callback never touches the
// queue itself.
//
// Acks is a Lamport ring buffer with cached indices: the poster caches the
// taker's index and vice versa, so neither side locks. One poster and one
// taker are supported.
type Acks struct {
	_          pad
	head       atomix.Uint64 // Taker reads from here
	_          pad
	cachedTail uint64 // Taker's cached view of tail
	_          pad
	tail       atomix.Uint64 // Poster writes here
	_          pad
	cachedHead uint64 // Poster's cached view of head
	_          pad
	buffer     []Ack
	mask       uint64
}

// Ack identifies one delivered message by its ordinal at Pack time and its
// payload size. The size guards the deletion: an ordinal that went stale
// fails with msgq.ErrSizeMismatch instead of removing another message.
type Ack struct {
	Ordinal int
	Size    int
}

// NewAcks creates an ack ring.
// Capacity rounds up to the next power of 2. Panics if capacity < 2.
func NewAcks(capacity int) *Acks {
	if capacity < 2 {
		panic("uplink: capacity must be >= 2")
	}

	n := uint64(roundToPow2(capacity))
	return &Acks{
		buffer: make([]Ack, n),
		mask:   n - 1,
	}
}

// Post records that the message at ordinal k with a size-byte payload was
// delivered (poster only).
// Returns msgq.ErrWouldBlock if the ring is full, msgq.ErrOrdinal if k is
// not a valid ordinal and msgq.ErrTooLarge if size is not a valid payload
// size.
func (a *Acks) Post(k, size int) error {
	if k < 1 {
		return msgq.ErrOrdinal
	}
	if size < 0 || size > msgq.MaxPayload {
		return msgq.ErrTooLarge
	}
	tail := a.tail.LoadRelaxed()
	if tail-a.cachedHead > a.mask {
		a.cachedHead = a.head.LoadAcquire()
		if tail-a.cachedHead > a.mask {
			return msgq.ErrWouldBlock
		}
	}

	a.buffer[tail&a.mask] = Ack{Ordinal: k, Size: size}
	a.tail.StoreRelease(tail + 1)
	return nil
}

// Take removes and returns the oldest posted ack (taker only).
// Returns msgq.ErrWouldBlock if nothing is posted.
func (a *Acks) Take() (Ack, error) {
	head := a.head.LoadRelaxed()
	if head >= a.cachedTail {
		a.cachedTail = a.tail.LoadAcquire()
		if head >= a.cachedTail {
			return Ack{}, msgq.ErrWouldBlock
		}
	}

	ack := a.buffer[head&a.mask]
	a.head.StoreRelease(head + 1)
	return ack, nil
}

// Cap returns the ring capacity.
func (a *Acks) Cap() int {
	return int(a.mask + 1)
}

// roundToPow2 rounds n up to the next power of 2.
func roundToPow2(n int) int {
	if n < 2 {
		return 2
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return n + 1
}

// pad is cache line padding to prevent false sharing.
type pad [64]byte
