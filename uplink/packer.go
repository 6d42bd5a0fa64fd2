// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package uplink

import (
	"cmp"
	"errors"
	"io"
	"slices"

	"code.hybscloud.com/msgq"
)

var (
	// ErrOversized is returned by Pack when the oldest message does not fit
	// in one transmission unit. The message stays queued; the caller
	// decides whether to DropHead it.
	ErrOversized = errors.New("uplink: message larger than transmission unit")

	// ErrTruncated is returned by Unpack when a unit ends inside a frame.
	ErrTruncated = errors.New("uplink: truncated frame")
)

// Transmitter sends one packed transmission unit over the link.
//
// Transmit returns nil once the unit has been handed to the link, or
// msgq.ErrWouldBlock if the link cannot take it now. Any other error is a
// link failure.
type Transmitter interface {
	Transmit(unit []byte) error
}

// TransmitFunc adapts a function to Transmitter.
type TransmitFunc func(unit []byte) error

// Transmit implements Transmitter.
func (f TransmitFunc) Transmit(unit []byte) error {
	return f(unit)
}

// Unit is a packed transmission unit.
type Unit struct {
	Count int    // Messages packed, ordinals 1..Count at Pack time
	Bytes []byte // Consecutive [length][payload] frames
}

// Size returns the payload size of the k-th message in u, or -1 if u holds
// fewer than k messages. Post it with the ordinal when acknowledging a
// single message.
func (u Unit) Size(k int) int {
	b := u.Bytes
	for i := 1; len(b) > 0; i++ {
		size := int(b[0])
		if i == k {
			return size
		}
		if 1+size > len(b) {
			break
		}
		b = b[1+size:]
	}
	return -1
}

// Packer packs queued messages into fixed-size transmission units and
// removes them once they are confirmed.
//
// Packing never removes anything: messages stay queued until Confirm,
// ConfirmOrdinal or ApplyAcks deletes them, so a unit lost on the link is
// simply packed again.
//
// Packer is the single consumer of its queue.
type Packer struct {
	q    msgq.MessageQueue
	mtu  int
	acks []Ack
}

// NewPacker creates a Packer for units of at most mtu bytes.
// Panics if mtu < 1.
func NewPacker(q msgq.MessageQueue, mtu int) *Packer {
	if mtu < 1 {
		panic("uplink: mtu must be >= 1")
	}
	return &Packer{q: q, mtu: mtu}
}

// MTU returns the transmission unit size.
func (p *Packer) MTU() int {
	return p.mtu
}

// Pack copies the longest run of leading messages that fits in one unit
// into dst. len(dst) must be at least MTU().
//
// Returns msgq.ErrWouldBlock when the queue is empty and ErrOversized when
// the oldest message alone exceeds the unit.
func (p *Packer) Pack(dst []byte) (Unit, error) {
	if len(dst) < p.mtu {
		return Unit{}, io.ErrShortBuffer
	}
	count, n := p.q.PeekFrames(dst[:p.mtu])
	if count == 0 {
		if p.q.IsEmpty() {
			return Unit{}, msgq.ErrWouldBlock
		}
		return Unit{}, ErrOversized
	}
	return Unit{Count: count, Bytes: dst[:n]}, nil
}

// Confirm removes the messages of u from the head of the queue.
//
// Each removal is guarded by the frame size recorded in u, so confirming a
// unit whose messages were already removed fails with msgq.ErrSizeMismatch
// or msgq.ErrWouldBlock instead of deleting other messages.
func (p *Packer) Confirm(u Unit) error {
	return Unpack(u.Bytes, func(payload []byte) error {
		return p.q.Delete(len(payload))
	})
}

// ConfirmOrdinal removes the k-th queued message, leaving the order of the
// others intact. size is the payload size the caller packed (see Unit.Size).
//
// Returns msgq.ErrOrdinal if there is no k-th message and
// msgq.ErrSizeMismatch if the k-th message is not the one the caller
// expects; nothing is removed in either case.
func (p *Packer) ConfirmOrdinal(k, size int) error {
	return p.q.DeleteByOrdinal(k, size)
}

// DropHead removes the oldest message unsent.
func (p *Packer) DropHead() error {
	if p.q.IsEmpty() {
		return msgq.ErrWouldBlock
	}
	return p.q.Delete(p.q.PeekSize())
}

// ApplyAcks drains a and removes every acknowledged message.
//
// Ordinals posted to a refer to the queue as it was when their unit was
// packed. They are applied highest first, so removing one never shifts
// another pending ordinal; an ordinal posted twice is applied once.
//
// Every ack is tried. One that no longer matches the queue (a stale
// ordinal or a size mismatch) is skipped without removing anything and
// does not stop the others. Returns the number of messages removed and the
// first error met.
func (p *Packer) ApplyAcks(a *Acks) (int, error) {
	p.acks = p.acks[:0]
	for {
		ack, err := a.Take()
		if err != nil {
			break
		}
		p.acks = append(p.acks, ack)
	}
	slices.SortStableFunc(p.acks, func(x, y Ack) int {
		return cmp.Compare(x.Ordinal, y.Ordinal)
	})
	p.acks = slices.CompactFunc(p.acks, func(x, y Ack) bool {
		return x.Ordinal == y.Ordinal
	})

	removed := 0
	var first error
	for i := len(p.acks) - 1; i >= 0; i-- {
		if err := p.ConfirmOrdinal(p.acks[i].Ordinal, p.acks[i].Size); err != nil {
			if first == nil {
				first = err
			}
			continue
		}
		removed++
	}
	return removed, first
}

// Flush packs and transmits units until the queue is empty or the link
// pushes back. Each unit is confirmed as soon as Transmit accepts it.
//
// Returns the number of messages sent. A nil error means the queue was
// drained; msgq.ErrWouldBlock means the link is busy and the rest stays
// queued.
func (p *Packer) Flush(tx Transmitter, dst []byte) (int, error) {
	sent := 0
	for {
		u, err := p.Pack(dst)
		if msgq.IsWouldBlock(err) {
			return sent, nil
		}
		if err != nil {
			return sent, err
		}
		if err := tx.Transmit(u.Bytes); err != nil {
			return sent, err
		}
		if err := p.Confirm(u); err != nil {
			return sent, err
		}
		sent += u.Count
	}
}

// Unpack calls fn with each payload of a packed unit, in order.
// Stops at the first error fn returns.
func Unpack(unit []byte, fn func(payload []byte) error) error {
	for len(unit) > 0 {
		size := int(unit[0])
		if 1+size > len(unit) {
			return ErrTruncated
		}
		if err := fn(unit[1 : 1+size]); err != nil {
			return err
		}
		unit = unit[1+size:]
	}
	return nil
}
