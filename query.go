// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package msgq

import "io"

// shiftChunk bounds the scratch buffer used by the middle-deletion shift.
const shiftChunk = 16

// Ordinal queries.
//
// Messages are addressed by position among the queued messages: ordinal 1
// is the oldest. Every query walks the length bytes from the read cursor to
// the write cursor inside one atomic section, so it costs O(Count()).

// each visits queued messages in order with their ordinal, the offset of
// their length byte and their payload size. The walk stops early when fn
// returns false. Caller holds mu.
func (c *core) each(fn func(k, pos, size int) bool) {
	pos := c.read
	for k := 1; pos != c.write; k++ {
		size := int(c.buf[pos])
		if !fn(k, pos, size) {
			return
		}
		pos = c.advance(pos, headerSize+size)
	}
}

// positionOf returns the offset of the k-th message's length byte.
func (c *core) positionOf(k int) (int, bool) {
	if k < 1 {
		return 0, false
	}
	at, found := 0, false
	c.each(func(i, pos, _ int) bool {
		if i == k {
			at, found = pos, true
			return false
		}
		return true
	})
	return at, found
}

// Count returns the number of queued messages.
func (q *Queue) Count() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := 0
	q.each(func(k, _, _ int) bool {
		n = k
		return true
	})
	return n
}

// CountUntilSize returns how many leading messages fit entirely within
// budget bytes, counting each message as its length byte plus payload.
//
// The result is what fits in one outbound transmission unit of budget
// bytes. It never exceeds Count() and does not decrease as budget grows.
func (q *Queue) CountUntilSize(budget int) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	n, total, stop := 0, 0, false
	// The walk runs to the write cursor even after counting stops.
	q.each(func(_, _, size int) bool {
		total += headerSize + size
		if total > budget {
			stop = true
		}
		if !stop {
			n++
		}
		return true
	})
	return n
}

// PeekFrames copies the longest run of leading messages that fits in dst,
// each as its length byte followed by its payload, without consuming them.
// It returns the number of messages copied and the bytes written.
//
// The messages copied are exactly the first CountUntilSize(len(dst)), read
// in one atomic section.
func (q *Queue) PeekFrames(dst []byte) (count, n int) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.each(func(k, pos, size int) bool {
		frame := headerSize + size
		if n+frame > len(dst) {
			return false
		}
		q.copyOut(dst[n:n+frame], pos)
		count, n = k, n+frame
		return true
	})
	return count, n
}

// PayloadSizeOfFirst returns the summed payload size of the first n
// messages. Fewer are summed if fewer are queued.
func (q *Queue) PayloadSizeOfFirst(n int) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	sum := 0
	q.each(func(k, _, size int) bool {
		if k > n {
			return false
		}
		sum += size
		return true
	})
	return sum
}

// SizeByOrdinal returns the payload size of the k-th message, or 0 if
// there is no k-th message.
func (q *Queue) SizeByOrdinal(k int) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	pos, ok := q.positionOf(k)
	if !ok {
		return 0
	}
	return int(q.buf[pos])
}

// ReadByOrdinal copies the payload of the k-th message into buf without
// consuming it and returns the payload size.
//
// Returns ErrOrdinal if there is no k-th message, ErrSizeMismatch if size
// differs from its stored length, and io.ErrShortBuffer if buf is too
// small.
func (q *Queue) ReadByOrdinal(k int, buf []byte, size int) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	pos, ok := q.positionOf(k)
	if !ok {
		return 0, ErrOrdinal
	}
	if int(q.buf[pos]) != size {
		return 0, ErrSizeMismatch
	}
	if len(buf) < size {
		return 0, io.ErrShortBuffer
	}
	q.copyOut(buf[:size], q.advance(pos, headerSize))
	return size, nil
}

// DeleteByOrdinal removes the k-th message. size must equal its stored
// length. The relative order of the remaining messages is preserved.
//
// Removing the oldest message trims the head and removing the newest
// un-commits it; neither moves data. Removing any other message shifts
// every later byte back over the gap. The shift runs inside one atomic
// section and its duration is bounded by Cap(): that is the longest time
// the atomic section is held by any operation.
func (q *Queue) DeleteByOrdinal(k, size int) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	pos, ok := q.positionOf(k)
	if !ok {
		return ErrOrdinal
	}
	if int(q.buf[pos]) != size {
		return ErrSizeMismatch
	}
	frame := headerSize + size
	switch {
	case k == 1:
		q.consume(frame)
	case q.advance(pos, frame) == q.write:
		q.write = pos
	default:
		q.closeGap(pos, frame)
	}
	return nil
}

// closeGap moves every byte between pos+gap and the write cursor back to
// pos, then pulls the write cursor back by gap. Source and destination
// wrap independently.
func (c *core) closeGap(pos, gap int) {
	var chunk [shiftChunk]byte
	src := c.advance(pos, gap)
	dst := pos
	for remaining := c.distance(src, c.write); remaining > 0; {
		n := min(remaining, shiftChunk)
		c.copyOut(chunk[:n], src)
		c.copyIn(dst, chunk[:n])
		src = c.advance(src, n)
		dst = c.advance(dst, n)
		remaining -= n
	}
	c.write = dst
}
