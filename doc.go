// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package msgq provides a framed ring-buffer message queue over a fixed
// byte region.
//
// It decouples producers (sampling, protocol encoders, power-state logic)
// from a consumer (an uplink transmitter). Two types are offered:
//
//   - Ring: byte-stream ring buffer with reserve/commit writes
//   - Queue: Ring plus a one-byte length prefix per message, and ordinal
//     (1st, 2nd, ...) read and delete
//
// # Quick Start
//
//	q := msgq.NewQueue(512)
//
//	// Producer
//	if err := q.Enqueue(sample); msgq.IsWouldBlock(err) {
//	    // Queue full - drop or retry later
//	}
//
//	// Consumer
//	for !q.IsEmpty() {
//	    n := q.PeekSize()
//	    q.ReadAndDelete(buf, n)
//	    send(buf[:n])
//	}
//
// # Two-Phase Writes
//
// A producer that encodes in place first reserves, then commits:
//
//	if err := q.Reserve(len(frame)); err != nil {
//	    return err // ErrWouldBlock: full, ErrReserved: already reserved
//	}
//	// ... build frame ...
//	if err := q.Commit(frame); err != nil {
//	    return err
//	}
//
// A successful Reserve guarantees that the following Commit cannot fail for
// lack of space. Exactly one reservation can be outstanding; a second
// Reserve fails immediately with ErrReserved instead of waiting. Commit
// releases the reservation even when it fails, and Discard releases it
// without writing.
//
// # Framing
//
// Every message is stored as
//
//	Message := length:uint8, payload:uint8[length]
//
// with length at most [MaxPayload]. A message may straddle the end of the
// region and continue at offset 0. The queue never interprets payloads.
//
// Reads and deletes take the size the caller expects, usually from
// PeekSize. A size that does not match the stored length byte fails with
// ErrSizeMismatch; a desynchronized caller fails loudly rather than
// misreading the framing.
//
// # Ordinal Access
//
// Queued messages can be addressed by position, 1 being the oldest:
//
//	n := q.Count()
//	fit := q.CountUntilSize(20)        // leading messages fitting in 20 bytes
//	sz := q.SizeByOrdinal(2)
//	q.ReadByOrdinal(2, buf, sz)
//	q.DeleteByOrdinal(2, sz)          // order of the others is preserved
//
// Each query walks the length bytes and costs O(Count()). Deleting the
// oldest or the newest message moves no data; deleting any other message
// shifts the bytes after it back over the gap.
//
// # Capacity
//
// Capacity is the size of the backing region and is used as given (no
// power-of-2 rounding). One byte is reserved to tell full from empty, so
//
//	q.Used() + q.Free() == q.Cap() - 1
//
// holds at all times. Minimum capacity is 2. Panic if capacity < 2.
//
// # Atomic Section
//
// Every operation runs inside one atomic section, a [sync.Locker], so a
// producer or consumer running in an interrupt-like context never observes
// a half-updated cursor pair. The default is [SpinLock], which never parks
// the caller. Supply another mechanism with the builder:
//
//	q := msgq.New(512).Locker(&sync.Mutex{}).Build()
//
// No operation waits for space or data: each returns at once, and callers
// poll. The longest section is the middle-deletion shift in
// DeleteByOrdinal, bounded by the capacity.
//
// # Error Handling
//
// Operations return [ErrWouldBlock] when they cannot proceed for lack of
// space or data. This error is sourced from [code.hybscloud.com/iox] for
// ecosystem consistency and is a control flow signal, not a failure:
//
//	backoff := iox.Backoff{}
//	for {
//	    err := q.Enqueue(sample)
//	    if !msgq.IsWouldBlock(err) {
//	        return err
//	    }
//	    backoff.Wait()
//	}
//
// ErrReserved, ErrNotReserved, ErrSizeMismatch, ErrTooLarge and ErrOrdinal
// report caller errors. None of them leaves the queue changed or unusable.
//
// # Thread Safety
//
// One producer and one consumer are supported. Multiple producers or
// multiple consumers must be serialized by the caller.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/iox] for semantic errors,
// [code.hybscloud.com/atomix] for atomic primitives with explicit
// memory ordering, and [code.hybscloud.com/spin] for CPU pause instructions.
package msgq
