// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package msgq

import (
	"errors"

	"code.hybscloud.com/iox"
)

// ErrWouldBlock indicates the operation cannot proceed immediately.
//
// For Reserve and Commit: not enough free space (backpressure)
// For Read and Delete: not enough queued data (nothing available)
//
// ErrWouldBlock is a control flow signal, not a failure. The caller should
// retry the operation later (with backoff or on the next loop pass) rather
// than propagating the error.
//
// This is an alias for [iox.ErrWouldBlock] for ecosystem consistency.
//
// Example:
//
//	backoff := iox.Backoff{}
//	for {
//	    err := q.Reserve(len(payload))
//	    if err == nil {
//	        backoff.Reset()
//	        break
//	    }
//	    if msgq.IsWouldBlock(err) {
//	        backoff.Wait()
//	        continue
//	    }
//	    return err
//	}
var ErrWouldBlock = iox.ErrWouldBlock

var (
	// ErrReserved is returned by Reserve while another reservation is
	// outstanding. Reservations are not queued.
	ErrReserved = errors.New("msgq: reservation already outstanding")

	// ErrNotReserved is returned by Commit and Discard without an active
	// reservation.
	ErrNotReserved = errors.New("msgq: no active reservation")

	// ErrSizeMismatch is returned when the size supplied by the caller does
	// not match the stored length byte of the addressed message.
	ErrSizeMismatch = errors.New("msgq: message size mismatch")

	// ErrTooLarge is returned when a payload exceeds MaxPayload.
	ErrTooLarge = errors.New("msgq: payload exceeds MaxPayload")

	// ErrOrdinal is returned when an ordinal does not address a queued
	// message (k < 1 or k > Count()).
	ErrOrdinal = errors.New("msgq: ordinal out of range")
)

// IsWouldBlock reports whether err indicates the operation would block.
// Delegates to [iox.IsWouldBlock] for wrapped error support.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsSemantic reports whether err is a control flow signal (not a failure).
// Delegates to [iox.IsSemantic].
func IsSemantic(err error) bool {
	return iox.IsSemantic(err)
}

// IsNonFailure reports whether err represents a non-failure condition.
// Returns true for nil, ErrWouldBlock, or ErrMore.
// Delegates to [iox.IsNonFailure].
func IsNonFailure(err error) bool {
	return iox.IsNonFailure(err)
}
