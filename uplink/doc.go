// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package uplink drains a message queue toward a link.
//
// A [Packer] fills fixed-size transmission units with as many leading
// messages as fit, read with [msgq.Queue.PeekFrames], and deletes them only
// once they are confirmed: in order with Confirm, or out of order with
// ConfirmOrdinal when the link acknowledges individual messages. An
// out-of-order confirmation names the ordinal and payload size the message
// had when it was packed, so a stale one fails instead of removing another
// message.
//
//	q := msgq.NewQueue(1024)
//	p := uplink.NewPacker(q, 20)
//	unit := make([]byte, p.MTU())
//
//	sent, err := p.Flush(radio, unit)
//	if msgq.IsWouldBlock(err) {
//	    // Link busy - unsent messages stay queued
//	}
//
// Acknowledgements that arrive in interrupt context go through an [Acks]
// ring and are applied from the consumer loop with ApplyAcks.
//
// On the receiving side, [Unpack] splits a unit back into payloads.
package uplink
