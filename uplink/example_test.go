// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package uplink_test

import (
	"fmt"

	"code.hybscloud.com/msgq"
	"code.hybscloud.com/msgq/uplink"
)

// ExamplePacker_Flush demonstrates draining a queue into 10-byte units.
func ExamplePacker_Flush() {
	q := msgq.NewQueue(128)
	for _, s := range []string{"hr=72", "spo2=98", "t=36.6"} {
		q.Enqueue([]byte(s))
	}

	radio := uplink.TransmitFunc(func(unit []byte) error {
		fmt.Printf("unit of %d bytes:", len(unit))
		uplink.Unpack(unit, func(p []byte) error {
			fmt.Printf(" %s", p)
			return nil
		})
		fmt.Println()
		return nil
	})

	p := uplink.NewPacker(q, 10)
	sent, _ := p.Flush(radio, make([]byte, p.MTU()))
	fmt.Println("sent", sent)

	// Output:
	// unit of 6 bytes: hr=72
	// unit of 8 bytes: spo2=98
	// unit of 7 bytes: t=36.6
	// sent 3
}

// ExampleAcks demonstrates out-of-order confirmation from a completion
// callback.
func ExampleAcks() {
	q := msgq.NewQueue(64)
	for _, s := range []string{"m1", "m2", "m3", "m4"} {
		q.Enqueue([]byte(s))
	}
	p := uplink.NewPacker(q, 32)
	acks := uplink.NewAcks(16)

	// Completion callback: the link delivered messages 3 and 1
	acks.Post(3, 2)
	acks.Post(1, 2)

	// Consumer loop
	n, _ := p.ApplyAcks(acks)
	fmt.Println("removed", n)

	u, _ := p.Pack(make([]byte, 32))
	uplink.Unpack(u.Bytes, func(b []byte) error {
		fmt.Println(string(b))
		return nil
	})

	// Output:
	// removed 2
	// m2
	// m4
}
