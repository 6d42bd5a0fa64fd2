// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package msgq_test

import (
	"fmt"
	"sync"

	"code.hybscloud.com/msgq"
)

// ExampleNewQueue demonstrates producing and consuming framed messages.
func ExampleNewQueue() {
	q := msgq.NewQueue(64)

	// Producers enqueue variable-length messages
	q.Enqueue([]byte("hr=72"))
	q.Enqueue([]byte("spo2=98"))
	q.Enqueue([]byte("batt=3.9V"))

	// Consumer drains them in order
	buf := make([]byte, msgq.MaxPayload)
	for !q.IsEmpty() {
		n := q.PeekSize()
		q.ReadAndDelete(buf, n)
		fmt.Println(string(buf[:n]))
	}

	// Output:
	// hr=72
	// spo2=98
	// batt=3.9V
}

// ExampleQueue_Reserve demonstrates the two-phase write.
func ExampleQueue_Reserve() {
	q := msgq.NewQueue(8)

	frame := []byte("abcde")
	if err := q.Reserve(len(frame)); err != nil {
		fmt.Println("reserve:", err)
		return
	}

	// Only one reservation at a time
	fmt.Println(q.Reserve(1) == msgq.ErrReserved)

	q.Commit(frame)
	fmt.Println(q.Count(), q.Free())

	// Output:
	// true
	// 1 1
}

// ExampleQueue_DeleteByOrdinal demonstrates removing a message out of order.
func ExampleQueue_DeleteByOrdinal() {
	q := msgq.NewQueue(32)
	q.Enqueue([]byte("AAA"))
	q.Enqueue([]byte("BB"))
	q.Enqueue([]byte("CCCC"))

	// The second message was confirmed first
	q.DeleteByOrdinal(2, q.SizeByOrdinal(2))

	buf := make([]byte, 8)
	for k := 1; k <= q.Count(); k++ {
		n, _ := q.ReadByOrdinal(k, buf, q.SizeByOrdinal(k))
		fmt.Println(k, string(buf[:n]))
	}

	// Output:
	// 1 AAA
	// 2 CCCC
}

// ExampleQueue_CountUntilSize demonstrates sizing a transmission unit.
func ExampleQueue_CountUntilSize() {
	q := msgq.NewQueue(64)
	q.Enqueue([]byte("AB"))    // 3 bytes framed
	q.Enqueue([]byte("CDE"))   // 4 bytes framed
	q.Enqueue([]byte("FGHIJ")) // 6 bytes framed

	fmt.Println(q.CountUntilSize(8))
	fmt.Println(q.CountUntilSize(13))

	// Output:
	// 2
	// 3
}

// ExampleBuilder demonstrates a caller-allocated region and a mutex-based
// atomic section.
func ExampleBuilder() {
	region := make([]byte, 16)
	q := msgq.New(len(region)).Buffer(region).Locker(&sync.Mutex{}).Build()

	q.Enqueue([]byte("ok"))
	fmt.Println(q.Cap(), q.Used(), region[0])

	// Output:
	// 16 3 2
}

// ExampleRing demonstrates the unframed byte ring.
func ExampleRing() {
	r := msgq.NewRing(8)

	r.Reserve(4)
	r.Commit([]byte("ping"))

	buf := make([]byte, 4)
	r.ReadAndDelete(buf)
	fmt.Println(string(buf), r.IsEmpty())

	// Output:
	// ping true
}
