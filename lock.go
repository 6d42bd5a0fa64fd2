// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package msgq

import (
	"sync"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// SpinLock is the default atomic section of a queue.
//
// It is a test-and-test-and-set lock that never parks the caller: a
// contended Lock spins with CPU pause hints until the holder releases.
// Critical sections in this package are short and bounded (the longest is
// the middle-deletion shift, bounded by the queue capacity), which is the
// same contract an interrupt-mask section has on bare metal.
//
// The zero value is an unlocked SpinLock. A SpinLock must not be copied
// after first use.
type SpinLock struct {
	_     noCopy
	state atomix.Uint64 // 0 = free, 1 = held
}

var _ sync.Locker = (*SpinLock)(nil)

// Lock acquires the lock, spinning until it is available.
func (l *SpinLock) Lock() {
	sw := spin.Wait{}
	for !l.TryLock() {
		sw.Once()
	}
}

// TryLock acquires the lock if it is free and reports whether it did.
func (l *SpinLock) TryLock() bool {
	return l.state.LoadRelaxed() == 0 && l.state.CompareAndSwapAcqRel(0, 1)
}

// Unlock releases the lock.
// Panics if the lock is not held.
func (l *SpinLock) Unlock() {
	if l.state.LoadRelaxed() == 0 {
		panic("msgq: unlock of unlocked SpinLock")
	}
	l.state.StoreRelease(0)
}

// noCopy triggers go vet's copylocks check.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
