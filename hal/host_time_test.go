package hal

import (
	"testing"
	"time"
)

func TestHostTimeStep(t *testing.T) {
	clock := time.Unix(100, 0)
	ht := newHostTime()
	ht.now = func() time.Time { return clock }

	ht.step(1)
	clock = clock.Add(2500 * time.Microsecond)
	ht.step(1)
	clock = clock.Add(600 * time.Microsecond)
	ht.step(1)

	var got []uint64
	for len(ht.ch) > 0 {
		got = append(got, <-ht.ch)
	}
	// 1 initial tick, then 2.5ms and 3.1ms of accumulated time.
	if len(got) != 4 || got[0] != 1 || got[3] != 4 {
		t.Fatalf("ticks = %v, want [1 2 3 4]", got)
	}
}
