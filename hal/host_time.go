package hal

import "time"

// hostTickDuration is the length of one kernel tick on the host.
const hostTickDuration = time.Millisecond

// hostTime converts wall-clock time between frames into kernel ticks.
type hostTime struct {
	ch  chan uint64
	seq uint64
	now func() time.Time

	last time.Time
	acc  time.Duration
}

func newHostTime() *hostTime {
	return &hostTime{ch: make(chan uint64, 1024), now: time.Now}
}

func (t *hostTime) Ticks() <-chan uint64 { return t.ch }

// step emits the ticks elapsed since the previous call. The first call emits
// first ticks so the clock starts moving immediately.
func (t *hostTime) step(first uint64) {
	now := t.now()
	if t.last.IsZero() {
		t.last = now
		t.emit(first)
		return
	}
	t.acc += now.Sub(t.last)
	t.last = now
	n := uint64(t.acc / hostTickDuration)
	t.acc %= hostTickDuration
	t.emit(n)
}

// emit sends n ticks; a full channel drops them but the sequence still advances.
func (t *hostTime) emit(n uint64) {
	for ; n > 0; n-- {
		t.seq++
		select {
		case t.ch <- t.seq:
		default:
		}
	}
}
