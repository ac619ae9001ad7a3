package network

import (
	"sync"
	"time"
)

const pollLogSize = 64

// PollRecord stores the timing of one match state poll.
type PollRecord struct {
	Seq      uint32
	Sent     time.Time
	Received time.Time
	Failed   bool
}

// Done reports whether a response (or failure) has been recorded.
func (r PollRecord) Done() bool {
	return !r.Received.IsZero()
}

// RTT is the round trip of a finished poll.
func (r PollRecord) RTT() time.Duration {
	if !r.Done() {
		return 0
	}
	return r.Received.Sub(r.Sent)
}

// PollLog is a ring buffer of recent polls used to show round trip times and
// how many requests overlap. Begin runs on the poll timer goroutine and End on
// the main loop, so access is guarded by mu.
type PollLog struct {
	mu      sync.Mutex
	history [pollLogSize]PollRecord
	nextSeq uint32
}

func NewPollLog() *PollLog {
	return &PollLog{nextSeq: 1}
}

// Begin records a poll being sent and returns its sequence number.
func (pl *PollLog) Begin(now time.Time) uint32 {
	pl.mu.Lock()
	defer pl.mu.Unlock()
	if pl.nextSeq == 0 {
		pl.nextSeq = 1
	}
	seq := pl.nextSeq
	pl.history[seq%pollLogSize] = PollRecord{Seq: seq, Sent: now}
	pl.nextSeq++
	return seq
}

// End records the arrival of a poll's result. Unknown or overwritten sequence
// numbers are ignored.
func (pl *PollLog) End(seq uint32, now time.Time, failed bool) {
	if seq == 0 {
		return
	}
	pl.mu.Lock()
	defer pl.mu.Unlock()
	idx := seq % pollLogSize
	if pl.history[idx].Seq != seq {
		return
	}
	pl.history[idx].Received = now
	pl.history[idx].Failed = failed
}

// Get retrieves a stored record by sequence number. Returns false if not found
// or if the slot has been overwritten.
func (pl *PollLog) Get(seq uint32) (PollRecord, bool) {
	pl.mu.Lock()
	defer pl.mu.Unlock()
	record := pl.history[seq%pollLogSize]
	if seq == 0 || record.Seq != seq {
		return PollRecord{}, false
	}
	return record, true
}

// InFlight counts retained polls that have not returned yet.
func (pl *PollLog) InFlight() int {
	pl.mu.Lock()
	defer pl.mu.Unlock()
	n := 0
	for _, r := range pl.history {
		if r.Seq != 0 && !r.Done() {
			n++
		}
	}
	return n
}

// AverageRTT averages the round trip of retained successful polls.
func (pl *PollLog) AverageRTT() time.Duration {
	pl.mu.Lock()
	defer pl.mu.Unlock()
	var total time.Duration
	n := 0
	for _, r := range pl.history {
		if r.Seq == 0 || !r.Done() || r.Failed {
			continue
		}
		total += r.RTT()
		n++
	}
	if n == 0 {
		return 0
	}
	return total / time.Duration(n)
}

// Reset forgets all history.
func (pl *PollLog) Reset() {
	pl.mu.Lock()
	defer pl.mu.Unlock()
	pl.history = [pollLogSize]PollRecord{}
	pl.nextSeq = 1
}
