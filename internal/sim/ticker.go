package sim

import "time"

// Ticker decides when a fixed-interval tick is due from frame timestamps.
// The first call to Due only arms it.
type Ticker struct {
	interval time.Duration
	last     time.Time
	armed    bool
}

func NewTicker(interval time.Duration) Ticker {
	return Ticker{interval: interval}
}

func (t *Ticker) Due(now time.Time) bool {
	if !t.armed {
		t.last = now
		t.armed = true
		return false
	}
	if now.Sub(t.last) > t.interval {
		t.last = now
		return true
	}
	return false
}

func (t *Ticker) Interval() time.Duration { return t.interval }
func (t *Ticker) Last() time.Time         { return t.last }

func (t *Ticker) Reset() {
	t.last = time.Time{}
	t.armed = false
}
