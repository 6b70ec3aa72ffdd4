package domain

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// IDGen produces unique identifiers for new entities. Injected so tests can
// supply deterministic ids.
type IDGen interface {
	Next() string
}

// UUIDGen is the default IDGen, backed by random UUIDs.
type UUIDGen struct{}

func (UUIDGen) Next() string { return uuid.NewString() }

var lastStamp int64

// MonotonicNow returns the current time, nudged forward when the wall clock
// has not advanced since the previous call, so consecutive log entries sort
// in creation order.
func MonotonicNow() time.Time {
	for {
		now := time.Now().UnixNano()
		last := atomic.LoadInt64(&lastStamp)
		if now <= last {
			now = last + 1
		}
		if atomic.CompareAndSwapInt64(&lastStamp, last, now) {
			return time.Unix(0, now).UTC()
		}
	}
}
