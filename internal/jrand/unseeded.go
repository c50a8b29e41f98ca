package jrand

import (
	"sync/atomic"
	"time"
)

const uniquifierMultiplier = 1181783497276652981

var seedUniquifier atomic.Int64

func init() {
	seedUniquifier.Store(8682522807148012)
}

// NewUnseeded returns a generator seeded the way new java.util.Random() is: a
// process-wide uniquifier, advanced on every call, mixed with the current time.
// Two generators created in the same nanosecond still get different seeds.
func NewUnseeded() *Random {
	return New(nextUniquifier() ^ time.Now().UnixNano())
}

func nextUniquifier() int64 {
	for {
		current := seedUniquifier.Load()
		next := current * uniquifierMultiplier
		if seedUniquifier.CompareAndSwap(current, next) {
			return next
		}
	}
}
