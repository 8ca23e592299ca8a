package services

import (
	"math/rand"
	"time"
)

// ResolveSeed returns seed unchanged unless it is zero, in which case a
// time-based seed is drawn. The resolved value is reported back to callers
// so that any run can be replayed.
func ResolveSeed(seed int64) int64 {
	if seed == 0 {
		return time.Now().UnixNano()
	}
	return seed
}

// NewRand returns a dedicated random stream. A *rand.Rand is not safe for
// concurrent use; every run owns its own.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(ResolveSeed(seed)))
}
