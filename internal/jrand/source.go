package jrand

import (
	"math"
	"math/rand"
)

// Assert that Random implements rand.Source64.
var _ rand.Source64 = (*Random)(nil)

// Seed implements rand.Source. It is equivalent to SetSeed.
func (r *Random) Seed(seed int64) {
	r.SetSeed(seed)
}

// Int63 implements rand.Source with the low 63 bits of Int64.
func (r *Random) Int63() int64 {
	return r.Int64() & math.MaxInt64
}

// Uint64 implements rand.Source64.
func (r *Random) Uint64() uint64 {
	return uint64(r.Int64())
}
