// Package jrand implements the pseudo-random number generator of java.util.Random.
//
// A Random seeded with the same value as a Java Random yields the same sequence for every
// draw method, bit for bit, including the bounded integer and Gaussian derivations.
package jrand

import (
	"github.com/medxops/jrand-gen/internal/strictmath"
)

const (
	multiplier = 0x5DEECE66D
	addend     = 0xB
	mask       = (1 << 48) - 1

	floatUnit  = 1.0 / (1 << 24)
	doubleUnit = 1.0 / (1 << 53)
)

// Random is a 48-bit linear congruential generator. It is not safe for concurrent use.
type Random struct {
	seed int64

	nextNextGaussian     float64
	haveNextNextGaussian bool
}

// New returns a generator seeded the way new java.util.Random(seed) is.
func New(seed int64) *Random {
	r := &Random{}
	r.SetSeed(seed)
	return r
}

// SetSeed resets the generator state and discards any cached Gaussian.
func (r *Random) SetSeed(seed int64) {
	r.seed = scramble(seed)
	r.haveNextNextGaussian = false
}

func scramble(seed int64) int64 {
	return (seed ^ multiplier) & mask
}

// next advances the state and returns its top bits, 1 <= bits <= 32.
func (r *Random) next(bits uint) int32 {
	r.seed = (r.seed*multiplier + addend) & mask
	return int32(r.seed >> (48 - bits))
}

// Int32 returns a uniformly distributed int32 (nextInt()).
func (r *Random) Int32() int32 {
	return r.next(32)
}

// Int32n returns a value in [0, bound) (nextInt(bound)). It panics if bound <= 0.
func (r *Random) Int32n(bound int32) int32 {
	if bound <= 0 {
		panic("jrand: invalid argument to Int32n")
	}

	if bound&-bound == bound {
		return int32((int64(bound) * int64(r.next(31))) >> 31)
	}

	for {
		bits := r.next(31)
		val := bits % bound
		// int32 overflow marks a draw from the incomplete last block.
		if bits-val+(bound-1) >= 0 {
			return val
		}
	}
}

// Int64 returns a uniformly distributed int64 (nextLong()). Only 2^48 distinct
// values are reachable, as in Java.
func (r *Random) Int64() int64 {
	return int64(r.next(32))<<32 + int64(r.next(32))
}

// Bool returns a uniformly distributed bool (nextBoolean()).
func (r *Random) Bool() bool {
	return r.next(1) != 0
}

// Float32 returns a value in [0.0, 1.0) with 24 bits of precision (nextFloat()).
func (r *Random) Float32() float32 {
	return float32(r.next(24)) * floatUnit
}

// Float64 returns a value in [0.0, 1.0) with 53 bits of precision (nextDouble()).
func (r *Random) Float64() float64 {
	return float64(int64(r.next(26))<<27+int64(r.next(27))) * doubleUnit
}

// NextBytes fills p with random bytes (nextBytes(byte[])). Every call starts on a
// fresh 32-bit word; the bytes of a word are taken low byte first, so two calls with
// small buffers do not produce the same bytes as one call with a larger buffer.
func (r *Random) NextBytes(p []byte) {
	for i := 0; i < len(p); {
		rnd := r.Int32()
		for n := min(len(p)-i, 4); n > 0; n-- {
			p[i] = byte(rnd)
			rnd >>= 8
			i++
		}
	}
}

// Gaussian returns a normally distributed value with mean 0 and standard deviation 1
// (nextGaussian()), using the polar method. Values are produced in pairs; the second
// of each pair is cached until the next call or SetSeed.
func (r *Random) Gaussian() float64 {
	if r.haveNextNextGaussian {
		r.haveNextNextGaussian = false
		return r.nextNextGaussian
	}

	var v1, v2, s float64
	for {
		v1 = float64(2*r.Float64()) - 1
		v2 = float64(2*r.Float64()) - 1
		s = float64(v1*v1) + float64(v2*v2)
		if s < 1 && s != 0 {
			break
		}
	}
	m := strictmath.Sqrt(-2 * strictmath.Log(s) / s)
	r.nextNextGaussian = v2 * m
	r.haveNextNextGaussian = true
	return v1 * m
}

// String does not expose the generator state.
func (r *Random) String() string {
	return "jrand.Random"
}
