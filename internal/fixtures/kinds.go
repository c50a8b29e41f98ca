package fixtures

import (
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/medxops/jrand-gen/internal/javafmt"
	"github.com/medxops/jrand-gen/internal/jrand"
)

// Kind names one fixture sequence and its file.
type Kind string

const (
	Integers        Kind = "integers"
	Longs           Kind = "longs"
	Floats          Kind = "floats"
	Doubles         Kind = "doubles"
	Booleans        Kind = "booleans"
	Bytes           Kind = "bytes"
	BoundedIntegers Kind = "bounded_integers"
	Gaussians       Kind = "gaussians"
)

// ErrNonPositiveBound is returned when a bounded draw would need a bound <= 0.
var ErrNonPositiveBound = errors.New("bound must be positive")

var allKinds = []Kind{Integers, Longs, Floats, Doubles, Booleans, Bytes, BoundedIntegers, Gaussians}

var descriptions = map[Kind]string{
	Integers:        "nextInt(): signed 32-bit integers",
	Longs:           "nextLong(): signed 64-bit integers",
	Floats:          "nextFloat(): floats in [0, 1)",
	Doubles:         "nextDouble(): doubles in [0, 1)",
	Booleans:        "nextBoolean(): true/false",
	Bytes:           "nextBytes(byte[count]): signed bytes, trailing comma",
	BoundedIntegers: "nextInt(seed + i): integers in [0, seed + i)",
	Gaussians:       "nextGaussian(): standard normal doubles",
}

// Kinds returns every kind in file order.
func Kinds() []Kind {
	return slices.Clone(allKinds)
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return slices.Contains(allKinds, k)
}

// FileName returns the fixture file name, e.g. "integers.data".
func (k Kind) FileName() string {
	return string(k) + ".data"
}

// Description returns the Java draw the kind records.
func (k Kind) Description() string {
	return descriptions[k]
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	if !Kind(text).Valid() {
		return fmt.Errorf("unknown kind %q", string(text))
	}
	*k = Kind(text)
	return nil
}

// trailingComma reports whether every token of the file, the last one included,
// is followed by a comma. Only bytes files are written that way and consumers
// depend on it.
func (k Kind) trailingComma() bool {
	return k == Bytes
}

// Bound returns the upper bound used for the i-th bounded integer draw. The sum
// wraps like Java int arithmetic.
func Bound(seed int64, i int) int32 {
	return int32(seed) + int32(i)
}

// Stream renders the values of one kind one at a time from a generator seeded once.
type Stream struct {
	kind    Kind
	seed    int64
	rng     *jrand.Random
	index   int
	pending []byte
}

// NewStream returns a Stream for kind k seeded with seed.
func NewStream(k Kind, seed int64) (*Stream, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("unknown kind %q", k)
	}
	return &Stream{kind: k, seed: seed, rng: jrand.New(seed)}, nil
}

// Next returns the next rendered token.
func (s *Stream) Next() (string, error) {
	var tok string
	switch s.kind {
	case Integers:
		tok = strconv.FormatInt(int64(s.rng.Int32()), 10)
	case Longs:
		tok = strconv.FormatInt(s.rng.Int64(), 10)
	case Floats:
		tok = javafmt.FormatFloat(s.rng.Float32())
	case Doubles:
		tok = javafmt.FormatDouble(s.rng.Float64())
	case Booleans:
		tok = strconv.FormatBool(s.rng.Bool())
	case Bytes:
		// nextBytes(n) consumes whole words low byte first, so refilling one word
		// at a time yields the same prefix as a single call of any length.
		if len(s.pending) == 0 {
			s.pending = make([]byte, 4)
			s.rng.NextBytes(s.pending)
		}
		tok = strconv.Itoa(int(int8(s.pending[0])))
		s.pending = s.pending[1:]
	case BoundedIntegers:
		bound := Bound(s.seed, s.index)
		if bound <= 0 {
			return "", fmt.Errorf("%w: %d at index %d", ErrNonPositiveBound, bound, s.index)
		}
		tok = strconv.FormatInt(int64(s.rng.Int32n(bound)), 10)
	case Gaussians:
		tok = javafmt.FormatDouble(s.rng.Gaussian())
	}
	s.index++
	return tok, nil
}

// Draw returns count tokens of kind k from a generator freshly seeded with seed.
func Draw(k Kind, seed int64, count int) (Sequence, error) {
	s, err := NewStream(k, seed)
	if err != nil {
		return Sequence{}, err
	}
	tokens := make([]string, 0, count)
	for range count {
		tok, err := s.Next()
		if err != nil {
			return Sequence{}, err
		}
		tokens = append(tokens, tok)
	}
	return Sequence{Kind: k, Tokens: tokens}, nil
}
