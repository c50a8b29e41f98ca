// Package slime answers whether a Minecraft chunk spawns slimes, which is the
// best-known consumer of java.util.Random seeding.
package slime

import (
	"errors"
	"fmt"
	"math"

	"github.com/medxops/jrand-gen/internal/jrand"
)

const scramble = 0x3ad8025f

// ChunkSeed derives the generator seed for chunk (x, z) of a world.
// Chunk coordinates are Java ints and every int product wraps.
func ChunkSeed(worldSeed int64, x, z int32) int64 {
	return (worldSeed +
		int64(x*x*0x4c1906) +
		int64(x*0x5ac0db) +
		int64(z*z)*0x4307a7 +
		int64(z*0x5f24f)) ^ scramble
}

// IsSlimeChunk reports whether chunk (x, z) is a slime chunk.
func IsSlimeChunk(worldSeed int64, x, z int32) bool {
	return jrand.New(ChunkSeed(worldSeed, x, z)).Int32n(10) == 0
}

// Chunk is a chunk coordinate.
type Chunk struct {
	X, Z int32
}

// ErrOutOfRange is returned when a scan square leaves the int32 chunk grid.
var ErrOutOfRange = errors.New("scan square outside the chunk coordinate range")

// Scan returns the slime chunks in the square of the given radius around (cx, cz),
// ordered by x then z. The whole square must lie within int32 coordinates.
func Scan(worldSeed int64, cx, cz, radius int32) ([]Chunk, error) {
	if radius < 0 {
		return nil, fmt.Errorf("negative radius %d", radius)
	}
	for _, c := range []int32{cx, cz} {
		if int64(c)-int64(radius) < math.MinInt32 || int64(c)+int64(radius) > math.MaxInt32 {
			return nil, fmt.Errorf("%w: %d±%d", ErrOutOfRange, c, radius)
		}
	}

	var out []Chunk
	// int64 offsets so the loop ends at math.MaxInt32.
	r := int64(radius)
	for dx := -r; dx <= r; dx++ {
		x := int32(int64(cx) + dx)
		for dz := -r; dz <= r; dz++ {
			z := int32(int64(cz) + dz)
			if IsSlimeChunk(worldSeed, x, z) {
				out = append(out, Chunk{X: x, Z: z})
			}
		}
	}
	return out, nil
}
