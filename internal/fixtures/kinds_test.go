package fixtures

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medxops/jrand-gen/internal/jrand"
)

const goldenDir = "testdata/seed12345"

func readGolden(t *testing.T, k Kind) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(goldenDir, k.FileName()))
	require.NoError(t, err)
	return data
}

func TestDraw_MatchesGoldenFiles(t *testing.T) {
	for _, k := range Kinds() {
		t.Run(string(k), func(t *testing.T) {
			seq, err := Draw(k, 12345, 10)
			require.NoError(t, err)
			assert.Len(t, seq.Tokens, 10)
			assert.Equal(t, string(readGolden(t, k)), string(seq.Bytes()))
		})
	}
}

func TestDraw_BooleansGolden(t *testing.T) {
	seq, err := Draw(Booleans, 12345, 10)
	require.NoError(t, err)
	assert.Equal(t, "[false,true,true,true,true,false,false,false,false,false]", string(seq.Bytes()))
}

func TestDraw_BytesMatchSingleNextBytesCall(t *testing.T) {
	for count := 0; count <= 13; count++ {
		p := make([]byte, count)
		jrand.New(12345).NextBytes(p)

		seq, err := Draw(Bytes, 12345, count)
		require.NoError(t, err)
		require.Len(t, seq.Tokens, count)
		for i, b := range p {
			assert.Equal(t, strconv.Itoa(int(int8(b))), seq.Tokens[i], "count %d index %d", count, i)
		}
	}
}

func TestDraw_BoundedIntegersStayBelowBound(t *testing.T) {
	const seed = 12345
	seq, err := Draw(BoundedIntegers, seed, 100)
	require.NoError(t, err)
	for i, tok := range seq.Tokens {
		v, err := strconv.Atoi(tok)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, int(Bound(seed, i)))
	}
}

func TestDraw_BoundedIntegersNonPositiveBound(t *testing.T) {
	_, err := Draw(BoundedIntegers, -5, 10)
	assert.True(t, errors.Is(err, ErrNonPositiveBound), "got %v", err)

	// No draw, no bound.
	seq, err := Draw(BoundedIntegers, -5, 0)
	require.NoError(t, err)
	assert.Empty(t, seq.Tokens)

	// A bound of one can only yield zero.
	seq, err = Draw(BoundedIntegers, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"0"}, seq.Tokens)
}

func TestBound_WrapsLikeJavaInt(t *testing.T) {
	assert.Equal(t, int32(12346), Bound(12345, 1))
	assert.Equal(t, int32(-2147483648), Bound(2147483647, 1))
	assert.Equal(t, int32(5), Bound(1<<32+5, 0))
}

func TestDraw_Deterministic(t *testing.T) {
	for _, k := range Kinds() {
		a, err := Draw(k, 99, 50)
		require.NoError(t, err)
		b, err := Draw(k, 99, 50)
		require.NoError(t, err)
		assert.Equal(t, a, b, string(k))
	}
}

func TestNewStream_UnknownKind(t *testing.T) {
	_, err := NewStream("shorts", 1)
	assert.Error(t, err)
}

func TestKind_Helpers(t *testing.T) {
	assert.Equal(t, "bounded_integers.data", BoundedIntegers.FileName())
	assert.True(t, Gaussians.Valid())
	assert.False(t, Kind("shorts").Valid())
	for _, k := range Kinds() {
		assert.NotEmpty(t, k.Description(), string(k))
	}

	var k Kind
	require.NoError(t, k.UnmarshalText([]byte("longs")))
	assert.Equal(t, Longs, k)
	assert.Error(t, k.UnmarshalText([]byte("LONGS")))
}
