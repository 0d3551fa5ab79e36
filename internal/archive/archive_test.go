package archive

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/klauspost/compress/zlib"
	"github.com/stretchr/testify/require"

	"github.com/cursorhigh/mc2/internal/wire"
)

func randomBlocks(n int, rng *rand.Rand) [][64]int16 {
	blocks := make([][64]int16, n)
	for i := range blocks {
		for k := 0; k < 64; k++ {
			blocks[i][k] = int16(rng.Intn(2000) - 1000)
		}
	}
	return blocks
}

func TestPackUnpackRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	r := randomBlocks(6, rng)
	g := randomBlocks(6, rng)
	b := randomBlocks(6, rng)

	payload, err := Pack(r, g, b)
	require.NoError(t, err)
	require.NotEmpty(t, payload)

	gotR, gotG, gotB, err := Unpack(payload)
	require.NoError(t, err)
	require.Equal(t, r, gotR)
	require.Equal(t, g, gotG)
	require.Equal(t, b, gotB)
}

func TestPackRejectsMismatchedChannelCounts(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	r := randomBlocks(4, rng)
	g := randomBlocks(3, rng)
	b := randomBlocks(4, rng)

	_, err := Pack(r, g, b)
	require.ErrorIs(t, err, ErrArchiveFailure)
}

func TestUnpackRejectsGarbage(t *testing.T) {
	_, _, _, err := Unpack([]byte{0x00, 0x01, 0x02})
	require.ErrorIs(t, err, ErrDeflateFailure)
}

func TestUnpackRejectsInconsistentN(t *testing.T) {
	// Hand-build a blob with channel r having N=2 and g having N=3, bypassing
	// Pack's own equal-length check to exercise Unpack's validation directly.
	w := wire.NewWriter(0)
	w.WriteUint32(2)
	for i := 0; i < 2*64; i++ {
		w.WriteInt16(0)
	}
	w.WriteUint32(3)
	for i := 0; i < 3*64; i++ {
		w.WriteInt16(0)
	}
	w.WriteUint32(2)
	for i := 0; i < 2*64; i++ {
		w.WriteInt16(0)
	}

	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	_, err := zw.Write(w.Bytes())
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, _, _, err = Unpack(buf.Bytes())
	require.ErrorIs(t, err, ErrArchiveFailure)
}

func TestPackEmptyChannels(t *testing.T) {
	payload, err := Pack(nil, nil, nil)
	require.NoError(t, err)

	r, g, b, err := Unpack(payload)
	require.NoError(t, err)
	require.Empty(t, r)
	require.Empty(t, g)
	require.Empty(t, b)
}
