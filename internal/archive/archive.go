// Package archive packs the three per-channel quantised coefficient arrays
// (spec.md §3's "channel coefficient array", shape (N, 64) int16) into a
// single self-describing blob and deflates it, implementing spec.md §4.7.
//
// The wire layout is the portable explicit form spec.md §9 sanctions in
// place of the original numpy .npz archive: for each channel, in r, g, b
// order, a 4-byte big-endian block count N followed by N*64 big-endian
// int16 coefficients. Grounded on compression/dwa.go's zlibCompress/
// zlibDecompress helpers in the teacher repo, which wrap the same
// klauspost/compress/zlib API this package uses for the deflate pass.
package archive

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"

	"github.com/cursorhigh/mc2/internal/wire"
)

// ErrArchiveFailure covers a malformed packed-array blob: wrong channel
// count, inconsistent N across channels, or truncated coefficient data.
var ErrArchiveFailure = errors.New("archive: malformed coefficient archive")

// ErrDeflateFailure covers a payload that is not a valid deflate stream.
var ErrDeflateFailure = errors.New("archive: invalid deflate stream")

// deflateLevel is the fixed compression level spec.md §4.7 mandates.
const deflateLevel = 6

// Pack serialises the three per-channel coefficient arrays (each a slice of
// N zig-zag-ordered 64-int16 blocks) into the deflated payload bytes.
func Pack(r, g, b [][64]int16) ([]byte, error) {
	if len(r) != len(g) || len(g) != len(b) {
		return nil, fmt.Errorf("%w: channel block counts differ (r=%d g=%d b=%d)", ErrArchiveFailure, len(r), len(g), len(b))
	}

	w := wire.NewWriter(4 + len(r)*64*2*3)
	for _, channel := range [][][64]int16{r, g, b} {
		w.WriteUint32(uint32(len(channel)))
		for _, block := range channel {
			for _, coeff := range block {
				w.WriteInt16(coeff)
			}
		}
	}

	var buf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&buf, deflateLevel)
	if err != nil {
		return nil, fmt.Errorf("archive: creating deflate writer: %w", err)
	}
	if _, err := zw.Write(w.Bytes()); err != nil {
		return nil, fmt.Errorf("archive: deflating payload: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("archive: closing deflate writer: %w", err)
	}
	return buf.Bytes(), nil
}

// Unpack inflates payload and decodes the three per-channel coefficient
// arrays packed by Pack.
func Unpack(payload []byte) (r, g, b [][64]int16, err error) {
	zr, err := zlib.NewReader(bytes.NewReader(payload))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: %v", ErrDeflateFailure, err)
	}
	defer zr.Close()

	raw, err := io.ReadAll(zr)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: %v", ErrDeflateFailure, err)
	}

	rd := wire.NewReader(raw)
	channels := make([][][64]int16, 3)
	var n0 int
	for i := range channels {
		count, err := rd.ReadUint32()
		if err != nil {
			return nil, nil, nil, fmt.Errorf("%w: reading channel %d length: %v", ErrArchiveFailure, i, err)
		}
		if i == 0 {
			n0 = int(count)
		} else if int(count) != n0 {
			return nil, nil, nil, fmt.Errorf("%w: channel %d has N=%d, want %d", ErrArchiveFailure, i, count, n0)
		}

		blocks := make([][64]int16, count)
		for bIdx := range blocks {
			for k := 0; k < 64; k++ {
				v, err := rd.ReadInt16()
				if err != nil {
					return nil, nil, nil, fmt.Errorf("%w: reading channel %d block %d: %v", ErrArchiveFailure, i, bIdx, err)
				}
				blocks[bIdx][k] = v
			}
		}
		channels[i] = blocks
	}

	return channels[0], channels[1], channels[2], nil
}
