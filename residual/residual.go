// Package residual implements spec.md §4.6: the per-channel pipeline that
// computes the difference between the original raster and the upsampled
// base layer, transforms and quantises it in the frequency domain for the
// encoder, and reverses that process for the decoder.
//
// Grounded on original_source/compressor/core.py's compress_image/
// decompress_file channel loops, restructured as small composable
// functions over the transform package the way compression/dwa.go's
// compressBlock8x8/decompressBlock8x8 sit on top of the teacher's
// lower-level DCT/zig-zag primitives.
package residual

import (
	"errors"
	"fmt"
	"math"

	"github.com/cursorhigh/mc2/transform"
)

// ErrCoefficientOverflow is returned when a quantised DCT coefficient falls
// outside the signed 16-bit range spec.md §7 calls out as a fatal encoding
// error (the original source silently wraps; this is an intentional
// tightening per spec.md §9).
var ErrCoefficientOverflow = errors.New("residual: quantised coefficient overflows int16")

// EncodeChannel computes orig-base, transforms and quantises it block by
// block, and returns the zig-zag ordered coefficient blocks in the same
// row-major block order Blockify defines.
func EncodeChannel(orig, base []float64, h, w int, q [64]float64) ([][64]int16, error) {
	if len(orig) != h*w || len(base) != h*w {
		return nil, fmt.Errorf("residual: channel length mismatch for %dx%d image", h, w)
	}

	diff := make([]float64, h*w)
	for i := range diff {
		diff[i] = orig[i] - base[i]
	}

	blocks, _, _ := transform.Blockify(diff, h, w)
	out := make([][64]int16, len(blocks))
	for i, blk := range blocks {
		transform.Forward(&blk)

		var quantized transform.Block
		for k := 0; k < 64; k++ {
			quantized[k] = math.Round(blk[k] / q[k])
		}

		zz := transform.ToZigzag(quantized)
		var coeffs [64]int16
		for k, v := range zz {
			if v < -32768 || v > 32767 {
				return nil, fmt.Errorf("%w: block %d coefficient %d = %v", ErrCoefficientOverflow, i, k, v)
			}
			coeffs[k] = int16(v)
		}
		out[i] = coeffs
	}

	return out, nil
}

// DecodeChannel reverses EncodeChannel: dequantises, inverse-transforms,
// and recomposes the residual plane, cropped to (h, w).
func DecodeChannel(coeffs [][64]int16, h, w int, q [64]float64) ([]float64, error) {
	bpc := transform.BlocksPerDim(h)
	bpr := transform.BlocksPerDim(w)
	if len(coeffs) != bpc*bpr {
		return nil, fmt.Errorf("residual: got %d coefficient blocks, want %d for %dx%d image", len(coeffs), bpc*bpr, h, w)
	}

	blocks := make([]transform.Block, len(coeffs))
	for i, c := range coeffs {
		var zz transform.Block
		for k, v := range c {
			zz[k] = float64(v)
		}
		rowMajor := transform.FromZigzag(zz)

		var dequantized transform.Block
		for k := 0; k < 64; k++ {
			dequantized[k] = rowMajor[k] * q[k]
		}

		transform.Inverse(&dequantized)
		blocks[i] = dequantized
	}

	return transform.Unblockify(blocks, h, w, bpc, bpr), nil
}
