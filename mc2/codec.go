// Package mc2 implements the MC2v1 lossy image codec: an encoder/decoder
// pair that layers a quantised, zig-zag-ordered residual DCT payload on top
// of a PNG-encoded, downsampled base layer, framed in the MC2v1 binary
// container format (spec.md §4, §6).
//
// Grounded on compression/dwa.go's top-level Compress/Decompress
// orchestration in the teacher repo, which strings together the same
// shape of pipeline: per-channel transform, pack, deflate, frame.
package mc2

import (
	"errors"
	"fmt"

	"github.com/cursorhigh/mc2/baselayer"
	"github.com/cursorhigh/mc2/internal/archive"
	"github.com/cursorhigh/mc2/raster"
	"github.com/cursorhigh/mc2/residual"
	"github.com/cursorhigh/mc2/transform"
)

// DefaultQuality and DefaultDown are the encoder defaults spec.md §4.9
// documents for callers that do not need to tune the tradeoff.
const (
	DefaultQuality = 50
	DefaultDown    = 2
)

// Stats reports the size and parameter accounting spec.md §6.2 calls for,
// plus OriginalBytes, a field this module's SPEC_FULL.md supplements so
// callers can compute a compression ratio without re-deriving it.
type Stats struct {
	Width, Height int
	Quality       int
	Down          int

	// OriginalBytes is a supplemented field (see SPEC_FULL.md) left at zero
	// by Encode/Decode: the core codec only ever sees a decoded Raster, not
	// the source file, so it has no notion of "original file size". Callers
	// that do have the source file (e.g. the CLI) may fill it in themselves
	// for reporting.
	OriginalBytes int
	BaseBytes     int
	PayloadBytes  int

	// OutBytes is the size of the encoded MC2v1 container (spec.md §6.2);
	// it is only set by Encode and left at zero by Decode.
	OutBytes int

	// ReconBytes is the size of the reconstructed image re-encoded as PNG
	// (spec.md §6.2, the decoder's recon_bytes field, matching the original
	// decompress_file's len(png_bytes)). It is only set by Decode and left
	// at zero by Encode.
	ReconBytes int
}

// Encode compresses rgb into an MC2v1 container at the given quality
// ([1,100]) and downsample factor ([1,255]), implementing the pipeline of
// spec.md §4.9: downsample and PNG-encode the base layer, upsample it back,
// compute and quantise the residual per channel, pack and deflate the
// coefficient arrays, and frame the result.
func Encode(rgb *raster.Raster, quality, down int) ([]byte, Stats, error) {
	if quality < transform.MinQuality || quality > transform.MaxQuality {
		return nil, Stats{}, fmt.Errorf("%w: quality must be in [%d,%d], got %d", ErrUnsupportedParameter, transform.MinQuality, transform.MaxQuality, quality)
	}
	if down < 1 || down > 255 {
		return nil, Stats{}, fmt.Errorf("%w: down must be in [1,255], got %d", ErrUnsupportedParameter, down)
	}

	q, err := transform.QuantMatrix(quality)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("%w: %v", ErrUnsupportedParameter, err)
	}

	base := baselayer.Downsample(rgb, down)
	baseBytes, err := baselayer.EncodePNG(base)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("%w: %v", ErrBaseLayerFailure, err)
	}

	upsampled := baselayer.Upsample(base, rgb.Width, rgb.Height)

	var rCoeffs, gCoeffs, bCoeffs [][64]int16
	for c := 0; c < 3; c++ {
		orig := rgb.Channel(c)
		coeffs, err := residual.EncodeChannel(orig, upsampled.Plane(c), rgb.Height, rgb.Width, q)
		if err != nil {
			return nil, Stats{}, fmt.Errorf("%w: channel %d: %v", ErrCoefficientOverflow, c, err)
		}
		switch c {
		case 0:
			rCoeffs = coeffs
		case 1:
			gCoeffs = coeffs
		case 2:
			bCoeffs = coeffs
		}
	}

	payload, err := archive.Pack(rCoeffs, gCoeffs, bCoeffs)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("%w: %v", ErrArchiveFailure, err)
	}

	h := header{
		width:     uint32(rgb.Width),
		height:    uint32(rgb.Height),
		channels:  3,
		blockSize: transform.BlockSize,
		down:      uint8(down),
		quality:   uint8(quality),
		baseLen:   uint64(len(baseBytes)),
	}
	out := muxContainer(h, baseBytes, payload)

	return out, Stats{
		Width:        rgb.Width,
		Height:       rgb.Height,
		Quality:      quality,
		Down:         down,
		BaseBytes:    len(baseBytes),
		PayloadBytes: len(payload),
		OutBytes:     len(out),
	}, nil
}

// Decode parses an MC2v1 container and reconstructs the RGB raster,
// reversing Encode's pipeline: demux the container, decode the base layer,
// upsample it, unpack and dequantise the residual, and recombine.
func Decode(data []byte) (*raster.Raster, Stats, error) {
	h, baseBytes, payload, err := demuxContainer(data)
	if err != nil {
		return nil, Stats{}, err
	}

	q, err := transform.QuantMatrix(int(h.quality))
	if err != nil {
		return nil, Stats{}, fmt.Errorf("%w: %v", ErrUnsupportedParameter, err)
	}

	base, err := baselayer.DecodePNG(baseBytes)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("%w: %v", ErrBaseLayerFailure, err)
	}

	w, hgt := int(h.width), int(h.height)
	wantBw, wantBh := baselayer.ExpectedDims(w, hgt, int(h.down))
	if base.Width != wantBw || base.Height != wantBh {
		return nil, Stats{}, fmt.Errorf("%w: base layer is %dx%d, want %dx%d for %dx%d image at down=%d",
			ErrBaseLayerFailure, base.Width, base.Height, wantBw, wantBh, w, hgt, h.down)
	}

	upsampled := baselayer.Upsample(base, w, hgt)

	rCoeffs, gCoeffs, bCoeffs, err := archive.Unpack(payload)
	if err != nil {
		if errors.Is(err, archive.ErrDeflateFailure) {
			return nil, Stats{}, fmt.Errorf("%w: %v", ErrDeflateFailure, err)
		}
		return nil, Stats{}, fmt.Errorf("%w: %v", ErrArchiveFailure, err)
	}

	coeffSets := [][][64]int16{rCoeffs, gCoeffs, bCoeffs}
	planes := make([][]float64, 3)
	for c := 0; c < 3; c++ {
		recon, err := residual.DecodeChannel(coeffSets[c], hgt, w, q)
		if err != nil {
			return nil, Stats{}, fmt.Errorf("%w: channel %d: %v", ErrArchiveFailure, c, err)
		}
		basePlane := upsampled.Plane(c)
		plane := make([]float64, w*hgt)
		for i := range plane {
			plane[i] = basePlane[i] + recon[i]
		}
		planes[c] = plane
	}

	recon := &raster.FloatImage{Width: w, Height: hgt, R: planes[0], G: planes[1], B: planes[2]}
	out := recon.ToRaster()

	reconPNG, err := baselayer.EncodePNG(out)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("mc2: re-encoding reconstructed image for stats: %w", err)
	}

	return out, Stats{
		Width:        w,
		Height:       hgt,
		Quality:      int(h.quality),
		Down:         int(h.down),
		BaseBytes:    len(baseBytes),
		PayloadBytes: len(payload),
		ReconBytes:   len(reconPNG),
	}, nil
}
