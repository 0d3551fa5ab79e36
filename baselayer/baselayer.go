// Package baselayer implements spec.md §4.5: downsampling the original
// raster with a Lanczos filter, encoding that downsampled raster into PNG
// bytes (the "standard lossless raster container" the spec requires), and
// upsampling a base layer back to the original dimensions with a bicubic
// filter so the residual pipeline can compute against it.
//
// Grounded on original_source/compressor/core.py's use of PIL's
// Image.LANCZOS / Image.BICUBIC resamplers. No Lanczos kernel exists
// anywhere in the example pack, so it is implemented directly below; the
// bicubic upsample instead reuses golang.org/x/image/draw's CatmullRom
// kernel (see DESIGN.md) so encode and decode can never diverge.
package baselayer

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"math"

	"golang.org/x/image/draw"

	"github.com/cursorhigh/mc2/raster"
)

// ErrBaseLayerFailure is returned by DecodePNG when the embedded base-layer
// bytes cannot be parsed as PNG. This package does not check the decoded
// dimensions; callers compare them against ExpectedDims.
var ErrBaseLayerFailure = errors.New("baselayer: cannot decode base layer")

// ExpectedDims returns the base-layer dimensions Downsample(orig, down)
// produces for an original image of size (w, h), without needing the
// original raster in hand. Decoders use this to validate an embedded base
// layer's dimensions against what the header's (width, height, down)
// fields imply, per spec.md §7's BaseLayerFailure definition.
func ExpectedDims(w, h, down int) (bw, bh int) {
	bw = w / down
	bh = h / down
	if bw < 1 {
		bw = 1
	}
	if bh < 1 {
		bh = 1
	}
	return bw, bh
}

// Downsample produces a (w/down, h/down) raster from orig using a
// Lanczos-3 filter, per spec.md §4.5. Both resulting dimensions are at
// least 1 (callers are responsible for validating down against W, H per
// spec.md §3's invariant).
func Downsample(orig *raster.Raster, down int) *raster.Raster {
	bw, bh := ExpectedDims(orig.Width, orig.Height, down)
	return lanczosResize(orig, bw, bh)
}

// EncodePNG encodes r as PNG bytes, the lossless raster container used for
// the base-layer segment (spec.md §4.5, §6.1).
func EncodePNG(r *raster.Raster) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, r.ToImage()); err != nil {
		return nil, fmt.Errorf("baselayer: encoding PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodePNG parses PNG bytes back into a Raster.
func DecodePNG(data []byte) (*raster.Raster, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBaseLayerFailure, err)
	}
	return raster.FromImage(img), nil
}

// Upsample resizes base to (w, h) using a bicubic (Catmull-Rom) filter. The
// encoder and decoder both call this function so their upsampled base
// layers are bit-identical, satisfying spec.md §4.5's filter-matching
// invariant.
func Upsample(base *raster.Raster, w, h int) *raster.FloatImage {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	src := base.ToImage()
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	out := raster.NewFloatImage(w, h)
	for y := 0; y < h; y++ {
		rowBase := y * dst.Stride
		for x := 0; x < w; x++ {
			i := rowBase + x*4
			idx := y*w + x
			out.R[idx] = float64(dst.Pix[i])
			out.G[idx] = float64(dst.Pix[i+1])
			out.B[idx] = float64(dst.Pix[i+2])
		}
	}
	return out
}

// lanczosA is the support radius of the Lanczos kernel (Lanczos-3).
const lanczosA = 3

func lanczosKernel(x float64) float64 {
	if x == 0 {
		return 1
	}
	if x <= -lanczosA || x >= lanczosA {
		return 0
	}
	piX := math.Pi * x
	return lanczosA * math.Sin(piX) * math.Sin(piX/lanczosA) / (piX * piX)
}

// lanczosResize performs a separable Lanczos-3 resize: first horizontally,
// then vertically, clamping to image edges and clamping output samples to
// [0, 255] the way PIL's LANCZOS resampler does.
func lanczosResize(src *raster.Raster, dw, dh int) *raster.Raster {
	horiz := lanczosPass(src.Pix, src.Width, src.Height, dw, true)
	final := lanczosPass(horiz, dw, src.Height, dh, false)
	return &raster.Raster{Width: dw, Height: dh, Pix: final}
}

// lanczosPass resamples along one axis. If horizontal is true, it resizes
// width from srcW to dstN (height stays srcH); otherwise it resizes height
// from srcH to dstN (width stays srcW, passed in as srcW already-resized).
func lanczosPass(pix []uint8, srcW, srcH, dstN int, horizontal bool) []uint8 {
	var outW, outH int
	if horizontal {
		outW, outH = dstN, srcH
	} else {
		outW, outH = srcW, dstN
	}
	out := make([]uint8, outW*outH*3)

	var srcN int
	if horizontal {
		srcN = srcW
	} else {
		srcN = srcH
	}
	scale := float64(srcN) / float64(dstN)
	filterScale := scale
	if filterScale < 1 {
		filterScale = 1
	}
	support := lanczosA * filterScale

	for d := 0; d < dstN; d++ {
		center := (float64(d)+0.5)*scale - 0.5
		lo := int(math.Floor(center - support))
		hi := int(math.Ceil(center + support))

		type weight struct {
			idx int
			w   float64
		}
		var weights []weight
		var wsum float64
		for s := lo; s <= hi; s++ {
			w := lanczosKernel((float64(s) - center) / filterScale)
			if w == 0 {
				continue
			}
			clamped := s
			if clamped < 0 {
				clamped = 0
			} else if clamped >= srcN {
				clamped = srcN - 1
			}
			weights = append(weights, weight{idx: clamped, w: w})
			wsum += w
		}
		if wsum == 0 {
			wsum = 1
		}

		if horizontal {
			for y := 0; y < outH; y++ {
				var sum [3]float64
				for _, wt := range weights {
					i := (y*srcW + wt.idx) * 3
					sum[0] += float64(pix[i]) * wt.w
					sum[1] += float64(pix[i+1]) * wt.w
					sum[2] += float64(pix[i+2]) * wt.w
				}
				o := (y*outW + d) * 3
				out[o] = clampSample(sum[0] / wsum)
				out[o+1] = clampSample(sum[1] / wsum)
				out[o+2] = clampSample(sum[2] / wsum)
			}
		} else {
			for x := 0; x < outW; x++ {
				var sum [3]float64
				for _, wt := range weights {
					i := (wt.idx*srcW + x) * 3
					sum[0] += float64(pix[i]) * wt.w
					sum[1] += float64(pix[i+1]) * wt.w
					sum[2] += float64(pix[i+2]) * wt.w
				}
				o := (d*outW + x) * 3
				out[o] = clampSample(sum[0] / wsum)
				out[o+1] = clampSample(sum[1] / wsum)
				out[o+2] = clampSample(sum[2] / wsum)
			}
		}
	}
	return out
}

func clampSample(v float64) uint8 {
	v = math.Round(v)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
