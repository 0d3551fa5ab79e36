// Package raster holds the pixel-buffer types shared across the MC2 codec:
// the 8-bit interleaved RGB raster that callers pass in and get back, and
// the per-channel float64 planes the residual pipeline operates on.
package raster

import (
	"errors"
	"image"
	"math"
)

// ErrInvalidDimensions is returned when a raster's width or height is less
// than 1.
var ErrInvalidDimensions = errors.New("raster: width and height must be >= 1")

// Raster is a 3-channel RGB image with 8-bit unsigned samples, stored
// interleaved row-major (R,G,B,R,G,B,...).
type Raster struct {
	Width, Height int
	Pix           []uint8
}

// New allocates a zero-valued Raster of the given dimensions.
func New(width, height int) (*Raster, error) {
	if width < 1 || height < 1 {
		return nil, ErrInvalidDimensions
	}
	return &Raster{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*3),
	}, nil
}

// At returns the R,G,B samples at (x, y).
func (r *Raster) At(x, y int) (uint8, uint8, uint8) {
	i := (y*r.Width + x) * 3
	return r.Pix[i], r.Pix[i+1], r.Pix[i+2]
}

// Set writes the R,G,B samples at (x, y).
func (r *Raster) Set(x, y int, red, green, blue uint8) {
	i := (y*r.Width + x) * 3
	r.Pix[i] = red
	r.Pix[i+1] = green
	r.Pix[i+2] = blue
}

// ToImage returns an image.Image view suitable for image/png and
// golang.org/x/image/draw.
func (r *Raster) ToImage() image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, r.Width, r.Height))
	for y := 0; y < r.Height; y++ {
		srcRow := r.Pix[y*r.Width*3 : (y+1)*r.Width*3]
		dstRow := img.Pix[y*img.Stride : y*img.Stride+r.Width*4]
		for x := 0; x < r.Width; x++ {
			dstRow[x*4+0] = srcRow[x*3+0]
			dstRow[x*4+1] = srcRow[x*3+1]
			dstRow[x*4+2] = srcRow[x*3+2]
			dstRow[x*4+3] = 0xff
		}
	}
	return img
}

// FromImage converts an arbitrary image.Image to a Raster, dropping alpha.
func FromImage(img image.Image) *Raster {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	r := &Raster{Width: w, Height: h, Pix: make([]uint8, w*h*3)}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			red, green, blue, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			i := (y*w + x) * 3
			r.Pix[i] = uint8(red >> 8)
			r.Pix[i+1] = uint8(green >> 8)
			r.Pix[i+2] = uint8(blue >> 8)
		}
	}
	return r
}

// Channel extracts channel c (0=R, 1=G, 2=B) as a row-major float64 plane.
func (r *Raster) Channel(c int) []float64 {
	out := make([]float64, r.Width*r.Height)
	for i := range out {
		out[i] = float64(r.Pix[i*3+c])
	}
	return out
}

// FloatImage holds three row-major float64 planes, one per RGB channel, all
// sharing the same dimensions.
type FloatImage struct {
	Width, Height int
	R, G, B       []float64
}

// NewFloatImage allocates a zero-valued FloatImage.
func NewFloatImage(width, height int) *FloatImage {
	n := width * height
	return &FloatImage{
		Width:  width,
		Height: height,
		R:      make([]float64, n),
		G:      make([]float64, n),
		B:      make([]float64, n),
	}
}

// Plane returns channel c (0=R, 1=G, 2=B).
func (f *FloatImage) Plane(c int) []float64 {
	switch c {
	case 0:
		return f.R
	case 1:
		return f.G
	case 2:
		return f.B
	default:
		panic("raster: channel index out of range")
	}
}

// ToRaster combines three float64 planes (e.g. upsampled base + residual)
// into a saturating-clamped, rounded 8-bit Raster.
func (f *FloatImage) ToRaster() *Raster {
	r := &Raster{Width: f.Width, Height: f.Height, Pix: make([]uint8, f.Width*f.Height*3)}
	for i := 0; i < f.Width*f.Height; i++ {
		r.Pix[i*3+0] = clampByte(f.R[i])
		r.Pix[i*3+1] = clampByte(f.G[i])
		r.Pix[i*3+2] = clampByte(f.B[i])
	}
	return r
}

// clampByte rounds half away from zero (the convention spec.md requires
// throughout, matching math.Round's documented behaviour) and saturates to
// [0, 255].
func clampByte(v float64) uint8 {
	v = math.Round(v)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
