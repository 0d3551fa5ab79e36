package transform

import (
	"fmt"
	"math"
)

// MinQuality and MaxQuality bound the valid quality range (spec.md §3).
const (
	MinQuality = 1
	MaxQuality = 100
)

// q50 is the baseline JPEG luminance quantisation matrix, row-major.
// Ported verbatim from compression/dwa.go's jpegQuantTable.
var q50 = [64]float64{
	16, 11, 10, 16, 24, 40, 51, 61,
	12, 12, 14, 19, 26, 58, 60, 55,
	14, 13, 16, 24, 40, 57, 69, 56,
	14, 17, 22, 29, 51, 87, 80, 62,
	18, 22, 37, 56, 68, 109, 103, 77,
	24, 35, 55, 64, 81, 104, 113, 92,
	49, 64, 78, 87, 103, 121, 120, 101,
	72, 92, 95, 98, 112, 100, 103, 99,
}

// QuantMatrix derives a row-major 8x8 quantisation matrix from a quality
// integer using the JPEG-style scaling rule of spec.md §4.2. Every cell is
// clamped to [1, 255]. quality=100 yields scale=0 and an all-ones matrix.
func QuantMatrix(quality int) ([64]float64, error) {
	if quality < MinQuality || quality > MaxQuality {
		return [64]float64{}, fmt.Errorf("transform: quality %d out of range [%d, %d]", quality, MinQuality, MaxQuality)
	}

	var scale float64
	if quality < 50 {
		scale = 50.0 / float64(quality)
	} else {
		scale = 2.0 - float64(quality)/50.0
	}

	var q [64]float64
	for i, base := range q50 {
		v := math.Round(base * scale)
		if v < 1 {
			v = 1
		} else if v > 255 {
			v = 255
		}
		q[i] = v
	}
	return q, nil
}
