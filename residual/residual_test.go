package residual

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/cursorhigh/mc2/transform"
)

func TestResidualRoundTripZeroDiff(t *testing.T) {
	h, w := 13, 9
	q, err := transform.QuantMatrix(50)
	if err != nil {
		t.Fatalf("QuantMatrix: %v", err)
	}

	orig := make([]float64, h*w)
	base := make([]float64, h*w)
	rng := rand.New(rand.NewSource(4))
	for i := range orig {
		v := rng.Float64() * 255
		orig[i] = v
		base[i] = v
	}

	coeffs, err := EncodeChannel(orig, base, h, w, q)
	if err != nil {
		t.Fatalf("EncodeChannel: %v", err)
	}

	recon, err := DecodeChannel(coeffs, h, w, q)
	if err != nil {
		t.Fatalf("DecodeChannel: %v", err)
	}

	for i := range recon {
		if math.Abs(recon[i]) > 1e-6 {
			t.Fatalf("zero-diff residual at %d: got %v, want ~0", i, recon[i])
		}
	}
}

func TestResidualRoundTripLowFrequency(t *testing.T) {
	h, w := 32, 32
	q, err := transform.QuantMatrix(90)
	if err != nil {
		t.Fatalf("QuantMatrix: %v", err)
	}

	orig := make([]float64, h*w)
	base := make([]float64, h*w)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			orig[y*w+x] = 128 + 10*math.Sin(float64(x)/4) + 5*math.Cos(float64(y)/6)
			base[y*w+x] = 128
		}
	}

	coeffs, err := EncodeChannel(orig, base, h, w, q)
	if err != nil {
		t.Fatalf("EncodeChannel: %v", err)
	}
	recon, err := DecodeChannel(coeffs, h, w, q)
	if err != nil {
		t.Fatalf("DecodeChannel: %v", err)
	}

	var sumAbsErr float64
	for i := range recon {
		want := orig[i] - base[i]
		sumAbsErr += math.Abs(recon[i] - want)
	}
	mae := sumAbsErr / float64(len(recon))
	if mae > 6 {
		t.Fatalf("mean absolute residual error too high: %v", mae)
	}
}

func TestEncodeChannelRejectsLengthMismatch(t *testing.T) {
	q, _ := transform.QuantMatrix(50)
	_, err := EncodeChannel(make([]float64, 10), make([]float64, 9), 3, 3, q)
	if err == nil {
		t.Fatal("expected error for mismatched channel lengths")
	}
}

func TestEncodeChannelDetectsOverflow(t *testing.T) {
	h, w := 8, 8
	var q [64]float64
	for i := range q {
		q[i] = 1
	}

	orig := make([]float64, h*w)
	base := make([]float64, h*w)
	for i := range orig {
		// A huge, high-frequency checkerboard pattern maximises AC energy.
		if (i/w+i%w)%2 == 0 {
			orig[i] = 1e7
		} else {
			orig[i] = -1e7
		}
	}

	_, err := EncodeChannel(orig, base, h, w, q)
	if !errors.Is(err, ErrCoefficientOverflow) {
		t.Fatalf("expected ErrCoefficientOverflow, got %v", err)
	}
}

func TestDecodeChannelRejectsBlockCountMismatch(t *testing.T) {
	q, _ := transform.QuantMatrix(50)
	_, err := DecodeChannel(make([][64]int16, 1), 16, 16, q)
	if err == nil {
		t.Fatal("expected error for wrong block count")
	}
}
