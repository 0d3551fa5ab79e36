package main

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeSamplePNG(t *testing.T, path string) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 12, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 12; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x * 20), G: uint8(y * 20), B: 128, A: 255})
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestEncodeDecodeRoundTripViaCLI(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	mc2Path := filepath.Join(dir, "out.mc2")
	outPNG := filepath.Join(dir, "out.png")
	writeSamplePNG(t, in)

	inputPath, outputPath = in, mc2Path
	quality, down, showStats = 70, 2, false
	require.NoError(t, runEncode(nil, nil))

	data, err := os.ReadFile(mc2Path)
	require.NoError(t, err)
	require.NotEmpty(t, data)
	require.Equal(t, "MC2v1", string(data[:5]))

	inputPath, outputPath = mc2Path, outPNG
	require.NoError(t, runDecode(nil, nil))

	f, err := os.Open(outPNG)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	require.Equal(t, 12, img.Bounds().Dx())
	require.Equal(t, 10, img.Bounds().Dy())
}

func TestEncodeRejectsMissingInput(t *testing.T) {
	inputPath, outputPath = "/nonexistent/path.png", filepath.Join(t.TempDir(), "out.mc2")
	err := runEncode(nil, nil)
	require.Error(t, err)
}

func TestDecodeRejectsMissingInput(t *testing.T) {
	inputPath, outputPath = "/nonexistent/path.mc2", filepath.Join(t.TempDir(), "out.png")
	err := runDecode(nil, nil)
	require.Error(t, err)
}
