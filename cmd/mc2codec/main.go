// mc2codec encodes and decodes MC2v1 images.
//
// Usage:
//
//	mc2codec encode -i <in.png> -o <out.mc2> [--quality 50] [--down 2] [--stats]
//	mc2codec decode -i <in.mc2> -o <out.png> [--stats]
package main

import (
	"image/png"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/cursorhigh/mc2/mc2"
	"github.com/cursorhigh/mc2/raster"
)

var (
	inputPath  string
	outputPath string
	quality    int
	down       int
	showStats  bool
	verbose    bool
)

func main() {
	root := &cobra.Command{
		Use:     "mc2codec",
		Short:   "Encode and decode MC2v1 images",
		Version: "1.0.0",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := zerolog.InfoLevel
			if verbose {
				level = zerolog.DebugLevel
			}
			log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
				Level(level).With().Timestamp().Logger()
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	encodeCmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode a PNG image into an MC2v1 container",
		RunE:  runEncode,
	}
	encodeCmd.Flags().StringVarP(&inputPath, "input", "i", "", "input PNG path (required)")
	encodeCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output .mc2 path (required)")
	encodeCmd.Flags().IntVarP(&quality, "quality", "q", mc2.DefaultQuality, "quality in [1,100]")
	encodeCmd.Flags().IntVarP(&down, "down", "d", mc2.DefaultDown, "base-layer downsample factor in [1,255]")
	encodeCmd.Flags().BoolVar(&showStats, "stats", false, "log size/compression stats on completion")
	_ = encodeCmd.MarkFlagRequired("input")
	_ = encodeCmd.MarkFlagRequired("output")

	decodeCmd := &cobra.Command{
		Use:   "decode",
		Short: "Decode an MC2v1 container into a PNG image",
		RunE:  runDecode,
	}
	decodeCmd.Flags().StringVarP(&inputPath, "input", "i", "", "input .mc2 path (required)")
	decodeCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output PNG path (required)")
	decodeCmd.Flags().BoolVar(&showStats, "stats", false, "log size stats on completion")
	_ = decodeCmd.MarkFlagRequired("input")
	_ = decodeCmd.MarkFlagRequired("output")

	root.AddCommand(encodeCmd, decodeCmd)

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("mc2codec failed")
		os.Exit(1)
	}
}

func runEncode(cmd *cobra.Command, args []string) error {
	f, err := os.Open(inputPath)
	if err != nil {
		return errors.Wrap(err, "opening input")
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return errors.Wrap(err, "statting input")
	}

	img, err := png.Decode(f)
	if err != nil {
		return errors.Wrap(err, "decoding input PNG")
	}
	rgb := raster.FromImage(img)

	data, stats, err := mc2.Encode(rgb, quality, down)
	if err != nil {
		return errors.Wrap(err, "encoding")
	}
	stats.OriginalBytes = int(info.Size())

	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return errors.Wrap(err, "writing output")
	}

	if showStats {
		log.Info().
			Int("width", stats.Width).
			Int("height", stats.Height).
			Int("quality", stats.Quality).
			Int("down", stats.Down).
			Int("original_bytes", stats.OriginalBytes).
			Int("base_bytes", stats.BaseBytes).
			Int("payload_bytes", stats.PayloadBytes).
			Int("out_bytes", stats.OutBytes).
			Msg("encode complete")
	}
	return nil
}

func runDecode(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return errors.Wrap(err, "reading input")
	}

	rgb, stats, err := mc2.Decode(data)
	if err != nil {
		return errors.Wrap(err, "decoding")
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return errors.Wrap(err, "creating output")
	}
	defer out.Close()

	if err := png.Encode(out, rgb.ToImage()); err != nil {
		return errors.Wrap(err, "writing output PNG")
	}

	if showStats {
		log.Info().
			Int("width", stats.Width).
			Int("height", stats.Height).
			Int("quality", stats.Quality).
			Int("down", stats.Down).
			Int("base_bytes", stats.BaseBytes).
			Int("payload_bytes", stats.PayloadBytes).
			Int("recon_bytes", stats.ReconBytes).
			Msg("decode complete")
	}
	return nil
}
