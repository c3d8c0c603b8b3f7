package main

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"os"
	"time"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/disintegration/imaging"

	"github.com/pricelens/pricelens/internal/camera"
	"github.com/pricelens/pricelens/internal/currency"
	"github.com/pricelens/pricelens/internal/ocr"
	"github.com/pricelens/pricelens/internal/overlay"
	"github.com/pricelens/pricelens/internal/scan"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	fs := ff.NewFlagSet("pricelens")
	var (
		imagePath   = fs.StringLong("image", "", "Path to a still image standing in for the camera frame (required)")
		target      = fs.StringLong("currency", "EUR", "Target currency code")
		language    = fs.StringLong("lang", ocr.DefaultLanguage, "Tesseract language code")
		outPath     = fs.StringLong("out", "overlay.png", "Where to write the composited result image")
		preprocess  = fs.BoolLong("preprocess", "Run the grayscale/contrast pass before OCR")
		ocrTimeout  = fs.DurationLong("ocr-timeout", 0, "Bound on the recognition call (0 = none)")
		debug       = fs.BoolLong("debug", "Enable debug logging")
		showVersion = fs.BoolLong("version", "Show version information")
	)

	if err := ff.Parse(fs, os.Args[1:], ff.WithEnvVarPrefix("PRICELENS")); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if *showVersion {
		fmt.Printf("pricelens %s\n", Version)
		fmt.Printf("  Build time: %s\n", BuildTime)
		fmt.Printf("  Git commit: %s\n", GitCommit)
		return
	}

	zerolog.TimeFieldFormat = time.StampMilli
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if *imagePath == "" {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintln(os.Stderr, "error: --image is required")
		os.Exit(1)
	}

	if err := run(*imagePath, *target, *language, *outPath, *preprocess, *ocrTimeout); err != nil {
		log.Error().Err(err).Msg("scan failed")
		os.Exit(1)
	}
}

func run(imagePath, target, language, outPath string, preprocess bool, ocrTimeout time.Duration) error {
	source, err := camera.OpenStill(imagePath)
	if err != nil {
		return err
	}

	renderer, err := overlay.NewRenderer(overlay.Config{})
	if err != nil {
		return err
	}

	scan.RegisterMetrics(prometheus.DefaultRegisterer)

	orchestrator, err := scan.New(source, ocr.NewTesseract(language), renderer, scan.Config{
		TargetCurrency: target,
		Rates:          currency.DefaultTable(),
		Preprocess:     preprocess,
		OCRTimeout:     ocrTimeout,
		RevertDelay:    -1, // one-shot run, nothing to revert
		OnStatus: func(u scan.Update) {
			log.Info().Str("component", "status").Str("status", u.Status.String()).Msg(u.Message)
		},
	})
	if err != nil {
		return err
	}

	res, err := orchestrator.Scan(context.Background())
	if err != nil {
		return err
	}

	switch res.Status {
	case scan.StatusError:
		return fmt.Errorf("%s: %w", res.Message, res.Err)
	case scan.StatusNoPriceFound:
		log.Info().Int("words", res.Words).Msg("no price detected in the frame")
		return nil
	}

	for _, ov := range res.Overlays {
		log.Info().Str("word", ov.Word).Float64("value", ov.Value).
			Str("label", ov.Label).Msg("price converted")
	}

	// Composite the overlay onto the frame, the way the live display layers
	// the render surface over the video feed.
	frame, err := source.Frame()
	if err != nil {
		return err
	}
	composited := image.NewRGBA(frame.Bounds())
	draw.Draw(composited, composited.Bounds(), frame, frame.Bounds().Min, draw.Src)
	if surface := orchestrator.Surface(); surface != nil {
		draw.Draw(composited, composited.Bounds(), surface, image.Point{}, draw.Over)
	}

	if err := imaging.Save(composited, outPath); err != nil {
		return fmt.Errorf("failed to save result image: %w", err)
	}

	log.Info().Str("out", outPath).Int("prices", len(res.Overlays)).
		Dur("duration", res.Duration).Msg("wrote composited overlay")
	return nil
}
