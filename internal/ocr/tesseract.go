package ocr

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/otiai10/gosseract/v2"
)

// DefaultLanguage is the Tesseract language code used when none is configured.
// English reads digits most reliably, which is what the price pipeline cares about.
const DefaultLanguage = "eng"

// Tesseract is an Engine backed by the Tesseract OCR library via gosseract.
//
// A fresh gosseract client is created per Recognize call and closed when the
// call returns, so a Tesseract value carries no native state between scans.
//
// # Prerequisites
//
// Tesseract must be installed on the system together with the language data
// for the configured language:
//   - Ubuntu/Debian: apt-get install tesseract-ocr tesseract-ocr-eng
//   - macOS: brew install tesseract
type Tesseract struct {
	language string
}

// NewTesseract creates a Tesseract engine for the given language code
// (e.g. "eng"). An empty language falls back to DefaultLanguage.
func NewTesseract(language string) *Tesseract {
	if language == "" {
		language = DefaultLanguage
	}
	return &Tesseract{language: language}
}

// Language returns the configured Tesseract language code.
func (t *Tesseract) Language() string { return t.language }

// Ready reports whether the engine can accept a Recognize call.
func (t *Tesseract) Ready() bool { return t != nil && t.language != "" }

// Recognize performs OCR on a still image and returns recognized text with
// word-level bounding boxes.
//
// The image is handed to Tesseract through a temporary PNG file (Tesseract
// wants a file path); the file is removed before Recognize returns.
//
// Word results use Tesseract's RIL_WORD iterator level. Empty words are
// filtered out. If word-level bounding box extraction fails (which can happen
// with some Tesseract configurations), the full text is still returned with
// an empty Words slice.
func (t *Tesseract) Recognize(ctx context.Context, img image.Image) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tmpPath, err := writeTempPNG(img)
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmpPath)

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(t.language); err != nil {
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetImage(tmpPath); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		// Return just text if boxes fail
		return &Result{FullText: text, Words: []Word{}}, nil
	}

	words := make([]Word, 0, len(boxes))
	for _, box := range boxes {
		if box.Word == "" {
			continue
		}
		words = append(words, Word{
			Text:       box.Word,
			Confidence: float64(box.Confidence) / 100.0,
			Bounds: Bounds{
				X1: box.Box.Min.X,
				Y1: box.Box.Min.Y,
				X2: box.Box.Max.X,
				Y2: box.Box.Max.Y,
			},
		})
	}

	return &Result{FullText: text, Words: words}, nil
}

// writeTempPNG saves an image to a temporary PNG file and returns its path.
// The caller is responsible for removing the file.
func writeTempPNG(img image.Image) (string, error) {
	f, err := os.CreateTemp("", "pricelens-frame-*.png")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := f.Name()

	if err := png.Encode(f, img); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to encode temp image: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}

	return tmpPath, nil
}
