package scan

import (
	"image"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/effect"
)

// preprocessForOCR increases text/background separation before recognition:
// grayscale removes color noise from the camera sensor, then a mild contrast
// lift sharpens the digit edges Tesseract keys on.
//
// The result feeds the OCR engine only. The displayed frame and the overlay
// surface always keep the original colors.
func preprocessForOCR(img image.Image) *image.RGBA {
	gray := effect.Grayscale(img)
	return adjust.Contrast(gray, 0.25)
}
