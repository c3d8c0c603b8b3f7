package camera

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// FrameSource supplies the current camera frame on demand.
//
// The pipeline never consumes a video stream directly; at scan time it asks
// the source for one still image at the source's native resolution. A source
// that is not yet delivering frames reports zero dimensions, which the
// orchestrator treats as "camera not ready".
type FrameSource interface {
	// Dimensions returns the current frame width and height in pixels.
	// Either value is zero while the source is not ready.
	Dimensions() (width, height int)

	// Frame returns the current frame as a still image.
	Frame() (image.Image, error)
}

// Still is a FrameSource backed by a single fixed image.
//
// It stands in for a live camera in tests and in the demo binary, where a
// photo of a price tag plays the role of the current frame.
type Still struct {
	img image.Image
}

// NewStill wraps an already decoded image as a frame source.
func NewStill(img image.Image) *Still {
	return &Still{img: img}
}

// OpenStill loads an image file and wraps it as a frame source. PNG, JPEG,
// GIF, TIFF and BMP are supported.
func OpenStill(path string) (*Still, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open frame image: %w", err)
	}
	return NewStill(img), nil
}

// Dimensions returns the image size, or zeros if no image is set.
func (s *Still) Dimensions() (int, int) {
	if s == nil || s.img == nil {
		return 0, 0
	}
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// Frame returns a copy of the wrapped image, so callers can never observe a
// frame mutating underneath them.
func (s *Still) Frame() (image.Image, error) {
	if s == nil || s.img == nil {
		return nil, fmt.Errorf("no frame available")
	}
	return imaging.Clone(s.img), nil
}
