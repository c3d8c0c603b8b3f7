package ocr

import (
	"context"
	"image"
)

// Engine is the recognition collaborator used by the scan pipeline.
//
// Implementations must be usable for repeated, sequential Recognize calls.
// They are not required to be reentrant: the caller guarantees that only one
// recognition is in flight at a time.
type Engine interface {
	// Ready reports whether the engine is initialized and able to accept a
	// Recognize call. Callers must check readiness before invoking Recognize.
	Ready() bool

	// Recognize performs OCR on a still image and returns the recognized text
	// together with word-level bounding boxes.
	//
	// The context is consulted before expensive work begins; implementations
	// backed by non-cancellable native libraries may not be able to abort a
	// recognition that is already running.
	Recognize(ctx context.Context, img image.Image) (*Result, error)
}
