// Package camera defines the frame-acquisition boundary of the scan pipeline.
//
// Acquiring and tearing down a real camera stream is outside the pipeline's
// scope; the orchestrator only needs "the current frame as a still image of
// size W×H". The Still implementation serves tests and the demo binary.
package camera
