// Package ocr defines the recognition boundary of the scan pipeline.
//
// The pipeline treats OCR as a black box behind the Engine interface: given a
// still image it returns the full recognized text plus a list of words, each
// with a bounding box in source-image pixel coordinates. The production
// implementation is Tesseract (via gosseract/v2); tests substitute fakes.
//
// # Prerequisites
//
// The Tesseract engine requires the tesseract library and language data files
// installed on the system:
//   - Ubuntu/Debian: apt-get install tesseract-ocr tesseract-ocr-eng
//   - macOS: brew install tesseract
//
// The default language is English ("eng"), which recognizes digits most
// reliably. Other languages can be configured using their Tesseract language
// codes ("deu", "fra", ...).
//
// # Error Handling
//
// Recognize returns errors for missing language data, engine initialization
// failures, and temporary file I/O problems. If only the word-level bounding
// box extraction fails, the full text is still returned with an empty Words
// slice rather than an error.
package ocr
