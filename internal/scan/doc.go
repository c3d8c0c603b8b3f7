// Package scan orchestrates one price-scan cycle end to end: it snapshots the
// current camera frame, hands it to the OCR engine, extracts price candidates
// from the recognized words, converts them to the target currency, and draws
// replacement labels on the render surface.
//
// # State machine
//
// Each cycle walks Idle → Capturing → Recognizing → {NoPriceFound | Converted
// | Error}. The two non-error terminal states auto-revert to Idle after a
// display delay; Error stays visible until the user triggers the next scan.
//
// # Concurrency
//
// One scan runs at a time. The OCR engine is not assumed reentrant, so a
// trigger that overlaps a running cycle is rejected with ErrScanInProgress
// rather than queued. Word processing inside a cycle is order-independent;
// when two bounding boxes overlap, the later-drawn label wins, which is an
// accepted nondeterminism of the pipeline.
//
// # Failure policy
//
// Every collaborator failure is caught at this boundary and converted into a
// terminal Error status with a readable message; nothing propagates out to
// corrupt later cycles. A word that simply isn't a price is not a failure at
// all — it just doesn't contribute an overlay.
package scan
