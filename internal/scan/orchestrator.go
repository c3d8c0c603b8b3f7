package scan

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"
	"sync/atomic"
	"time"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/ksuid"

	"github.com/pricelens/pricelens/internal/camera"
	"github.com/pricelens/pricelens/internal/currency"
	"github.com/pricelens/pricelens/internal/ocr"
	"github.com/pricelens/pricelens/internal/overlay"
	"github.com/pricelens/pricelens/internal/price"
)

// ErrScanInProgress is returned when Scan is called while another scan cycle
// is still running. The OCR engine is not guaranteed to be reentrant, so
// overlapping requests are rejected instead of queued.
var ErrScanInProgress = errors.New("scan in progress")

// DefaultRevertDelay is how long the NoPriceFound/Converted display states
// stay visible before the status reverts to Idle.
const DefaultRevertDelay = 3 * time.Second

// Config carries the per-process scan settings.
type Config struct {
	// TargetCurrency is the code converted prices are displayed in. It must
	// be a key of Rates; New rejects anything else up front so an unknown
	// currency can never surface mid-scan.
	TargetCurrency string

	// Rates is the exchange-rate table. Defaults to currency.DefaultTable.
	Rates currency.Table

	// Preprocess enables the grayscale/contrast pass on the OCR input.
	Preprocess bool

	// OCRTimeout bounds a single recognition call. Zero means no timeout:
	// the caller's context is the only bound.
	OCRTimeout time.Duration

	// RevertDelay overrides DefaultRevertDelay. Negative disables reverting.
	RevertDelay time.Duration

	// OnStatus, if set, receives every status transition of every cycle.
	// It is called synchronously from the scanning goroutine (and, for the
	// Idle revert, from a timer goroutine) and must not block.
	OnStatus func(Update)
}

// Overlay describes one replacement label drawn during a scan cycle.
type Overlay struct {
	Word      string     `json:"word"`      // Original OCR word text
	Value     float64    `json:"value"`     // Extracted value in the base currency
	Converted float64    `json:"converted"` // Value in the target currency
	Label     string     `json:"label"`     // Rendered text, e.g. "4.60 EUR"
	Bounds    ocr.Bounds `json:"bounds"`    // Where the label was drawn
}

// Result summarizes one completed scan cycle.
//
// A Result is produced for every cycle that starts, including failed ones:
// collaborator failures end in Status == StatusError with Err holding the
// underlying cause. No collaborator error escapes the orchestrator.
type Result struct {
	ID       string        `json:"id"`     // Unique scan cycle ID
	Status   Status        `json:"status"` // Terminal status of the cycle
	Message  string        `json:"message"`
	Overlays []Overlay     `json:"overlays,omitempty"`
	Words    int           `json:"words"` // Words returned by the OCR engine
	Duration time.Duration `json:"duration"`
	Err      error         `json:"-"`
}

// Orchestrator drives scan cycles end to end: frame snapshot, OCR, price
// extraction, conversion and overlay rendering.
//
// It owns the shared resources of the pipeline — the render surface and the
// OCR engine handle — and guarantees single ownership by rejecting
// overlapping Scan calls. All collaborator state lives in explicit fields;
// there are no package-level mutables beyond metrics.
type Orchestrator struct {
	source   camera.FrameSource
	engine   ocr.Engine
	renderer *overlay.Renderer
	cfg      Config

	busy atomic.Bool
	gen  atomic.Uint64 // scan generation, invalidates stale revert timers

	mu      sync.Mutex
	surface *image.RGBA
	status  Update
}

// New builds an Orchestrator and validates its configuration.
//
// The target currency is checked against the rate table here, at the
// configuration boundary: selecting a currency the table does not know is a
// programming error, not a runtime condition, and fails fast.
func New(source camera.FrameSource, engine ocr.Engine, renderer *overlay.Renderer, cfg Config) (*Orchestrator, error) {
	if source == nil {
		return nil, errors.New("frame source is required")
	}
	if engine == nil {
		return nil, errors.New("ocr engine is required")
	}
	if renderer == nil {
		return nil, errors.New("renderer is required")
	}
	if cfg.Rates == nil {
		cfg.Rates = currency.DefaultTable()
	}
	if _, err := cfg.Rates.Convert(0, cfg.TargetCurrency); err != nil {
		return nil, fmt.Errorf("invalid target currency: %w", err)
	}
	if cfg.RevertDelay == 0 {
		cfg.RevertDelay = DefaultRevertDelay
	}

	o := &Orchestrator{
		source:   source,
		engine:   engine,
		renderer: renderer,
		cfg:      cfg,
	}
	o.status = Update{Status: StatusIdle, Message: "ready to scan"}
	return o, nil
}

// Status returns the most recently emitted status update.
func (o *Orchestrator) Status() Update {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.status
}

// Surface returns the render surface of the last scan cycle, sized to the
// frame that was scanned. It is nil before the first successful capture.
//
// The surface is only written between a Scan call and its return; callers
// reading it concurrently with a running scan get torn pixels, not a crash.
func (o *Orchestrator) Surface() *image.RGBA {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.surface
}

// Scan runs one complete scan cycle and returns its Result.
//
// The only error Scan itself returns is ErrScanInProgress, for a request
// that overlaps a running cycle; that request has no effect on the displayed
// status. Every other failure — camera not ready, OCR engine error, render
// failure — is caught here and reported as a Result with StatusError, leaving
// the orchestrator ready for the next trigger.
//
// Once started, a cycle runs to completion; there is no mid-scan
// cancellation. OCRTimeout (or the caller's ctx deadline) bounds only the
// wait on the recognition call.
func (o *Orchestrator) Scan(ctx context.Context) (*Result, error) {
	if !o.busy.CompareAndSwap(false, true) {
		log.Warn().Str("component", "scan").Msg("rejecting overlapping scan request")
		return nil, ErrScanInProgress
	}
	defer o.busy.Store(false)

	gen := o.gen.Add(1)
	id := ksuid.New().String()
	logger := log.With().Str("component", "scan").Str("scan_id", id).Logger()
	start := time.Now()

	scansInFlight.Inc()
	defer scansInFlight.Dec()

	res := &Result{ID: id}
	fail := func(msg string, err error) (*Result, error) {
		res.Status = StatusError
		res.Message = msg
		res.Err = err
		res.Duration = time.Since(start)
		logger.Error().Err(err).Str("status", res.Status.String()).Msg(msg)
		o.emit(Update{Status: StatusError, Message: msg})
		scansTotal.WithLabelValues(res.Status.String()).Inc()
		scanDuration.Observe(res.Duration.Seconds())
		return res, nil
	}

	// Preconditions come before any state transition: a not-ready camera
	// goes straight from Idle to Error without a Capturing blip.
	width, height := o.source.Dimensions()
	if width <= 0 || height <= 0 {
		return fail("camera not ready", fmt.Errorf("frame dimensions %dx%d", width, height))
	}
	if !o.engine.Ready() {
		return fail("recognition engine not ready", errors.New("engine reported not ready"))
	}

	o.emit(Update{Status: StatusCapturing, Message: "analyzing image"})

	frame, err := o.source.Frame()
	if err != nil {
		return fail("failed to capture frame", err)
	}

	// Snapshot at native resolution; the source may keep updating.
	snapshot := imaging.Clone(frame)
	input := image.Image(snapshot)
	if o.cfg.Preprocess {
		input = preprocessForOCR(snapshot)
	}

	o.emit(Update{Status: StatusRecognizing, Message: "recognizing text"})
	logger.Debug().Int("width", width).Int("height", height).
		Bool("preprocess", o.cfg.Preprocess).Msg("frame captured, starting recognition")

	recognized, err := o.recognize(ctx, input)
	if err != nil {
		return fail("recognition failed", err)
	}
	res.Words = len(recognized.Words)

	surface := o.prepareSurface(width, height)

	for _, word := range recognized.Words {
		cand, ok := price.Extract(word)
		if !ok {
			continue // not a price, not an error
		}

		converted, err := o.cfg.Rates.Convert(cand.Value, o.cfg.TargetCurrency)
		if err != nil {
			// Unreachable after the New-time check unless the table was
			// mutated; surfaced distinctly as a configuration failure.
			return fail("conversion misconfigured", err)
		}

		label := currency.FormatLabel(converted, o.cfg.TargetCurrency)
		if err := o.renderer.Render(surface, cand.Bounds, label); err != nil {
			return fail("overlay rendering failed", err)
		}

		res.Overlays = append(res.Overlays, Overlay{
			Word:      word.Text,
			Value:     cand.Value,
			Converted: converted,
			Label:     label,
			Bounds:    cand.Bounds,
		})
		pricesFound.Inc()
		logger.Debug().Str("word", word.Text).Float64("value", cand.Value).
			Str("label", label).Msg("price converted")
	}

	if len(res.Overlays) > 0 {
		res.Status = StatusConverted
		res.Message = "prices converted"
	} else {
		res.Status = StatusNoPriceFound
		res.Message = "no price detected"
	}
	res.Duration = time.Since(start)

	o.emit(Update{Status: res.Status, Message: res.Message})
	o.scheduleRevert(gen)

	scansTotal.WithLabelValues(res.Status.String()).Inc()
	scanDuration.Observe(res.Duration.Seconds())
	logger.Info().Str("status", res.Status.String()).Int("words", res.Words).
		Int("prices", len(res.Overlays)).Dur("duration", res.Duration).Msg("scan finished")

	return res, nil
}

// recognize invokes the OCR engine, bounding the wait by OCRTimeout when one
// is configured. The engine call itself is not cancellable (Tesseract has no
// abort hook), so on timeout the call keeps running in its goroutine and its
// eventual result is dropped.
func (o *Orchestrator) recognize(ctx context.Context, img image.Image) (*ocr.Result, error) {
	if o.cfg.OCRTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.cfg.OCRTimeout)
		defer cancel()
	}

	type outcome struct {
		res *ocr.Result
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		res, err := o.engine.Recognize(ctx, img)
		done <- outcome{res: res, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("recognition did not finish: %w", ctx.Err())
	case out := <-done:
		return out.res, out.err
	}
}

// prepareSurface returns the render surface for the current cycle, allocating
// or replacing it when the frame size changed and clearing any stale overlays
// from the previous scan so the live frame shows through again.
func (o *Orchestrator) prepareSurface(width, height int) *image.RGBA {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.surface == nil || o.surface.Bounds().Dx() != width || o.surface.Bounds().Dy() != height {
		o.surface = image.NewRGBA(image.Rect(0, 0, width, height))
	} else {
		overlay.Clear(o.surface)
	}
	return o.surface
}

// scheduleRevert arms the display-state timer: after RevertDelay the status
// returns to Idle unless a newer scan has taken over in the meantime. Error
// statuses never schedule a revert.
func (o *Orchestrator) scheduleRevert(gen uint64) {
	if o.cfg.RevertDelay < 0 {
		return
	}
	time.AfterFunc(o.cfg.RevertDelay, func() {
		if o.gen.Load() != gen {
			return // superseded by a newer scan
		}
		o.emit(Update{Status: StatusIdle, Message: "ready to scan"})
	})
}

func (o *Orchestrator) emit(u Update) {
	o.mu.Lock()
	o.status = u
	cb := o.cfg.OnStatus
	o.mu.Unlock()

	if cb != nil {
		cb(u)
	}
}
