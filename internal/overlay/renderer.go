package overlay

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/pricelens/pricelens/internal/ocr"
)

// Default rendering parameters. The bright green background mirrors a price
// sticker; padding widens the patch so the original digits are fully occluded.
const (
	DefaultBackgroundHex = "#00C853"
	DefaultTextHex       = "#FFFFFF"
	DefaultPadding       = 5
	DefaultFontScale     = 0.8
)

// Config controls how replacement labels are drawn. Zero values select the
// package defaults.
type Config struct {
	// BackgroundHex is the opaque patch color as "#RRGGBB".
	BackgroundHex string

	// TextHex is the label color as "#RRGGBB".
	TextHex string

	// Padding is the number of pixels the background patch extends beyond
	// the word's bounding box on each side.
	Padding int

	// FontScale sets the label's font size as a fraction of the bounding box
	// height, so the text fills the box without overflowing it.
	FontScale float64
}

// Renderer draws replacement price labels onto a render surface that shares
// its coordinate space with the source image.
//
// A Renderer holds only immutable configuration plus the parsed font, so
// concurrent-looking call sequences within a scan cycle cannot interfere:
// each Render call touches nothing but its destination region.
type Renderer struct {
	background color.RGBA
	text       color.RGBA
	padding    int
	fontScale  float64
	face       *opentype.Font
}

// NewRenderer builds a Renderer from cfg, applying defaults for zero fields.
// It fails if a configured color is not a parsable "#RRGGBB" string.
func NewRenderer(cfg Config) (*Renderer, error) {
	if cfg.BackgroundHex == "" {
		cfg.BackgroundHex = DefaultBackgroundHex
	}
	if cfg.TextHex == "" {
		cfg.TextHex = DefaultTextHex
	}
	if cfg.Padding == 0 {
		cfg.Padding = DefaultPadding
	}
	if cfg.FontScale == 0 {
		cfg.FontScale = DefaultFontScale
	}

	bg, err := colorful.Hex(cfg.BackgroundHex)
	if err != nil {
		return nil, fmt.Errorf("invalid background color %q: %w", cfg.BackgroundHex, err)
	}

	text, err := colorful.Hex(cfg.TextHex)
	if err != nil {
		return nil, fmt.Errorf("invalid text color %q: %w", cfg.TextHex, err)
	}

	face, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse label font: %w", err)
	}

	return &Renderer{
		background: toRGBA(bg),
		text:       toRGBA(text),
		padding:    cfg.Padding,
		fontScale:  cfg.FontScale,
		face:       face,
	}, nil
}

// Render draws an opaque background patch over the word's bounding box
// (expanded by the configured padding) and centers label inside the original,
// unpadded box.
//
// Degenerate boxes — zero or negative width/height, or a box so small the
// scaled font size would fall below one pixel — are a silent no-op rather
// than an error: they come from OCR noise and there is nothing sensible to
// draw.
//
// Render mutates only dst, and only inside the padded patch: a label wider
// than the patch is clipped at the patch edge rather than spilling onto
// pixels the background fill does not cover. Drawing is therefore a pure
// overwrite, and repeating a call with the same box and label leaves the
// surface in the same state.
func (r *Renderer) Render(dst *image.RGBA, b ocr.Bounds, label string) error {
	width := b.Width()
	height := b.Height()
	if width <= 0 || height <= 0 {
		return nil
	}

	fontSize := r.fontScale * float64(height)
	if fontSize < 1 {
		return nil
	}

	// Background patch, clipped to the surface by draw.Draw itself.
	patch := image.Rect(b.X1-r.padding, b.Y1-r.padding, b.X2+r.padding, b.Y2+r.padding)
	draw.Draw(dst, patch, image.NewUniform(r.background), image.Point{}, draw.Src)

	clip := dst.SubImage(patch.Intersect(dst.Bounds())).(*image.RGBA)

	face, err := opentype.NewFace(r.face, &opentype.FaceOptions{
		Size:    fontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return fmt.Errorf("failed to size label font: %w", err)
	}
	defer face.Close()

	// The drawer writes through the patch sub-image, so a wide label is
	// clipped at the patch edge instead of spilling anti-aliased glyph
	// fringes onto pixels the background fill never resets. That keeps
	// Render a pure overwrite of the patch region.
	drawer := &font.Drawer{
		Dst:  clip,
		Src:  image.NewUniform(r.text),
		Face: face,
	}

	// Center horizontally on advance width, vertically on the face metrics,
	// both relative to the unpadded box.
	advance := drawer.MeasureString(label)
	metrics := face.Metrics()
	centerX := fixed.I(b.X1 + width/2)
	centerY := fixed.I(b.Y1 + height/2)
	drawer.Dot = fixed.Point26_6{
		X: centerX - advance/2,
		Y: centerY + (metrics.Ascent-metrics.Descent)/2,
	}
	drawer.DrawString(label)

	return nil
}

// Clear resets the whole surface to fully transparent, re-exposing whatever
// sits beneath it (on a live display, the camera feed).
func Clear(dst *image.RGBA) {
	draw.Draw(dst, dst.Bounds(), image.Transparent, image.Point{}, draw.Src)
}

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
