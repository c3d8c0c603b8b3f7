package overlay

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/pricelens/pricelens/internal/ocr"
)

func newSurface(w, h int) *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, w, h))
}

func TestNewRenderer_Defaults(t *testing.T) {
	r, err := NewRenderer(Config{})
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}

	if r.padding != DefaultPadding {
		t.Errorf("padding: got %d, want %d", r.padding, DefaultPadding)
	}
	if r.fontScale != DefaultFontScale {
		t.Errorf("fontScale: got %v, want %v", r.fontScale, DefaultFontScale)
	}
	// An empty TextHex takes DefaultTextHex, white.
	if r.text != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("text color: got %+v, want white (DefaultTextHex)", r.text)
	}
	if r.background != (color.RGBA{0, 200, 83, 255}) {
		t.Errorf("background color: got %+v, want #00C853", r.background)
	}
}

func TestNewRenderer_InvalidColor(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"bad background", Config{BackgroundHex: "green"}},
		{"bad text", Config{TextHex: "#zzzzzz"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewRenderer(tt.cfg); err == nil {
				t.Error("NewRenderer should reject unparsable colors")
			}
		})
	}
}

func TestRender_PaintsPaddedBackground(t *testing.T) {
	r, err := NewRenderer(Config{})
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}

	dst := newSurface(200, 100)
	box := ocr.Bounds{X1: 50, Y1: 40, X2: 120, Y2: 60}
	if err := r.Render(dst, box, "4.60 EUR"); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	// Inside the padded patch: opaque background (or label pixels, which are
	// also opaque).
	for _, p := range []image.Point{
		{50 - DefaultPadding, 40 - DefaultPadding},
		{120 + DefaultPadding - 1, 60 + DefaultPadding - 1},
		{85, 50},
	} {
		if _, _, _, a := dst.At(p.X, p.Y).RGBA(); a == 0 {
			t.Errorf("pixel (%d,%d) inside patch should be opaque", p.X, p.Y)
		}
	}

	// Just outside the padded patch: untouched (transparent).
	for _, p := range []image.Point{
		{50 - DefaultPadding - 1, 50},
		{120 + DefaultPadding, 50},
		{85, 40 - DefaultPadding - 1},
	} {
		if _, _, _, a := dst.At(p.X, p.Y).RGBA(); a != 0 {
			t.Errorf("pixel (%d,%d) outside patch should be untouched", p.X, p.Y)
		}
	}
}

func TestRender_Idempotent(t *testing.T) {
	r, err := NewRenderer(Config{})
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}

	box := ocr.Bounds{X1: 10, Y1: 10, X2: 90, Y2: 40}

	once := newSurface(120, 60)
	if err := r.Render(once, box, "9.20 EUR"); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	twice := newSurface(120, 60)
	for i := 0; i < 2; i++ {
		if err := r.Render(twice, box, "9.20 EUR"); err != nil {
			t.Fatalf("Render failed: %v", err)
		}
	}

	if !bytes.Equal(once.Pix, twice.Pix) {
		t.Error("rendering twice should leave the same pixels as rendering once")
	}
}

func TestRender_WideLabelStaysInsidePatch(t *testing.T) {
	r, err := NewRenderer(Config{})
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}

	// A tall, narrow box: at fontScale 0.8 the label's advance width far
	// exceeds the patch, so the glyphs must be clipped at the patch edge.
	box := ocr.Bounds{X1: 80, Y1: 20, X2: 120, Y2: 70}
	dst := newSurface(200, 100)
	if err := r.Render(dst, box, "1500.00 JPY"); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	for y := 0; y < 100; y++ {
		for x := 0; x < 200; x++ {
			inPatch := x >= box.X1-DefaultPadding && x < box.X2+DefaultPadding &&
				y >= box.Y1-DefaultPadding && y < box.Y2+DefaultPadding
			if inPatch {
				continue
			}
			if _, _, _, a := dst.At(x, y).RGBA(); a != 0 {
				t.Fatalf("pixel (%d,%d) outside the patch was painted", x, y)
			}
		}
	}
}

func TestRender_IdempotentWithOverflowingLabel(t *testing.T) {
	r, err := NewRenderer(Config{})
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}

	// The label is wider than the box, the case where re-blended glyph
	// fringes used to accumulate across repeated calls.
	box := ocr.Bounds{X1: 10, Y1: 10, X2: 90, Y2: 40}

	once := newSurface(120, 60)
	if err := r.Render(once, box, "9.20 EUR"); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	thrice := newSurface(120, 60)
	for i := 0; i < 3; i++ {
		if err := r.Render(thrice, box, "9.20 EUR"); err != nil {
			t.Fatalf("Render failed: %v", err)
		}
	}

	if !bytes.Equal(once.Pix, thrice.Pix) {
		t.Error("repeated renders must overwrite, not accumulate")
	}
}

func TestRender_DegenerateBoxesAreNoOps(t *testing.T) {
	r, err := NewRenderer(Config{})
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}

	tests := []struct {
		name string
		box  ocr.Bounds
	}{
		{"zero height", ocr.Bounds{X1: 10, Y1: 20, X2: 50, Y2: 20}},
		{"zero width", ocr.Bounds{X1: 10, Y1: 20, X2: 10, Y2: 40}},
		{"inverted", ocr.Bounds{X1: 50, Y1: 40, X2: 10, Y2: 20}},
		{"sub-pixel font", ocr.Bounds{X1: 10, Y1: 20, X2: 50, Y2: 21}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := newSurface(100, 100)
			before := make([]uint8, len(dst.Pix))
			copy(before, dst.Pix)

			if err := r.Render(dst, tt.box, "1.00 EUR"); err != nil {
				t.Fatalf("Render should not fail on degenerate box: %v", err)
			}
			if !bytes.Equal(before, dst.Pix) {
				t.Error("degenerate box should not draw anything")
			}
		})
	}
}

func TestRender_SeparateRegionsDoNotInterfere(t *testing.T) {
	r, err := NewRenderer(Config{})
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}

	dst := newSurface(300, 100)
	left := ocr.Bounds{X1: 10, Y1: 10, X2: 100, Y2: 40}
	right := ocr.Bounds{X1: 180, Y1: 50, X2: 280, Y2: 90}

	if err := r.Render(dst, left, "1.00 EUR"); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	snapshot := make([]uint8, len(dst.Pix))
	copy(snapshot, dst.Pix)

	if err := r.Render(dst, right, "2.00 EUR"); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	// The left patch region must be untouched by the second render.
	clone := image.NewRGBA(dst.Bounds())
	copy(clone.Pix, snapshot)
	for y := left.Y1 - DefaultPadding; y < left.Y2+DefaultPadding; y++ {
		for x := left.X1 - DefaultPadding; x < left.X2+DefaultPadding; x++ {
			if dst.At(x, y) != clone.At(x, y) {
				t.Fatalf("pixel (%d,%d) changed by a render into a disjoint region", x, y)
			}
		}
	}
}

func TestClear(t *testing.T) {
	r, err := NewRenderer(Config{})
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}

	dst := newSurface(80, 40)
	if err := r.Render(dst, ocr.Bounds{X1: 10, Y1: 10, X2: 70, Y2: 30}, "3.00 EUR"); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	Clear(dst)

	empty := newSurface(80, 40)
	if !bytes.Equal(dst.Pix, empty.Pix) {
		t.Error("Clear should reset the surface to fully transparent")
	}
}
