package camera

import (
	"image"
	"image/color"
	"testing"
)

func TestStill_Dimensions(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 640, 480))
	s := NewStill(img)

	w, h := s.Dimensions()
	if w != 640 || h != 480 {
		t.Errorf("Dimensions: got %dx%d, want 640x480", w, h)
	}
}

func TestStill_NotReady(t *testing.T) {
	s := NewStill(nil)

	w, h := s.Dimensions()
	if w != 0 || h != 0 {
		t.Errorf("Dimensions without image: got %dx%d, want 0x0", w, h)
	}
	if _, err := s.Frame(); err == nil {
		t.Error("Frame without image should fail")
	}
}

func TestStill_FrameIsACopy(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 10, 10))
	src.Set(5, 5, color.RGBA{255, 0, 0, 255})
	s := NewStill(src)

	frame, err := s.Frame()
	if err != nil {
		t.Fatalf("Frame failed: %v", err)
	}

	// Mutating the source must not be visible through the returned frame.
	src.Set(5, 5, color.RGBA{0, 0, 255, 255})

	r, _, b, _ := frame.At(5, 5).RGBA()
	if r == 0 || b != 0 {
		t.Error("frame should be an independent copy of the source image")
	}
}
