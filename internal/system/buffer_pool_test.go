package system

import (
	"image"
	"testing"
)

func TestFramePool(t *testing.T) {
	rect := image.Rect(0, 0, 4, 4)

	img := GetFrame(rect)
	if img.Rect != rect {
		t.Fatalf("GetFrame rect = %v, want %v", img.Rect, rect)
	}
	PutFrame(img)

	// a pooled buffer of another size must not leak through
	other := GetFrame(image.Rect(0, 0, 8, 8))
	if other.Rect.Dx() != 8 || other.Rect.Dy() != 8 {
		t.Errorf("GetFrame rect = %v, want 8x8", other.Rect)
	}

	// nil is a no-op, not a panic
	PutFrame(nil)

	again := GetFrame(rect)
	if again.Rect != rect {
		t.Errorf("GetFrame rect = %v, want %v", again.Rect, rect)
	}
}
