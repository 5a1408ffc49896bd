package analyzer

import (
	"image"
	"image/color"
	"math"
	"testing"
)

func flatImage(level uint8, w, h int) image.Image {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = level
	}
	return img
}

func TestMeanLuminance(t *testing.T) {
	tests := []struct {
		name  string
		img   image.Image
		want  float64
		delta float64
	}{
		{"black", flatImage(0, 8, 8), 0, 0.01},
		{"white", flatImage(255, 8, 8), 255, 0.01},
		{"gray", flatImage(128, 4, 4), 128, 0.01},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MeanLuminance(tt.img)
			if math.Abs(got-tt.want) > tt.delta {
				t.Errorf("MeanLuminance = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestMeanLuminanceColorWeights(t *testing.T) {
	// BT.601: green contributes far more than blue
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			img.Set(x, y, color.RGBA{G: 255, A: 255})
		}
	}
	green := MeanLuminance(img)

	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			img.Set(x, y, color.RGBA{B: 255, A: 255})
		}
	}
	blue := MeanLuminance(img)

	if green <= blue {
		t.Errorf("green luminance %f should exceed blue %f", green, blue)
	}
}

func TestSuggestAnchorsRamp(t *testing.T) {
	// night frames, then a steady climb into full daylight
	profile := []float64{10, 10, 10, 12, 40, 80, 130, 180, 220, 240}

	s, ok := SuggestAnchors(profile)
	if !ok {
		t.Fatal("expected a suggestion for a day/night ramp")
	}
	if s.DawnFrame >= s.SunriseFrame {
		t.Errorf("dawn frame %d should precede sunrise frame %d", s.DawnFrame, s.SunriseFrame)
	}
	if profile[s.DawnFrame] < 10+(240-10)*DawnFraction {
		t.Errorf("dawn frame %d is below the dawn level", s.DawnFrame)
	}
}

func TestSuggestAnchorsFlatProfile(t *testing.T) {
	profile := []float64{100, 101, 100, 102, 101, 100}

	if s, ok := SuggestAnchors(profile); ok {
		t.Errorf("flat profile should yield no suggestion, got %+v", s)
	}
}

func TestSuggestAnchorsTooShort(t *testing.T) {
	if _, ok := SuggestAnchors([]float64{0, 255}); ok {
		t.Error("two frames are not enough for a suggestion")
	}
}
