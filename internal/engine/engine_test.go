package engine

import (
	"image"
	"io"
	"strings"
	"testing"

	"github.com/ivlev/video2wallpaper/internal/capture"
	"github.com/ivlev/video2wallpaper/internal/config"
	"github.com/ivlev/video2wallpaper/internal/schedule"
)

// emptySource counts reads and never yields a frame.
type emptySource struct {
	reads int
	seeks int
}

func (s *emptySource) FrameCount() int { return 0 }
func (s *emptySource) FPS() float64    { return 25 }
func (s *emptySource) Seek(frame int) error {
	s.seeks++
	return nil
}
func (s *emptySource) ReadFrame() (image.Image, error) {
	s.reads++
	return nil, io.EOF
}
func (s *emptySource) Close() error { return nil }

func TestDeriveAnchors(t *testing.T) {
	cfg := &config.Config{DawnFrame: 10, SunriseFrame: 20, SunsetFrame: 70, DuskFrame: 90}
	plan := capture.NewPlan(1800, 0, 25, 100, 0, false)

	a := deriveAnchors(plan, cfg, 100)
	if a.Dawn != 10 || a.Sunrise != 20 || a.Sunset != 70 || a.Dusk != 90 {
		t.Errorf("user anchors altered: %+v", a)
	}
	if a.Noon != 50 {
		t.Errorf("noon frame %d, want the sequence midpoint 50", a.Noon)
	}
}

func TestDeriveAnchorsMirrorOverride(t *testing.T) {
	// mirror reflects sunset/dusk from sunrise/dawn, even when the user
	// supplied explicit values
	cfg := &config.Config{DawnFrame: 10, SunriseFrame: 20, SunsetFrame: 1, DuskFrame: 2}
	plan := capture.NewPlan(0, 0, 25, 50, 0, true)
	total := plan.NumFrames * 2 // mirrored day holds 2N frames

	a := deriveAnchors(plan, cfg, total)
	if a.Sunset != 2*50-20 {
		t.Errorf("mirrored sunset frame %d, want %d", a.Sunset, 2*50-20)
	}
	if a.Dusk != 2*50-10 {
		t.Errorf("mirrored dusk frame %d, want %d", a.Dusk, 2*50-10)
	}
	if a.Noon != 50 {
		t.Errorf("noon frame %d, want midpoint %d", a.Noon, 50)
	}
	if a.Dawn >= a.Sunrise || a.Sunrise >= a.Noon || a.Noon >= a.Sunset || a.Sunset >= a.Dusk {
		t.Errorf("mirrored anchors lost monotonicity: %+v", a)
	}
}

func TestCheckAnchors(t *testing.T) {
	valid := schedule.Anchors{Dawn: 10, Sunrise: 20, Noon: 50, Sunset: 70, Dusk: 90}
	if err := checkAnchors(valid, 100); err != nil {
		t.Errorf("valid anchors rejected: %v", err)
	}

	// len(pics) itself is a legal cut; an empty last slice is the
	// mapper's EmptySegment case, not a range violation
	edge := schedule.Anchors{Dawn: 10, Sunrise: 20, Noon: 50, Sunset: 70, Dusk: 100}
	if err := checkAnchors(edge, 100); err != nil {
		t.Errorf("boundary anchor rejected: %v", err)
	}

	tests := []struct {
		name string
		a    schedule.Anchors
	}{
		{"dawn past the end", schedule.Anchors{Dawn: 150, Sunrise: 20, Noon: 50, Sunset: 70, Dusk: 90}},
		{"dusk past the end", schedule.Anchors{Dawn: 10, Sunrise: 20, Noon: 50, Sunset: 70, Dusk: 101}},
		{"negative sunset", schedule.Anchors{Dawn: 10, Sunrise: 20, Noon: 50, Sunset: -1, Dusk: 90}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkAnchors(tt.a, 100)
			if err == nil {
				t.Fatal("out-of-range anchor accepted")
			}
			if !strings.Contains(err.Error(), "якорный кадр") {
				t.Errorf("error %q is not the readable anchor message", err)
			}
		})
	}
}

func TestSampleNoWriteSkipsSource(t *testing.T) {
	src := &emptySource{}
	cfg := &config.Config{Name: "day", NoWrite: true, Workers: 1}
	p := &Project{Config: cfg, Source: src}

	plan := capture.NewPlan(0, 0, 25, 10, 0, false)
	pics, read, err := p.sample(plan, t.TempDir())
	if err != nil {
		t.Fatalf("sample: %v", err)
	}

	// the plan alone defines the sequence: a short source must not
	// truncate a run that writes nothing
	if len(pics) != plan.Count() {
		t.Errorf("len(pics) = %d, want the full planned window %d", len(pics), plan.Count())
	}
	if read != plan.Count() {
		t.Errorf("read = %d, want %d", read, plan.Count())
	}
	if src.reads != 0 || src.seeks != 0 {
		t.Errorf("source consumed (%d reads, %d seeks), want untouched", src.reads, src.seeks)
	}

	for i, f := range pics {
		if f.Index != i {
			t.Errorf("pics[%d].Index = %d, want %d", i, f.Index, i)
		}
	}
}

func TestSampleNoWriteMirrored(t *testing.T) {
	src := &emptySource{}
	cfg := &config.Config{Name: "day", NoWrite: true, Workers: 1, Mirror: true}
	p := &Project{Config: cfg, Source: src}

	plan := capture.NewPlan(0, 0, 25, 10, 0, true)
	pics, _, err := p.sample(plan, t.TempDir())
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	if len(pics) != 20 {
		t.Errorf("len(pics) = %d, want 20 (mirrored day)", len(pics))
	}
}

func TestScaleDown(t *testing.T) {
	tests := []struct {
		name         string
		w, h         int
		maxW, maxH   int
		wantW, wantH int
	}{
		{"no limits", 400, 300, 0, 0, 400, 300},
		{"under limits", 400, 300, 800, 600, 400, 300},
		{"width bound", 400, 300, 200, 0, 200, 150},
		{"height bound", 400, 300, 0, 150, 200, 150},
		{"tighter of two", 400, 300, 300, 30, 40, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := image.NewRGBA(image.Rect(0, 0, tt.w, tt.h))
			got := scaleDown(src, tt.maxW, tt.maxH)
			b := got.Bounds()
			if b.Dx() != tt.wantW || b.Dy() != tt.wantH {
				t.Errorf("scaled to %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.wantW, tt.wantH)
			}
		})
	}
}
