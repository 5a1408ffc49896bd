package capture

import "image"

// Frame is one slot of the final wallpaper sequence: its index in the
// output series and the image file backing it.
type Frame struct {
	Index int
	Path  string
}

// Plan fixes the window of source frames to sample. The window is
// inclusive of both ends; with mirroring on, its last frame is the exact
// midpoint of the finished day.
type Plan struct {
	StartFrame int
	EndFrame   int
	NumFrames  int
	Mirror     bool
}

// NewPlan computes the sampling window: it starts at
// floor(startSeconds*fps)+skipFrames and runs for numFrames frames, or for
// the equivalent of the [startSeconds, endSeconds) span when numFrames is
// zero.
func NewPlan(startSeconds, endSeconds, fps float64, numFrames, skipFrames int, mirror bool) Plan {
	start := int(startSeconds*fps) + skipFrames
	n := numFrames
	if n <= 0 {
		n = int((endSeconds - startSeconds) * fps)
	}
	return Plan{
		StartFrame: start,
		EndFrame:   start + n,
		NumFrames:  n,
		Mirror:     mirror,
	}
}

// MirroredIndex reflects a sampled source index into the evening half of
// the sequence: start + 2*num - i. Applying it twice returns i.
func (p Plan) MirroredIndex(i int) int {
	return p.StartFrame + p.NumFrames*2 - i
}

// Count reports how many source frames the inclusive window holds.
func (p Plan) Count() int {
	return p.EndFrame - p.StartFrame + 1
}

// Reader yields successive frames of a source positioned at the window
// start. io.EOF means the source is exhausted.
type Reader interface {
	ReadFrame() (image.Image, error)
}

// HandleFunc receives each decoded frame once, together with every file
// path the frame backs (one, or two under mirroring).
type HandleFunc func(img image.Image, paths []string) error

// Sample reads the planned window frame by frame and returns the final
// ordered sequence: real frames first, then the mirrored block in reverse,
// so the evening half reads forward through the morning frames. The window
// endpoints are never mirrored. A source that runs out before the window
// ends truncates the sequence without failing. The second return value is
// the number of source frames actually read.
func Sample(p Plan, r Reader, name func(index int) string, handle HandleFunc) ([]Frame, int, error) {
	var real, mirrored []Frame

	read := 0
	for i := p.StartFrame; i <= p.EndFrame; i++ {
		img, err := r.ReadFrame()
		if err != nil {
			break
		}
		read++

		rel := i - p.StartFrame
		frame := Frame{Index: rel, Path: name(rel)}
		paths := []string{frame.Path}

		if p.Mirror && i != p.StartFrame && i != p.EndFrame {
			m := p.MirroredIndex(i)
			twin := Frame{Index: m, Path: name(m)}
			mirrored = append(mirrored, twin)
			paths = append(paths, twin.Path)
		}

		real = append(real, frame)

		if handle != nil {
			if err := handle(img, paths); err != nil {
				return nil, read, err
			}
		}
	}

	pics := real
	for j := len(mirrored) - 1; j >= 0; j-- {
		pics = append(pics, mirrored[j])
	}
	return pics, read, nil
}

// Sequence is the frame sequence the plan yields when every planned frame
// is readable, computed without consuming any source.
func (p Plan) Sequence(name func(index int) string) []Frame {
	pics, _, _ := Sample(p, endlessReader{}, name, nil)
	return pics
}

type endlessReader struct{}

func (endlessReader) ReadFrame() (image.Image, error) { return nil, nil }
