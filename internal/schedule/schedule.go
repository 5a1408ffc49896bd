package schedule

import (
	"errors"
	"fmt"
	"time"

	"github.com/ivlev/video2wallpaper/internal/capture"
)

// ErrEmptySegment reports an anchor pair with no frames between them.
var ErrEmptySegment = errors.New("empty segment")

// Anchors cut the frame sequence into the six segments of a day. The
// caller is responsible for keeping them monotonic; only zero-length
// segments are detected here.
type Anchors struct {
	Dawn    int
	Sunrise int
	Noon    int
	Sunset  int
	Dusk    int
}

// Instants are the wall-clock boundaries of the six segments, localized to
// the target timezone. End is Start plus 24 hours.
type Instants struct {
	Start   time.Time
	Dawn    time.Time
	Sunrise time.Time
	Noon    time.Time
	Sunset  time.Time
	Dusk    time.Time
	End     time.Time
}

// TimedFrame pairs a frame with its assigned time of day.
type TimedFrame struct {
	Time  time.Time
	Frame capture.Frame
}

// Day returns the [midnight, midnight+24h) window of date in loc.
func Day(date time.Time, loc *time.Location) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	return start, start.Add(24 * time.Hour)
}

// Assign gives every frame a timestamp. The sequence is cut at the five
// anchor frames and each of the six slices is spread evenly across its
// [instant_k, instant_{k+1}) interval, so segment boundaries land exactly
// on the anchor instants and time within a segment advances in equal
// steps. Timestamps are rounded to the whole second, half up.
func Assign(pics []capture.Frame, a Anchors, inst Instants) ([]TimedFrame, error) {
	cuts := []int{0, a.Dawn, a.Sunrise, a.Noon, a.Sunset, a.Dusk, len(pics)}
	times := []time.Time{inst.Start, inst.Dawn, inst.Sunrise, inst.Noon, inst.Sunset, inst.Dusk, inst.End}

	timed := make([]TimedFrame, 0, len(pics))
	for k := 0; k < 6; k++ {
		slice := pics[cuts[k]:cuts[k+1]]
		if len(slice) == 0 {
			return nil, fmt.Errorf("%w: segment %d holds no frames (cut %d..%d)",
				ErrEmptySegment, k, cuts[k], cuts[k+1])
		}
		per := times[k+1].Sub(times[k]) / time.Duration(len(slice))
		for j, f := range slice {
			timed = append(timed, TimedFrame{
				Time:  roundSecond(times[k].Add(per * time.Duration(j))),
				Frame: f,
			})
		}
	}
	return timed, nil
}

// AssignUniform spreads the whole sequence evenly across the 24 hours from
// start, for runs without any solar anchors.
func AssignUniform(pics []capture.Frame, start time.Time) ([]TimedFrame, error) {
	if len(pics) == 0 {
		return nil, fmt.Errorf("%w: sequence holds no frames", ErrEmptySegment)
	}

	per := 24 * time.Hour / time.Duration(len(pics))
	timed := make([]TimedFrame, 0, len(pics))
	for j, f := range pics {
		timed = append(timed, TimedFrame{
			Time:  roundSecond(start.Add(per * time.Duration(j))),
			Frame: f,
		})
	}
	return timed, nil
}

// roundSecond rounds to the whole second, half up at 500ms.
func roundSecond(t time.Time) time.Time {
	if time.Duration(t.Nanosecond()) >= 500*time.Millisecond {
		t = t.Add(time.Second)
	}
	return t.Truncate(time.Second)
}
