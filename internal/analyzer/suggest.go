package analyzer

// Suggestion points at the frames where a day-long capture starts to
// lighten, as candidates for the dawn and sunrise anchors.
type Suggestion struct {
	DawnFrame    int
	SunriseFrame int
}

// Thresholds for reading a brightness profile. Fractions are of the
// profile's dynamic range; a range below MinRange gray levels means the
// capture has no usable day/night swing.
const (
	MinRange        = 16.0
	DawnFraction    = 0.25
	SunriseFraction = 0.60
)

// SuggestAnchors scans the per-frame brightness profile of the morning
// half of a capture. Dawn is the first frame that clears DawnFraction
// of the range above the darkest frame, sunrise the first one after it
// that clears SunriseFraction. The second return value is false when
// the profile is too short or too flat to read.
func SuggestAnchors(profile []float64) (Suggestion, bool) {
	if len(profile) < 3 {
		return Suggestion{}, false
	}

	lo, hi := profile[0], profile[0]
	for _, v := range profile {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if hi-lo < MinRange {
		return Suggestion{}, false
	}

	var s Suggestion
	dawnLevel := lo + (hi-lo)*DawnFraction
	sunriseLevel := lo + (hi-lo)*SunriseFraction

	dawn := -1
	for i, v := range profile {
		if dawn < 0 && v >= dawnLevel {
			dawn = i
		}
		if dawn >= 0 && v >= sunriseLevel {
			s.DawnFrame = dawn
			s.SunriseFrame = i
			return s, true
		}
	}
	return Suggestion{}, false
}
