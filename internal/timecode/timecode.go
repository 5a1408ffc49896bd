package timecode

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidFormat reports a time string that does not follow HH:MM[:SS[:ms]].
var ErrInvalidFormat = errors.New("invalid time format")

// Parse converts a colon-delimited video offset (HH:MM[:SS[:ms]]) into
// seconds. Each part weighs 1/60 of the previous one starting from hours,
// so the optional fourth part is a sexagesimal subdivision of a second.
func Parse(s string) (float64, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 4 {
		return 0, fmt.Errorf("%w: %q, use HH:MM[:SS[:ms]]", ErrInvalidFormat, s)
	}

	total := 0.0
	mult := 3600.0
	for _, part := range parts {
		v, err := strconv.Atoi(part)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not an integer", ErrInvalidFormat, part)
		}
		total += float64(v) * mult
		mult /= 60
	}

	return total, nil
}
