package solar

import (
	"errors"
	"time"
)

// ErrUnknownLocation reports a place missing from the gazetteer.
var ErrUnknownLocation = errors.New("unknown location")

// Instants are the five solar events of one day, localized to the
// resolved timezone.
type Instants struct {
	Dawn    time.Time
	Sunrise time.Time
	Noon    time.Time
	Sunset  time.Time
	Dusk    time.Time
}

// Resolver looks up the solar day of a named place. Keeping it an
// interface lets the mapper run on synthetic instants in tests.
type Resolver interface {
	Resolve(location string, date time.Time) (Instants, *time.Location, error)
}
