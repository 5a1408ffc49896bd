package solar

import (
	"fmt"
	"time"

	"github.com/sj14/astral/pkg/astral"
)

// civil twilight: sun 6 degrees below the horizon
const defaultDepression = 6.0

// AstralResolver computes solar instants for gazetteer cities.
type AstralResolver struct {
	// Depression is the dawn/dusk twilight angle in degrees below the
	// horizon. Zero selects civil twilight.
	Depression float64
}

func (r AstralResolver) Resolve(location string, date time.Time) (Instants, *time.Location, error) {
	city, err := Find(location)
	if err != nil {
		return Instants{}, nil, err
	}

	loc, err := time.LoadLocation(city.Timezone)
	if err != nil {
		return Instants{}, nil, fmt.Errorf("timezone %s: %w", city.Timezone, err)
	}

	dep := r.Depression
	if dep == 0 {
		dep = defaultDepression
	}

	obs := astral.Observer{Latitude: city.Latitude, Longitude: city.Longitude}
	day := time.Date(date.Year(), date.Month(), date.Day(), 12, 0, 0, 0, loc)

	dawn, err := astral.Dawn(obs, day, dep)
	if err != nil {
		return Instants{}, nil, fmt.Errorf("dawn for %s: %w", city.Name, err)
	}
	sunrise, err := astral.Sunrise(obs, day)
	if err != nil {
		return Instants{}, nil, fmt.Errorf("sunrise for %s: %w", city.Name, err)
	}
	noon := astral.Noon(obs, day)
	sunset, err := astral.Sunset(obs, day)
	if err != nil {
		return Instants{}, nil, fmt.Errorf("sunset for %s: %w", city.Name, err)
	}
	dusk, err := astral.Dusk(obs, day, dep)
	if err != nil {
		return Instants{}, nil, fmt.Errorf("dusk for %s: %w", city.Name, err)
	}

	return Instants{
		Dawn:    dawn.In(loc),
		Sunrise: sunrise.In(loc),
		Noon:    noon.In(loc),
		Sunset:  sunset.In(loc),
		Dusk:    dusk.In(loc),
	}, loc, nil
}
