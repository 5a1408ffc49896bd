package solar

import (
	_ "embed"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"sync"
)

//go:embed cities.csv
var citiesCSV string

// City is one gazetteer entry the resolver can compute solar times for.
type City struct {
	Name      string
	Region    string
	Timezone  string
	Latitude  float64
	Longitude float64
}

var (
	cityOnce sync.Once
	cityList []City
	cityErr  error
)

func loadCities() ([]City, error) {
	cityOnce.Do(func() {
		r := csv.NewReader(strings.NewReader(citiesCSV))
		records, err := r.ReadAll()
		if err != nil {
			cityErr = fmt.Errorf("gazetteer: %w", err)
			return
		}
		for _, rec := range records {
			if len(rec) != 5 {
				cityErr = fmt.Errorf("gazetteer: bad record %v", rec)
				return
			}
			lat, err := strconv.ParseFloat(rec[3], 64)
			if err != nil {
				cityErr = fmt.Errorf("gazetteer: latitude of %s: %w", rec[0], err)
				return
			}
			lon, err := strconv.ParseFloat(rec[4], 64)
			if err != nil {
				cityErr = fmt.Errorf("gazetteer: longitude of %s: %w", rec[0], err)
				return
			}
			cityList = append(cityList, City{
				Name:      rec[0],
				Region:    rec[1],
				Timezone:  rec[2],
				Latitude:  lat,
				Longitude: lon,
			})
		}
	})
	return cityList, cityErr
}

// Find looks a city up by name, case-insensitively.
func Find(name string) (City, error) {
	cities, err := loadCities()
	if err != nil {
		return City{}, err
	}

	want := strings.ToLower(strings.TrimSpace(name))
	for _, c := range cities {
		if strings.ToLower(c.Name) == want {
			return c, nil
		}
	}
	return City{}, fmt.Errorf("%w: %q", ErrUnknownLocation, name)
}
