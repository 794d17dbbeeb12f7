package filter

import (
	"github.com/envsense/pointobs/pkg/timeseries"
)

// StationConfig configures a StationFilter with station IDs.
type StationConfig struct {
	Include []string `json:"include" yaml:"include"`
	Exclude []string `json:"exclude" yaml:"exclude"`
}

func (c *StationConfig) Build() (Filter, error) {
	return NewStationFilter(c), nil
}

// StationFilter keeps or drops whole stations by ID. Records of dropped
// stations are masked out of every dataset.
type StationFilter struct {
	indexFilter
	ids includeExclude
}

func NewStationFilter(cfg *StationConfig) *StationFilter {
	if cfg == nil {
		cfg = &StationConfig{}
	}
	f := &StationFilter{
		ids: includeExclude{
			include: newStringSet(cfg.Include),
			exclude: newStringSet(cfg.Exclude),
		},
	}
	f.computeMask = stationReductionMask(f.TransformStations)
	return f
}

func (f *StationFilter) Name() string { return "stations" }

func (f *StationFilter) Config() Config {
	return &StationConfig{
		Include: f.ids.include.sorted(),
		Exclude: f.ids.exclude.sorted(),
	}
}

// HasStation reports whether a station ID survives include/exclude.
func (f *StationFilter) HasStation(id string) bool {
	return f.ids.keeps(id)
}

func (f *StationFilter) TransformStations(stations map[string]timeseries.Station) map[string]timeseries.Station {
	out := make(map[string]timeseries.Station, len(stations))
	for id, station := range stations {
		if f.HasStation(id) {
			out[id] = station
		}
	}
	return out
}

// CountryConfig configures a CountryFilter with uppercase ISO2 codes.
type CountryConfig struct {
	Include []string `json:"include" yaml:"include"`
	Exclude []string `json:"exclude" yaml:"exclude"`
}

func (c *CountryConfig) Build() (Filter, error) {
	return NewCountryFilter(c), nil
}

// CountryFilter keeps or drops stations by their country code.
type CountryFilter struct {
	indexFilter
	countries includeExclude
}

func NewCountryFilter(cfg *CountryConfig) *CountryFilter {
	if cfg == nil {
		cfg = &CountryConfig{}
	}
	f := &CountryFilter{
		countries: includeExclude{
			include: newStringSet(cfg.Include),
			exclude: newStringSet(cfg.Exclude),
		},
	}
	f.computeMask = stationReductionMask(f.TransformStations)
	return f
}

func (f *CountryFilter) Name() string { return "countries" }

func (f *CountryFilter) Config() Config {
	return &CountryConfig{
		Include: f.countries.include.sorted(),
		Exclude: f.countries.exclude.sorted(),
	}
}

// HasCountry reports whether a country code survives include/exclude.
func (f *CountryFilter) HasCountry(country string) bool {
	return f.countries.keeps(country)
}

func (f *CountryFilter) TransformStations(stations map[string]timeseries.Station) map[string]timeseries.Station {
	out := make(map[string]timeseries.Station, len(stations))
	for id, station := range stations {
		if f.HasCountry(station.Country) {
			out[id] = station
		}
	}
	return out
}
