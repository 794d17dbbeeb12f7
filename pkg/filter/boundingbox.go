package filter

import (
	"fmt"

	"github.com/envsense/pointobs/pkg/timeseries"
)

// Box is a geographic bounding box given clockwise from north: NESW.
// Latitudes are degrees north in [-90,90], longitudes degrees east in
// [-180,180]. Boundaries are inclusive on all four edges.
type Box struct {
	North float64 `json:"north" yaml:"north"`
	East  float64 `json:"east" yaml:"east"`
	South float64 `json:"south" yaml:"south"`
	West  float64 `json:"west" yaml:"west"`
}

func (b Box) validate() error {
	if b.North < -90 || b.North > 90 {
		return fmt.Errorf("%w: north=%v not within [-90,90] in %v", ErrFilterConfig, b.North, b)
	}
	if b.South < -90 || b.South > 90 {
		return fmt.Errorf("%w: south=%v not within [-90,90] in %v", ErrFilterConfig, b.South, b)
	}
	if b.East < -180 || b.East > 180 {
		return fmt.Errorf("%w: east=%v not within [-180,180] in %v", ErrFilterConfig, b.East, b)
	}
	if b.West < -180 || b.West > 180 {
		return fmt.Errorf("%w: west=%v not within [-180,180] in %v", ErrFilterConfig, b.West, b)
	}
	if b.North < b.South {
		return fmt.Errorf("%w: north=%v < south=%v in %v", ErrFilterConfig, b.North, b.South, b)
	}
	if b.East < b.West {
		return fmt.Errorf("%w: east=%v < west=%v in %v", ErrFilterConfig, b.East, b.West, b)
	}
	return nil
}

func (b Box) contains(lat, lon float64) bool {
	return b.South <= lat && lat <= b.North && b.West <= lon && lon <= b.East
}

func (b Box) String() string {
	return fmt.Sprintf("(N%v,E%v,S%v,W%v)", b.North, b.East, b.South, b.West)
}

// BoundingBoxConfig configures a BoundingBoxFilter.
type BoundingBoxConfig struct {
	Include []Box `json:"include" yaml:"include"`
	Exclude []Box `json:"exclude" yaml:"exclude"`
}

func (c *BoundingBoxConfig) Build() (Filter, error) {
	return NewBoundingBoxFilter(c)
}

// BoundingBoxFilter keeps stations whose coordinates pass the box test:
// inside at least one include box (or include is empty), and inside no
// exclude box. Box order never matters.
type BoundingBoxFilter struct {
	indexFilter
	include []Box
	exclude []Box
}

// NewBoundingBoxFilter validates every box before any state is stored.
func NewBoundingBoxFilter(cfg *BoundingBoxConfig) (*BoundingBoxFilter, error) {
	if cfg == nil {
		cfg = &BoundingBoxConfig{}
	}
	for _, b := range cfg.Include {
		if err := b.validate(); err != nil {
			return nil, err
		}
	}
	for _, b := range cfg.Exclude {
		if err := b.validate(); err != nil {
			return nil, err
		}
	}
	f := &BoundingBoxFilter{
		include: append([]Box(nil), cfg.Include...),
		exclude: append([]Box(nil), cfg.Exclude...),
	}
	f.computeMask = stationReductionMask(f.TransformStations)
	return f, nil
}

func (f *BoundingBoxFilter) Name() string { return "bounding_boxes" }

func (f *BoundingBoxFilter) Config() Config {
	return &BoundingBoxConfig{
		Include: append([]Box(nil), f.include...),
		Exclude: append([]Box(nil), f.exclude...),
	}
}

// HasCoordinates tests a point against the include and exclude boxes.
// When the include stage fails, the exclude boxes are not consulted.
func (f *BoundingBoxFilter) HasCoordinates(lat, lon float64) bool {
	insideInclude := len(f.include) == 0
	for _, b := range f.include {
		if b.contains(lat, lon) {
			insideInclude = true
			break
		}
	}
	if !insideInclude {
		return false
	}
	for _, b := range f.exclude {
		if b.contains(lat, lon) {
			return false
		}
	}
	return true
}

func (f *BoundingBoxFilter) TransformStations(stations map[string]timeseries.Station) map[string]timeseries.Station {
	out := make(map[string]timeseries.Station, len(stations))
	for id, station := range stations {
		if f.HasCoordinates(station.Latitude, station.Longitude) {
			out[id] = station
		}
	}
	return out
}
