// Package filter implements the composable filtering layer: concrete
// filters over variables, stations, countries, bounding boxes, quality
// flags and time bounds, plus the registry that maps stable filter names
// to reusable prototypes.
//
// Filters are immutable after construction and hold no resources; every
// transform is a pure function of its arguments. A filter's entire state
// is its Config, which rebuilds an equivalent filter via Config.Build.
package filter

import (
	"sort"

	"github.com/envsense/pointobs/pkg/timeseries"
)

// Config is the reconstruction argument set of one filter. Each filter
// type declares its own config struct; Build validates it and constructs
// a fresh filter, so for any filter f, f.Config().Build() yields a filter
// with identical observable behavior.
type Config interface {
	Build() (Filter, error)
}

// Filter extends the core capability contract with reconstruction.
type Filter interface {
	timeseries.Filter

	// Config returns a deep copy of the arguments that reconstruct this
	// filter. Repeated calls return equal values and never leak internal
	// mutable state.
	Config() Config
}

// maskFunc computes a boolean mask over the records of a dataset. The
// returned mask length must equal data.Len().
type maskFunc func(data *timeseries.Data, stations map[string]timeseries.Station, variables []string) ([]bool, error)

// indexFilter implements TransformData once, generically, as "slice the
// dataset by the concrete filter's record mask". Concrete filters embed
// it and wire computeMask to their own mask logic.
type indexFilter struct {
	timeseries.PassFilter
	computeMask maskFunc
}

func (f indexFilter) TransformData(data *timeseries.Data, stations map[string]timeseries.Station, variables []string) (*timeseries.Data, error) {
	mask, err := f.computeMask(data, stations, variables)
	if err != nil {
		return nil, err
	}
	return data.Slice(mask)
}

// stationReductionMask derives a record mask from a station-map
// reduction: a record survives iff its station is a key of the reduced
// map. Records referencing stations absent from the map are masked out,
// never an error.
func stationReductionMask(reduce func(map[string]timeseries.Station) map[string]timeseries.Station) maskFunc {
	return func(data *timeseries.Data, stations map[string]timeseries.Station, variables []string) ([]bool, error) {
		kept := reduce(stations)
		mask := make([]bool, data.Len())
		for i, id := range data.Stations() {
			_, ok := kept[id]
			mask[i] = ok
		}
		return mask, nil
	}
}

// stringSet is the include/exclude building block shared by the
// name-based filters.
type stringSet map[string]struct{}

func newStringSet(members []string) stringSet {
	s := make(stringSet, len(members))
	for _, m := range members {
		s[m] = struct{}{}
	}
	return s
}

func (s stringSet) has(v string) bool {
	_, ok := s[v]
	return ok
}

func (s stringSet) sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// includeExclude applies the shared membership rule: empty include means
// unrestricted, exclude always subtracts.
type includeExclude struct {
	include stringSet
	exclude stringSet
}

func (ie includeExclude) keeps(v string) bool {
	if len(ie.include) > 0 && !ie.include.has(v) {
		return false
	}
	return !ie.exclude.has(v)
}
