package timeseries

// Filter is the capability contract of the filtering layer. A filter may
// narrow the variable list, the station map, or a dataset; implementations
// override only the transforms they specialize and inherit pass-through
// behavior for the rest by embedding PassFilter.
//
// Transforms are pure: they never mutate their inputs (except the
// documented variable retag in the renaming filter) and never retain a
// reference past the call, so a single filter instance may be used from
// multiple goroutines.
type Filter interface {
	// Name returns the stable, globally unique registry key.
	Name() string

	TransformVariables(variables []string) []string
	TransformStations(stations map[string]Station) map[string]Station
	TransformData(data *Data, stations map[string]Station, variables []string) (*Data, error)
}

// PassFilter provides identity implementations of the three transforms.
// Embed it to implement only the operations a filter specializes.
type PassFilter struct{}

func (PassFilter) TransformVariables(variables []string) []string { return variables }

func (PassFilter) TransformStations(stations map[string]Station) map[string]Station {
	return stations
}

func (PassFilter) TransformData(data *Data, stations map[string]Station, variables []string) (*Data, error) {
	return data, nil
}

// Reader is the boundary to a concrete data source. The filtering layer
// consumes its three outputs and never calls back into it otherwise.
type Reader interface {
	// Variables lists the variables this source provides.
	Variables() []string

	// Stations returns the station registry, keyed by station ID. The
	// map is independent of the per-variable record counts.
	Stations() map[string]Station

	// Data returns the columnar dataset for one variable.
	Data(variable string) (*Data, error)

	Close() error
}
