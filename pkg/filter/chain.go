package filter

import (
	"github.com/envsense/pointobs/pkg/timeseries"
)

// Chain applies filters strictly in caller order; each filter consumes
// the previous filter's output. Order matters: renaming before
// country-filtering operates on presentation names.
type Chain []timeseries.Filter

// Variables runs the variable list through every filter in order.
func (c Chain) Variables(variables []string) []string {
	for _, f := range c {
		variables = f.TransformVariables(variables)
	}
	return variables
}

// Stations runs the station map through every filter in order.
func (c Chain) Stations(stations map[string]timeseries.Station) map[string]timeseries.Station {
	for _, f := range c {
		stations = f.TransformStations(stations)
	}
	return stations
}

// Data runs one variable's dataset through every filter in order. The
// station map and variable list are the reader's unfiltered outputs, as
// each filter derives its own reduction from them.
func (c Chain) Data(data *timeseries.Data, stations map[string]timeseries.Station, variables []string) (*timeseries.Data, error) {
	var err error
	for _, f := range c {
		data, err = f.TransformData(data, stations, variables)
		if err != nil {
			return nil, err
		}
	}
	return data, nil
}

// readerNamer is satisfied by filters that rename variables; the wrapped
// reader uses it to map requested presentation names back to source
// names.
type readerNamer interface {
	ReaderName(newName string) string
}

// ReaderName walks the chain backwards to find the source variable name
// for a requested presentation name.
func (c Chain) ReaderName(name string) string {
	for i := len(c) - 1; i >= 0; i-- {
		if rn, ok := c[i].(readerNamer); ok {
			name = rn.ReaderName(name)
		}
	}
	return name
}

// filteredReader serves a reader's outputs through a filter chain.
type filteredReader struct {
	reader timeseries.Reader
	chain  Chain
}

// NewReader wraps a reader so that Variables, Stations and Data return
// chain-filtered views. It never calls back into the reader beyond the
// three accessors.
func NewReader(r timeseries.Reader, filters ...timeseries.Filter) timeseries.Reader {
	if len(filters) == 0 {
		return r
	}
	return &filteredReader{reader: r, chain: Chain(filters)}
}

func (fr *filteredReader) Variables() []string {
	return fr.chain.Variables(fr.reader.Variables())
}

func (fr *filteredReader) Stations() map[string]timeseries.Station {
	return fr.chain.Stations(fr.reader.Stations())
}

func (fr *filteredReader) Data(variable string) (*timeseries.Data, error) {
	data, err := fr.reader.Data(fr.chain.ReaderName(variable))
	if err != nil {
		return nil, err
	}
	return fr.chain.Data(data, fr.reader.Stations(), fr.reader.Variables())
}

func (fr *filteredReader) Close() error {
	return fr.reader.Close()
}

// NewVariableNameChangingReader wraps a reader so that variables appear
// under presentation names, without any include/exclude restriction.
func NewVariableNameChangingReader(r timeseries.Reader, readerToNew map[string]string) (timeseries.Reader, error) {
	f, err := NewVariableNameFilter(&VariableNameConfig{ReaderToNew: readerToNew})
	if err != nil {
		return nil, err
	}
	return NewReader(r, f), nil
}
