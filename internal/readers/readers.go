// Package readers provides the in-memory reader shared by the built-in
// data source engines. Engines parse their source eagerly into a Memory
// and serve every request from it, so no engine holds an open resource
// after Open returns.
package readers

import (
	"fmt"

	"github.com/envsense/pointobs/pkg/timeseries"
)

// Memory is a fully materialized timeseries.Reader.
type Memory struct {
	variables []string
	stations  map[string]timeseries.Station
	data      map[string]*timeseries.Data
}

func NewMemory() *Memory {
	return &Memory{
		stations: make(map[string]timeseries.Station),
		data:     make(map[string]*timeseries.Data),
	}
}

// SetStation adds a station; the first record for an ID wins.
func (m *Memory) SetStation(s timeseries.Station) {
	if _, ok := m.stations[s.ID]; !ok {
		m.stations[s.ID] = s
	}
}

// Append adds one observation to a variable's dataset, creating the
// dataset on first use. Variable order follows first appearance.
func (m *Memory) Append(variable string, r timeseries.Record) {
	d, ok := m.data[variable]
	if !ok {
		d = timeseries.NewData(variable)
		m.data[variable] = d
		m.variables = append(m.variables, variable)
	}
	d.AppendRecord(r)
}

func (m *Memory) Variables() []string {
	return append([]string(nil), m.variables...)
}

func (m *Memory) Stations() map[string]timeseries.Station {
	return m.stations
}

func (m *Memory) Data(variable string) (*timeseries.Data, error) {
	d, ok := m.data[variable]
	if !ok {
		return nil, fmt.Errorf("no data for variable %q", variable)
	}
	return d, nil
}

func (m *Memory) Close() error { return nil }
