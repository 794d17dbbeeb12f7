package readers

import (
	"testing"

	"github.com/envsense/pointobs/pkg/timeseries"
)

func TestMemoryAppendOrder(t *testing.T) {
	m := NewMemory()
	m.Append("SOx", timeseries.Record{Station: "station1", Value: 1})
	m.Append("NOx", timeseries.Record{Station: "station1", Value: 2})
	m.Append("SOx", timeseries.Record{Station: "station2", Value: 3})

	vars := m.Variables()
	if len(vars) != 2 || vars[0] != "SOx" || vars[1] != "NOx" {
		t.Errorf("Variables() = %v, want first-appearance order", vars)
	}
	d, err := m.Data("SOx")
	if err != nil {
		t.Fatal(err)
	}
	if d.Len() != 2 {
		t.Errorf("SOx records = %d, want 2", d.Len())
	}
	if d.Variable() != "SOx" {
		t.Errorf("dataset tag = %q", d.Variable())
	}
}

func TestMemoryUnknownVariable(t *testing.T) {
	if _, err := NewMemory().Data("SOx"); err == nil {
		t.Error("expected error for unknown variable")
	}
}

func TestMemorySetStationFirstWins(t *testing.T) {
	m := NewMemory()
	m.SetStation(timeseries.Station{ID: "station1", Country: "US", Latitude: 34.0, Longitude: -118.2})
	m.SetStation(timeseries.Station{ID: "station1", Country: "NO", Latitude: 59.9, Longitude: 10.7})

	if got := m.Stations()["station1"].Country; got != "US" {
		t.Errorf("station1 country = %q, first registration must win", got)
	}
	if err := m.Close(); err != nil {
		t.Fatal(err)
	}
}
