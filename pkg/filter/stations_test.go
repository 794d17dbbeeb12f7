package filter

import (
	"testing"
	"time"

	"github.com/envsense/pointobs/pkg/timeseries"
)

func twoStations() map[string]timeseries.Station {
	return map[string]timeseries.Station{
		"station1": {ID: "station1", Country: "US", Latitude: 34.0, Longitude: -118.2},
		"station2": {ID: "station2", Country: "NO", Latitude: 59.9, Longitude: 10.7},
	}
}

func stationData(stations ...string) *timeseries.Data {
	d := timeseries.NewData("SOx")
	base := time.Date(1997, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range stations {
		d.AppendRecord(timeseries.Record{
			Station:   id,
			StartTime: base.AddDate(0, 0, i),
			EndTime:   base.AddDate(0, 0, i+1),
			Value:     float64(i),
			Flag:      timeseries.FlagValid,
		})
	}
	return d
}

func TestStationFilter(t *testing.T) {
	tests := []struct {
		name string
		cfg  StationConfig
		keep []string
	}{
		{"no restriction", StationConfig{}, []string{"station1", "station2"}},
		{"include", StationConfig{Include: []string{"station2"}}, []string{"station2"}},
		{"exclude", StationConfig{Exclude: []string{"station1"}}, []string{"station2"}},
		{"exclude beats include", StationConfig{Include: []string{"station1"}, Exclude: []string{"station1"}}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewStationFilter(&tt.cfg)
			kept := f.TransformStations(twoStations())
			if len(kept) != len(tt.keep) {
				t.Fatalf("kept %d stations, want %d", len(kept), len(tt.keep))
			}
			for _, id := range tt.keep {
				if _, ok := kept[id]; !ok {
					t.Errorf("station %s missing", id)
				}
			}
		})
	}
}

func TestStationFilterTransformData(t *testing.T) {
	f := NewStationFilter(&StationConfig{Exclude: []string{"station1"}})
	d := stationData("station1", "station2", "station1", "station2")

	out, err := f.TransformData(d, twoStations(), []string{"SOx"})
	if err != nil {
		t.Fatal(err)
	}
	if out.Len() != 2 {
		t.Fatalf("expected 2 records, got %d", out.Len())
	}
	for i, id := range out.Stations() {
		if id != "station2" {
			t.Errorf("record %d belongs to %s", i, id)
		}
	}
}

func TestStationFilterUnknownStationInData(t *testing.T) {
	// a record referencing a station absent from the map is masked out,
	// not an error
	f := NewStationFilter(nil)
	d := stationData("station1", "ghost")

	out, err := f.TransformData(d, twoStations(), []string{"SOx"})
	if err != nil {
		t.Fatal(err)
	}
	if out.Len() != 1 {
		t.Fatalf("expected 1 record, got %d", out.Len())
	}
	if out.Stations()[0] != "station1" {
		t.Errorf("wrong record survived: %s", out.Stations()[0])
	}
}

func TestCountryFilter(t *testing.T) {
	tests := []struct {
		name string
		cfg  CountryConfig
		keep []string
	}{
		{"no restriction", CountryConfig{}, []string{"station1", "station2"}},
		{"include NO", CountryConfig{Include: []string{"NO"}}, []string{"station2"}},
		{"exclude NO", CountryConfig{Exclude: []string{"NO"}}, []string{"station1"}},
		{"include unknown country", CountryConfig{Include: []string{"SE"}}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewCountryFilter(&tt.cfg)
			kept := f.TransformStations(twoStations())
			if len(kept) != len(tt.keep) {
				t.Fatalf("kept %d stations, want %d", len(kept), len(tt.keep))
			}
			for _, id := range tt.keep {
				if _, ok := kept[id]; !ok {
					t.Errorf("station %s missing", id)
				}
			}
		})
	}
}

func TestStationConfigRoundTrip(t *testing.T) {
	f := NewStationFilter(&StationConfig{Include: []string{"b", "a"}, Exclude: []string{"c"}})
	cfg := f.Config().(*StationConfig)
	if len(cfg.Include) != 2 || cfg.Include[0] != "a" || cfg.Include[1] != "b" {
		t.Errorf("include not echoed sorted: %v", cfg.Include)
	}
	rebuilt, err := cfg.Build()
	if err != nil {
		t.Fatal(err)
	}
	rb := rebuilt.(*StationFilter)
	for _, id := range []string{"a", "b", "c", "d"} {
		if f.HasStation(id) != rb.HasStation(id) {
			t.Errorf("rebuilt filter disagrees for %q", id)
		}
	}
}
